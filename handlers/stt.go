package handlers

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	MaxDurationSeconds = 60              // 1 minute maximum
	MaxFileSize        = 5 * 1024 * 1024 // 5MB
	AllowedExtension   = ".wav"
)

var (
	errNotWAV          = errors.New("not a RIFF/WAVE file")
	errUnsupportedWAV  = errors.New("only 16-bit PCM WAV audio is supported")
	errMissingWAVChunk = errors.New("WAV file is missing its fmt or data chunk")
)

// WaveFormat is the part of a WAV header the recogniser needs.
type WaveFormat struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BitsPerSample uint16
	DataSize      uint32
}

// Seconds is the playback length of the data chunk.
func (w WaveFormat) Seconds() float64 {
	if w.ByteRate == 0 {
		return 0
	}
	return float64(w.DataSize) / float64(w.ByteRate)
}

// parseWaveFormat walks the RIFF chunks and reads the fmt and data headers.
func parseWaveFormat(data []byte) (*WaveFormat, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errNotWAV
	}
	var (
		format           WaveFormat
		haveFmt, haveDat bool
	)
	for off := 12; off+8 <= len(data) && !(haveFmt && haveDat); {
		id := string(data[off : off+4])
		size := binary.LittleEndian.Uint32(data[off+4 : off+8])
		body := off + 8
		switch id {
		case "fmt ":
			if size < 16 || body+16 > len(data) {
				return nil, errMissingWAVChunk
			}
			format.AudioFormat = binary.LittleEndian.Uint16(data[body:])
			format.NumChannels = binary.LittleEndian.Uint16(data[body+2:])
			format.SampleRate = binary.LittleEndian.Uint32(data[body+4:])
			format.ByteRate = binary.LittleEndian.Uint32(data[body+8:])
			format.BitsPerSample = binary.LittleEndian.Uint16(data[body+14:])
			haveFmt = true
		case "data":
			format.DataSize = size
			haveDat = true
		}
		// Chunks are word aligned.
		off = body + int(size) + int(size%2)
	}
	if !haveFmt || !haveDat {
		return nil, errMissingWAVChunk
	}
	if format.AudioFormat != 1 || format.BitsPerSample != 16 {
		return nil, errUnsupportedWAV
	}
	return &format, nil
}

// Transcriber turns LINEAR16 audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, format WaveFormat, language string) (string, error)
}

// GoogleTranscriber uses Google Cloud Speech-to-Text.
type GoogleTranscriber struct {
	client *speech.Client
}

// NewGoogleTranscriber opens a speech client. An empty credentialsFile falls
// back to application default credentials.
func NewGoogleTranscriber(ctx context.Context, credentialsFile string) (*GoogleTranscriber, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech client: %w", err)
	}
	return &GoogleTranscriber{client: client}, nil
}

func (g *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte, format WaveFormat, language string) (string, error) {
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(format.SampleRate),
			AudioChannelCount: int32(format.NumChannels),
			LanguageCode:      language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcript.WriteString(result.Alternatives[0].Transcript + " ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}

func (g *GoogleTranscriber) Close() error {
	return g.client.Close()
}

// STTHandler serves the chat box's microphone input.
type STTHandler struct {
	Transcriber Transcriber
}

func NewSTTHandler(t Transcriber) *STTHandler {
	return &STTHandler{Transcriber: t}
}

// TranscribeHandler handles POST /api/ai/stt.
func (h *STTHandler) TranscribeHandler(c *gin.Context) {
	logger := getLogger(c)

	if h.Transcriber == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "speech recognition is not configured"})
		return
	}
	language := c.DefaultPostForm("language", "en-US")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required", "details": err.Error()})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != AllowedExtension {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid file type",
			"details": fmt.Sprintf("expected %s, got %s", AllowedExtension, ext),
		})
		return
	}
	if header.Size > MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file exceeds the 5MB limit"})
		return
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(file, MaxFileSize+1)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read audio file", "details": err.Error()})
		return
	}
	if buf.Len() > MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file exceeds the 5MB limit"})
		return
	}
	audio := buf.Bytes()

	format, err := parseWaveFormat(audio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid audio", "details": err.Error()})
		return
	}
	if format.Seconds() > MaxDurationSeconds {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio too long",
			"details": fmt.Sprintf("maximum duration is %d seconds", MaxDurationSeconds),
		})
		return
	}

	text, err := h.Transcriber.Transcribe(c.Request.Context(), audio, *format, language)
	if err != nil {
		logger.Error("transcription failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "speech recognition failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcription": text})
}
