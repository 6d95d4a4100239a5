package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"localconnect/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// NoResponse is the reply used when the model returns no candidates.
const NoResponse = "No response from the model."

const systemPrompt = "You are the LocalConnect assistant. Help customers find local service " +
	"workers (plumbers, electricians, AC, mechanic and electronics repair) and event " +
	"tickets, and answer questions about carts, bookings and payments. Keep answers short."

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a chat model with the generation settings the chat box uses.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetMaxOutputTokens(512)
	model.SetTemperature(0.7)
	model.SetTopP(0.9)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	return &GeminiClient{client: client, model: model}, nil
}

// Generate continues the conversation with message.
func (g *GeminiClient) Generate(ctx context.Context, history []models.ChatTurn, message string) (string, error) {
	cs := g.model.StartChat()
	for _, turn := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  turn.Role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return NoResponse, nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	if sb.Len() == 0 {
		return NoResponse, nil
	}
	return strings.TrimSpace(sb.String()), nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}
