package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxImageSize is the upload limit for a single image.
const MaxImageSize = 5 * 1024 * 1024

var allowedImageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// Upload validation errors.
var (
	ErrNotAnImage    = errors.New("only image files are allowed")
	ErrImageTooLarge = errors.New("image exceeds the 5MB limit")
	ErrMissingFile   = errors.New("missing file")
)

// ValidateImage checks extension, content type and size of an uploaded image.
func ValidateImage(header *multipart.FileHeader) error {
	if header == nil {
		return ErrMissingFile
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return ErrNotAnImage
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return ErrNotAnImage
	}
	if header.Size > MaxImageSize {
		return fmt.Errorf("%w: %s", ErrImageTooLarge, header.Filename)
	}
	return nil
}

// UploadFormImage validates and uploads a multipart image header.
func UploadFormImage(ctx context.Context, svc StorageService, header *multipart.FileHeader, folder string) (*UploadedFile, error) {
	if err := ValidateImage(header); err != nil {
		return nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()
	return svc.UploadImage(ctx, f, header.Filename, folder)
}
