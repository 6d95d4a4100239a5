package storage

import (
	"context"
	"io"
)

// UploadedFile describes a stored asset.
type UploadedFile struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// StorageService defines the interface for image storage operations.
type StorageService interface {
	UploadImage(ctx context.Context, file io.Reader, filename, folder string) (*UploadedFile, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// Folders used for uploads.
const (
	FolderReviews = "localconnect/reviews"
	FolderWorkers = "localconnect/workers"
	FolderTickets = "localconnect/tickets"
)
