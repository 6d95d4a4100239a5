package ai

import (
	"context"

	"localconnect/models"
)

// ChatService answers chat box messages, keeping per-session history.
type ChatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	Reset(ctx context.Context, sessionID string) error
}

// Generator produces the next model turn for a conversation.
type Generator interface {
	Generate(ctx context.Context, history []models.ChatTurn, message string) (string, error)
}

// ContextStore persists conversations between requests.
type ContextStore interface {
	Get(ctx context.Context, sessionID string) (*models.ChatContext, error)
	Set(ctx context.Context, sessionID string, chat *models.ChatContext) error
	Clear(ctx context.Context, sessionID string) error
}
