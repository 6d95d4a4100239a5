package ai

import (
	"context"
	"strings"

	"localconnect/models"
	"localconnect/utils"

	"go.uber.org/zap"
)

// DefaultMaxTurns bounds the history sent back to the model.
const DefaultMaxTurns = 20

const (
	RoleUser  = "user"
	RoleModel = "model"
)

var ErrEmptyMessage = utils.BadRequest("message is required")

// DefaultChatService implements ChatService.
type DefaultChatService struct {
	Store     ContextStore
	Generator Generator
	MaxTurns  int
	Logger    *zap.Logger
}

func NewChatService(store ContextStore, gen Generator, logger *zap.Logger) *DefaultChatService {
	return &DefaultChatService{Store: store, Generator: gen, MaxTurns: DefaultMaxTurns, Logger: logger}
}

// Chat sends message with the stored history and records both turns.
func (s *DefaultChatService) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	chat, err := s.Store.Get(ctx, req.SessionID)
	if err != nil {
		// History is best effort; answer without it.
		s.Logger.Warn("failed to load chat context", zap.String("sessionId", req.SessionID), zap.Error(err))
		chat = &models.ChatContext{}
	}

	reply, err := s.Generator.Generate(ctx, chat.Turns, message)
	if err != nil {
		return nil, err
	}

	chat.Turns = append(chat.Turns,
		models.ChatTurn{Role: RoleUser, Text: message},
		models.ChatTurn{Role: RoleModel, Text: reply},
	)
	if limit := s.MaxTurns; limit > 0 && len(chat.Turns) > limit {
		chat.Turns = chat.Turns[len(chat.Turns)-limit:]
	}
	if err := s.Store.Set(ctx, req.SessionID, chat); err != nil {
		s.Logger.Warn("failed to save chat context", zap.String("sessionId", req.SessionID), zap.Error(err))
	}

	return &models.ChatResponse{SessionID: req.SessionID, Reply: reply}, nil
}

// Reset forgets a conversation.
func (s *DefaultChatService) Reset(ctx context.Context, sessionID string) error {
	return s.Store.Clear(ctx, sessionID)
}
