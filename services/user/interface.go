package user

import (
	"context"
	"time"

	userRepo "localconnect/database/repository/user"
	"localconnect/models"

	"go.uber.org/zap"
)

// UserService covers customer signup, login and profile lookup.
type UserService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.PublicUser, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, userID, token string) error
	GetUserByID(ctx context.Context, userID string) (*models.PublicUser, error)
}

// SessionStore tracks issued tokens. utils.TokenSessions implements it.
type SessionStore interface {
	Save(ctx context.Context, role, subject, token string, ttl time.Duration) error
	Revoke(ctx context.Context, role, subject, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Sessions SessionStore
	Logger   *zap.Logger
}

// NewUserService wires the user service. sessions may be nil, in which case
// tokens are purely stateless.
func NewUserService(repo userRepo.UserRepository, sessions SessionStore, logger *zap.Logger) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Sessions: sessions, Logger: logger}
}
