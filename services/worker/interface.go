package worker

import (
	"context"

	workerRepo "localconnect/database/repository/worker"
	"localconnect/models"
	"localconnect/services/user"

	"go.uber.org/zap"
)

// WorkerService covers worker account signup and login.
type WorkerService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.PublicUser, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, workerID, token string) error
	GetWorkerByID(ctx context.Context, workerID string) (*models.PublicUser, error)
	RegisterDevice(ctx context.Context, workerID, fcmToken string) error
	// Profiles returns the worker-form listings the account submitted.
	Profiles(ctx context.Context, workerID string) ([]models.WorkerProfile, error)
}

// DefaultWorkerService is the production implementation.
type DefaultWorkerService struct {
	Repo     workerRepo.WorkerRepository
	Sessions user.SessionStore
	Logger   *zap.Logger
}

func NewWorkerService(repo workerRepo.WorkerRepository, sessions user.SessionStore, logger *zap.Logger) *DefaultWorkerService {
	return &DefaultWorkerService{Repo: repo, Sessions: sessions, Logger: logger}
}
