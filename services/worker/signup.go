package worker

import (
	"context"
	"errors"

	workerRepo "localconnect/database/repository/worker"
	"localconnect/models"
	"localconnect/services/user"

	"go.uber.org/zap"
)

// Signup creates a worker account.
func (s *DefaultWorkerService) Signup(ctx context.Context, req models.SignupRequest) (*models.PublicUser, error) {
	req = user.NormalizeSignup(req)
	if err := user.ValidateSignup(req); err != nil {
		return nil, err
	}

	hash, err := user.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	w := &models.Worker{
		Username:     req.Username,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.Repo.CreateAccount(ctx, w); err != nil {
		if errors.Is(err, workerRepo.ErrTaken) {
			return nil, user.ErrAccountTaken
		}
		s.Logger.Error("worker Signup: failed to create account", zap.Error(err))
		return nil, err
	}

	s.Logger.Info("worker signed up", zap.String("workerId", w.ID.Hex()))
	return publicWorker(w), nil
}

func publicWorker(w *models.Worker) *models.PublicUser {
	return &models.PublicUser{
		ID:       w.ID.Hex(),
		Username: w.Username,
		Email:    w.Email,
		Phone:    w.Phone,
	}
}
