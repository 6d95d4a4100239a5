package worker

import (
	"context"
	"errors"
	"strings"

	"localconnect/database/repository"
	"localconnect/models"
	"localconnect/services/user"
	"localconnect/utils"

	"go.uber.org/zap"
)

// Login authenticates a worker and issues a worker token. A device token in
// the request is registered for push notifications.
func (s *DefaultWorkerService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	identifier := strings.TrimSpace(req.Login())
	if identifier == "" {
		return nil, user.ErrIdentifierRequired
	}

	w, err := s.Repo.GetAccountByIdentifier(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		s.Logger.Error("worker Login: failed to fetch account", zap.Error(err))
		return nil, err
	}
	if !user.CheckPassword(w.PasswordHash, req.Password) {
		return nil, user.ErrInvalidCredentials
	}

	subject := w.ID.Hex()
	token, err := utils.GenerateToken(subject, w.Email, utils.RoleWorker, utils.WorkerTokenTTL)
	if err != nil {
		return nil, err
	}
	if s.Sessions != nil {
		if err := s.Sessions.Save(ctx, utils.RoleWorker, subject, token, utils.WorkerTokenTTL); err != nil {
			s.Logger.Error("worker Login: failed to record session", zap.Error(err))
			return nil, err
		}
	}

	if req.FCMToken != "" {
		// A failed device registration does not block the login.
		if err := s.Repo.AddFCMToken(ctx, subject, req.FCMToken); err != nil {
			s.Logger.Warn("worker Login: failed to register device token", zap.String("workerId", subject), zap.Error(err))
		}
	}

	return &models.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    *publicWorker(w),
	}, nil
}

// Logout revokes token.
func (s *DefaultWorkerService) Logout(ctx context.Context, workerID, token string) error {
	if s.Sessions == nil {
		return nil
	}
	return s.Sessions.Revoke(ctx, utils.RoleWorker, workerID, token)
}
