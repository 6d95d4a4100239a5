package worker

import (
	"context"
	"errors"
	"strings"

	"localconnect/database/repository"
	"localconnect/models"
	"localconnect/services/user"
	"localconnect/utils"
)

var ErrMissingDeviceToken = utils.BadRequest("fcmToken is required")

// RegisterDevice stores an FCM token for the worker.
func (s *DefaultWorkerService) RegisterDevice(ctx context.Context, workerID, fcmToken string) error {
	fcmToken = strings.TrimSpace(fcmToken)
	if fcmToken == "" {
		return ErrMissingDeviceToken
	}
	err := s.Repo.AddFCMToken(ctx, workerID, fcmToken)
	if errors.Is(err, repository.ErrNotFound) {
		return user.ErrUserNotFound
	}
	return err
}

// GetWorkerByID returns the public view of a worker account.
func (s *DefaultWorkerService) GetWorkerByID(ctx context.Context, workerID string) (*models.PublicUser, error) {
	w, err := s.Repo.GetAccountByID(ctx, workerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return publicWorker(w), nil
}

// Profiles returns the listings owned by the worker.
func (s *DefaultWorkerService) Profiles(ctx context.Context, workerID string) ([]models.WorkerProfile, error) {
	return s.Repo.ListProfilesByAccount(ctx, workerID)
}
