package workerRepo

import (
	"context"

	"localconnect/models"
)

// WorkerRepository covers worker accounts and their public profiles.
type WorkerRepository interface {
	CreateAccount(ctx context.Context, worker *models.Worker) error
	GetAccountByID(ctx context.Context, id string) (*models.Worker, error)
	GetAccountByIdentifier(ctx context.Context, identifier string) (*models.Worker, error)
	// AddFCMToken registers a device token, ignoring duplicates.
	AddFCMToken(ctx context.Context, accountID, token string) error

	CreateProfile(ctx context.Context, profile *models.WorkerProfile) error
	GetProfileByID(ctx context.Context, id string) (*models.WorkerProfile, error)
	ListProfiles(ctx context.Context) ([]models.WorkerProfile, error)
	// ListProfilesByType returns profiles offering workerType.
	ListProfilesByType(ctx context.Context, workerType string) ([]models.WorkerProfile, error)
	ListProfilesByAccount(ctx context.Context, accountID string) ([]models.WorkerProfile, error)

	// DeviceTokensForProfiles resolves the FCM tokens of the accounts owning the profiles.
	DeviceTokensForProfiles(ctx context.Context, profileIDs []string) ([]string, error)
}
