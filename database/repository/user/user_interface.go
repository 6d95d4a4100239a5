package userRepo

import (
	"context"

	"localconnect/models"
)

// UserRepository defines methods for customer account access.
type UserRepository interface {
	// Create inserts a new user. Taken usernames or emails yield ErrTaken.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIdentifier matches either username or email.
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
}
