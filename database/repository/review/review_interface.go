package reviewRepo

import (
	"context"

	"localconnect/models"
)

// ReviewRepository defines methods for review access.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	// List returns every review, newest first.
	List(ctx context.Context) ([]models.Review, error)
	// ListPublished returns reviews that consented to publication and are not anonymous.
	ListPublished(ctx context.Context) ([]models.Review, error)
}
