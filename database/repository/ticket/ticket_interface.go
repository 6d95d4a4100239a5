package ticketRepo

import (
	"context"

	"localconnect/models"
)

// TicketRepository defines methods for ticket listing access.
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.TicketListing) error
	GetByID(ctx context.Context, id string) (*models.TicketListing, error)
	// ListByKind returns listings of one kind, newest first.
	ListByKind(ctx context.Context, kind string) ([]models.TicketListing, error)
}
