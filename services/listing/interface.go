package listing

import (
	"context"
	"mime/multipart"

	"localconnect/models"
)

// ListingService manages worker profiles and resale tickets, and prices them
// for the cart.
type ListingService interface {
	CreateWorkerProfile(ctx context.Context, form models.WorkerForm, photo *multipart.FileHeader, accountID string) (*models.WorkerProfile, error)
	ListWorkers(ctx context.Context) ([]models.WorkerProfile, error)
	ListWorkersByType(ctx context.Context, workerType string) ([]models.WorkerProfile, error)

	CreateTicket(ctx context.Context, kind string, form models.TicketForm, image *multipart.FileHeader) (*models.TicketListing, error)
	ListTickets(ctx context.Context, kind string) ([]models.TicketListing, error)
	GetTicket(ctx context.Context, id string) (*models.TicketListing, error)

	// Resolve implements cart.Catalog.
	Resolve(ctx context.Context, kind models.ItemKind, id string) (*models.CartLineItem, error)
}
