package orderRepo

import (
	"context"

	"localconnect/models"
)

// OrderRepository defines methods for order data access.
type OrderRepository interface {
	// Create inserts an order and returns its hex id. An order with the same
	// SubmissionID yields ErrDuplicateSubmission.
	Create(ctx context.Context, order *models.Order) (string, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetBySubmissionID(ctx context.Context, submissionID string) (*models.Order, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error)
	// AttachSession records the checkout session created for an order.
	AttachSession(ctx context.Context, id, sessionID string) error
	// MarkPaid moves an order that is not yet accepted to paid. It reports
	// whether this call performed the transition.
	MarkPaid(ctx context.Context, id string) (*models.Order, bool, error)
	// MarkAbandoned moves an order to abandoned only while it is pending and
	// releases its submission id.
	// It reports whether the order changed.
	MarkAbandoned(ctx context.Context, id, reason string) (bool, error)
	// ListByItemIDs returns orders containing any of the given item ids, newest first.
	ListByItemIDs(ctx context.Context, itemIDs []string) ([]models.Order, error)
}
