package order

import (
	"context"

	"localconnect/models"
	"localconnect/services/payment"
)

// OrderService covers the order lifecycle after checkout.
type OrderService interface {
	// Create stores an order posted by a client after recomputing its totals.
	Create(ctx context.Context, req models.OrderRequest, userID string) (*models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	// ListForWorker returns orders booking any profile owned by the worker account.
	ListForWorker(ctx context.Context, accountID string) ([]models.Order, error)
	// ConfirmPayment verifies a checkout session and marks its order paid.
	ConfirmPayment(ctx context.Context, orderID, sessionID string) (*models.Order, error)
	HandleWebhook(ctx context.Context, event *payment.WebhookEvent) error
	// Expire abandons an order whose payment window elapsed unpaid.
	Expire(ctx context.Context, orderID string) error
}

// SessionChecker inspects and closes checkout sessions.
type SessionChecker interface {
	SessionStatus(ctx context.Context, sessionID string) (*payment.SessionStatus, error)
	ExpireSession(ctx context.Context, sessionID string) error
}

// CartClearer empties a cart once its order is paid.
type CartClearer interface {
	Clear(ctx context.Context, cartID string) error
}

// Notifier announces paid orders.
type Notifier interface {
	NotifyOrderPaid(ctx context.Context, order *models.Order) error
}

// ProfileDirectory lists the profiles a worker account owns.
type ProfileDirectory interface {
	ListProfilesByAccount(ctx context.Context, accountID string) ([]models.WorkerProfile, error)
}
