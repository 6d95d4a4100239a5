package checkout

import (
	"context"
	"time"

	"localconnect/models"
	"localconnect/services/cart"
)

// OrderStore persists orders for the flow.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) (string, error)
	// FindBySubmission returns nil without error when no order carries submissionID.
	FindBySubmission(ctx context.Context, submissionID string) (*models.Order, error)
	AttachSession(ctx context.Context, orderID, sessionID string) error
	MarkAbandoned(ctx context.Context, orderID, reason string) error
}

// Gateway is the payment provider's hosted checkout.
type Gateway interface {
	CreateSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSession, error)
	// RedirectURL resolves the hosted payment page of an open session.
	RedirectURL(ctx context.Context, sessionID string) (string, error)
}

// ExpiryScheduler abandons orders still pending after a delay.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, orderID string, after time.Duration) error
}

// Submission is one press of "proceed to payment".
type Submission struct {
	// SubmissionID makes retries of the same press reuse one pending order.
	// An attempt that failed releases it and the next retry starts over.
	SubmissionID string
	Cart         *cart.Cart
	Contact      *models.ContactInfo
	Location     string
	Date         string
	TimeSlots    []string
	UserID       string
}

// Result is what the client needs to continue to payment.
type Result struct {
	OrderID     string `json:"orderId"`
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"url"`
	Reused      bool   `json:"reused,omitempty"`
}

// Config holds the charges and URLs the flow applies.
type Config struct {
	Currency      string
	Fees          cart.Fees
	PaymentWindow time.Duration
	// ClientOrigin is the base of the success and cancel URLs.
	ClientOrigin string
}
