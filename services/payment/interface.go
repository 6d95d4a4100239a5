package payment

import (
	"context"

	"localconnect/models"

	"github.com/stripe/stripe-go/v76"
)

// Gateway opens and inspects hosted checkout sessions.
type Gateway interface {
	CreateSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSession, error)
	RedirectURL(ctx context.Context, sessionID string) (string, error)
	// SessionStatus reports whether a session was paid and which order it belongs to.
	SessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)
	ExpireSession(ctx context.Context, sessionID string) error
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// SessionAPI is the subset of the Stripe checkout session client used here.
type SessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Expire(id string, params *stripe.CheckoutSessionExpireParams) (*stripe.CheckoutSession, error)
}

// SessionStatus is the payment state of a checkout session.
type SessionStatus struct {
	SessionID string
	OrderID   string
	Open      bool
	Paid      bool
}

// Webhook event kinds the marketplace reacts to.
const (
	EventSessionCompleted = "checkout.session.completed"
	EventSessionExpired   = "checkout.session.expired"
)

// WebhookEvent is a verified checkout event.
type WebhookEvent struct {
	ID        string
	Type      string
	SessionID string
	OrderID   string
	Paid      bool
}
