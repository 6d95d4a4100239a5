package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"localconnect/models"
	"localconnect/services/checkout"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// Stripe refuses hosted sessions that expire sooner than this.
const minSessionLifetime = 31 * time.Minute

var (
	ErrSessionClosed = errors.New("checkout session is no longer open")
	ErrNoSessionURL  = errors.New("checkout session has no payment URL")
)

// StripeGateway implements Gateway with Stripe Checkout.
type StripeGateway struct {
	sessions      SessionAPI
	webhookSecret string
	lifetime      time.Duration
	logger        *zap.Logger
}

// NewStripeGateway creates a gateway authenticated with secretKey.
func NewStripeGateway(secretKey, webhookSecret string, lifetime time.Duration, logger *zap.Logger) *StripeGateway {
	client := &session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey}
	return NewGatewayWithAPI(client, webhookSecret, lifetime, logger)
}

// NewGatewayWithAPI creates a gateway over an existing session client.
func NewGatewayWithAPI(api SessionAPI, webhookSecret string, lifetime time.Duration, logger *zap.Logger) *StripeGateway {
	if lifetime < minSessionLifetime {
		lifetime = minSessionLifetime
	}
	return &StripeGateway{sessions: api, webhookSecret: webhookSecret, lifetime: lifetime, logger: logger}
}

// CreateSession opens a payment-mode checkout session for an order.
func (g *StripeGateway) CreateSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.OrderID),
		ExpiresAt:         stripe.Int64(time.Now().Add(g.lifetime).Unix()),
		LineItems:         toStripeLineItems(req.Currency, req.LineItems),
	}
	params.Context = ctx
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.OrderID != "" {
		params.AddMetadata("order_id", req.OrderID)
	}

	s, err := g.sessions.New(params)
	if err != nil {
		g.logger.Error("stripe session creation failed", zap.String("orderId", req.OrderID), zap.Error(err))
		return nil, classify(err)
	}
	g.logger.Info("stripe session created", zap.String("orderId", req.OrderID), zap.String("sessionId", s.ID))
	return &models.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// RedirectURL returns the hosted page of an open session.
func (g *StripeGateway) RedirectURL(ctx context.Context, sessionID string) (string, error) {
	s, err := g.get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if s.Status != "" && s.Status != stripe.CheckoutSessionStatusOpen {
		return "", fmt.Errorf("%w: %s", ErrSessionClosed, s.Status)
	}
	if s.URL == "" {
		return "", ErrNoSessionURL
	}
	return s.URL, nil
}

// SessionStatus retrieves the session and reports its payment state.
func (g *StripeGateway) SessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	s, err := g.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return statusOf(s), nil
}

// ExpireSession closes an open session so it can no longer be paid.
func (g *StripeGateway) ExpireSession(ctx context.Context, sessionID string) error {
	params := &stripe.CheckoutSessionExpireParams{}
	params.Context = ctx
	if _, err := g.sessions.Expire(sessionID, params); err != nil {
		return classify(err)
	}
	return nil
}

// ParseWebhook verifies the signature and decodes checkout session events.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("invalid webhook: %w", err)
	}

	out := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	switch out.Type {
	case EventSessionCompleted, EventSessionExpired:
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("failed to decode checkout session: %w", err)
		}
		status := statusOf(&s)
		out.SessionID = status.SessionID
		out.OrderID = status.OrderID
		out.Paid = status.Paid
	}
	return out, nil
}

func (g *StripeGateway) get(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := g.sessions.Get(sessionID, params)
	if err != nil {
		return nil, classify(err)
	}
	return s, nil
}

func statusOf(s *stripe.CheckoutSession) *SessionStatus {
	orderID := s.ClientReferenceID
	if orderID == "" && s.Metadata != nil {
		orderID = s.Metadata["order_id"]
	}
	return &SessionStatus{
		SessionID: s.ID,
		OrderID:   orderID,
		Open:      s.Status == stripe.CheckoutSessionStatusOpen,
		Paid:      s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
}

// classify keeps provider rejections as they are and marks everything else
// as an unreachable provider.
func classify(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr
	}
	return fmt.Errorf("%w: %v", checkout.ErrUnreachable, err)
}

func toStripeLineItems(currency string, lines []models.PriceLineItem) []*stripe.CheckoutSessionLineItemParams {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, l := range lines {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{Name: stripe.String(l.Name)}
		if l.Description != "" {
			product.Description = stripe.String(l.Description)
		}
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(currency),
				ProductData: product,
				UnitAmount:  stripe.Int64(l.UnitAmount),
			},
			Quantity: stripe.Int64(l.Quantity),
		})
	}
	return items
}
