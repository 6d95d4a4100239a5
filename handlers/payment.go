package handlers

import (
	"errors"
	"io"
	"net/http"

	"localconnect/models"
	"localconnect/services/checkout"
	"localconnect/services/order"
	"localconnect/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxWebhookBody bounds the payload read from Stripe.
const maxWebhookBody = 64 << 10

// PaymentHandler exposes the hosted checkout and its webhook.
type PaymentHandler struct {
	Gateway  payment.Gateway
	Orders   order.OrderService
	Currency string
}

func NewPaymentHandler(gateway payment.Gateway, orders order.OrderService, currency string) *PaymentHandler {
	return &PaymentHandler{Gateway: gateway, Orders: orders, Currency: currency}
}

// CreateCheckoutSessionHandler handles POST /api/create-checkout-session for
// clients that build their own price_data line items.
func (h *PaymentHandler) CreateCheckoutSessionHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	lines, currency, err := payment.FromStripeLineItems(req.LineItems, h.Currency)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.Gateway.CreateSession(c.Request.Context(), models.CheckoutSessionRequest{
		OrderID:    req.OrderID,
		Currency:   currency,
		LineItems:  lines,
		Metadata:   req.Metadata,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		logger.Error("failed to create checkout session", zap.String("orderId", req.OrderID), zap.Error(err))
		status := http.StatusBadGateway
		if errors.Is(err, checkout.ErrUnreachable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if session.ID == "" {
		c.JSON(http.StatusBadGateway, gin.H{"error": checkout.ErrMissingSessionID.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": session.ID, "url": session.URL})
}

// StripeWebhookHandler handles POST /api/webhooks/stripe.
func (h *PaymentHandler) StripeWebhookHandler(c *gin.Context) {
	logger := getLogger(c)

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to read body"})
		return
	}
	event, err := h.Gateway.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		logger.Warn("rejected stripe webhook", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if err := h.Orders.HandleWebhook(c.Request.Context(), event); err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			// Stripe retries non-2xx answers; an unknown order never resolves.
			logger.Warn("webhook for unknown order", zap.String("eventId", event.ID), zap.String("orderId", event.OrderID))
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
