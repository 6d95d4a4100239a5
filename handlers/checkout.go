package handlers

import (
	"context"
	"errors"
	"net/http"

	"localconnect/middleware"
	"localconnect/models"
	"localconnect/services/cart"
	"localconnect/services/checkout"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Submitter runs one checkout submission. *checkout.Flow implements it.
type Submitter interface {
	Submit(ctx context.Context, s checkout.Submission) (*checkout.Result, error)
}

// CheckoutHandler turns the client's cart into an order and a payment page.
type CheckoutHandler struct {
	Carts cart.CartService
	Flow  Submitter
}

func NewCheckoutHandler(carts cart.CartService, flow Submitter) *CheckoutHandler {
	return &CheckoutHandler{Carts: carts, Flow: flow}
}

type checkoutRequest struct {
	SubmissionID string              `json:"submissionId"`
	CartID       string              `json:"cartId"`
	ContactInfo  *models.ContactInfo `json:"contactInfo"`
	Location     string              `json:"location"`
	Date         string              `json:"date"`
	TimeSlots    []string            `json:"timeSlots"`
}

// CheckoutHandler handles POST /api/checkout.
func (h *CheckoutHandler) CheckoutHandler(c *gin.Context) {
	logger := getLogger(c)

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.CartID == "" {
		req.CartID = c.GetHeader(CartIDHeader)
	}

	// A missing cart is submitted as nil and rejected by validation.
	var snapshot *cart.Cart
	if req.CartID != "" {
		loaded, err := h.Carts.Snapshot(c.Request.Context(), req.CartID)
		switch {
		case err == nil:
			snapshot = loaded
		case !errors.Is(err, cart.ErrCartNotFound):
			respondError(c, err)
			return
		}
	}

	result, err := h.Flow.Submit(c.Request.Context(), checkout.Submission{
		SubmissionID: req.SubmissionID,
		Cart:         snapshot,
		Contact:      req.ContactInfo,
		Location:     req.Location,
		Date:         req.Date,
		TimeSlots:    req.TimeSlots,
		UserID:       middleware.UserID(c),
	})
	if err != nil {
		logger.Info("checkout submission failed", zap.String("cartId", req.CartID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
