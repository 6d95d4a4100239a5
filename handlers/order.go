package handlers

import (
	"net/http"

	"localconnect/middleware"
	"localconnect/models"
	"localconnect/services/order"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler serves the order endpoints.
type OrderHandler struct {
	Orders order.OrderService
}

func NewOrderHandler(orders order.OrderService) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

// CreateOrderHandler handles POST /api/orders.
func (h *OrderHandler) CreateOrderHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	created, err := h.Orders.Create(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("order created", zap.String("orderId", created.ID.Hex()), zap.String("bookingType", created.BookingType))
	c.JSON(http.StatusCreated, created)
}

// GetOrderHandler handles GET /api/orders/:id.
func (h *OrderHandler) GetOrderHandler(c *gin.Context) {
	o, err := h.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// PaymentSuccessHandler handles GET /api/orders/:id/success?session_id=.
func (h *OrderHandler) PaymentSuccessHandler(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}
	o, err := h.Orders.ConfirmPayment(c.Request.Context(), c.Param("id"), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment confirmed", "order": o})
}
