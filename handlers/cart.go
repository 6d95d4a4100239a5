package handlers

import (
	"errors"
	"net/http"

	"localconnect/models"
	"localconnect/services/cart"

	"github.com/gin-gonic/gin"
)

// CartIDHeader carries the client's cart id. Responses echo it so a client
// without one learns the id of the cart created for it.
const CartIDHeader = "X-Cart-ID"

// CartHandler exposes the cart aggregator.
type CartHandler struct {
	Carts cart.CartService
}

func NewCartHandler(carts cart.CartService) *CartHandler {
	return &CartHandler{Carts: carts}
}

type addItemRequest struct {
	ItemType models.ItemKind `json:"itemType" binding:"required"`
	ItemID   string          `json:"itemId" binding:"required"`
	Quantity int             `json:"quantity"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type activeRequest struct {
	Category models.Category `json:"category" binding:"required"`
}

type promoRequest struct {
	Code string `json:"code" binding:"required"`
}

func cartID(c *gin.Context) string {
	if id := c.Param("cartId"); id != "" {
		return id
	}
	return c.GetHeader(CartIDHeader)
}

func (h *CartHandler) respond(c *gin.Context, view *cart.View) {
	c.Header(CartIDHeader, view.Cart.ID)
	c.JSON(http.StatusOK, view)
}

// GetCartHandler handles GET /api/cart.
func (h *CartHandler) GetCartHandler(c *gin.Context) {
	view, err := h.Carts.Get(c.Request.Context(), cartID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, view)
}

// AddItemHandler handles POST /api/cart/items.
func (h *CartHandler) AddItemHandler(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	view, err := h.Carts.AddItem(c.Request.Context(), cartID(c), req.ItemType, req.ItemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, view)
}

// RemoveItemHandler handles DELETE /api/cart/items/:category/:itemId.
func (h *CartHandler) RemoveItemHandler(c *gin.Context) {
	category := models.Category(c.Param("category"))
	view, err := h.Carts.RemoveItem(c.Request.Context(), cartID(c), category, c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, view)
}

// SetQuantityHandler handles PATCH /api/cart/items/:category/:itemId.
func (h *CartHandler) SetQuantityHandler(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	category := models.Category(c.Param("category"))
	view, err := h.Carts.SetQuantity(c.Request.Context(), cartID(c), category, c.Param("itemId"), *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, view)
}

// SetActiveHandler handles PUT /api/cart/active.
func (h *CartHandler) SetActiveHandler(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	view, err := h.Carts.SetActive(c.Request.Context(), cartID(c), req.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, view)
}

// ApplyPromoHandler handles POST /api/cart/promo. An unknown code answers 400
// with the cart, whose discount for the active category has been reset.
func (h *CartHandler) ApplyPromoHandler(c *gin.Context) {
	var req promoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	view, err := h.Carts.ApplyPromoCode(c.Request.Context(), cartID(c), req.Code)
	if errors.Is(err, cart.ErrUnknownPromo) && view != nil {
		c.Header(CartIDHeader, view.Cart.ID)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "cart": view.Cart, "totals": view.Totals})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, view)
}

// ClearCartHandler handles DELETE /api/cart.
func (h *CartHandler) ClearCartHandler(c *gin.Context) {
	if err := h.Carts.Clear(c.Request.Context(), cartID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
