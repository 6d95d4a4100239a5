package handlers

import (
	"net/http"

	"localconnect/middleware"
	"localconnect/models"
	"localconnect/services/order"
	"localconnect/services/worker"

	"github.com/gin-gonic/gin"
)

// WorkerHandler serves worker accounts and the worker dashboard.
type WorkerHandler struct {
	Workers worker.WorkerService
	Orders  order.OrderService
}

func NewWorkerHandler(workers worker.WorkerService, orders order.OrderService) *WorkerHandler {
	return &WorkerHandler{Workers: workers, Orders: orders}
}

// SignupHandler handles POST /api/worker-auth/signup.
func (h *WorkerHandler) SignupHandler(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	created, err := h.Workers.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Worker created successfully", "worker": created})
}

// LoginHandler handles POST /api/worker-auth/login.
func (h *WorkerHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	resp, err := h.Workers.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CurrentWorkerHandler handles GET /api/worker-auth/current.
func (h *WorkerHandler) CurrentWorkerHandler(c *gin.Context) {
	w, err := h.Workers.GetWorkerByID(c.Request.Context(), middleware.WorkerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// LogoutHandler handles POST /api/worker-auth/logout.
func (h *WorkerHandler) LogoutHandler(c *gin.Context) {
	if err := h.Workers.Logout(c.Request.Context(), middleware.WorkerID(c), middleware.Token(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// UpdateFCMTokenHandler handles PUT /api/worker-auth/fcm-token.
func (h *WorkerHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Workers.RegisterDevice(c.Request.Context(), middleware.WorkerID(c), req.FCMToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device registered"})
}

// MyProfilesHandler handles GET /api/worker-auth/profiles.
func (h *WorkerHandler) MyProfilesHandler(c *gin.Context) {
	profiles, err := h.Workers.Profiles(c.Request.Context(), middleware.WorkerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(profiles))
}

// WorkerOrdersHandler handles GET /api/orders/worker.
func (h *WorkerHandler) WorkerOrdersHandler(c *gin.Context) {
	orders, err := h.Orders.ListForWorker(c.Request.Context(), middleware.WorkerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(orders))
}

// nonNil keeps empty lists serialising as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
