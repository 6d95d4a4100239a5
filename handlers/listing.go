package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"localconnect/middleware"
	"localconnect/models"
	"localconnect/services/listing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListingHandler serves worker profiles and ticket listings.
type ListingHandler struct {
	Listings listing.ListingService
}

func NewListingHandler(listings listing.ListingService) *ListingHandler {
	return &ListingHandler{Listings: listings}
}

// optionalFile returns the uploaded file under field, or nil when none was sent.
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return header, err
}

// CreateWorkerProfileHandler handles POST /api/worker-form.
func (h *ListingHandler) CreateWorkerProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	var form models.WorkerForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form: " + err.Error()})
		return
	}
	photo, err := optionalFile(c, "profilePhoto")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile photo: " + err.Error()})
		return
	}

	profile, err := h.Listings.CreateWorkerProfile(c.Request.Context(), form, photo, middleware.WorkerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("worker form submitted", zap.String("profileId", profile.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{"message": "Worker form submitted successfully", "worker": profile})
}

// ListWorkersHandler handles GET /api/worker-form/all.
func (h *ListingHandler) ListWorkersHandler(c *gin.Context) {
	workers, err := h.Listings.ListWorkers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(workers))
}

// ListWorkersByTypeHandler handles GET /api/worker-form/by-type/:type.
func (h *ListingHandler) ListWorkersByTypeHandler(c *gin.Context) {
	workers, err := h.Listings.ListWorkersByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(workers))
}

// CreateTicketHandler returns the handler for POST /api/tickets/<kind>.
func (h *ListingHandler) CreateTicketHandler(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form models.TicketForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form: " + err.Error()})
			return
		}
		image, err := optionalFile(c, "ticketImage")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket image: " + err.Error()})
			return
		}

		ticket, err := h.Listings.CreateTicket(c.Request.Context(), kind, form, image)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Ticket listed successfully", "ticket": ticket})
	}
}

// ListTicketsHandler returns the handler for GET /api/tickets/<kind>.
func (h *ListingHandler) ListTicketsHandler(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tickets, err := h.Listings.ListTickets(c.Request.Context(), kind)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, nonNil(tickets))
	}
}

// GetTicketHandler handles GET /api/tickets/:id.
func (h *ListingHandler) GetTicketHandler(c *gin.Context) {
	ticket, err := h.Listings.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}
