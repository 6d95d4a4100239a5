package handlers

import (
	"net/http"

	"localconnect/models"
	"localconnect/services/review"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves customer reviews.
type ReviewHandler struct {
	Reviews review.ReviewService
}

func NewReviewHandler(reviews review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

// SubmitReviewHandler handles POST /api/reviews.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	var form models.ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form: " + err.Error()})
		return
	}
	mf, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	created, err := h.Reviews.Submit(c.Request.Context(), form, mf.File["images"])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Form submitted successfully!", "data": created})
}

// ListReviewsHandler handles GET /api/reviews.
func (h *ReviewHandler) ListReviewsHandler(c *gin.Context) {
	reviews, err := h.Reviews.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(reviews))
}

// ListPublishedReviewsHandler handles GET /api/reviews/published.
func (h *ReviewHandler) ListPublishedReviewsHandler(c *gin.Context) {
	reviews, err := h.Reviews.ListPublished(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(reviews))
}
