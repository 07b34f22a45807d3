// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/grocery-backend/internal/domain/review"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"github.com/your-org/grocery-backend/internal/interfaces/http/middleware"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	reviewService *review.Service
	authService   *user.Service
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *review.Service, authService *user.Service) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		authService:   authService,
	}
}

// GetReviews handles GET /products/:id/reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	productID := c.Param("id")

	c.JSON(http.StatusOK, gin.H{
		"data":    h.reviewService.GetReviews(c.Request.Context(), productID),
		"summary": h.reviewService.GetSummary(c.Request.Context(), productID),
	})
}

// GetSummary handles GET /products/:id/reviews/summary
func (h *ReviewHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": h.reviewService.GetSummary(c.Request.Context(), c.Param("id")),
	})
}

// CreateReview handles POST /products/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	productID := c.Param("id")

	var req review.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	userName := "Anonymous"
	if u, err := h.authService.CurrentUser(c.Request.Context(), userID); err == nil {
		userName = u.Name
	}

	r, err := h.reviewService.CreateReview(c.Request.Context(), productID, userID, userName, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review submitted successfully",
		"data":    r,
	})
}

// UpdateReview handles PUT /products/:id/reviews/:reviewId
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req review.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	r, err := h.reviewService.UpdateReview(c.Request.Context(), c.Param("id"), c.Param("reviewId"), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review updated successfully",
		"data":    r,
	})
}

// DeleteReview handles DELETE /products/:id/reviews/:reviewId
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.reviewService.DeleteReview(c.Request.Context(), c.Param("id"), c.Param("reviewId"), userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted successfully",
	})
}

// MarkHelpful handles POST /products/:id/reviews/:reviewId/helpful
func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	r, err := h.reviewService.MarkHelpful(c.Request.Context(), c.Param("id"), c.Param("reviewId"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Helpful vote recorded",
		"data":    r,
	})
}
