// internal/interfaces/http/handlers/subscription.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/grocery-backend/internal/domain/subscription"
	"github.com/your-org/grocery-backend/internal/interfaces/http/middleware"
)

// SubscriptionHandler handles recurring delivery endpoints
type SubscriptionHandler struct {
	subscriptionService *subscription.Service
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionService *subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// GetSubscriptions handles GET /subscriptions
func (h *SubscriptionHandler) GetSubscriptions(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	ctx := c.Request.Context()

	c.JSON(http.StatusOK, gin.H{
		"data":            h.subscriptionService.GetSubscriptions(ctx, userID),
		"active_count":    h.subscriptionService.GetActiveCount(ctx, userID),
		"monthly_savings": h.subscriptionService.GetMonthlySavings(ctx, userID),
	})
}

// GetSubscription handles GET /subscriptions/:id
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	sub, err := h.subscriptionService.GetSubscription(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sub,
	})
}

// CreateSubscription handles POST /subscriptions
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req subscription.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Subscription created successfully",
		"data":    sub,
	})
}

// UpdateSubscription handles PUT /subscriptions/:id
func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req subscription.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sub, err := h.subscriptionService.UpdateSubscription(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription updated successfully",
		"data":    sub,
	})
}

// PauseSubscription handles PUT /subscriptions/:id/pause
func (h *SubscriptionHandler) PauseSubscription(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	sub, err := h.subscriptionService.PauseSubscription(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription paused",
		"data":    sub,
	})
}

// ResumeSubscription handles PUT /subscriptions/:id/resume
func (h *SubscriptionHandler) ResumeSubscription(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	sub, err := h.subscriptionService.ResumeSubscription(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription resumed",
		"data":    sub,
	})
}

// CancelSubscription handles DELETE /subscriptions/:id
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.subscriptionService.CancelSubscription(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription cancelled",
	})
}
