// internal/interfaces/http/handlers/prefs.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/grocery-backend/internal/domain/prefs"
	"github.com/your-org/grocery-backend/internal/interfaces/http/middleware"
)

// PrefsHandler handles user preference endpoints
type PrefsHandler struct {
	prefsService *prefs.Service
}

// NewPrefsHandler creates a new preferences handler
func NewPrefsHandler(prefsService *prefs.Service) *PrefsHandler {
	return &PrefsHandler{prefsService: prefsService}
}

// GetPreferences handles GET /preferences
func (h *PrefsHandler) GetPreferences(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	c.JSON(http.StatusOK, gin.H{
		"data": h.prefsService.GetPreferences(c.Request.Context(), userID),
	})
}

// SetLocation handles PUT /preferences/location
func (h *PrefsHandler) SetLocation(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req prefs.Location
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	p, err := h.prefsService.SetLocation(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save location",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Location updated",
		"data":    p,
	})
}

// SetLanguage handles PUT /preferences/language
func (h *PrefsHandler) SetLanguage(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	p, err := h.prefsService.SetLanguage(c.Request.Context(), userID, req.Language)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save language",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Language updated",
		"data":    p,
	})
}

// RecordSearch handles POST /preferences/searches
func (h *PrefsHandler) RecordSearch(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req struct {
		Term string `json:"term" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	p, err := h.prefsService.RecordSearch(c.Request.Context(), userID, req.Term)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search recorded",
		"data":    p,
	})
}

// ClearSearches handles DELETE /preferences/searches
func (h *PrefsHandler) ClearSearches(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	p, err := h.prefsService.ClearSearches(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear search history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search history cleared",
		"data":    p,
	})
}
