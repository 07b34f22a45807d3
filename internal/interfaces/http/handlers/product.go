// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/grocery-backend/internal/domain/catalog"
	"github.com/your-org/grocery-backend/internal/domain/prefs"
	"github.com/your-org/grocery-backend/internal/interfaces/http/middleware"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	catalog      *catalog.Service
	prefsService *prefs.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(cat *catalog.Service, prefsService *prefs.Service) *ProductHandler {
	return &ProductHandler{
		catalog:      cat,
		prefsService: prefsService,
	}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products := h.catalog.ListProducts(c.Query("category"), c.Query("subcategory"))

	c.JSON(http.StatusOK, gin.H{
		"data":  products,
		"total": len(products),
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": product,
	})
}

// SearchProducts handles GET /products/search. Authenticated searches are
// recorded in the caller's recent-search history.
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Search query required",
		})
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		if _, err := h.prefsService.RecordSearch(c.Request.Context(), userID, query); err != nil {
			// History is a convenience; the search itself still runs
		}
	}

	products := h.catalog.SearchProducts(query)

	c.JSON(http.StatusOK, gin.H{
		"data":  products,
		"total": len(products),
		"query": query,
	})
}

// GetCategories handles GET /products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": h.catalog.ListCategories(),
	})
}

// GetSubCategories handles GET /products/categories/:id/subcategories
func (h *ProductHandler) GetSubCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": h.catalog.ListSubCategories(c.Param("id")),
	})
}
