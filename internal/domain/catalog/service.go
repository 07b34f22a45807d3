// internal/domain/catalog/service.go
package catalog

import (
	"fmt"
	"strings"
)

// Service serves the static product catalog. Product data is fixture-backed:
// the storefront has no merchandising pipeline, so lookups are index reads
// over the compiled-in tables.
type Service struct {
	byID map[string]*Product
}

// NewService builds the catalog indexes
func NewService() *Service {
	s := &Service{
		byID: make(map[string]*Product, len(products)),
	}
	for i := range products {
		s.byID[products[i].ID] = &products[i]
	}
	return s
}

// GetProduct retrieves a product by ID
func (s *Service) GetProduct(productID string) (*Product, error) {
	p, ok := s.byID[productID]
	if !ok {
		return nil, fmt.Errorf("product not found: %s", productID)
	}
	return p, nil
}

// ListProducts returns products, optionally filtered by category and subcategory
func (s *Service) ListProducts(category, subcategory string) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if subcategory != "" && p.Subcategory != subcategory {
			continue
		}
		result = append(result, p)
	}
	return result
}

// SearchProducts returns products whose name or description matches the query
func (s *Service) SearchProducts(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Product{}
	}

	var result []Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			result = append(result, p)
		}
	}
	return result
}

// ListCategories returns all categories
func (s *Service) ListCategories() []Category {
	return categories
}

// ListSubCategories returns subcategories, optionally filtered by category
func (s *Service) ListSubCategories(categoryID string) []SubCategory {
	if categoryID == "" {
		return subCategories
	}
	var result []SubCategory
	for _, sc := range subCategories {
		if sc.CategoryID == categoryID {
			result = append(result, sc)
		}
	}
	return result
}
