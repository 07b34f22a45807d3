// internal/domain/catalog/entity.go
package catalog

// Product represents a storefront product
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	MRP         float64 `json:"mrp"`
	Unit        string  `json:"unit"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Description string  `json:"description"`
	InStock     bool    `json:"in_stock"`
	// Discount is a percentage off Price; zero means no discount
	Discount float64 `json:"discount,omitempty"`
}

// DiscountedPrice returns the effective unit price after discount
func (p Product) DiscountedPrice() float64 {
	if p.Discount > 0 {
		return p.Price * (1 - p.Discount/100)
	}
	return p.Price
}

// Category represents a top-level product category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// SubCategory represents a subcategory within a category
type SubCategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}
