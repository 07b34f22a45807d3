// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/grocery-backend/internal/domain/catalog"
)

// Line is one product-quantity pairing within a cart. The product snapshot
// is stored with the line so totals survive catalog changes, matching the
// persisted cart shape the storefront UI reads back.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	AddedAt  time.Time       `json:"added_at"`
}

// LineTotal returns the discounted line total
func (l Line) LineTotal() float64 {
	return l.Product.DiscountedPrice() * float64(l.Quantity)
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int     `json:"item_count"`     // Number of unique lines
	TotalQuantity int     `json:"total_quantity"` // Sum of all quantities
	SubTotal      float64 `json:"sub_total"`      // Sum of discounted line totals
	Savings       float64 `json:"savings"`        // Undiscounted minus discounted
}

// Cart represents a user's cart with lines and summary
type Cart struct {
	UserID string `json:"user_id"`
	Lines  []Line `json:"lines"`
	Totals Totals `json:"totals"`
}
