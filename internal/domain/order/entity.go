// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/grocery-backend/internal/domain/user"
)

// Status represents the order status
type Status string

// Order status constants. Delivery progresses through the first four in
// time order; cancelled is terminal and only reachable before the courier
// leaves.
const (
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// Item is a snapshot of a cart line at checkout. The unit price is the
// discounted price at order time, so later catalog changes cannot rewrite
// order history.
type Item struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Unit        string  `json:"unit"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// Order represents a placed grocery order
type Order struct {
	ID              string       `json:"id"`
	OrderNumber     string       `json:"order_number"`
	UserID          string       `json:"user_id"`
	Items           []Item       `json:"items"`
	SubTotal        float64      `json:"subtotal"`
	Tax             float64      `json:"tax"`
	DeliveryFee     float64      `json:"delivery_fee"`
	Total           float64      `json:"total"`
	Status          Status       `json:"status"`
	PaymentMethod   string       `json:"payment_method"`
	DeliveryAddress user.Address `json:"delivery_address"`
	CreatedAt       time.Time    `json:"created_at"`
	EstimatedAt     time.Time    `json:"estimated_delivery"`
	CancelledAt     *time.Time   `json:"cancelled_at,omitempty"`
}

// CanBeCancelled reports whether the order has not yet left for delivery
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusConfirmed || o.Status == StatusPreparing
}

// Tracking is the live delivery view of an order
type Tracking struct {
	OrderID         string            `json:"order_id"`
	OrderNumber     string            `json:"order_number"`
	Status          Status            `json:"status"`
	EstimatedAt     time.Time         `json:"estimated_delivery"`
	CourierPosition *user.Coordinates `json:"courier_position,omitempty"`
	Destination     *user.Coordinates `json:"destination,omitempty"`
}
