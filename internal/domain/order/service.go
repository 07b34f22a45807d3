// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/grocery-backend/internal/domain/cart"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"github.com/your-org/grocery-backend/internal/pkg/mirror"
	"github.com/your-org/grocery-backend/internal/remote"
	"github.com/your-org/grocery-backend/internal/store"
)

const (
	taxRate             = 0.05
	deliveryFee         = 2.99
	freeDeliveryMin     = 35.0
	deliveryWindow      = 2 * time.Hour
	preparingAfter      = 10 * time.Minute
	outForDeliveryAfter = 45 * time.Minute
)

// Service handles order business logic. Orders are immutable snapshots of
// the cart at checkout; delivery progress is derived from elapsed time
// against the estimated window rather than stored transitions.
type Service struct {
	store     store.Store
	cart      *cart.Service
	addresses *user.AddressService
	remote    *remote.Client
	log       *logrus.Logger

	now func() time.Time

	mu sync.Mutex
}

// NewService creates a new order service
func NewService(st store.Store, cartSvc *cart.Service, addrSvc *user.AddressService, rc *remote.Client, log *logrus.Logger) *Service {
	return &Service{
		store:     st,
		cart:      cartSvc,
		addresses: addrSvc,
		remote:    rc,
		log:       log,
		now:       time.Now,
	}
}

// CreateOrderRequest represents checkout data
type CreateOrderRequest struct {
	AddressID     string `json:"address_id"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// ListOrdersRequest represents order list filters
type ListOrdersRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
	Status string `form:"status"`
}

// ListOrdersResponse is a paginated order list
type ListOrdersResponse struct {
	Orders     []Order `json:"orders"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}

// CreateOrder places an order from the current cart and clears it
func (s *Service) CreateOrder(ctx context.Context, userID string, req *CreateOrderRequest) (*Order, error) {
	c, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(c.Lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	var address *user.Address
	if req.AddressID != "" {
		address, err = s.addresses.GetAddress(ctx, userID, req.AddressID)
	} else {
		address, err = s.addresses.GetDefaultAddress(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("delivery address required: %w", err)
	}

	items := make([]Item, 0, len(c.Lines))
	var subtotal float64
	for _, line := range c.Lines {
		unit := line.Product.DiscountedPrice()
		lineTotal := unit * float64(line.Quantity)
		items = append(items, Item{
			ID:          uuid.NewString(),
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Unit:        line.Product.Unit,
			Image:       line.Product.Image,
			Quantity:    line.Quantity,
			UnitPrice:   unit,
			LineTotal:   lineTotal,
		})
		subtotal += lineTotal
	}

	tax := roundMoney(subtotal * taxRate)
	fee := deliveryFee
	if subtotal >= freeDeliveryMin {
		fee = 0
	}

	now := s.now().UTC()
	o := Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		SubTotal:        roundMoney(subtotal),
		Tax:             tax,
		DeliveryFee:     fee,
		Total:           roundMoney(subtotal + tax + fee),
		Status:          StatusConfirmed,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: *address,
		CreatedAt:       now,
		EstimatedAt:     now.Add(deliveryWindow),
	}

	s.mu.Lock()
	o.OrderNumber, err = s.nextOrderNumber(ctx, now)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	orders := s.load(ctx, userID)
	orders = append(orders, o)
	err = s.save(ctx, userID, orders)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := s.cart.ClearCart(ctx, userID); err != nil {
		s.log.WithError(err).WithField("order_id", o.ID).Warn("failed to clear cart after checkout")
	}

	mirror.Go(s.log, "order.create", func(ctx context.Context) error {
		return s.remote.CreateOrder(ctx, userID, o.ID)
	})

	return &o, nil
}

// ListOrders returns the user's orders, newest first, optionally filtered
// by effective status
func (s *Service) ListOrders(ctx context.Context, userID string, req *ListOrdersRequest) *ListOrdersResponse {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 10
	}

	all := s.load(ctx, userID)

	filtered := make([]Order, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		o := all[i]
		o.Status = s.effectiveStatus(&o)
		if req.Status != "" && string(o.Status) != req.Status {
			continue
		}
		filtered = append(filtered, o)
	}

	total := len(filtered)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &ListOrdersResponse{
		Orders:     filtered[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// GetOrder retrieves one order with its effective status
func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (*Order, error) {
	for _, o := range s.load(ctx, userID) {
		if o.ID == orderID || o.OrderNumber == orderID {
			o.Status = s.effectiveStatus(&o)
			return &o, nil
		}
	}
	return nil, fmt.Errorf("order not found")
}

// TrackOrder returns the delivery phase and courier position. The courier
// position is interpolated from the store origin toward the delivery
// address over the out-for-delivery leg.
func (s *Service) TrackOrder(ctx context.Context, userID, orderID string) (*Tracking, error) {
	o, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	t := &Tracking{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		EstimatedAt: o.EstimatedAt,
		Destination: o.DeliveryAddress.Coordinates,
	}

	if o.Status == StatusOutForDelivery && o.DeliveryAddress.Coordinates != nil {
		t.CourierPosition = s.courierPosition(o)
	}
	if o.Status == StatusDelivered {
		t.CourierPosition = o.DeliveryAddress.Coordinates
	}

	return t, nil
}

// CancelOrder cancels an order that has not left for delivery
func (s *Service) CancelOrder(ctx context.Context, userID, orderID string) (*Order, error) {
	s.mu.Lock()
	orders := s.load(ctx, userID)

	idx := -1
	for i := range orders {
		if orders[i].ID == orderID || orders[i].OrderNumber == orderID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return nil, fmt.Errorf("order not found")
	}

	o := &orders[idx]
	o.Status = s.effectiveStatus(o)
	if !o.CanBeCancelled() {
		s.mu.Unlock()
		return nil, fmt.Errorf("order can no longer be cancelled in status %s", o.Status)
	}

	now := s.now().UTC()
	o.Status = StatusCancelled
	o.CancelledAt = &now

	cancelled := *o
	err := s.save(ctx, userID, orders)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	mirror.Go(s.log, "order.cancel", func(ctx context.Context) error {
		return s.remote.CancelOrder(ctx, userID, cancelled.ID)
	})

	return &cancelled, nil
}

// effectiveStatus derives the delivery phase from elapsed time. Stored
// terminal states win over the clock.
func (s *Service) effectiveStatus(o *Order) Status {
	if o.Status == StatusCancelled || o.Status == StatusDelivered {
		return o.Status
	}

	elapsed := s.now().UTC().Sub(o.CreatedAt)
	switch {
	case elapsed >= deliveryWindow:
		return StatusDelivered
	case elapsed >= outForDeliveryAfter:
		return StatusOutForDelivery
	case elapsed >= preparingAfter:
		return StatusPreparing
	default:
		return StatusConfirmed
	}
}

// courierPosition walks linearly from the store origin to the destination
// across the out-for-delivery leg of the window.
func (s *Service) courierPosition(o *Order) *user.Coordinates {
	dest := o.DeliveryAddress.Coordinates
	origin := user.Coordinates{Lat: dest.Lat - 0.02, Lng: dest.Lng - 0.02}

	legStart := o.CreatedAt.Add(outForDeliveryAfter)
	legLen := o.EstimatedAt.Sub(legStart)
	progress := float64(s.now().UTC().Sub(legStart)) / float64(legLen)
	progress = math.Max(0, math.Min(1, progress))

	return &user.Coordinates{
		Lat: origin.Lat + (dest.Lat-origin.Lat)*progress,
		Lng: origin.Lng + (dest.Lng-origin.Lng)*progress,
	}
}

// nextOrderNumber issues ORD-YYYYMMDD-NNNNN from a daily counter
func (s *Service) nextOrderNumber(ctx context.Context, now time.Time) (string, error) {
	date := now.Format("20060102")

	var seq int
	if _, err := s.store.Get(ctx, store.OrderSeqKey(date), &seq); err != nil {
		return "", fmt.Errorf("failed to read order counter: %w", err)
	}
	seq++
	if err := s.store.Set(ctx, store.OrderSeqKey(date), seq); err != nil {
		return "", fmt.Errorf("failed to advance order counter: %w", err)
	}

	return fmt.Sprintf("ORD-%s-%05d", date, seq), nil
}

func (s *Service) load(ctx context.Context, userID string) []Order {
	var orders []Order
	if _, err := s.store.Get(ctx, store.OrdersKey(userID), &orders); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to load orders, falling back to empty")
		return []Order{}
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders
}

func (s *Service) save(ctx context.Context, userID string, orders []Order) error {
	if err := s.store.Set(ctx, store.OrdersKey(userID), orders); err != nil {
		return fmt.Errorf("failed to persist orders: %w", err)
	}
	return nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
