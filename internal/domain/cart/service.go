// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/grocery-backend/internal/domain/catalog"
	"github.com/your-org/grocery-backend/internal/pkg/mirror"
	"github.com/your-org/grocery-backend/internal/remote"
	"github.com/your-org/grocery-backend/internal/store"
)

// Service handles cart business logic. Every mutation is applied in memory,
// persisted write-through to the local store within the same call, and then
// mirrored best-effort to the remote service.
type Service struct {
	store   store.Store
	catalog *catalog.Service
	remote  *remote.Client
	log     *logrus.Logger

	// mu serializes read-modify-write cycles; collections are replaced
	// whole, so concurrent writers would otherwise lose updates.
	mu sync.Mutex
}

// NewService creates a new cart service
func NewService(st store.Store, cat *catalog.Service, rc *remote.Client, log *logrus.Logger) *Service {
	return &Service{
		store:   st,
		catalog: cat,
		remote:  rc,
		log:     log,
	}
}

// GetCart retrieves the user's cart with computed totals
func (s *Service) GetCart(ctx context.Context, userID string) (*Cart, error) {
	lines := s.load(ctx, userID)
	return &Cart{
		UserID: userID,
		Lines:  lines,
		Totals: calculateTotals(lines),
	}, nil
}

// AddToCart adds quantity of a product; an existing line is incremented
func (s *Service) AddToCart(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	product, err := s.catalog.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, fmt.Errorf("product is out of stock: %s", product.Name)
	}

	s.mu.Lock()
	lines := s.load(ctx, userID)

	found := false
	for i := range lines {
		if lines[i].Product.ID == productID {
			lines[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, Line{
			Product:  *product,
			Quantity: quantity,
			AddedAt:  time.Now().UTC(),
		})
	}

	err = s.save(ctx, userID, lines)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	mirror.Go(s.log, "cart.add", func(ctx context.Context) error {
		return s.remote.AddCartItem(ctx, userID, productID, quantity)
	})

	return &Cart{UserID: userID, Lines: lines, Totals: calculateTotals(lines)}, nil
}

// UpdateQuantity replaces a line's quantity; zero or negative removes the
// line, and updating an absent line is a no-op
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, userID, productID)
	}

	s.mu.Lock()
	lines := s.load(ctx, userID)

	found := false
	for i := range lines {
		if lines[i].Product.ID == productID {
			lines[i].Quantity = quantity
			found = true
			break
		}
	}

	var err error
	if found {
		err = s.save(ctx, userID, lines)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if found {
		mirror.Go(s.log, "cart.update", func(ctx context.Context) error {
			return s.remote.UpdateCartItem(ctx, userID, productID, quantity)
		})
	}

	return &Cart{UserID: userID, Lines: lines, Totals: calculateTotals(lines)}, nil
}

// RemoveFromCart deletes a line if present; removing an absent line is a no-op
func (s *Service) RemoveFromCart(ctx context.Context, userID, productID string) (*Cart, error) {
	s.mu.Lock()
	lines := s.load(ctx, userID)

	filtered := lines[:0]
	removed := false
	for _, line := range lines {
		if line.Product.ID == productID {
			removed = true
			continue
		}
		filtered = append(filtered, line)
	}

	var err error
	if removed {
		err = s.save(ctx, userID, filtered)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if removed {
		mirror.Go(s.log, "cart.remove", func(ctx context.Context) error {
			return s.remote.RemoveCartItem(ctx, userID, productID)
		})
	}

	return &Cart{UserID: userID, Lines: filtered, Totals: calculateTotals(filtered)}, nil
}

// ClearCart empties the collection (checkout completion)
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Remove(ctx, store.CartKey(userID))
}

// GetTotal returns the discounted cart total
func (s *Service) GetTotal(ctx context.Context, userID string) float64 {
	return calculateTotals(s.load(ctx, userID)).SubTotal
}

// GetItemCount returns the sum of line quantities
func (s *Service) GetItemCount(ctx context.Context, userID string) int {
	return calculateTotals(s.load(ctx, userID)).TotalQuantity
}

// load reads the cart collection; read or decode failures degrade to empty
func (s *Service) load(ctx context.Context, userID string) []Line {
	var lines []Line
	if _, err := s.store.Get(ctx, store.CartKey(userID), &lines); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to load cart, falling back to empty")
		return []Line{}
	}
	if lines == nil {
		lines = []Line{}
	}
	return lines
}

// save persists the whole collection write-through
func (s *Service) save(ctx context.Context, userID string, lines []Line) error {
	if err := s.store.Set(ctx, store.CartKey(userID), lines); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func calculateTotals(lines []Line) Totals {
	var totals Totals
	totals.ItemCount = len(lines)

	for _, line := range lines {
		totals.TotalQuantity += line.Quantity
		totals.SubTotal += line.LineTotal()
		totals.Savings += (line.Product.Price - line.Product.DiscountedPrice()) * float64(line.Quantity)
	}

	return totals
}
