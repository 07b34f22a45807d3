// internal/domain/subscription/service.go
package subscription

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/grocery-backend/internal/domain/catalog"
	"github.com/your-org/grocery-backend/internal/pkg/mirror"
	"github.com/your-org/grocery-backend/internal/remote"
	"github.com/your-org/grocery-backend/internal/store"
)

// savingsRate is the flat discount applied to subscribed deliveries
const savingsRate = 0.05

// Service handles subscription business logic. A product can hold at most
// one active subscription per user; pausing keeps the record with a stale
// next-delivery date, and cancelling removes it outright.
type Service struct {
	store   store.Store
	catalog *catalog.Service
	remote  *remote.Client
	log     *logrus.Logger

	// now is swappable for date arithmetic tests
	now func() time.Time

	mu sync.Mutex
}

// NewService creates a new subscription service
func NewService(st store.Store, cat *catalog.Service, rc *remote.Client, log *logrus.Logger) *Service {
	return &Service{
		store:   st,
		catalog: cat,
		remote:  rc,
		log:     log,
		now:     time.Now,
	}
}

// CreateSubscriptionRequest represents subscription creation data
type CreateSubscriptionRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Frequency string `json:"frequency" binding:"required"`
	StartDate string `json:"start_date"`
}

// UpdateSubscriptionRequest represents subscription update data
type UpdateSubscriptionRequest struct {
	Quantity  *int    `json:"quantity" binding:"omitempty,min=1"`
	Frequency *string `json:"frequency"`
}

// GetSubscriptions retrieves all subscriptions for a user
func (s *Service) GetSubscriptions(ctx context.Context, userID string) []Subscription {
	return s.load(ctx, userID)
}

// GetSubscription retrieves one subscription by ID
func (s *Service) GetSubscription(ctx context.Context, userID, subscriptionID string) (*Subscription, error) {
	for _, sub := range s.load(ctx, userID) {
		if sub.ID == subscriptionID {
			return &sub, nil
		}
	}
	return nil, fmt.Errorf("subscription not found")
}

// CreateSubscription starts a recurring delivery. A second active
// subscription for the same product is rejected.
func (s *Service) CreateSubscription(ctx context.Context, userID string, req *CreateSubscriptionRequest) (*Subscription, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if !ValidFrequency(req.Frequency) {
		return nil, fmt.Errorf("invalid frequency: %s", req.Frequency)
	}

	product, err := s.catalog.GetProduct(req.ProductID)
	if err != nil {
		return nil, err
	}

	start := s.now().UTC()
	if req.StartDate != "" {
		start, err = time.Parse(DateLayout, req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %s", req.StartDate)
		}
	}
	next, err := NextDeliveryFrom(start, req.Frequency)
	if err != nil {
		return nil, err
	}

	sub := Subscription{
		ID:           uuid.NewString(),
		Product:      *product,
		Quantity:     req.Quantity,
		Frequency:    req.Frequency,
		Status:       StatusActive,
		StartDate:    start.Format(DateLayout),
		NextDelivery: next,
		CreatedAt:    s.now().UTC(),
	}

	s.mu.Lock()
	subs := s.load(ctx, userID)

	for _, existing := range subs {
		if existing.Product.ID == req.ProductID && existing.IsActive() {
			s.mu.Unlock()
			return nil, fmt.Errorf("an active subscription already exists for %s", product.Name)
		}
	}
	subs = append(subs, sub)

	err = s.save(ctx, userID, subs)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	mirror.Go(s.log, "subscription.create", func(ctx context.Context) error {
		return s.remote.CreateSubscription(ctx, userID, sub.ID)
	})

	return &sub, nil
}

// UpdateSubscription patches quantity and frequency. A frequency change
// reschedules the next delivery from today.
func (s *Service) UpdateSubscription(ctx context.Context, userID, subscriptionID string, req *UpdateSubscriptionRequest) (*Subscription, error) {
	s.mu.Lock()
	subs := s.load(ctx, userID)

	idx := s.indexOf(subs, subscriptionID)
	if idx == -1 {
		s.mu.Unlock()
		return nil, fmt.Errorf("subscription not found")
	}

	sub := &subs[idx]
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			s.mu.Unlock()
			return nil, fmt.Errorf("quantity must be at least 1")
		}
		sub.Quantity = *req.Quantity
	}
	if req.Frequency != nil && *req.Frequency != sub.Frequency {
		next, err := NextDeliveryFrom(s.now().UTC(), *req.Frequency)
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
		sub.Frequency = *req.Frequency
		sub.NextDelivery = next
	}

	updated := *sub
	err := s.save(ctx, userID, subs)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	mirror.Go(s.log, "subscription.update", func(ctx context.Context) error {
		return s.remote.UpdateSubscription(ctx, userID, subscriptionID)
	})

	return &updated, nil
}

// PauseSubscription suspends deliveries. The next-delivery date is left
// as-is; resuming recomputes it.
func (s *Service) PauseSubscription(ctx context.Context, userID, subscriptionID string) (*Subscription, error) {
	return s.setStatus(ctx, userID, subscriptionID, StatusPaused)
}

// ResumeSubscription reactivates a paused subscription with a fresh
// next-delivery date counted from today.
func (s *Service) ResumeSubscription(ctx context.Context, userID, subscriptionID string) (*Subscription, error) {
	return s.setStatus(ctx, userID, subscriptionID, StatusActive)
}

// CancelSubscription removes the record entirely
func (s *Service) CancelSubscription(ctx context.Context, userID, subscriptionID string) error {
	s.mu.Lock()
	subs := s.load(ctx, userID)

	filtered := subs[:0]
	removed := false
	for _, sub := range subs {
		if sub.ID == subscriptionID {
			removed = true
			continue
		}
		filtered = append(filtered, sub)
	}
	if !removed {
		s.mu.Unlock()
		return fmt.Errorf("subscription not found")
	}

	err := s.save(ctx, userID, filtered)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	mirror.Go(s.log, "subscription.cancel", func(ctx context.Context) error {
		return s.remote.CancelSubscription(ctx, userID, subscriptionID)
	})

	return nil
}

// GetMonthlySavings sums the flat subscription discount over active records
func (s *Service) GetMonthlySavings(ctx context.Context, userID string) float64 {
	var savings float64
	for _, sub := range s.load(ctx, userID) {
		if sub.IsActive() {
			savings += sub.Product.Price * float64(sub.Quantity) * savingsRate
		}
	}
	return savings
}

// GetActiveCount returns the number of active subscriptions
func (s *Service) GetActiveCount(ctx context.Context, userID string) int {
	n := 0
	for _, sub := range s.load(ctx, userID) {
		if sub.IsActive() {
			n++
		}
	}
	return n
}

func (s *Service) setStatus(ctx context.Context, userID, subscriptionID, status string) (*Subscription, error) {
	s.mu.Lock()
	subs := s.load(ctx, userID)

	idx := s.indexOf(subs, subscriptionID)
	if idx == -1 {
		s.mu.Unlock()
		return nil, fmt.Errorf("subscription not found")
	}

	sub := &subs[idx]
	sub.Status = status
	if status == StatusActive {
		next, err := NextDeliveryFrom(s.now().UTC(), sub.Frequency)
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
		sub.NextDelivery = next
	}

	updated := *sub
	err := s.save(ctx, userID, subs)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	mirror.Go(s.log, "subscription.update", func(ctx context.Context) error {
		return s.remote.UpdateSubscription(ctx, userID, subscriptionID)
	})

	return &updated, nil
}

func (s *Service) indexOf(subs []Subscription, subscriptionID string) int {
	for i := range subs {
		if subs[i].ID == subscriptionID {
			return i
		}
	}
	return -1
}

func (s *Service) load(ctx context.Context, userID string) []Subscription {
	var subs []Subscription
	if _, err := s.store.Get(ctx, store.SubscriptionsKey(userID), &subs); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to load subscriptions, falling back to empty")
		return []Subscription{}
	}
	if subs == nil {
		subs = []Subscription{}
	}
	return subs
}

func (s *Service) save(ctx context.Context, userID string, subs []Subscription) error {
	if err := s.store.Set(ctx, store.SubscriptionsKey(userID), subs); err != nil {
		return fmt.Errorf("failed to persist subscriptions: %w", err)
	}
	return nil
}
