// internal/remote/client.go
package remote

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/grocery-backend/internal/config"
)

// Client is the mocked remote mirror service. Every call sleeps a simulated
// network latency and then resolves; an optional failure rate produces
// generic errors for exercising the best-effort paths. Responses are
// in-memory objects; there is no wire format behind this surface.
//
// Callers must never block a local mutation on a mirror call: the managers
// dispatch these on their own goroutines and only log the outcome.
type Client struct {
	baseURL     string
	latency     time.Duration
	failureRate float64
	log         *logrus.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// AuthResponse is the remote login payload
type AuthResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	Token  string `json:"token"`
}

// NewClient creates a mirror client from config
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL:     cfg.Remote.BaseURL,
		latency:     cfg.Remote.Latency,
		failureRate: cfg.Remote.FailureRate,
		log:         log,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// call simulates one request/response round trip
func (c *Client) call(ctx context.Context, method, endpoint string) error {
	select {
	case <-time.After(c.latency):
	case <-ctx.Done():
		return ctx.Err()
	}

	if c.failureRate > 0 {
		c.mu.Lock()
		failed := c.rng.Float64() < c.failureRate
		c.mu.Unlock()
		if failed {
			return fmt.Errorf("remote service error: %s %s%s", method, c.baseURL, endpoint)
		}
	}

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"endpoint": endpoint,
	}).Debug("remote mirror call resolved")

	return nil
}

// Login mirrors an authentication attempt and returns a remote session
func (c *Client) Login(ctx context.Context, email, mobile string) (*AuthResponse, error) {
	if err := c.call(ctx, "POST", "/auth/login"); err != nil {
		return nil, err
	}
	return &AuthResponse{
		UserID: "user-123",
		Name:   "John Doe",
		Email:  email,
		Mobile: mobile,
		Token:  fmt.Sprintf("mock-jwt-token-%d", time.Now().UnixMilli()),
	}, nil
}

// CurrentUser mirrors a current-user lookup
func (c *Client) CurrentUser(ctx context.Context, token string) error {
	return c.call(ctx, "GET", "/auth/me")
}

// Cart mirror endpoints

func (c *Client) AddCartItem(ctx context.Context, userID, productID string, quantity int) error {
	return c.call(ctx, "POST", "/cart/items")
}

func (c *Client) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) error {
	return c.call(ctx, "PUT", fmt.Sprintf("/cart/items/%s", productID))
}

func (c *Client) RemoveCartItem(ctx context.Context, userID, productID string) error {
	return c.call(ctx, "DELETE", fmt.Sprintf("/cart/items/%s", productID))
}

// Address mirror endpoints

func (c *Client) CreateAddress(ctx context.Context, userID, addressID string) error {
	return c.call(ctx, "POST", "/addresses")
}

func (c *Client) UpdateAddress(ctx context.Context, userID, addressID string) error {
	return c.call(ctx, "PUT", fmt.Sprintf("/addresses/%s", addressID))
}

func (c *Client) DeleteAddress(ctx context.Context, userID, addressID string) error {
	return c.call(ctx, "DELETE", fmt.Sprintf("/addresses/%s", addressID))
}

func (c *Client) SetDefaultAddress(ctx context.Context, userID, addressID string) error {
	return c.call(ctx, "PUT", fmt.Sprintf("/addresses/%s/default", addressID))
}

// Subscription mirror endpoints

func (c *Client) CreateSubscription(ctx context.Context, userID, subscriptionID string) error {
	return c.call(ctx, "POST", "/subscriptions")
}

func (c *Client) UpdateSubscription(ctx context.Context, userID, subscriptionID string) error {
	return c.call(ctx, "PUT", fmt.Sprintf("/subscriptions/%s", subscriptionID))
}

func (c *Client) CancelSubscription(ctx context.Context, userID, subscriptionID string) error {
	return c.call(ctx, "DELETE", fmt.Sprintf("/subscriptions/%s", subscriptionID))
}

// Review mirror endpoints

func (c *Client) CreateReview(ctx context.Context, userID, reviewID string) error {
	return c.call(ctx, "POST", "/reviews")
}

func (c *Client) UpdateReview(ctx context.Context, userID, reviewID string) error {
	return c.call(ctx, "PUT", fmt.Sprintf("/reviews/%s", reviewID))
}

func (c *Client) DeleteReview(ctx context.Context, userID, reviewID string) error {
	return c.call(ctx, "DELETE", fmt.Sprintf("/reviews/%s", reviewID))
}

func (c *Client) MarkReviewHelpful(ctx context.Context, userID, reviewID string) error {
	return c.call(ctx, "POST", fmt.Sprintf("/reviews/%s/helpful", reviewID))
}

// Order mirror endpoints

func (c *Client) CreateOrder(ctx context.Context, userID, orderID string) error {
	return c.call(ctx, "POST", "/orders")
}

func (c *Client) CancelOrder(ctx context.Context, userID, orderID string) error {
	return c.call(ctx, "POST", fmt.Sprintf("/orders/%s/cancel", orderID))
}
