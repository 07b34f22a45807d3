// internal/store/store.go
package store

import (
	"context"
	"fmt"
)

// Store is the local persistent key-value store every domain manager writes
// through. Values are JSON-serialized; collections are read and written
// whole, never field by field. There are no transactions across keys: each
// manager owns a disjoint key namespace, so cross-manager contention does
// not exist.
type Store interface {
	// Get decodes the value for key into dest. The boolean is false when the
	// key is absent; callers fall back to their empty collection default.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set JSON-serializes value and persists it under key.
	Set(ctx context.Context, key string, value interface{}) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key builders. One prefix per manager keeps namespaces disjoint.

// CartKey returns the storage key for a user's cart collection
func CartKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

// AddressesKey returns the storage key for a user's address collection
func AddressesKey(userID string) string {
	return fmt.Sprintf("addresses:%s", userID)
}

// SubscriptionsKey returns the storage key for a user's subscription collection
func SubscriptionsKey(userID string) string {
	return fmt.Sprintf("subscriptions:%s", userID)
}

// ReviewsKey returns the storage key for a product's review collection
func ReviewsKey(productID string) string {
	return fmt.Sprintf("reviews:product:%s", productID)
}

// HelpfulMarksKey returns the storage key for a user's helpful-mark set
func HelpfulMarksKey(userID string) string {
	return fmt.Sprintf("helpful:%s", userID)
}

// AccountKey returns the storage key for a registered account record
func AccountKey(email string) string {
	return fmt.Sprintf("auth:account:%s", email)
}

// SessionKey returns the storage key for a user's session profile
func SessionKey(userID string) string {
	return fmt.Sprintf("auth:session:%s", userID)
}

// TokenKey returns the storage key for a user's auth token
func TokenKey(userID string) string {
	return fmt.Sprintf("auth:token:%s", userID)
}

// OrdersKey returns the storage key for a user's order collection
func OrdersKey(userID string) string {
	return fmt.Sprintf("orders:%s", userID)
}

// OrderSeqKey returns the storage key for the daily order-number counter
func OrderSeqKey(date string) string {
	return fmt.Sprintf("orders:seq:%s", date)
}

// PrefsKey returns the storage key for a user's preferences
func PrefsKey(userID string) string {
	return fmt.Sprintf("prefs:%s", userID)
}
