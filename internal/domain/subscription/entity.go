// internal/domain/subscription/entity.go
package subscription

import (
	"fmt"
	"time"

	"github.com/your-org/grocery-backend/internal/domain/catalog"
)

// Subscription status values
const (
	StatusActive = "active"
	StatusPaused = "paused"
)

// Delivery frequency values
const (
	FrequencyDaily         = "daily"
	FrequencyAlternateDays = "alternate-days"
	FrequencyWeekly        = "weekly"
	FrequencyBiWeekly      = "bi-weekly"
	FrequencyMonthly       = "monthly"
)

// DateLayout is the calendar-date format used for delivery dates
const DateLayout = "2006-01-02"

// Subscription represents a recurring product delivery. Dates are stored as
// calendar-date strings, not timestamps.
type Subscription struct {
	ID           string          `json:"id"`
	Product      catalog.Product `json:"product"`
	Quantity     int             `json:"quantity"`
	Frequency    string          `json:"frequency"`
	Status       string          `json:"status"`
	StartDate    string          `json:"start_date"`
	NextDelivery string          `json:"next_delivery"`
	CreatedAt    time.Time       `json:"created_at"`
}

// IsActive reports whether the subscription is currently delivering
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// NextDeliveryFrom advances one delivery interval from the given date.
// Monthly uses calendar-month arithmetic, so Jan 31 advances to Mar 3
// the way time.AddDate normalizes it.
func NextDeliveryFrom(from time.Time, frequency string) (string, error) {
	switch frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1).Format(DateLayout), nil
	case FrequencyAlternateDays:
		return from.AddDate(0, 0, 2).Format(DateLayout), nil
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7).Format(DateLayout), nil
	case FrequencyBiWeekly:
		return from.AddDate(0, 0, 14).Format(DateLayout), nil
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0).Format(DateLayout), nil
	default:
		return "", fmt.Errorf("invalid frequency: %s", frequency)
	}
}

// ValidFrequency reports whether the value is a known delivery frequency
func ValidFrequency(frequency string) bool {
	switch frequency {
	case FrequencyDaily, FrequencyAlternateDays, FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly:
		return true
	}
	return false
}
