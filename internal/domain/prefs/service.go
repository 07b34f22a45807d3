// internal/domain/prefs/service.go
package prefs

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"github.com/your-org/grocery-backend/internal/store"
)

// maxRecentSearches caps the search history
const maxRecentSearches = 10

// Preferences holds per-user storefront settings
type Preferences struct {
	Location       *Location `json:"location,omitempty"`
	Language       string    `json:"language"`
	RecentSearches []string  `json:"recent_searches"`
}

// Location is a saved delivery area
type Location struct {
	Label       string            `json:"label"`
	Coordinates *user.Coordinates `json:"coordinates,omitempty"`
}

// Service handles preference state. Purely local; preferences are never
// mirrored to the remote service.
type Service struct {
	store store.Store
	log   *logrus.Logger

	mu sync.Mutex
}

// NewService creates a new preferences service
func NewService(st store.Store, log *logrus.Logger) *Service {
	return &Service{store: st, log: log}
}

// GetPreferences retrieves the user's preferences
func (s *Service) GetPreferences(ctx context.Context, userID string) *Preferences {
	return s.load(ctx, userID)
}

// SetLocation replaces the preferred delivery location
func (s *Service) SetLocation(ctx context.Context, userID string, loc *Location) (*Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.load(ctx, userID)
	p.Location = loc
	if err := s.save(ctx, userID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetLanguage replaces the preferred language
func (s *Service) SetLanguage(ctx context.Context, userID, language string) (*Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.load(ctx, userID)
	p.Language = language
	if err := s.save(ctx, userID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RecordSearch pushes a term to the front of the recent-search list. An
// existing entry moves to the front instead of duplicating, and the list
// never exceeds the cap.
func (s *Service) RecordSearch(ctx context.Context, userID, term string) (*Preferences, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("search term is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.load(ctx, userID)

	filtered := make([]string, 0, len(p.RecentSearches)+1)
	filtered = append(filtered, term)
	for _, existing := range p.RecentSearches {
		if strings.EqualFold(existing, term) {
			continue
		}
		filtered = append(filtered, existing)
	}
	if len(filtered) > maxRecentSearches {
		filtered = filtered[:maxRecentSearches]
	}
	p.RecentSearches = filtered

	if err := s.save(ctx, userID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ClearSearches empties the recent-search list
func (s *Service) ClearSearches(ctx context.Context, userID string) (*Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.load(ctx, userID)
	p.RecentSearches = []string{}
	if err := s.save(ctx, userID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) load(ctx context.Context, userID string) *Preferences {
	p := &Preferences{}
	if _, err := s.store.Get(ctx, store.PrefsKey(userID), p); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to load preferences, falling back to defaults")
		p = &Preferences{}
	}
	if p.Language == "" {
		p.Language = "en"
	}
	if p.RecentSearches == nil {
		p.RecentSearches = []string{}
	}
	return p
}

func (s *Service) save(ctx context.Context, userID string, p *Preferences) error {
	if err := s.store.Set(ctx, store.PrefsKey(userID), p); err != nil {
		return fmt.Errorf("failed to persist preferences: %w", err)
	}
	return nil
}
