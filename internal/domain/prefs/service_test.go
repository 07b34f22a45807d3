package prefs

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"github.com/your-org/grocery-backend/internal/store"
)

func newTestService() *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(store.NewMemoryStore(), log)
}

func TestDefaults(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	p := s.GetPreferences(ctx, "user-1")
	if p.Language != "en" {
		t.Errorf("Language = %q, want en", p.Language)
	}
	if p.Location != nil {
		t.Errorf("expected no location, got %+v", p.Location)
	}
	if len(p.RecentSearches) != 0 {
		t.Errorf("expected no recent searches, got %v", p.RecentSearches)
	}
}

func TestSetLocationAndLanguage(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if _, err := s.SetLocation(ctx, "user-1", &Location{
		Label:       "Downtown",
		Coordinates: &user.Coordinates{Lat: 40.7128, Lng: -74.006},
	}); err != nil {
		t.Fatalf("SetLocation: %v", err)
	}
	if _, err := s.SetLanguage(ctx, "user-1", "es"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}

	p := s.GetPreferences(ctx, "user-1")
	if p.Location == nil || p.Location.Label != "Downtown" {
		t.Errorf("unexpected location %+v", p.Location)
	}
	if p.Language != "es" {
		t.Errorf("Language = %q, want es", p.Language)
	}
}

func TestRecordSearchDedupAndOrder(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	for _, term := range []string{"milk", "bread", "milk"} {
		if _, err := s.RecordSearch(ctx, "user-1", term); err != nil {
			t.Fatalf("RecordSearch(%s): %v", term, err)
		}
	}

	p := s.GetPreferences(ctx, "user-1")
	if len(p.RecentSearches) != 2 {
		t.Fatalf("expected deduplicated list, got %v", p.RecentSearches)
	}
	if p.RecentSearches[0] != "milk" || p.RecentSearches[1] != "bread" {
		t.Fatalf("expected most-recent-first order, got %v", p.RecentSearches)
	}

	// Dedup is case-insensitive
	if _, err := s.RecordSearch(ctx, "user-1", "MILK"); err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}
	p = s.GetPreferences(ctx, "user-1")
	if len(p.RecentSearches) != 2 || p.RecentSearches[0] != "MILK" {
		t.Fatalf("expected case-insensitive move-to-front, got %v", p.RecentSearches)
	}
}

func TestRecordSearchCap(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		if _, err := s.RecordSearch(ctx, "user-1", fmt.Sprintf("term-%d", i)); err != nil {
			t.Fatalf("RecordSearch: %v", err)
		}
	}

	p := s.GetPreferences(ctx, "user-1")
	if len(p.RecentSearches) != maxRecentSearches {
		t.Fatalf("expected cap of %d, got %d", maxRecentSearches, len(p.RecentSearches))
	}
	if p.RecentSearches[0] != "term-14" {
		t.Fatalf("expected newest term first, got %v", p.RecentSearches[0])
	}
}

func TestRecordSearchRejectsEmpty(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if _, err := s.RecordSearch(ctx, "user-1", "   "); err == nil {
		t.Fatal("expected blank term to be rejected")
	}
}

func TestClearSearches(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if _, err := s.RecordSearch(ctx, "user-1", "milk"); err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}
	p, err := s.ClearSearches(ctx, "user-1")
	if err != nil {
		t.Fatalf("ClearSearches: %v", err)
	}
	if len(p.RecentSearches) != 0 {
		t.Fatalf("expected empty history, got %v", p.RecentSearches)
	}
}
