package subscription

import (
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/catalog"
	"github.com/your-org/grocery-backend/internal/remote"
	"github.com/your-org/grocery-backend/internal/store"
)

func newTestService(now time.Time) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{}
	s := NewService(store.NewMemoryStore(), catalog.NewService(), remote.NewClient(cfg, log), log)
	s.now = func() time.Time { return now }
	return s
}

func TestNextDeliveryFrom(t *testing.T) {
	from := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		frequency string
		want      string
	}{
		{FrequencyDaily, "2026-02-11"},
		{FrequencyAlternateDays, "2026-02-12"},
		{FrequencyWeekly, "2026-02-17"},
		{FrequencyBiWeekly, "2026-02-24"},
		{FrequencyMonthly, "2026-03-10"},
	}
	for _, tc := range cases {
		got, err := NextDeliveryFrom(from, tc.frequency)
		if err != nil {
			t.Fatalf("NextDeliveryFrom(%s): %v", tc.frequency, err)
		}
		if got != tc.want {
			t.Errorf("NextDeliveryFrom(%s) = %s, want %s", tc.frequency, got, tc.want)
		}
	}

	if _, err := NextDeliveryFrom(from, "fortnightly"); err == nil {
		t.Fatal("expected error for unknown frequency")
	}
}

func TestCreateSubscriptionWeekly(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	s := newTestService(now)
	ctx := context.Background()

	sub, err := s.CreateSubscription(ctx, "user-1", &CreateSubscriptionRequest{
		ProductID: "product-1", Quantity: 2, Frequency: FrequencyWeekly,
	})
	if err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}
	if sub.StartDate != "2026-02-10" {
		t.Errorf("StartDate = %s, want 2026-02-10", sub.StartDate)
	}
	if sub.NextDelivery != "2026-02-17" {
		t.Errorf("NextDelivery = %s, want 2026-02-17", sub.NextDelivery)
	}
	if sub.Status != StatusActive {
		t.Errorf("Status = %s, want active", sub.Status)
	}
}

func TestCreateSubscriptionRejectsDuplicateActive(t *testing.T) {
	s := newTestService(time.Now())
	ctx := context.Background()

	req := &CreateSubscriptionRequest{ProductID: "product-1", Quantity: 1, Frequency: FrequencyDaily}
	if _, err := s.CreateSubscription(ctx, "user-1", req); err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}
	if _, err := s.CreateSubscription(ctx, "user-1", req); err == nil {
		t.Fatal("expected duplicate active subscription to be rejected")
	}

	// A paused subscription does not block a new one
	subs := s.GetSubscriptions(ctx, "user-1")
	if _, err := s.PauseSubscription(ctx, "user-1", subs[0].ID); err != nil {
		t.Fatalf("PauseSubscription: %v", err)
	}
	if _, err := s.CreateSubscription(ctx, "user-1", req); err != nil {
		t.Fatalf("CreateSubscription after pause: %v", err)
	}
}

func TestPauseKeepsDateResumeRecomputes(t *testing.T) {
	start := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	s := newTestService(start)
	ctx := context.Background()

	sub, err := s.CreateSubscription(ctx, "user-1", &CreateSubscriptionRequest{
		ProductID: "product-3", Quantity: 1, Frequency: FrequencyWeekly,
	})
	if err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}

	paused, err := s.PauseSubscription(ctx, "user-1", sub.ID)
	if err != nil {
		t.Fatalf("PauseSubscription: %v", err)
	}
	if paused.Status != StatusPaused {
		t.Errorf("Status = %s, want paused", paused.Status)
	}
	if paused.NextDelivery != "2026-02-17" {
		t.Errorf("pause must not touch the delivery date, got %s", paused.NextDelivery)
	}

	// Resume a month later: the schedule restarts from the resume date
	s.now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }
	resumed, err := s.ResumeSubscription(ctx, "user-1", sub.ID)
	if err != nil {
		t.Fatalf("ResumeSubscription: %v", err)
	}
	if resumed.Status != StatusActive {
		t.Errorf("Status = %s, want active", resumed.Status)
	}
	if resumed.NextDelivery != "2026-03-22" {
		t.Errorf("NextDelivery = %s, want 2026-03-22", resumed.NextDelivery)
	}
}

func TestUpdateFrequencyReschedules(t *testing.T) {
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	s := newTestService(now)
	ctx := context.Background()

	sub, err := s.CreateSubscription(ctx, "user-1", &CreateSubscriptionRequest{
		ProductID: "product-3", Quantity: 1, Frequency: FrequencyWeekly,
	})
	if err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}

	daily := FrequencyDaily
	updated, err := s.UpdateSubscription(ctx, "user-1", sub.ID, &UpdateSubscriptionRequest{Frequency: &daily})
	if err != nil {
		t.Fatalf("UpdateSubscription: %v", err)
	}
	if updated.Frequency != FrequencyDaily || updated.NextDelivery != "2026-02-11" {
		t.Fatalf("frequency change must reschedule from today, got %+v", updated)
	}

	// A quantity-only patch leaves the schedule alone
	qty := 4
	updated, err = s.UpdateSubscription(ctx, "user-1", sub.ID, &UpdateSubscriptionRequest{Quantity: &qty})
	if err != nil {
		t.Fatalf("UpdateSubscription: %v", err)
	}
	if updated.Quantity != 4 || updated.NextDelivery != "2026-02-11" {
		t.Fatalf("quantity patch must not reschedule, got %+v", updated)
	}
}

func TestCancelRemovesRecord(t *testing.T) {
	s := newTestService(time.Now())
	ctx := context.Background()

	sub, err := s.CreateSubscription(ctx, "user-1", &CreateSubscriptionRequest{
		ProductID: "product-2", Quantity: 1, Frequency: FrequencyMonthly,
	})
	if err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}

	if err := s.CancelSubscription(ctx, "user-1", sub.ID); err != nil {
		t.Fatalf("CancelSubscription: %v", err)
	}
	if got := s.GetSubscriptions(ctx, "user-1"); len(got) != 0 {
		t.Fatalf("cancel must remove the record, got %+v", got)
	}
	if err := s.CancelSubscription(ctx, "user-1", sub.ID); err == nil {
		t.Fatal("expected error cancelling a removed subscription")
	}
}

func TestMonthlySavingsCountsOnlyActive(t *testing.T) {
	s := newTestService(time.Now())
	ctx := context.Background()

	// product-1 price 3.99, product-2 price 4.49
	a, err := s.CreateSubscription(ctx, "user-1", &CreateSubscriptionRequest{
		ProductID: "product-1", Quantity: 2, Frequency: FrequencyWeekly,
	})
	if err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}
	if _, err := s.CreateSubscription(ctx, "user-1", &CreateSubscriptionRequest{
		ProductID: "product-2", Quantity: 1, Frequency: FrequencyDaily,
	}); err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}

	want := 3.99*2*0.05 + 4.49*1*0.05
	if got := s.GetMonthlySavings(ctx, "user-1"); math.Abs(got-want) > 1e-9 {
		t.Fatalf("GetMonthlySavings = %v, want %v", got, want)
	}

	if _, err := s.PauseSubscription(ctx, "user-1", a.ID); err != nil {
		t.Fatalf("PauseSubscription: %v", err)
	}
	want = 4.49 * 1 * 0.05
	if got := s.GetMonthlySavings(ctx, "user-1"); math.Abs(got-want) > 1e-9 {
		t.Fatalf("GetMonthlySavings after pause = %v, want %v", got, want)
	}
	if got := s.GetActiveCount(ctx, "user-1"); got != 1 {
		t.Fatalf("GetActiveCount = %d, want 1", got)
	}
}
