package review

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/remote"
	"github.com/your-org/grocery-backend/internal/store"
)

func newTestService() *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{}
	return NewService(store.NewMemoryStore(), remote.NewClient(cfg, log), log)
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	req := &CreateReviewRequest{Rating: 5, Title: "Great", Comment: "Loved it"}
	if _, err := s.CreateReview(ctx, "product-1", "user-1", "Jane", req); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if _, err := s.CreateReview(ctx, "product-1", "user-1", "Jane", req); err == nil {
		t.Fatal("expected second review by same user to be rejected")
	}

	// Same user, different product is fine
	if _, err := s.CreateReview(ctx, "product-2", "user-1", "Jane", req); err != nil {
		t.Fatalf("CreateReview other product: %v", err)
	}
	// Different user, same product is fine
	if _, err := s.CreateReview(ctx, "product-1", "user-2", "Bob", req); err != nil {
		t.Fatalf("CreateReview other user: %v", err)
	}
}

func TestCreateReviewIsVerifiedPurchase(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	r, err := s.CreateReview(ctx, "product-1", "user-1", "Jane", &CreateReviewRequest{Rating: 5, Title: "Great"})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if !r.IsVerified {
		t.Fatal("created review must be a verified purchase")
	}

	// The flag must survive the write-through round trip
	stored, err := s.GetUserReview(ctx, "product-1", "user-1")
	if err != nil {
		t.Fatalf("GetUserReview: %v", err)
	}
	if !stored.IsVerified {
		t.Fatal("persisted review lost its verified flag")
	}
}

func TestCreateReviewValidatesRating(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		if _, err := s.CreateReview(ctx, "product-1", "user-1", "Jane", &CreateReviewRequest{Rating: rating}); err == nil {
			t.Errorf("expected rating %d to be rejected", rating)
		}
	}
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	r, err := s.CreateReview(ctx, "product-1", "user-1", "Jane", &CreateReviewRequest{Rating: 4, Title: "Good"})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	rating := 2
	if _, err := s.UpdateReview(ctx, "product-1", r.ID, "user-2", &UpdateReviewRequest{Rating: &rating}); err == nil {
		t.Fatal("expected non-owner update to be rejected")
	}

	updated, err := s.UpdateReview(ctx, "product-1", r.ID, "user-1", &UpdateReviewRequest{Rating: &rating})
	if err != nil {
		t.Fatalf("UpdateReview: %v", err)
	}
	if updated.Rating != 2 || updated.Title != "Good" {
		t.Fatalf("expected rating patched and title kept, got %+v", updated)
	}
}

func TestDeleteReviewOwnerOnly(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	r, err := s.CreateReview(ctx, "product-1", "user-1", "Jane", &CreateReviewRequest{Rating: 4})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	if err := s.DeleteReview(ctx, "product-1", r.ID, "user-2"); err == nil {
		t.Fatal("expected non-owner delete to be rejected")
	}
	if err := s.DeleteReview(ctx, "product-1", r.ID, "user-1"); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if got := s.GetReviews(ctx, "product-1"); len(got) != 0 {
		t.Fatalf("expected no reviews after delete, got %+v", got)
	}
}

func TestMarkHelpfulToggles(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	r, err := s.CreateReview(ctx, "product-1", "user-1", "Jane", &CreateReviewRequest{Rating: 5})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	marked, err := s.MarkHelpful(ctx, "product-1", r.ID, "user-2")
	if err != nil {
		t.Fatalf("MarkHelpful: %v", err)
	}
	if marked.HelpfulCount != 1 {
		t.Fatalf("HelpfulCount = %d, want 1", marked.HelpfulCount)
	}
	if !s.HasMarkedHelpful(ctx, "user-2", r.ID) {
		t.Fatal("expected user-2's mark to be recorded")
	}

	// Second call from the same user undoes the vote
	unmarked, err := s.MarkHelpful(ctx, "product-1", r.ID, "user-2")
	if err != nil {
		t.Fatalf("MarkHelpful toggle: %v", err)
	}
	if unmarked.HelpfulCount != 0 {
		t.Fatalf("HelpfulCount after toggle = %d, want 0", unmarked.HelpfulCount)
	}
	if s.HasMarkedHelpful(ctx, "user-2", r.ID) {
		t.Fatal("expected the mark to be cleared")
	}

	// Votes from distinct users accumulate
	if _, err := s.MarkHelpful(ctx, "product-1", r.ID, "user-2"); err != nil {
		t.Fatalf("MarkHelpful: %v", err)
	}
	final, err := s.MarkHelpful(ctx, "product-1", r.ID, "user-3")
	if err != nil {
		t.Fatalf("MarkHelpful: %v", err)
	}
	if final.HelpfulCount != 2 {
		t.Fatalf("HelpfulCount = %d, want 2", final.HelpfulCount)
	}
}

func TestGetSummary(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	empty := s.GetSummary(ctx, "product-9")
	if empty.TotalReviews != 0 || empty.AverageRating != 0 {
		t.Fatalf("expected zero summary for unreviewed product, got %+v", empty)
	}

	ratings := map[string]int{"user-1": 5, "user-2": 4, "user-3": 4}
	for userID, rating := range ratings {
		if _, err := s.CreateReview(ctx, "product-1", userID, userID, &CreateReviewRequest{Rating: rating}); err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
	}

	summary := s.GetSummary(ctx, "product-1")
	if summary.TotalReviews != 3 {
		t.Fatalf("TotalReviews = %d, want 3", summary.TotalReviews)
	}
	// (5+4+4)/3 = 4.333... rounds to 4.3
	if summary.AverageRating != 4.3 {
		t.Fatalf("AverageRating = %v, want 4.3", summary.AverageRating)
	}
	if summary.Distribution[4] != 2 || summary.Distribution[5] != 1 || summary.Distribution[1] != 0 {
		t.Fatalf("unexpected distribution %+v", summary.Distribution)
	}
}

func TestSeedDemoReviewsIsIdempotent(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if err := s.SeedDemoReviews(ctx); err != nil {
		t.Fatalf("SeedDemoReviews: %v", err)
	}
	seeded := s.GetReviews(ctx, "product-1")
	if len(seeded) == 0 {
		t.Fatal("expected seeded reviews for product-1")
	}

	// A user review added after seeding must survive a reseed
	if _, err := s.CreateReview(ctx, "product-1", "user-1", "Jane", &CreateReviewRequest{Rating: 5}); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if err := s.SeedDemoReviews(ctx); err != nil {
		t.Fatalf("SeedDemoReviews reseed: %v", err)
	}
	if got := s.GetReviews(ctx, "product-1"); len(got) != len(seeded)+1 {
		t.Fatalf("reseed must not overwrite, got %d reviews", len(got))
	}
}
