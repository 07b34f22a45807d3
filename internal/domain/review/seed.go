// internal/domain/review/seed.go
package review

import (
	"context"
	"time"
)

// SeedDemoReviews loads a handful of canned reviews so a fresh install has
// something to render. Existing reviews are never overwritten.
func (s *Service) SeedDemoReviews(ctx context.Context) error {
	seeds := map[string][]Review{
		"product-1": {
			{
				ID: "seed-review-1", ProductID: "product-1",
				UserID: "seed-user-1", UserName: "Priya S.",
				Rating: 5, Title: "Always fresh",
				Comment:      "These tomatoes arrive ripe and last the whole week.",
				HelpfulCount: 12, IsVerified: true,
			},
			{
				ID: "seed-review-2", ProductID: "product-1",
				UserID: "seed-user-2", UserName: "Marcus T.",
				Rating: 4, Title: "Good value",
				Comment:      "Solid quality for the price, a couple were bruised.",
				HelpfulCount: 5, IsVerified: true,
			},
		},
		"product-6": {
			{
				ID: "seed-review-3", ProductID: "product-6",
				UserID: "seed-user-3", UserName: "Elena R.",
				Rating: 5, Title: "Sweet and juicy",
				Comment:      "Best strawberries I have ordered online.",
				HelpfulCount: 8, IsVerified: true,
			},
		},
		"product-10": {
			{
				ID: "seed-review-4", ProductID: "product-10",
				UserID: "seed-user-4", UserName: "David K.",
				Rating: 4, Title: "Reliable staple",
				Comment:      "Delivered cold every time.",
				HelpfulCount: 3, IsVerified: false,
			},
			{
				ID: "seed-review-5", ProductID: "product-10",
				UserID: "seed-user-5", UserName: "Aisha B.",
				Rating: 3, Title: "Short shelf life",
				Comment:      "Fine, but the expiry date was only four days out.",
				HelpfulCount: 1, IsVerified: true,
			},
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seededAt := s.now().UTC().Add(-30 * 24 * time.Hour)
	for productID, reviews := range seeds {
		if existing := s.load(ctx, productID); len(existing) > 0 {
			continue
		}
		for i := range reviews {
			reviews[i].CreatedAt = seededAt
			reviews[i].UpdatedAt = seededAt
		}
		if err := s.save(ctx, productID, reviews); err != nil {
			return err
		}
	}
	return nil
}
