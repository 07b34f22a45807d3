// internal/domain/review/service.go
package review

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/grocery-backend/internal/pkg/mirror"
	"github.com/your-org/grocery-backend/internal/remote"
	"github.com/your-org/grocery-backend/internal/store"
)

// Service handles review business logic. Reviews are stored per product so
// the summary reads one collection; each user's helpful marks live in their
// own set, which makes the helpful toggle idempotent pairs.
type Service struct {
	store  store.Store
	remote *remote.Client
	log    *logrus.Logger

	now func() time.Time

	mu sync.Mutex
}

// NewService creates a new review service
func NewService(st store.Store, rc *remote.Client, log *logrus.Logger) *Service {
	return &Service{
		store:  st,
		remote: rc,
		log:    log,
		now:    time.Now,
	}
}

// CreateReviewRequest represents review creation data
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// UpdateReviewRequest represents review update data
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}

// GetReviews retrieves all reviews for a product
func (s *Service) GetReviews(ctx context.Context, productID string) []Review {
	return s.load(ctx, productID)
}

// GetUserReview returns the caller's review of a product, if any
func (s *Service) GetUserReview(ctx context.Context, productID, userID string) (*Review, error) {
	for _, r := range s.load(ctx, productID) {
		if r.UserID == userID {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("review not found")
}

// CreateReview adds a review. A second review of the same product by the
// same user is rejected.
func (s *Service) CreateReview(ctx context.Context, productID, userID, userName string, req *CreateReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	s.mu.Lock()
	reviews := s.load(ctx, productID)

	for _, r := range reviews {
		if r.UserID == userID {
			s.mu.Unlock()
			return nil, fmt.Errorf("you have already reviewed this product")
		}
	}

	r := Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		UserName:  userName,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
		// Reviews can only be written through an authenticated session,
		// so they count as verified purchases.
		IsVerified: true,
		CreatedAt:  s.now().UTC(),
		UpdatedAt:  s.now().UTC(),
	}
	reviews = append(reviews, r)

	err := s.save(ctx, productID, reviews)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	mirror.Go(s.log, "review.create", func(ctx context.Context) error {
		return s.remote.CreateReview(ctx, userID, r.ID)
	})

	return &r, nil
}

// UpdateReview patches the caller's own review
func (s *Service) UpdateReview(ctx context.Context, productID, reviewID, userID string, req *UpdateReviewRequest) (*Review, error) {
	s.mu.Lock()
	reviews := s.load(ctx, productID)

	idx := -1
	for i := range reviews {
		if reviews[i].ID == reviewID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return nil, fmt.Errorf("review not found")
	}
	if reviews[idx].UserID != userID {
		s.mu.Unlock()
		return nil, fmt.Errorf("you can only edit your own review")
	}

	r := &reviews[idx]
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			s.mu.Unlock()
			return nil, fmt.Errorf("rating must be between 1 and 5")
		}
		r.Rating = *req.Rating
	}
	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.Comment != nil {
		r.Comment = *req.Comment
	}
	r.UpdatedAt = s.now().UTC()

	updated := *r
	err := s.save(ctx, productID, reviews)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	mirror.Go(s.log, "review.update", func(ctx context.Context) error {
		return s.remote.UpdateReview(ctx, userID, reviewID)
	})

	return &updated, nil
}

// DeleteReview removes the caller's own review
func (s *Service) DeleteReview(ctx context.Context, productID, reviewID, userID string) error {
	s.mu.Lock()
	reviews := s.load(ctx, productID)

	filtered := reviews[:0]
	removed := false
	for _, r := range reviews {
		if r.ID == reviewID {
			if r.UserID != userID {
				s.mu.Unlock()
				return fmt.Errorf("you can only delete your own review")
			}
			removed = true
			continue
		}
		filtered = append(filtered, r)
	}
	if !removed {
		s.mu.Unlock()
		return fmt.Errorf("review not found")
	}

	err := s.save(ctx, productID, filtered)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	mirror.Go(s.log, "review.delete", func(ctx context.Context) error {
		return s.remote.DeleteReview(ctx, userID, reviewID)
	})

	return nil
}

// MarkHelpful toggles the caller's helpful vote on a review. Calling it
// twice restores the original count.
func (s *Service) MarkHelpful(ctx context.Context, productID, reviewID, userID string) (*Review, error) {
	s.mu.Lock()
	reviews := s.load(ctx, productID)

	idx := -1
	for i := range reviews {
		if reviews[i].ID == reviewID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return nil, fmt.Errorf("review not found")
	}

	marks := s.loadMarks(ctx, userID)
	if marks[reviewID] {
		delete(marks, reviewID)
		reviews[idx].HelpfulCount--
	} else {
		marks[reviewID] = true
		reviews[idx].HelpfulCount++
	}

	updated := reviews[idx]
	err := s.save(ctx, productID, reviews)
	if err == nil {
		err = s.saveMarks(ctx, userID, marks)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	mirror.Go(s.log, "review.helpful", func(ctx context.Context) error {
		return s.remote.MarkReviewHelpful(ctx, userID, reviewID)
	})

	return &updated, nil
}

// HasMarkedHelpful reports whether the user currently holds a helpful vote
func (s *Service) HasMarkedHelpful(ctx context.Context, userID, reviewID string) bool {
	return s.loadMarks(ctx, userID)[reviewID]
}

// GetSummary aggregates a product's reviews. The average is rounded to one
// decimal place.
func (s *Service) GetSummary(ctx context.Context, productID string) *Summary {
	reviews := s.load(ctx, productID)

	summary := &Summary{
		ProductID:    productID,
		TotalReviews: len(reviews),
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return summary
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
		summary.Distribution[r.Rating]++
	}
	avg := float64(total) / float64(len(reviews))
	summary.AverageRating = math.Round(avg*10) / 10

	return summary
}

func (s *Service) load(ctx context.Context, productID string) []Review {
	var reviews []Review
	if _, err := s.store.Get(ctx, store.ReviewsKey(productID), &reviews); err != nil {
		s.log.WithError(err).WithField("product_id", productID).Warn("failed to load reviews, falling back to empty")
		return []Review{}
	}
	if reviews == nil {
		reviews = []Review{}
	}
	return reviews
}

func (s *Service) save(ctx context.Context, productID string, reviews []Review) error {
	if err := s.store.Set(ctx, store.ReviewsKey(productID), reviews); err != nil {
		return fmt.Errorf("failed to persist reviews: %w", err)
	}
	return nil
}

func (s *Service) loadMarks(ctx context.Context, userID string) map[string]bool {
	marks := map[string]bool{}
	if _, err := s.store.Get(ctx, store.HelpfulMarksKey(userID), &marks); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to load helpful marks, falling back to empty")
		return map[string]bool{}
	}
	if marks == nil {
		marks = map[string]bool{}
	}
	return marks
}

func (s *Service) saveMarks(ctx context.Context, userID string, marks map[string]bool) error {
	if err := s.store.Set(ctx, store.HelpfulMarksKey(userID), marks); err != nil {
		return fmt.Errorf("failed to persist helpful marks: %w", err)
	}
	return nil
}
