package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/pkg/event"
	"github.com/aurigalabs/storefront/pkg/logger"
	"github.com/aurigalabs/storefront/pkg/metrics"
)

// ErrRatingOutOfRange rejects reviews before any write happens.
var ErrRatingOutOfRange = errors.New("services: review rating must be between 1 and 5")

// ReviewStore is the persistence surface the review service needs.
type ReviewStore interface {
	Create(ctx context.Context, rev *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Review, error)
	AggregateRating(ctx context.Context, productID primitive.ObjectID) (models.Rating, error)
	ByProduct(ctx context.Context, productID primitive.ObjectID, page, limit int) ([]models.Review, repositories.Pagination, error)
}

// RatingStore is the slice of the product store needed to write the
// materialized rating. Satisfied by *repositories.ProductRepository.
type RatingStore interface {
	UpdateRating(ctx context.Context, id primitive.ObjectID, rating models.Rating) error
}

// ReviewService owns review writes and the rating aggregation that runs
// after each of them. The product's rating fields are a materialized view
// over approved reviews, recomputed in full on every change.
type ReviewService struct {
	reviews  ReviewStore
	products RatingStore
}

func NewReviewService(reviews ReviewStore, products RatingStore) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// Create persists a review and recomputes the product's rating. A second
// review from the same user for the same product surfaces as
// repositories.ErrDuplicate and nothing is written.
//
// The recompute happens after the review has committed: if it fails, the
// rating stays stale until the next review event and the failure is logged,
// not returned — the caller's write succeeded.
func (s *ReviewService) Create(ctx context.Context, rev *models.Review) error {
	if rev.Rating < 1 || rev.Rating > 5 {
		return ErrRatingOutOfRange
	}

	if err := s.reviews.Create(ctx, rev); err != nil {
		return err
	}
	event.Fire(event.ReviewCreated, *rev)

	s.refreshRating(ctx, rev.ProductID)
	return nil
}

// Delete removes a review and recomputes the product's rating, resetting it
// to zero when the last approved review is gone.
func (s *ReviewService) Delete(ctx context.Context, id primitive.ObjectID) error {
	rev, err := s.reviews.Delete(ctx, id)
	if err != nil {
		return err
	}
	event.Fire(event.ReviewDeleted, rev)

	s.refreshRating(ctx, rev.ProductID)
	return nil
}

func (s *ReviewService) Get(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	return s.reviews.FindByID(ctx, id)
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID primitive.ObjectID, page, limit int) ([]models.Review, repositories.Pagination, error) {
	return s.reviews.ByProduct(ctx, productID, page, limit)
}

// refreshRating recomputes the full approved-review aggregate and writes it
// onto the product. Average is rounded to one decimal place; zero approved
// reviews resets both fields to 0.
//
// The aggregate read and the product write are two separate store calls; a
// concurrent review landing between them leaves the rating momentarily
// stale until the next review event recomputes it.
func (s *ReviewService) refreshRating(ctx context.Context, productID primitive.ObjectID) {
	defer metrics.ObserveRatingRecompute(time.Now())

	rating, err := s.reviews.AggregateRating(ctx, productID)
	if err != nil {
		logger.WithCtx(ctx).Warn("review: rating aggregate failed, product rating stale",
			"product_id", productID.Hex(), "error", err)
		return
	}
	rating.Average = math.Round(rating.Average*10) / 10

	if err := s.products.UpdateRating(ctx, productID, rating); err != nil {
		logger.WithCtx(ctx).Warn("review: rating write failed, product rating stale",
			"product_id", productID.Hex(), "error", err)
	}
}

// RefreshRating exposes the recompute for reconciliation passes (e.g. a
// moderation flow flipping isApproved outside the create/delete paths).
func (s *ReviewService) RefreshRating(ctx context.Context, productID primitive.ObjectID) error {
	rating, err := s.reviews.AggregateRating(ctx, productID)
	if err != nil {
		return fmt.Errorf("services: aggregate rating: %w", err)
	}
	rating.Average = math.Round(rating.Average*10) / 10
	return s.products.UpdateRating(ctx, productID, rating)
}
