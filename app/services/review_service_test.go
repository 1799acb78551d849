package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/app/services"
)

// fakeReviewStore keeps reviews in memory, enforces the one-review-per-user
// index, and aggregates approved reviews the way the Mongo pipeline does.
type fakeReviewStore struct {
	byID map[primitive.ObjectID]models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{byID: map[primitive.ObjectID]models.Review{}}
}

func (f *fakeReviewStore) Create(_ context.Context, rev *models.Review) error {
	for _, existing := range f.byID {
		if existing.UserID == rev.UserID && existing.ProductID == rev.ProductID {
			return repositories.ErrDuplicate
		}
	}
	if rev.ID.IsZero() {
		rev.ID = primitive.NewObjectID()
	}
	f.byID[rev.ID] = *rev
	return nil
}

func (f *fakeReviewStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Review, error) {
	rev, ok := f.byID[id]
	if !ok {
		return models.Review{}, repositories.ErrNotFound
	}
	return rev, nil
}

func (f *fakeReviewStore) Delete(_ context.Context, id primitive.ObjectID) (models.Review, error) {
	rev, ok := f.byID[id]
	if !ok {
		return models.Review{}, repositories.ErrNotFound
	}
	delete(f.byID, id)
	return rev, nil
}

func (f *fakeReviewStore) AggregateRating(_ context.Context, productID primitive.ObjectID) (models.Rating, error) {
	var sum float64
	var count int64
	for _, rev := range f.byID {
		if rev.ProductID == productID && rev.IsApproved {
			sum += float64(rev.Rating)
			count++
		}
	}
	if count == 0 {
		return models.Rating{}, nil
	}
	return models.Rating{Average: sum / float64(count), Count: count}, nil
}

func (f *fakeReviewStore) ByProduct(_ context.Context, productID primitive.ObjectID, page, limit int) ([]models.Review, repositories.Pagination, error) {
	var out []models.Review
	for _, rev := range f.byID {
		if rev.ProductID == productID {
			out = append(out, rev)
		}
	}
	return out, repositories.Pagination{Page: page, Limit: limit, Total: int64(len(out))}, nil
}

// fakeRatingStore records the ratings written by the review service.
type fakeRatingStore struct {
	ratings map[primitive.ObjectID]models.Rating
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{ratings: map[primitive.ObjectID]models.Rating{}}
}

func (f *fakeRatingStore) UpdateRating(_ context.Context, id primitive.ObjectID, rating models.Rating) error {
	f.ratings[id] = rating
	return nil
}

func addReview(t *testing.T, svc *services.ReviewService, productID primitive.ObjectID, rating int) models.Review {
	t.Helper()
	rev := models.Review{
		UserID:     primitive.NewObjectID(),
		ProductID:  productID,
		Rating:     rating,
		Title:      "t",
		Comment:    "c",
		IsApproved: true,
	}
	require.NoError(t, svc.Create(context.Background(), &rev))
	return rev
}

func TestCreateRecomputesAverageAndCount(t *testing.T) {
	reviews := newFakeReviewStore()
	products := newFakeRatingStore()
	svc := services.NewReviewService(reviews, products)
	productID := primitive.NewObjectID()

	addReview(t, svc, productID, 4)
	addReview(t, svc, productID, 5)
	addReview(t, svc, productID, 3)

	require.Equal(t, models.Rating{Average: 4.0, Count: 3}, products.ratings[productID])
}

func TestAverageRoundsToOneDecimal(t *testing.T) {
	reviews := newFakeReviewStore()
	products := newFakeRatingStore()
	svc := services.NewReviewService(reviews, products)
	productID := primitive.NewObjectID()

	// 4+4+5 = 13/3 = 4.333… → 4.3
	addReview(t, svc, productID, 4)
	addReview(t, svc, productID, 4)
	addReview(t, svc, productID, 5)

	require.Equal(t, models.Rating{Average: 4.3, Count: 3}, products.ratings[productID])
}

func TestDeleteRecomputesWithoutRemovedReview(t *testing.T) {
	reviews := newFakeReviewStore()
	products := newFakeRatingStore()
	svc := services.NewReviewService(reviews, products)
	productID := primitive.NewObjectID()

	addReview(t, svc, productID, 4)
	addReview(t, svc, productID, 5)
	lowest := addReview(t, svc, productID, 3)

	require.NoError(t, svc.Delete(context.Background(), lowest.ID))
	require.Equal(t, models.Rating{Average: 4.5, Count: 2}, products.ratings[productID])
}

func TestDeletingLastReviewResetsRating(t *testing.T) {
	reviews := newFakeReviewStore()
	products := newFakeRatingStore()
	svc := services.NewReviewService(reviews, products)
	productID := primitive.NewObjectID()

	only := addReview(t, svc, productID, 5)
	require.Equal(t, models.Rating{Average: 5.0, Count: 1}, products.ratings[productID])

	require.NoError(t, svc.Delete(context.Background(), only.ID))
	require.Equal(t, models.Rating{Average: 0, Count: 0}, products.ratings[productID])
}

func TestUnapprovedReviewsExcludedFromAggregate(t *testing.T) {
	reviews := newFakeReviewStore()
	products := newFakeRatingStore()
	svc := services.NewReviewService(reviews, products)
	productID := primitive.NewObjectID()

	addReview(t, svc, productID, 5)

	pending := models.Review{
		UserID:     primitive.NewObjectID(),
		ProductID:  productID,
		Rating:     1,
		IsApproved: false,
	}
	require.NoError(t, svc.Create(context.Background(), &pending))

	require.Equal(t, models.Rating{Average: 5.0, Count: 1}, products.ratings[productID])
}

func TestCreateRejectsOutOfRangeRating(t *testing.T) {
	reviews := newFakeReviewStore()
	svc := services.NewReviewService(reviews, newFakeRatingStore())

	for _, rating := range []int{0, 6, -1} {
		rev := models.Review{UserID: primitive.NewObjectID(), ProductID: primitive.NewObjectID(), Rating: rating}
		require.ErrorIs(t, svc.Create(context.Background(), &rev), services.ErrRatingOutOfRange)
	}
	require.Empty(t, reviews.byID)
}

func TestSecondReviewFromSameUserRejected(t *testing.T) {
	reviews := newFakeReviewStore()
	products := newFakeRatingStore()
	svc := services.NewReviewService(reviews, products)
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	first := models.Review{UserID: userID, ProductID: productID, Rating: 5, IsApproved: true}
	require.NoError(t, svc.Create(context.Background(), &first))

	second := models.Review{UserID: userID, ProductID: productID, Rating: 1, IsApproved: true}
	require.ErrorIs(t, svc.Create(context.Background(), &second), repositories.ErrDuplicate)

	// The failed write must not have disturbed the aggregate.
	require.Equal(t, models.Rating{Average: 5.0, Count: 1}, products.ratings[productID])
}

func TestRefreshRatingReconcilesModerationChanges(t *testing.T) {
	reviews := newFakeReviewStore()
	products := newFakeRatingStore()
	svc := services.NewReviewService(reviews, products)
	productID := primitive.NewObjectID()

	rev := addReview(t, svc, productID, 2)

	// Moderation unapproves the review outside the create/delete paths.
	stored := reviews.byID[rev.ID]
	stored.IsApproved = false
	reviews.byID[rev.ID] = stored

	require.NoError(t, svc.RefreshRating(context.Background(), productID))
	require.Equal(t, models.Rating{Average: 0, Count: 0}, products.ratings[productID])
}
