package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/pkg/database"
)

// ReviewRepository handles the reviews collection.
type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{col: database.Collection("reviews")}
}

// Create inserts a review. The compound unique index on (userId, productId)
// makes a second review from the same user surface as ErrDuplicate.
func (r *ReviewRepository) Create(ctx context.Context, rev *models.Review) error {
	now := time.Now().UTC()
	rev.CreatedAt = now
	rev.UpdatedAt = now
	if rev.ID.IsZero() {
		rev.ID = primitive.NewObjectID()
	}

	if _, err := r.col.InsertOne(ctx, rev); err != nil {
		return fmt.Errorf("reviews: insert: %w", translate(err))
	}
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	var rev models.Review
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rev)
	return rev, translate(err)
}

// Delete removes a review and returns the deleted document, so the caller
// still knows which product's rating to recompute.
func (r *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	var rev models.Review
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&rev)
	if err != nil {
		return models.Review{}, translate(err)
	}
	return rev, nil
}

// AggregateRating recomputes the average rating and count over all approved
// reviews of a product. Zero approved reviews yields a zero Rating.
func (r *ReviewRepository) AggregateRating(ctx context.Context, productID primitive.ObjectID) (models.Rating, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"productId": productID, "isApproved": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$productId",
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return models.Rating{}, fmt.Errorf("reviews: aggregate rating: %w", err)
	}
	defer cur.Close(ctx)

	var results []struct {
		Average float64 `bson:"average"`
		Count   int64   `bson:"count"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return models.Rating{}, fmt.Errorf("reviews: decode aggregate: %w", err)
	}
	if len(results) == 0 {
		return models.Rating{}, nil
	}
	return models.Rating{Average: results[0].Average, Count: results[0].Count}, nil
}

// ByProduct lists a product's approved reviews, newest first.
func (r *ReviewRepository) ByProduct(ctx context.Context, productID primitive.ObjectID, page, limit int) ([]models.Review, Pagination, error) {
	filter := bson.M{"productId": productID, "isApproved": true}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("reviews: count: %w", err)
	}

	skip, lim := skipLimit(page, limit)
	cur, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(lim))
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("reviews: find: %w", err)
	}
	defer cur.Close(ctx)

	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, Pagination{}, fmt.Errorf("reviews: decode: %w", err)
	}
	return reviews, paginate(page, limit, total), nil
}
