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

// OrderRepository handles the orders collection.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{col: database.Collection("orders")}
}

// Create inserts an order. The unique index on orderNumber turns a
// generator collision into ErrDuplicate rather than a second order with the
// same number.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}

	if _, err := r.col.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("orders: insert: %w", translate(err))
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var o models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	return o, translate(err)
}

func (r *OrderRepository) FindByNumber(ctx context.Context, number string) (models.Order, error) {
	var o models.Order
	err := r.col.FindOne(ctx, bson.M{"orderNumber": number}).Decode(&o)
	return o, translate(err)
}

// Count returns the total number of orders. The order-number generator
// derives its sequence component from this value.
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("orders: count: %w", err)
	}
	return n, nil
}

// ByUser lists a user's orders, newest first.
func (r *OrderRepository) ByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Order, Pagination, error) {
	filter := bson.M{"userId": userID}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("orders: count by user: %w", err)
	}

	skip, lim := skipLimit(page, limit)
	cur, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(lim))
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("orders: find by user: %w", err)
	}
	defer cur.Close(ctx)

	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, Pagination{}, fmt.Errorf("orders: decode: %w", err)
	}
	return orders, paginate(page, limit, total), nil
}

// UpdateStatus transitions an order's status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("orders: update status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
