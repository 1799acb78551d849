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

// NotificationRepository handles the notifications collection.
type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{col: database.Collection("notifications")}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	n.CreatedAt = time.Now().UTC()
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}

	if _, err := r.col.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("notifications: insert: %w", translate(err))
	}
	return nil
}

// ByUser lists a user's notifications, newest first.
func (r *NotificationRepository) ByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Notification, Pagination, error) {
	filter := bson.M{"userId": userID}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("notifications: count: %w", err)
	}

	skip, lim := skipLimit(page, limit)
	cur, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(lim))
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("notifications: find: %w", err)
	}
	defer cur.Close(ctx)

	var list []models.Notification
	if err := cur.All(ctx, &list); err != nil {
		return nil, Pagination{}, fmt.Errorf("notifications: decode: %w", err)
	}
	return list, paginate(page, limit, total), nil
}

// MarkRead flags a notification as read. The userId filter stops users
// marking each other's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{"isRead": true, "readAt": now}})
	if err != nil {
		return fmt.Errorf("notifications: mark read: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UnreadCount returns how many unread notifications a user has.
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"userId": userID, "isRead": false})
	if err != nil {
		return 0, fmt.Errorf("notifications: unread count: %w", err)
	}
	return n, nil
}
