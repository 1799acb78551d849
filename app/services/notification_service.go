package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/pkg/event"
	"github.com/aurigalabs/storefront/pkg/logger"
)

// NotificationStore is the persistence surface the notification service needs.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Notification, repositories.Pagination, error)
	MarkRead(ctx context.Context, id, userID primitive.ObjectID) error
	UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// Pusher delivers a payload to a connected user, if any. Satisfied by the
// WebSocket hub; a nil Pusher disables live push.
type Pusher interface {
	PushToUser(userID string, payload []byte)
}

// NotificationService stores notifications and pushes them to connected
// clients over the WebSocket hub.
type NotificationService struct {
	notifications NotificationStore
	pusher        Pusher
}

func NewNotificationService(notifications NotificationStore, pusher Pusher) *NotificationService {
	return &NotificationService{notifications: notifications, pusher: pusher}
}

// Notify persists a notification and pushes it to the user's open sockets.
// Push failures never fail the write; the notification is already stored.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) error {
	if n.Priority == "" {
		n.Priority = "medium"
	}
	if n.Type == "" {
		n.Type = models.NotifySystem
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}

	if s.pusher != nil {
		payload, err := json.Marshal(n)
		if err == nil {
			s.pusher.PushToUser(n.UserID.Hex(), payload)
		}
	}
	return nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Notification, repositories.Pagination, error) {
	return s.notifications.ByUser(ctx, userID, page, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notifications.UnreadCount(ctx, userID)
}

// RegisterListeners subscribes the service to domain events so other write
// paths produce notifications without importing this package.
func (s *NotificationService) RegisterListeners() {
	event.Listen(event.OrderCreated, func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		n := models.Notification{
			UserID:   order.UserID,
			Title:    "Order placed",
			Message:  fmt.Sprintf("Your order %s has been received.", order.OrderNumber),
			Type:     models.NotifyOrder,
			Priority: "high",
			Data:     map[string]interface{}{"orderNumber": order.OrderNumber},
		}
		if err := s.Notify(context.Background(), &n); err != nil {
			logger.Warn("notification: order listener failed", "error", err)
		}
	})

	event.Listen(event.UserRegistered, func(payload interface{}) {
		user, ok := payload.(models.User)
		if !ok {
			return
		}
		n := models.Notification{
			UserID:  user.ID,
			Title:   "Welcome",
			Message: fmt.Sprintf("Welcome to the store, %s!", user.Name),
			Type:    models.NotifyAccount,
		}
		if err := s.Notify(context.Background(), &n); err != nil {
			logger.Warn("notification: welcome listener failed", "error", err)
		}
	})
}
