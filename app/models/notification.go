package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotifyOrder     = "order"
	NotifyProduct   = "product"
	NotifyPromotion = "promotion"
	NotifySystem    = "system"
	NotifyAccount   = "account"
)

// Notification is an in-app message for a user. New notifications are also
// pushed over the WebSocket hub to connected clients.
type Notification struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty"      json:"id"`
	UserID    primitive.ObjectID     `bson:"userId"             json:"userId"`
	Title     string                 `bson:"title"              json:"title"`
	Message   string                 `bson:"message"            json:"message"`
	Type      string                 `bson:"type"               json:"type"`
	Priority  string                 `bson:"priority"           json:"priority"`
	IsRead    bool                   `bson:"isRead"             json:"isRead"`
	ReadAt    *time.Time             `bson:"readAt,omitempty"   json:"readAt,omitempty"`
	Data      map[string]interface{} `bson:"data,omitempty"     json:"data,omitempty"`
	CreatedAt time.Time              `bson:"createdAt"          json:"createdAt"`
}
