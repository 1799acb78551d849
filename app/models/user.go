package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the primary account model.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name"          json:"name"`
	Email     string             `bson:"email"         json:"email"`
	Password  string             `bson:"password"      json:"-"` // bcrypt hash, never serialised
	Role      string             `bson:"role"          json:"role"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}
