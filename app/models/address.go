package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address type groups. A "both" address is a member of the shipping group
// and the billing group when default exclusivity is enforced.
const (
	AddressShipping = "shipping"
	AddressBilling  = "billing"
	AddressBoth     = "both"
)

// Address is a user's shipping and/or billing address. For a given user and
// type group, at most one address has IsDefault set; the address service
// clears conflicting defaults before every save.
type Address struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"     json:"id"`
	UserID     primitive.ObjectID `bson:"userId"            json:"userId"`
	FirstName  string             `bson:"firstName"         json:"firstName"`
	LastName   string             `bson:"lastName"          json:"lastName"`
	Company    string             `bson:"company,omitempty" json:"company,omitempty"`
	Address1   string             `bson:"address1"          json:"address1"`
	Address2   string             `bson:"address2,omitempty" json:"address2,omitempty"`
	City       string             `bson:"city"              json:"city"`
	State      string             `bson:"state"             json:"state"`
	PostalCode string             `bson:"postalCode"        json:"postalCode"`
	Country    string             `bson:"country"           json:"country"`
	Phone      string             `bson:"phone,omitempty"   json:"phone,omitempty"`
	Type       string             `bson:"type"              json:"type"`
	IsDefault  bool               `bson:"isDefault"         json:"isDefault"`
	IsActive   bool               `bson:"isActive"          json:"isActive"`
	CreatedAt  time.Time          `bson:"createdAt"         json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"         json:"updatedAt"`
}

// OverlapsType reports whether two address types share a default group.
func OverlapsType(a, b string) bool {
	return a == b || a == AddressBoth || b == AddressBoth
}
