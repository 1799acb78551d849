package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
	OrderRefunded  = "refunded"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// OrderItem is a line item snapshot taken at checkout time.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name"      json:"name"`
	Price     float64            `bson:"price"     json:"price"`
	Quantity  int                `bson:"quantity"  json:"quantity"`
	Total     float64            `bson:"total"     json:"total"`
}

// OrderAddress is an embedded copy of a shipping or billing address. Orders
// keep their own copy so later address edits do not rewrite history.
type OrderAddress struct {
	FirstName  string `bson:"firstName"          json:"firstName"`
	LastName   string `bson:"lastName"           json:"lastName"`
	Company    string `bson:"company,omitempty"  json:"company,omitempty"`
	Address1   string `bson:"address1"           json:"address1"`
	Address2   string `bson:"address2,omitempty" json:"address2,omitempty"`
	City       string `bson:"city"               json:"city"`
	State      string `bson:"state"              json:"state"`
	PostalCode string `bson:"postalCode"         json:"postalCode"`
	Country    string `bson:"country"            json:"country"`
	Phone      string `bson:"phone,omitempty"    json:"phone,omitempty"`
}

// Order is a placed order. OrderNumber is assigned exactly once by the order
// service at creation and is immutable afterwards; a unique index backs it.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"            json:"id"`
	OrderNumber     string             `bson:"orderNumber"              json:"orderNumber"`
	UserID          primitive.ObjectID `bson:"userId"                   json:"userId"`
	Items           []OrderItem        `bson:"items"                    json:"items"`
	ShippingAddress OrderAddress       `bson:"shippingAddress"          json:"shippingAddress"`
	BillingAddress  OrderAddress       `bson:"billingAddress"           json:"billingAddress"`
	Subtotal        float64            `bson:"subtotal"                 json:"subtotal"`
	Tax             float64            `bson:"tax"                      json:"tax"`
	Shipping        float64            `bson:"shipping"                 json:"shipping"`
	Discount        float64            `bson:"discount"                 json:"discount"`
	Total           float64            `bson:"total"                    json:"total"`
	Currency        string             `bson:"currency"                 json:"currency"`
	Status          string             `bson:"status"                   json:"status"`
	PaymentStatus   string             `bson:"paymentStatus"            json:"paymentStatus"`
	Notes           string             `bson:"notes,omitempty"          json:"notes,omitempty"`
	TrackingNumber  string             `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"                json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"                json:"updatedAt"`
}
