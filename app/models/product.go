package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is the materialized view of a product's approved reviews.
// Both fields are owned by the review service; callers never set them.
type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int64   `bson:"count"   json:"count"`
}

// Image is a product image reference.
type Image struct {
	URL       string `bson:"url"                 json:"url"`
	Alt       string `bson:"alt,omitempty"       json:"alt,omitempty"`
	IsPrimary bool   `bson:"isPrimary,omitempty" json:"isPrimary,omitempty"`
}

// Inventory tracks stock for a product.
type Inventory struct {
	Quantity       int  `bson:"quantity"       json:"quantity"`
	TrackQuantity  bool `bson:"trackQuantity"  json:"trackQuantity"`
	AllowBackorder bool `bson:"allowBackorder" json:"allowBackorder"`
}

// Attribute is a free-form name/value pair on a product.
type Attribute struct {
	Name  string `bson:"name"  json:"name"`
	Value string `bson:"value" json:"value"`
}

// Product is a catalogue item. Slug is derived from Name by the product
// service and is unique across the collection at all times.
type Product struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"              json:"id"`
	Name             string             `bson:"name"                       json:"name"`
	Slug             string             `bson:"slug"                       json:"slug"`
	Description      string             `bson:"description"                json:"description"`
	ShortDescription string             `bson:"shortDescription,omitempty" json:"shortDescription,omitempty"`
	SKU              string             `bson:"sku"                        json:"sku"`
	CurrentPrice     float64            `bson:"currentPrice"               json:"currentPrice"`
	OriginalPrice    float64            `bson:"originalPrice,omitempty"    json:"originalPrice,omitempty"`
	Brand            string             `bson:"brand"                      json:"brand"`
	Images           []Image            `bson:"images,omitempty"           json:"images,omitempty"`
	Inventory        Inventory          `bson:"inventory"                  json:"inventory"`
	Attributes       []Attribute        `bson:"attributes,omitempty"       json:"attributes,omitempty"`
	Tags             []string           `bson:"tags,omitempty"             json:"tags,omitempty"`
	IsActive         bool               `bson:"isActive"                   json:"isActive"`
	IsFeatured       bool               `bson:"isFeatured"                 json:"isFeatured"`
	Rating           Rating             `bson:"rating"                     json:"rating"`
	CreatedAt        time.Time          `bson:"createdAt"                  json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"                  json:"updatedAt"`
}
