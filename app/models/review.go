package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a user's feedback on a product. A compound unique index on
// (userID, productID) enforces at most one review per user per product.
// Only approved reviews count towards the product's materialized rating.
type Review struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"        json:"id"`
	UserID             primitive.ObjectID `bson:"userId"               json:"userId"`
	ProductID          primitive.ObjectID `bson:"productId"            json:"productId"`
	Rating             int                `bson:"rating"               json:"rating"`
	Title              string             `bson:"title"                json:"title"`
	Comment            string             `bson:"comment"              json:"comment"`
	IsVerifiedPurchase bool               `bson:"isVerifiedPurchase"   json:"isVerifiedPurchase"`
	IsApproved         bool               `bson:"isApproved"           json:"isApproved"`
	HelpfulVotes       int                `bson:"helpfulVotes"         json:"helpfulVotes"`
	CreatedAt          time.Time          `bson:"createdAt"            json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"            json:"updatedAt"`
}
