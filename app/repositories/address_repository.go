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

// AddressRepository handles the addresses collection.
type AddressRepository struct {
	col *mongo.Collection
}

func NewAddressRepository() *AddressRepository {
	return &AddressRepository{col: database.Collection("addresses")}
}

func (r *AddressRepository) Create(ctx context.Context, a *models.Address) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("addresses: insert: %w", translate(err))
	}
	return nil
}

func (r *AddressRepository) Update(ctx context.Context, a *models.Address) error {
	a.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("addresses: replace: %w", translate(err))
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Address, error) {
	var a models.Address
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	return a, translate(err)
}

// ByUser returns all of a user's addresses, defaults first.
func (r *AddressRepository) ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, options.Find().
		SetSort(bson.D{{Key: "isDefault", Value: -1}, {Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("addresses: find by user: %w", err)
	}
	defer cur.Close(ctx)

	var addresses []models.Address
	if err := cur.All(ctx, &addresses); err != nil {
		return nil, fmt.Errorf("addresses: decode: %w", err)
	}
	return addresses, nil
}

// ClearDefaults bulk-clears isDefault on the user's addresses whose type is
// one of types, excluding exceptID. Returns how many documents changed.
func (r *AddressRepository) ClearDefaults(ctx context.Context, userID primitive.ObjectID, types []string, exceptID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"userId":    userID,
		"type":      bson.M{"$in": types},
		"isDefault": true,
	}
	if !exceptID.IsZero() {
		filter["_id"] = bson.M{"$ne": exceptID}
	}

	res, err := r.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{
		"isDefault": false,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return 0, fmt.Errorf("addresses: clear defaults: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *AddressRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("addresses: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
