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

// ProductRepository handles the products collection.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{col: database.Collection("products")}
}

// Create inserts a new product and assigns its generated id.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("products: insert: %w", translate(err))
	}
	return nil
}

// Update replaces an existing product document.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("products: replace: %w", translate(err))
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, translate(err)
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	return p, translate(err)
}

// SlugExists reports whether any product other than exceptID already holds
// the slug. Excluding the product's own id lets a rename back to the same
// name keep its slug without self-conflict.
func (r *ProductRepository) SlugExists(ctx context.Context, slug string, exceptID primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slug}
	if !exceptID.IsZero() {
		filter["_id"] = bson.M{"$ne": exceptID}
	}

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("products: slug exists: %w", err)
	}
	return n > 0, nil
}

// UpdateRating writes the materialized rating onto a product without
// touching any other field.
func (r *ProductRepository) UpdateRating(ctx context.Context, id primitive.ObjectID, rating models.Rating) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"rating":    rating,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("products: update rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// All returns active products, newest first, with pagination metadata.
func (r *ProductRepository) All(ctx context.Context, page, limit int) ([]models.Product, Pagination, error) {
	filter := bson.M{"isActive": true}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("products: count: %w", err)
	}

	skip, lim := skipLimit(page, limit)
	cur, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(lim))
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("products: find: %w", err)
	}
	defer cur.Close(ctx)

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, Pagination{}, fmt.Errorf("products: decode: %w", err)
	}
	return products, paginate(page, limit, total), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("products: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
