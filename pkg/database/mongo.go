// Package database owns the MongoDB connection and the index bootstrap.
//
// Connect is called once at startup; the resulting handles are shared by the
// repositories. EnsureIndexes creates the unique and query indexes the
// consistency routines rely on — in particular the unique indexes that turn
// slug and order-number collisions into storage conflicts instead of silent
// double writes.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aurigalabs/storefront/config"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

// Connect opens the MongoDB client and verifies the connection with a ping.
// Returns an error instead of calling log.Fatal so the caller can shut down
// gracefully.
func Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	Client = client
	DB = client.Database(config.MongoDatabase())
	return nil
}

// Disconnect closes the client. Safe to call when Connect never succeeded.
func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}

// Collection returns a handle on the named collection of the app database.
func Collection(name string) *mongo.Collection {
	return DB.Collection(name)
}

// EnsureIndexes creates every index the application depends on. It is
// idempotent; CreateMany is a no-op for indexes that already exist.
func EnsureIndexes(ctx context.Context) error {
	type spec struct {
		collection string
		models     []mongo.IndexModel
	}

	unique := options.Index().SetUnique(true)

	specs := []spec{
		{
			collection: "products",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
				{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}}},
			},
		},
		{
			collection: "reviews",
			models: []mongo.IndexModel{
				// One review per user per product.
				{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "isApproved", Value: 1}}},
			},
		},
		{
			collection: "orders",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
			},
		},
		{
			collection: "users",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
		{
			collection: "addresses",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "type", Value: 1}}},
			},
		},
		{
			collection: "notifications",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isRead", Value: 1}, {Key: "createdAt", Value: -1}}},
			},
		},
	}

	for _, s := range specs {
		if _, err := Collection(s.collection).Indexes().CreateMany(ctx, s.models); err != nil {
			return fmt.Errorf("database: ensure indexes on %s: %w", s.collection, err)
		}
	}
	return nil
}
