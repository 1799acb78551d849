package seeders

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/app/services"
)

func init() {
	Register("settings", SeedSettings)
	Register("products", SeedProducts)
}

// SeedSettings installs the default store configuration. Upserts by key, so
// re-running never duplicates and never overwrites an admin edit wholesale
// beyond restoring the defaults.
func SeedSettings(ctx context.Context, _ *mongo.Database) error {
	repo := repositories.NewSettingsRepository()

	defaults := []models.Setting{
		{Key: "store.name", Value: "Storefront", Type: "string", Category: "general", IsPublic: true, IsEditable: true},
		{Key: "store.currency", Value: "USD", Type: "string", Category: "general", IsPublic: true, IsEditable: true},
		{Key: "store.tax_rate", Value: 0.0, Type: "number", Category: "checkout", IsPublic: true, IsEditable: true},
		{Key: "store.free_shipping_threshold", Value: 50.0, Type: "number", Category: "checkout", IsPublic: true, IsEditable: true},
		{Key: "store.schema_version", Value: 1, Type: "number", Category: "internal", IsPublic: false, IsEditable: false},
	}

	for i := range defaults {
		if err := repo.Upsert(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts inserts a handful of demo products through the product
// service so slugs are derived the same way they are in production.
func SeedProducts(ctx context.Context, _ *mongo.Database) error {
	svc := services.NewProductService(repositories.NewProductRepository())

	demo := []models.Product{
		{
			Name:         "Walnut Desk Organizer",
			Description:  "A five-slot walnut organizer for pens, cables, and sticky notes.",
			SKU:          "DESK-ORG-WAL",
			CurrentPrice: 34.00,
			Brand:        "Hemlock & Co",
			Inventory:    models.Inventory{Quantity: 120, TrackQuantity: true},
			IsActive:     true,
		},
		{
			Name:         "Ceramic Pour-Over Set",
			Description:  "Dripper, carafe, and two cups in matte stoneware.",
			SKU:          "COFFEE-POUR-SET",
			CurrentPrice: 58.50,
			Brand:        "Morrow",
			Inventory:    models.Inventory{Quantity: 45, TrackQuantity: true},
			IsActive:     true,
			IsFeatured:   true,
		},
		{
			Name:         "Linen Throw Blanket",
			Description:  "Stonewashed linen, 130x170cm, in four colours.",
			SKU:          "HOME-THROW-LIN",
			CurrentPrice: 89.00,
			Brand:        "Morrow",
			Inventory:    models.Inventory{Quantity: 30, TrackQuantity: true},
			IsActive:     true,
		},
	}

	for i := range demo {
		err := svc.Create(ctx, &demo[i])
		if errors.Is(err, repositories.ErrDuplicate) {
			continue // already seeded (SKU collision), keep going
		}
		if err != nil {
			return err
		}
	}
	return nil
}
