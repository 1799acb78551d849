package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/pkg/database"
)

// SettingsRepository handles the settings collection. The setting key is the
// document _id, so uniqueness needs no extra index.
type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{col: database.Collection("settings")}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (models.Setting, error) {
	var s models.Setting
	err := r.col.FindOne(ctx, bson.M{"_id": key}).Decode(&s)
	return s, translate(err)
}

// Upsert writes a setting, creating it when absent.
func (r *SettingsRepository) Upsert(ctx context.Context, s *models.Setting) error {
	s.UpdatedAt = time.Now().UTC()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.Key}, s, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("settings: upsert: %w", translate(err))
	}
	return nil
}

// Public returns every setting flagged as publicly readable.
func (r *SettingsRepository) Public(ctx context.Context) ([]models.Setting, error) {
	cur, err := r.col.Find(ctx, bson.M{"isPublic": true})
	if err != nil {
		return nil, fmt.Errorf("settings: find public: %w", err)
	}
	defer cur.Close(ctx)

	var list []models.Setting
	if err := cur.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("settings: decode: %w", err)
	}
	return list, nil
}
