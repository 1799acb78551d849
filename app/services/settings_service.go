package services

import (
	"context"
	"errors"
	"time"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/pkg/cache"
)

// ErrSettingLocked is returned when updating a setting flagged non-editable.
var ErrSettingLocked = errors.New("services: setting is not editable")

const (
	publicSettingsCacheKey = "settings:public"
	settingsCacheTTL       = 5 * time.Minute
)

// SettingsStore is the persistence surface the settings service needs.
type SettingsStore interface {
	Get(ctx context.Context, key string) (models.Setting, error)
	Upsert(ctx context.Context, s *models.Setting) error
	Public(ctx context.Context) ([]models.Setting, error)
}

// SettingsService reads and writes keyed settings, caching the public set
// in Redis and invalidating it on every write.
type SettingsService struct {
	settings SettingsStore
}

func NewSettingsService(settings SettingsStore) *SettingsService {
	return &SettingsService{settings: settings}
}

func (s *SettingsService) Get(ctx context.Context, key string) (models.Setting, error) {
	return s.settings.Get(ctx, key)
}

// Public returns the publicly readable settings, served from cache when warm.
func (s *SettingsService) Public(ctx context.Context) ([]models.Setting, error) {
	var cached []models.Setting
	if cache.Get(publicSettingsCacheKey, &cached) {
		return cached, nil
	}

	list, err := s.settings.Public(ctx)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(publicSettingsCacheKey, list, settingsCacheTTL)
	return list, nil
}

// Update writes a setting unless it is locked, then drops the public cache.
func (s *SettingsService) Update(ctx context.Context, setting *models.Setting) error {
	existing, err := s.settings.Get(ctx, setting.Key)
	if err == nil && !existing.IsEditable {
		return ErrSettingLocked
	}

	if err := s.settings.Upsert(ctx, setting); err != nil {
		return err
	}

	_ = cache.Del(publicSettingsCacheKey)
	return nil
}
