package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/app/services"
)

// fakeSettingsStore keys settings by their _id like the Mongo repository.
type fakeSettingsStore struct {
	byKey map[string]models.Setting
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{byKey: map[string]models.Setting{}}
}

func (f *fakeSettingsStore) Get(_ context.Context, key string) (models.Setting, error) {
	s, ok := f.byKey[key]
	if !ok {
		return models.Setting{}, repositories.ErrNotFound
	}
	return s, nil
}

func (f *fakeSettingsStore) Upsert(_ context.Context, s *models.Setting) error {
	f.byKey[s.Key] = *s
	return nil
}

func (f *fakeSettingsStore) Public(context.Context) ([]models.Setting, error) {
	var out []models.Setting
	for _, s := range f.byKey {
		if s.IsPublic {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestUpdateRejectsLockedSetting(t *testing.T) {
	store := newFakeSettingsStore()
	svc := services.NewSettingsService(store)
	ctx := context.Background()

	locked := models.Setting{Key: "store.schema_version", Value: 1, IsEditable: false}
	require.NoError(t, store.Upsert(ctx, &locked))

	err := svc.Update(ctx, &models.Setting{Key: "store.schema_version", Value: 2, IsEditable: true})
	require.ErrorIs(t, err, services.ErrSettingLocked)
	require.Equal(t, 1, store.byKey["store.schema_version"].Value)
}

func TestUpdateWritesEditableSetting(t *testing.T) {
	store := newFakeSettingsStore()
	svc := services.NewSettingsService(store)
	ctx := context.Background()

	existing := models.Setting{Key: "store.name", Value: "Old", IsEditable: true}
	require.NoError(t, store.Upsert(ctx, &existing))

	next := models.Setting{Key: "store.name", Value: "New", IsEditable: true}
	require.NoError(t, svc.Update(ctx, &next))
	require.Equal(t, "New", store.byKey["store.name"].Value)
}

func TestUpdateCreatesMissingSetting(t *testing.T) {
	store := newFakeSettingsStore()
	svc := services.NewSettingsService(store)

	s := models.Setting{Key: "store.tagline", Value: "Hi", IsEditable: true}
	require.NoError(t, svc.Update(context.Background(), &s))
	require.Contains(t, store.byKey, "store.tagline")
}

func TestPublicFiltersPrivateSettings(t *testing.T) {
	store := newFakeSettingsStore()
	svc := services.NewSettingsService(store)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, &models.Setting{Key: "store.name", IsPublic: true}))
	require.NoError(t, store.Upsert(ctx, &models.Setting{Key: "store.secret", IsPublic: false}))

	// cache.RDB is nil in tests, so Public always reads through.
	list, err := svc.Public(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "store.name", list[0].Key)
}
