package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/app/services"
)

// fakeProductStore keeps products in memory and mirrors the repository's
// uniqueness semantics for slugs.
type fakeProductStore struct {
	byID map[primitive.ObjectID]models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{byID: map[primitive.ObjectID]models.Product{}}
}

func (f *fakeProductStore) Create(_ context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.byID[p.ID] = *p
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, p *models.Product) error {
	if _, ok := f.byID[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.byID[p.ID] = *p
	return nil
}

func (f *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return models.Product{}, repositories.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductStore) FindBySlug(_ context.Context, slug string) (models.Product, error) {
	for _, p := range f.byID {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Product{}, repositories.ErrNotFound
}

func (f *fakeProductStore) SlugExists(_ context.Context, slug string, exceptID primitive.ObjectID) (bool, error) {
	for id, p := range f.byID {
		if p.Slug == slug && id != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProductStore) All(_ context.Context, page, limit int) ([]models.Product, repositories.Pagination, error) {
	out := make([]models.Product, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, repositories.Pagination{Page: page, Limit: limit, Total: int64(len(out))}, nil
}

func (f *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestCreateDerivesSlugFromName(t *testing.T) {
	store := newFakeProductStore()
	svc := services.NewProductService(store)

	p := models.Product{Name: "  Blue Suede Shoes!  "}
	require.NoError(t, svc.Create(context.Background(), &p))
	require.Equal(t, "blue-suede-shoes", p.Slug)
}

func TestCreateSuffixesDuplicateNames(t *testing.T) {
	store := newFakeProductStore()
	svc := services.NewProductService(store)
	ctx := context.Background()

	first := models.Product{Name: "Linen Throw"}
	second := models.Product{Name: "Linen Throw"}
	third := models.Product{Name: "Linen Throw"}

	require.NoError(t, svc.Create(ctx, &first))
	require.NoError(t, svc.Create(ctx, &second))
	require.NoError(t, svc.Create(ctx, &third))

	require.Equal(t, "linen-throw", first.Slug)
	require.Equal(t, "linen-throw-1", second.Slug)
	require.Equal(t, "linen-throw-2", third.Slug)
}

func TestCreateFallsBackForSymbolOnlyName(t *testing.T) {
	store := newFakeProductStore()
	svc := services.NewProductService(store)

	p := models.Product{Name: "!!! ???"}
	require.NoError(t, svc.Create(context.Background(), &p))
	require.Equal(t, "item", p.Slug)
}

func TestUpdateKeepsSlugWhenNameUnchanged(t *testing.T) {
	store := newFakeProductStore()
	svc := services.NewProductService(store)
	ctx := context.Background()

	p := models.Product{Name: "Walnut Organizer"}
	require.NoError(t, svc.Create(ctx, &p))

	update := models.Product{ID: p.ID, Name: "Walnut Organizer", CurrentPrice: 12}
	require.NoError(t, svc.Update(ctx, &update))
	require.Equal(t, "walnut-organizer", update.Slug)
}

func TestUpdateRenameDoesNotConflictWithSelf(t *testing.T) {
	store := newFakeProductStore()
	svc := services.NewProductService(store)
	ctx := context.Background()

	p := models.Product{Name: "Pour Over Set"}
	require.NoError(t, svc.Create(ctx, &p))

	renamed := models.Product{ID: p.ID, Name: "Pour Over Kit"}
	require.NoError(t, svc.Update(ctx, &renamed))
	require.Equal(t, "pour-over-kit", renamed.Slug)

	// Renaming back reuses the original slug without a -1 suffix: the
	// product's own document is excluded from the probe.
	back := models.Product{ID: p.ID, Name: "Pour Over Set"}
	require.NoError(t, svc.Update(ctx, &back))
	require.Equal(t, "pour-over-set", back.Slug)
}

func TestUpdatePreservesMaterializedRating(t *testing.T) {
	store := newFakeProductStore()
	svc := services.NewProductService(store)
	ctx := context.Background()

	p := models.Product{Name: "Rated Product"}
	require.NoError(t, svc.Create(ctx, &p))

	// Simulate the review service having written an aggregate.
	stored := store.byID[p.ID]
	stored.Rating = models.Rating{Average: 4.5, Count: 2}
	store.byID[p.ID] = stored

	update := models.Product{ID: p.ID, Name: "Rated Product", Rating: models.Rating{Average: 1, Count: 99}}
	require.NoError(t, svc.Update(ctx, &update))
	require.Equal(t, models.Rating{Average: 4.5, Count: 2}, update.Rating)
}

// exhaustedStore reports every candidate as taken.
type exhaustedStore struct{ fakeProductStore }

func (e *exhaustedStore) SlugExists(context.Context, string, primitive.ObjectID) (bool, error) {
	return true, nil
}

func TestCreateFailsWhenSlugCandidatesExhausted(t *testing.T) {
	svc := services.NewProductService(&exhaustedStore{*newFakeProductStore()})

	p := models.Product{Name: "Crowded Name"}
	err := svc.Create(context.Background(), &p)
	require.ErrorIs(t, err, services.ErrSlugExhausted)
	require.Empty(t, p.Slug)
}
