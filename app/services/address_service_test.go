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

// fakeAddressStore keeps addresses in memory and implements the bulk default
// clear the same way the Mongo repository does with UpdateMany.
type fakeAddressStore struct {
	byID map[primitive.ObjectID]models.Address
}

func newFakeAddressStore() *fakeAddressStore {
	return &fakeAddressStore{byID: map[primitive.ObjectID]models.Address{}}
}

func (f *fakeAddressStore) Create(_ context.Context, a *models.Address) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAddressStore) Update(_ context.Context, a *models.Address) error {
	if _, ok := f.byID[a.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAddressStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Address, error) {
	a, ok := f.byID[id]
	if !ok {
		return models.Address{}, repositories.ErrNotFound
	}
	return a, nil
}

func (f *fakeAddressStore) ByUser(_ context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	var out []models.Address
	for _, a := range f.byID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAddressStore) ClearDefaults(_ context.Context, userID primitive.ObjectID, types []string, exceptID primitive.ObjectID) (int64, error) {
	match := map[string]bool{}
	for _, t := range types {
		match[t] = true
	}
	var cleared int64
	for id, a := range f.byID {
		if a.UserID == userID && a.IsDefault && match[a.Type] && id != exceptID {
			a.IsDefault = false
			f.byID[id] = a
			cleared++
		}
	}
	return cleared, nil
}

func (f *fakeAddressStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeAddressStore) defaults(userID primitive.ObjectID) []models.Address {
	var out []models.Address
	for _, a := range f.byID {
		if a.UserID == userID && a.IsDefault {
			out = append(out, a)
		}
	}
	return out
}

func seedAddress(t *testing.T, store *fakeAddressStore, userID primitive.ObjectID, typ string, isDefault bool) models.Address {
	t.Helper()
	a := models.Address{UserID: userID, Type: typ, IsDefault: isDefault}
	require.NoError(t, store.Create(context.Background(), &a))
	return a
}

func TestSaveDefaultShippingClearsShippingAndBoth(t *testing.T) {
	store := newFakeAddressStore()
	svc := services.NewAddressService(store)
	user := primitive.NewObjectID()

	oldShipping := seedAddress(t, store, user, models.AddressShipping, true)
	oldBoth := seedAddress(t, store, user, models.AddressBoth, true)
	billing := seedAddress(t, store, user, models.AddressBilling, true)

	next := models.Address{UserID: user, Type: models.AddressShipping, IsDefault: true}
	require.NoError(t, svc.Save(context.Background(), &next))

	require.False(t, store.byID[oldShipping.ID].IsDefault)
	require.False(t, store.byID[oldBoth.ID].IsDefault)
	// Billing is a separate group; its default survives.
	require.True(t, store.byID[billing.ID].IsDefault)
	require.True(t, store.byID[next.ID].IsDefault)
}

func TestSaveDefaultBothClearsEveryGroup(t *testing.T) {
	store := newFakeAddressStore()
	svc := services.NewAddressService(store)
	user := primitive.NewObjectID()

	shipping := seedAddress(t, store, user, models.AddressShipping, true)
	billing := seedAddress(t, store, user, models.AddressBilling, true)

	next := models.Address{UserID: user, Type: models.AddressBoth, IsDefault: true}
	require.NoError(t, svc.Save(context.Background(), &next))

	require.False(t, store.byID[shipping.ID].IsDefault)
	require.False(t, store.byID[billing.ID].IsDefault)
	require.Len(t, store.defaults(user), 1)
}

func TestSaveNonDefaultLeavesOthersAlone(t *testing.T) {
	store := newFakeAddressStore()
	svc := services.NewAddressService(store)
	user := primitive.NewObjectID()

	existing := seedAddress(t, store, user, models.AddressShipping, true)

	next := models.Address{UserID: user, Type: models.AddressShipping, IsDefault: false}
	require.NoError(t, svc.Save(context.Background(), &next))
	require.True(t, store.byID[existing.ID].IsDefault)
}

func TestSaveDoesNotTouchOtherUsers(t *testing.T) {
	store := newFakeAddressStore()
	svc := services.NewAddressService(store)
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	bobDefault := seedAddress(t, store, bob, models.AddressShipping, true)

	next := models.Address{UserID: alice, Type: models.AddressShipping, IsDefault: true}
	require.NoError(t, svc.Save(context.Background(), &next))
	require.True(t, store.byID[bobDefault.ID].IsDefault)
}

func TestSaveRejectsUnknownType(t *testing.T) {
	svc := services.NewAddressService(newFakeAddressStore())

	a := models.Address{UserID: primitive.NewObjectID(), Type: "warehouse", IsDefault: true}
	require.ErrorIs(t, svc.Save(context.Background(), &a), services.ErrBadAddressType)
}

func TestSetDefaultPromotesExistingAddress(t *testing.T) {
	store := newFakeAddressStore()
	svc := services.NewAddressService(store)
	user := primitive.NewObjectID()

	current := seedAddress(t, store, user, models.AddressShipping, true)
	candidate := seedAddress(t, store, user, models.AddressShipping, false)

	promoted, err := svc.SetDefault(context.Background(), candidate.ID, user)
	require.NoError(t, err)
	require.True(t, promoted.IsDefault)
	require.False(t, store.byID[current.ID].IsDefault)
	require.Len(t, store.defaults(user), 1)
}

func TestSetDefaultRejectsForeignAddress(t *testing.T) {
	store := newFakeAddressStore()
	svc := services.NewAddressService(store)

	owner := primitive.NewObjectID()
	a := seedAddress(t, store, owner, models.AddressBilling, false)

	_, err := svc.SetDefault(context.Background(), a.ID, primitive.NewObjectID())
	require.ErrorIs(t, err, services.ErrNotOwner)
	require.False(t, store.byID[a.ID].IsDefault)
}

func TestDeleteRejectsForeignAddress(t *testing.T) {
	store := newFakeAddressStore()
	svc := services.NewAddressService(store)

	owner := primitive.NewObjectID()
	a := seedAddress(t, store, owner, models.AddressShipping, false)

	err := svc.Delete(context.Background(), a.ID, primitive.NewObjectID())
	require.ErrorIs(t, err, services.ErrNotOwner)

	require.NoError(t, svc.Delete(context.Background(), a.ID, owner))
	_, err = store.FindByID(context.Background(), a.ID)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}
