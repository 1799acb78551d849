package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/app/services"
	"github.com/aurigalabs/storefront/pkg/auth"
)

// fakeUserStore keeps users in memory and enforces the unique email index.
type fakeUserStore struct {
	byID map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[primitive.ObjectID]models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *models.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return repositories.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewAuthService(store)

	user, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", user.Password)
	require.True(t, auth.CheckPassword(user.Password, "correct horse battery"))
	require.Equal(t, "user", user.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "password-one")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Impostor", "ada@example.com", "password-two")
	require.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestLoginRoundTrip(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewAuthService(store)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, registered.ID.Hex(), claims.UserID)
	require.Equal(t, "user", claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}
