package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/pkg/auth"
	"github.com/aurigalabs/storefront/pkg/event"
)

// ErrInvalidCredentials covers both unknown email and wrong password, so
// responses don't leak which one failed.
var ErrInvalidCredentials = errors.New("services: invalid credentials")

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
}

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates a user with a bcrypt-hashed password. A duplicate email
// surfaces as repositories.ErrDuplicate.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{Name: name, Email: email, Password: hash, Role: "user"}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}

	event.FireAsync(event.UserRegistered, user)
	return user, nil
}

// Login verifies credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}
