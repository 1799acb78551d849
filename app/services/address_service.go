package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/pkg/metrics"
)

// ErrBadAddressType rejects unknown address types before any write.
var ErrBadAddressType = errors.New("services: address type must be shipping, billing, or both")

// ErrNotOwner is returned when a user operates on another user's record.
var ErrNotOwner = errors.New("services: record belongs to another user")

// AddressStore is the persistence surface the address service needs.
type AddressStore interface {
	Create(ctx context.Context, a *models.Address) error
	Update(ctx context.Context, a *models.Address) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Address, error)
	ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error)
	ClearDefaults(ctx context.Context, userID primitive.ObjectID, types []string, exceptID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AddressService owns address writes and default-address exclusivity: for a
// given user, at most one address per overlapping type group carries
// isDefault. A "both" address belongs to the shipping group and the billing
// group, in both directions of the comparison.
type AddressService struct {
	addresses AddressStore
}

func NewAddressService(addresses AddressStore) *AddressService {
	return &AddressService{addresses: addresses}
}

// Save persists an address, clearing conflicting defaults first when this
// address is marked default.
//
// The clear and the save are two store operations, not one transaction: a
// crash between them can leave the user with no default in the group until
// the next default is set. That window is accepted; the clear runs first so
// two defaults are never visible at once.
func (s *AddressService) Save(ctx context.Context, a *models.Address) error {
	switch a.Type {
	case models.AddressShipping, models.AddressBilling, models.AddressBoth:
	default:
		return ErrBadAddressType
	}

	if a.IsDefault {
		cleared, err := s.addresses.ClearDefaults(ctx, a.UserID, overlappingTypes(a.Type), a.ID)
		if err != nil {
			return fmt.Errorf("services: clear conflicting defaults: %w", err)
		}
		metrics.DefaultAddressClears.Add(float64(cleared))
	}

	if a.ID.IsZero() {
		return s.addresses.Create(ctx, a)
	}
	return s.addresses.Update(ctx, a)
}

// SetDefault marks an existing address as the default for its type group.
func (s *AddressService) SetDefault(ctx context.Context, id, userID primitive.ObjectID) (models.Address, error) {
	a, err := s.addresses.FindByID(ctx, id)
	if err != nil {
		return models.Address{}, err
	}
	if a.UserID != userID {
		return models.Address{}, ErrNotOwner
	}

	a.IsDefault = true
	if err := s.Save(ctx, &a); err != nil {
		return models.Address{}, err
	}
	return a, nil
}

func (s *AddressService) Get(ctx context.Context, id primitive.ObjectID) (models.Address, error) {
	return s.addresses.FindByID(ctx, id)
}

func (s *AddressService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	return s.addresses.ByUser(ctx, userID)
}

func (s *AddressService) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	a, err := s.addresses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if a.UserID != userID {
		return ErrNotOwner
	}
	return s.addresses.Delete(ctx, id)
}

// overlappingTypes returns every type whose default group overlaps t.
// "both" overlaps everything; shipping and billing each overlap themselves
// and "both".
func overlappingTypes(t string) []string {
	all := []string{models.AddressShipping, models.AddressBilling, models.AddressBoth}

	types := make([]string, 0, len(all))
	for _, candidate := range all {
		if models.OverlapsType(t, candidate) {
			types = append(types, candidate)
		}
	}
	return types
}
