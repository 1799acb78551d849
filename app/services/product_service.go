package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/pkg/metrics"
	"github.com/aurigalabs/storefront/pkg/slug"
)

// slugMaxProbes bounds the uniqueness loop. Exhausting it means roughly a
// thousand products share one base name; treat that as a conflict rather
// than probing forever.
const slugMaxProbes = 1000

// ErrSlugExhausted is returned when no unique slug candidate was found
// within slugMaxProbes attempts. The save is aborted; nothing is written.
var ErrSlugExhausted = errors.New("services: slug candidates exhausted")

// ProductStore is the persistence surface the product service needs.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindBySlug(ctx context.Context, slug string) (models.Product, error)
	SlugExists(ctx context.Context, slug string, exceptID primitive.ObjectID) (bool, error)
	All(ctx context.Context, page, limit int) ([]models.Product, repositories.Pagination, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductService owns product writes and the slug assignment that runs
// before each of them. Slug is a derived field: callers must not set it.
type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// Create assigns a unique slug from the product name and persists the
// product. If the uniqueness check cannot complete, the create fails
// entirely; no partial slug assignment.
func (s *ProductService) Create(ctx context.Context, p *models.Product) error {
	if err := s.assignSlug(ctx, p); err != nil {
		return err
	}
	return s.products.Create(ctx, p)
}

// Update persists changes to an existing product, re-deriving the slug only
// when the display name changed. Renaming back to a previous name reuses the
// product's own slug without self-conflict.
func (s *ProductService) Update(ctx context.Context, p *models.Product) error {
	existing, err := s.products.FindByID(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("services: load product for update: %w", err)
	}

	if existing.Name != p.Name || p.Slug == "" {
		if err := s.assignSlug(ctx, p); err != nil {
			return err
		}
	} else {
		p.Slug = existing.Slug
	}
	p.Rating = existing.Rating // materialized; owned by the review service
	p.CreatedAt = existing.CreatedAt

	return s.products.Update(ctx, p)
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (models.Product, error) {
	return s.products.FindBySlug(ctx, slug)
}

func (s *ProductService) List(ctx context.Context, page, limit int) ([]models.Product, repositories.Pagination, error) {
	return s.products.All(ctx, page, limit)
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.products.Delete(ctx, id)
}

// assignSlug derives the base slug from the name and probes the store for a
// free candidate: base, base-1, base-2, … The product's own id is excluded
// from the existence check.
func (s *ProductService) assignSlug(ctx context.Context, p *models.Product) error {
	base := slug.MakeOrFallback(p.Name)

	candidate := base
	for i := 0; i < slugMaxProbes; i++ {
		exists, err := s.products.SlugExists(ctx, candidate, p.ID)
		if err != nil {
			return fmt.Errorf("services: slug uniqueness check: %w", err)
		}
		if !exists {
			p.Slug = candidate
			metrics.SlugProbes.Observe(float64(i + 1))
			return nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i+1)
	}

	return fmt.Errorf("%w: base %q", ErrSlugExhausted, base)
}
