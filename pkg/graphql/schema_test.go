package graphql

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/app/services"
)

type fakeProductStore struct {
	products []models.Product
}

func (f *fakeProductStore) Create(ctx context.Context, p *models.Product) error {
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductStore) Update(ctx context.Context, p *models.Product) error { return nil }

func (f *fakeProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, repositories.ErrNotFound
}

func (f *fakeProductStore) FindBySlug(ctx context.Context, slug string) (models.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Product{}, repositories.ErrNotFound
}

func (f *fakeProductStore) SlugExists(ctx context.Context, slug string, exceptID primitive.ObjectID) (bool, error) {
	return false, nil
}

func (f *fakeProductStore) All(ctx context.Context, page, limit int) ([]models.Product, repositories.Pagination, error) {
	return f.products, repositories.Pagination{Page: page, Limit: limit, Total: int64(len(f.products))}, nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func catalogSchema(t *testing.T, store *fakeProductStore) graphql.Schema {
	t.Helper()
	schema, err := NewSchema(NewRootQuery(services.NewProductService(store)))
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return schema
}

func TestProductQueryResolvesAllFields(t *testing.T) {
	store := &fakeProductStore{products: []models.Product{{
		ID:           primitive.NewObjectID(),
		Name:         "Widget",
		Slug:         "widget",
		CurrentPrice: 19.99,
		Brand:        "Acme",
		Rating:       models.Rating{Average: 4.5, Count: 2},
	}}}
	schema := catalogSchema(t, store)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ product(slug: "widget") { name currentPrice brand rating { average count } } }`,
	})
	if len(result.Errors) > 0 {
		t.Fatalf("query errors: %v", result.Errors)
	}

	product := result.Data.(map[string]interface{})["product"].(map[string]interface{})
	if product["name"] != "Widget" {
		t.Errorf("name = %v, want Widget", product["name"])
	}
	if product["currentPrice"] != 19.99 {
		t.Errorf("currentPrice = %v, want 19.99", product["currentPrice"])
	}
	if product["brand"] != "Acme" {
		t.Errorf("brand = %v, want Acme", product["brand"])
	}
	rating, _ := product["rating"].(map[string]interface{})
	if rating == nil || rating["average"] != 4.5 {
		t.Errorf("rating = %v, want average 4.5", product["rating"])
	}
}

func TestProductsQueryListsCatalog(t *testing.T) {
	store := &fakeProductStore{products: []models.Product{
		{ID: primitive.NewObjectID(), Name: "Widget", Slug: "widget", CurrentPrice: 19.99},
		{ID: primitive.NewObjectID(), Name: "Gadget", Slug: "gadget", CurrentPrice: 24.50},
	}}
	schema := catalogSchema(t, store)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ products { slug currentPrice } }`,
	})
	if len(result.Errors) > 0 {
		t.Fatalf("query errors: %v", result.Errors)
	}

	list := result.Data.(map[string]interface{})["products"].([]interface{})
	if len(list) != 2 {
		t.Fatalf("got %d products, want 2", len(list))
	}
	first := list[0].(map[string]interface{})
	if first["slug"] != "widget" || first["currentPrice"] != 19.99 {
		t.Errorf("first product = %v, want widget at 19.99", first)
	}
}

func TestProductQueryUnknownSlugErrors(t *testing.T) {
	schema := catalogSchema(t, &fakeProductStore{})

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ product(slug: "missing") { name } }`,
	})
	if len(result.Errors) == 0 {
		t.Fatal("expected a resolver error for an unknown slug")
	}
}
