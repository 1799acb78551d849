// Package graphql exposes a read-only catalog query surface built with
// graphql-go. Writes stay on the REST API.
package graphql

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/services"
)

// NewSchema creates a GraphQL schema from a provided RootQuery.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

var ratingType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Rating",
	Fields: graphql.Fields{
		"average": &graphql.Field{Type: graphql.Float},
		"count":   &graphql.Field{Type: graphql.Int},
	},
})

var imageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Image",
	Fields: graphql.Fields{
		"url":       &graphql.Field{Type: graphql.String},
		"alt":       &graphql.Field{Type: graphql.String},
		"isPrimary": &graphql.Field{Type: graphql.Boolean},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.ID,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product, _ := p.Source.(models.Product)
				return product.ID.Hex(), nil
			},
		},
		"name":        &graphql.Field{Type: graphql.String},
		"slug":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"currentPrice": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product, _ := p.Source.(models.Product)
				return product.CurrentPrice, nil
			},
		},
		"brand":  &graphql.Field{Type: graphql.String},
		"rating": &graphql.Field{Type: ratingType},
		"images": &graphql.Field{Type: graphql.NewList(imageType)},
	},
})

// NewRootQuery builds the catalog root query backed by the product service.
func NewRootQuery(products *services.ProductService) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"page":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, _ := p.Args["page"].(int)
					limit, _ := p.Args["limit"].(int)
					list, _, err := products.List(resolveCtx(p), page, limit)
					return list, err
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					slug, _ := p.Args["slug"].(string)
					return products.GetBySlug(resolveCtx(p), slug)
				},
			},
		},
	})
}

func resolveCtx(p graphql.ResolveParams) context.Context {
	if p.Context != nil {
		return p.Context
	}
	return context.Background()
}
