package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/ctx"
	gqlschema "github.com/looklush/storefront/pkg/graphql"
)

// GraphQLController exposes a read-only catalogue query surface, for
// storefront clients that prefer one round trip over the REST endpoints.
type GraphQLController struct {
	schema graphql.Schema
}

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.String},
		"sku":           &graphql.Field{Type: graphql.String},
		"name":          &graphql.Field{Type: graphql.String},
		"price":         &graphql.Field{Type: graphql.Float},
		"description":   &graphql.Field{Type: graphql.String},
		"category":      &graphql.Field{Type: graphql.String},
		"colors":        &graphql.Field{Type: graphql.NewList(graphql.String)},
		"sizes":         &graphql.Field{Type: graphql.NewList(graphql.String)},
		"inStock":       &graphql.Field{Type: graphql.Boolean},
		"stockQuantity": &graphql.Field{Type: graphql.Int},
		"images":        &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

// NewGraphQLController builds the schema over the live catalogue.
func NewGraphQLController(catalog *services.Catalog) (*GraphQLController, error) {
	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.Products(), nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					product, ok := catalog.Get(id)
					if !ok {
						return nil, nil
					}
					return product, nil
				},
			},
		},
	})

	schema, err := gqlschema.NewSchema(rootQuery)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

type graphqlInput struct {
	Query     string                 `json:"query" validate:"required"`
	Variables map[string]interface{} `json:"variables"`
}

// Query executes one GraphQL query against the catalogue schema.
func (gc *GraphQLController) Query(c *ctx.Context) {
	var in graphqlInput
	if !c.BindJSON(&in) {
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         gc.schema,
		RequestString:  in.Query,
		VariableValues: in.Variables,
		Context:        c.Context(),
	})
	if len(result.Errors) > 0 {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
