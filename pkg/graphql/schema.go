// Package graphql builds the executable schema behind the read-only
// catalogue endpoint. The root query (products, product by id) lives with
// its controller; only schema assembly happens here.
package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema creates a new GraphQL schema from a provided RootQuery.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}
