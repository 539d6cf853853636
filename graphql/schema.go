// Package graphql assembles the root GraphQL schema from the module query
// fields.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/depscout/depscout-backend/graphql/modules/scan"
	"github.com/depscout/depscout-backend/internal/osv"
)

// CreateSchema builds the root schema with all module queries mounted.
func CreateSchema(client *osv.Client) (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range scan.GetQueryFields(client) {
		fields[name] = field
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: fields,
		}),
	})
}
