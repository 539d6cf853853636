// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/depscout/depscout-backend/internal/osv"
	"github.com/depscout/depscout-backend/restapi/modules/fixes"
	"github.com/depscout/depscout-backend/restapi/modules/manifests"
	"github.com/depscout/depscout-backend/restapi/modules/scan"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, client *osv.Client, schema graphql.Schema) {
	api := app.Group("/api/v1")

	api.Post("/manifests/parse", manifests.ParseManifest())
	api.Post("/fixes/suggest", fixes.SuggestFixes())
	api.Post("/scan", scan.ScanManifest(client))

	api.Post("/graphql", GraphQLHandler(schema))
}
