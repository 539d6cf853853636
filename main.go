package main

import (
	gqlschema "github.com/depscout/depscout-backend/graphql"
	"github.com/depscout/depscout-backend/internal/api"
	"github.com/depscout/depscout-backend/internal/osv"
	"github.com/depscout/depscout-backend/util"
)

func main() {
	logger := util.InitLogger()

	client := osv.NewClient()

	schema, err := gqlschema.CreateSchema(client)
	if err != nil {
		logger.Sugar().Fatalf("Failed to create GraphQL schema: %v", err)
	}

	app := api.NewFiberApp(client, schema)

	port := util.GetEnvDefault("MS_PORT", "3000")
	logger.Sugar().Infof("Starting server on port %s", port)
	logger.Sugar().Infof("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + port); err != nil {
		logger.Sugar().Fatalf("Failed to start server: %v", err)
	}
}
