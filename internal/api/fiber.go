// Package api wires the Fiber application: middleware, health check, and
// the REST and GraphQL routes.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/graphql-go/graphql"

	"github.com/depscout/depscout-backend/internal/osv"
	"github.com/depscout/depscout-backend/restapi"
)

// NewFiberApp builds the HTTP application with all routes mounted.
func NewFiberApp(client *osv.Client, schema graphql.Schema) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "depscout-backend API v1.0",
		BodyLimit:   10 * 1024 * 1024, // 10MB limit for large lockfiles
		ReadTimeout: time.Second * 60,
	})

	app.Use(fiberrecover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
		})
	})

	restapi.SetupRoutes(app, client, schema)

	return app
}
