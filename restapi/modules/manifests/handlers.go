// Package manifests provides the manifest-parsing REST endpoint.
package manifests

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/depscout/depscout-backend/internal/manifest"
	"github.com/depscout/depscout-backend/model"
	"github.com/depscout/depscout-backend/util"
)

var logger = util.InitLogger()

// ParseRequest is the request body for POST /api/v1/manifests/parse.
type ParseRequest struct {
	Text         string `json:"text"`
	ManifestType string `json:"manifest_type"`
}

// ParseResponse is the success payload of the parse endpoint.
type ParseResponse struct {
	Dependencies []model.Dependency `json:"dependencies"`
	Count        int                `json:"count"`
}

// ParseManifest handles POST /api/v1/manifests/parse.
func ParseManifest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ParseRequest
		if err := c.BodyParser(&req); err != nil {
			return respond(c, model.Failure(model.CodeInvalidInput, "request body must be a JSON object", err.Error()))
		}
		return respond(c, Parse(req))
	}
}

// Parse is the manifest-parsing entry point behind the envelope boundary.
// It is transport-independent so the GraphQL surface can reuse it.
func Parse(req ParseRequest) model.Envelope {
	deps, err := manifest.Parse(req.ManifestType, req.Text)
	if err != nil {
		var parseErr *manifest.ParseError
		switch {
		case errors.As(err, &parseErr):
			logger.Sugar().Warnf("Manifest parse failure: %v", parseErr)
			return model.Failure(model.CodeParseError, parseErr.Error(), fiber.Map{
				"manifest_type": parseErr.ManifestType,
			})
		case errors.Is(err, manifest.ErrUnsupportedType):
			return model.Failure(model.CodeInvalidInput, err.Error(), fiber.Map{
				"supported": model.SupportedManifestTypes(),
			})
		default:
			return model.Failure(model.CodeInvalidInput, err.Error(), nil)
		}
	}

	if len(deps) == 0 {
		return model.Success(ParseResponse{Dependencies: deps, Count: 0}, "No dependencies found in manifest")
	}
	return model.Success(ParseResponse{Dependencies: deps, Count: len(deps)})
}

func respond(c *fiber.Ctx, env model.Envelope) error {
	return c.Status(env.HTTPStatus()).JSON(env)
}
