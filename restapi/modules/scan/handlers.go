// Package scan provides the end-to-end scan REST endpoint: parse a
// manifest, look up advisories for every dependency, and rank fix
// suggestions.
package scan

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/depscout/depscout-backend/internal/osv"
	"github.com/depscout/depscout-backend/internal/suggest"
	"github.com/depscout/depscout-backend/model"
	"github.com/depscout/depscout-backend/restapi/modules/manifests"
	"github.com/depscout/depscout-backend/util"
)

var logger = util.InitLogger()

// ScanRequest is the request body for POST /api/v1/scan.
type ScanRequest struct {
	Text         string `json:"text"`
	ManifestType string `json:"manifest_type"`
}

// ScanResponse is the success payload of the scan endpoint.
type ScanResponse struct {
	Dependencies []model.Dependency      `json:"dependencies"`
	Count        int                     `json:"count"`
	VulnResults  []model.VulnResult      `json:"vuln_results"`
	Suggestions  []model.FixSuggestion   `json:"suggestions"`
	Summary      model.SuggestionSummary `json:"summary"`
}

// ScanManifest handles POST /api/v1/scan.
func ScanManifest(client *osv.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ScanRequest
		if err := c.BodyParser(&req); err != nil {
			env := model.Failure(model.CodeInvalidInput, "request body must be a JSON object", err.Error())
			return c.Status(env.HTTPStatus()).JSON(env)
		}

		env := Scan(c.UserContext(), client, req)
		return c.Status(env.HTTPStatus()).JSON(env)
	}
}

// Scan is the transport-independent scan pipeline shared with the GraphQL
// surface.
func Scan(ctx context.Context, client *osv.Client, req ScanRequest) model.Envelope {
	parseEnv := manifests.Parse(manifests.ParseRequest{Text: req.Text, ManifestType: req.ManifestType})
	if !parseEnv.OK {
		return parseEnv
	}
	parsed := parseEnv.Data.(manifests.ParseResponse)

	results, err := client.Lookup(ctx, parsed.Dependencies)
	if err != nil {
		logger.Sugar().Errorf("Advisory lookup failed: %v", err)
		return model.Failure(osv.ErrorCode(err), err.Error(), nil)
	}

	ranked := suggest.Suggest(results)
	return model.SuccessWithSource(ScanResponse{
		Dependencies: parsed.Dependencies,
		Count:        parsed.Count,
		VulnResults:  results,
		Suggestions:  ranked.Suggestions,
		Summary:      ranked.Summary,
	}, osv.Source, parseEnv.Meta.Warnings...)
}
