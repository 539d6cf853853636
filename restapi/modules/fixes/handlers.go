// Package fixes provides the fix-suggestion REST endpoint.
package fixes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/depscout/depscout-backend/internal/suggest"
	"github.com/depscout/depscout-backend/model"
)

// SuggestRequest is the request body for POST /api/v1/fixes/suggest. The
// pointer distinguishes an absent vuln_results field from an empty list.
type SuggestRequest struct {
	VulnResults *[]model.VulnResult `json:"vuln_results"`
}

// SuggestFixes handles POST /api/v1/fixes/suggest.
func SuggestFixes() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SuggestRequest
		if err := c.BodyParser(&req); err != nil {
			env := model.Failure(model.CodeInvalidInput, "vuln_results must be a list of dependency/vulnerability pairs", err.Error())
			return c.Status(env.HTTPStatus()).JSON(env)
		}
		if req.VulnResults == nil {
			env := model.Failure(model.CodeInvalidInput, "missing required field: vuln_results", nil)
			return c.Status(env.HTTPStatus()).JSON(env)
		}

		env := model.Success(suggest.Suggest(*req.VulnResults))
		return c.Status(env.HTTPStatus()).JSON(env)
	}
}
