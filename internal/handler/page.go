package handler

import (
	"errors"
	"fmt"
	"strconv"

	"go-bom-catalog/internal/apperr"
	"go-bom-catalog/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func init() {
	// Money and quantities go over the wire as JSON numbers, matching the
	// documented page envelope.
	decimal.MarshalJSONWithoutQuotes = true
}

// PagedResponse is the JSON page envelope for both list endpoints.
type PagedResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// validateBody runs the boundary validation and renders the first failure,
// returning true when the request was rejected.
func validateBody(c *fiber.Ctx, body interface{}) bool {
	errs := validator.ValidateStruct(body)
	if len(errs) == 0 {
		return false
	}
	first := errs[0]
	c.Status(400).JSON(fiber.Map{
		"error": fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag),
	})
	return true
}

// respondError maps the core's typed failures to HTTP statuses: NotFound to
// 404, constraint violations to 409, everything else to 500.
func respondError(c *fiber.Ctx, err error) error {
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(404).JSON(fiber.Map{"error": nf.Error()})
	}
	var ce *apperr.ConstraintError
	if errors.As(err, &ce) {
		return c.Status(409).JSON(fiber.Map{"error": ce.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}
