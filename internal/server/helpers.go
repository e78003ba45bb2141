package server

import (
	"inkwell/internal/identity"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// principalFrom returns the verified principal stored by AuthRequired, or nil
// on public routes.
func principalFrom(c *fiber.Ctx) *identity.Principal {
	if p, ok := c.Locals("principal").(*identity.Principal); ok {
		return p
	}
	return nil
}

// respondServiceError renders a service-layer error with its mapped status.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusFor(err), err)
}
