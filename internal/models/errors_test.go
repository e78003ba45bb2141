package models

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: NewValidationError("bad input"), want: fiber.StatusBadRequest},
		{name: "unauthenticated", err: NewUnauthenticatedError("no credential"), want: fiber.StatusUnauthorized},
		{name: "forbidden", err: NewForbiddenError("not yours"), want: fiber.StatusForbidden},
		{name: "not found", err: NewNotFoundError("Post"), want: fiber.StatusNotFound},
		// A dependency failure is a server-side fault, not a caller problem.
		{name: "service unavailable", err: NewServiceUnavailableError(errors.New("connection refused")), want: fiber.StatusInternalServerError},
		{name: "internal", err: NewInternalError(errors.New("boom")), want: fiber.StatusInternalServerError},
		{name: "plain error", err: errors.New("unknown"), want: fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.name)
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Post not found", NewNotFoundError("Post").Error())
}
