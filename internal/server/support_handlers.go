package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// supportRequest is the accepted body for the public support form.
type supportRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CreateSupportMessage handles POST /api/support
func (s *Server) CreateSupportMessage(c *fiber.Ctx) error {
	var req supportRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.supportService.Create(c.Context(), service.CreateSupportMessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":           msg.ID,
		"message":      "Support message sent successfully",
		"telegramSent": msg.TelegramSent,
	})
}

// GetSupportMessages handles GET /api/support
func (s *Server) GetSupportMessages(c *fiber.Ctx) error {
	messages, err := s.supportService.ListRecent(c.Context(), principalFrom(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(messages)
}
