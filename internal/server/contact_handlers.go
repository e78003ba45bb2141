package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// contactRequest is the accepted body for creating or updating a contact.
// isActive and order are loosely typed: a missing isActive defaults to true,
// and order tolerates numeric strings, defaulting to 0 when unparseable.
type contactRequest struct {
	Type     string `json:"type"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Icon     string `json:"icon"`
	IsActive *bool  `json:"isActive"`
	Order    any    `json:"order"`
}

func (r contactRequest) toInput() service.ContactInput {
	return service.ContactInput{
		Type:     r.Type,
		Label:    r.Label,
		Value:    r.Value,
		Icon:     r.Icon,
		IsActive: r.IsActive,
		Order:    r.Order,
	}
}

// GetContacts handles GET /api/contacts
func (s *Server) GetContacts(c *fiber.Ctx) error {
	contacts, err := s.contactService.ListPublic(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(contacts)
}

// GetContactsAdmin handles GET /api/contacts/admin
func (s *Server) GetContactsAdmin(c *fiber.Ctx) error {
	contacts, err := s.contactService.ListAdmin(c.Context(), principalFrom(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(contacts)
}

// CreateContact handles POST /api/contacts
func (s *Server) CreateContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	contact, err := s.contactService.Create(c.Context(), principalFrom(c), req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// UpdateContact handles PUT /api/contacts/:id
func (s *Server) UpdateContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	contact, err := s.contactService.Update(c.Context(), principalFrom(c), c.Params("id"), req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(contact)
}

// DeleteContact handles DELETE /api/contacts/:id
func (s *Server) DeleteContact(c *fiber.Ctx) error {
	if err := s.contactService.Delete(c.Context(), principalFrom(c), c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Contact deleted successfully"})
}
