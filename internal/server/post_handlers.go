package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPublic(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetUserPosts handles GET /api/posts/user/:userId
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListByAuthor(c.Context(), principalFrom(c), c.Params("userId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// postRequest is the accepted body for creating or updating a post. A
// client-supplied authorId is deliberately not part of the schema.
type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.Context(), principalFrom(c), service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Update(c.Context(), principalFrom(c), c.Params("id"), service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.postService.Delete(c.Context(), principalFrom(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
		"id":      id,
	})
}
