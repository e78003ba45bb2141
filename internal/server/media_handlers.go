package server

import (
	"fmt"
	"io"

	"inkwell/internal/media"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadMedia handles POST /api/media/upload (multipart, field "media").
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	principal := principalFrom(c)

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid multipart form"))
	}

	files := form.File["media"]
	if len(files) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No files uploaded"))
	}
	if len(files) > s.mediaStore.MaxFiles() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(fmt.Sprintf("Too many files. Maximum is %d files.", s.mediaStore.MaxFiles())))
	}

	uploaded := make([]*models.MediaFile, 0, len(files))
	for _, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}
		content, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}

		file, err := s.mediaStore.Save(media.SaveInput{
			OriginalName: fileHeader.Filename,
			Content:      content,
			UploadedBy:   principal.ID,
		})
		if err != nil {
			return respondServiceError(c, err)
		}
		uploaded = append(uploaded, file)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Files uploaded successfully",
		"files":   uploaded,
	})
}

// ServeMediaFile handles GET /api/media/file/:filename
func (s *Server) ServeMediaFile(c *fiber.Ctx) error {
	filename := c.Params("filename")

	resolved, err := s.mediaStore.Resolve(filename)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := c.SendFile(resolved); err != nil {
		return respondServiceError(c, models.NewNotFoundError("File"))
	}
	c.Response().Header.SetContentType(s.mediaStore.ContentType(filename))
	c.Set("Cache-Control", "public, max-age=31536000") // cache for 1 year
	return nil
}

// DeleteMediaFile handles DELETE /api/media/file/:filename
func (s *Server) DeleteMediaFile(c *fiber.Ctx) error {
	if err := s.mediaStore.Delete(c.Params("filename")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "File deleted successfully"})
}
