// Package media implements the file-store capability for uploaded media:
// validate, store bytes under a generated name, serve and delete. Media bytes
// live on the filesystem; the database never sees them.
package media

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"github.com/google/uuid"

	// Register decoders for image dimension sniffing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	DefaultUploadDir       = "uploads"
	DefaultMaxUploadSizeMB = 50
	DefaultMaxFiles        = 10
)

// contentTypes maps the allowed extensions to their served content type.
// Anything outside this table is rejected at upload time.
var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".ogg":  "video/ogg",
	".mov":  "video/quicktime",
}

// Store saves, serves and deletes uploaded media files.
type Store struct {
	dir          string
	maxSizeBytes int64
	maxFiles     int
}

// NewStore creates a media store rooted at the configured upload directory,
// creating it if necessary.
func NewStore(cfg *config.Config) (*Store, error) {
	dir := DefaultUploadDir
	maxSizeMB := DefaultMaxUploadSizeMB
	maxFiles := DefaultMaxFiles

	if cfg != nil {
		if cfg.MediaUploadDir != "" {
			dir = cfg.MediaUploadDir
		}
		if cfg.MediaMaxUploadSizeMB > 0 {
			maxSizeMB = cfg.MediaMaxUploadSizeMB
		}
		if cfg.MediaMaxFiles > 0 {
			maxFiles = cfg.MediaMaxFiles
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &Store{
		dir:          dir,
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
		maxFiles:     maxFiles,
	}, nil
}

// MaxFiles is the per-request file count ceiling.
func (s *Store) MaxFiles() int { return s.maxFiles }

// MaxSizeBytes is the per-file size ceiling.
func (s *Store) MaxSizeBytes() int64 { return s.maxSizeBytes }

// SaveInput is one uploaded file to persist.
type SaveInput struct {
	OriginalName string
	Content      []byte
	UploadedBy   string
}

// Save validates and stores one file, returning its record. The stored name is
// generated, never derived from client input.
func (s *Store) Save(in SaveInput) (*models.MediaFile, error) {
	ext := strings.ToLower(filepath.Ext(in.OriginalName))
	mimetype, ok := contentTypes[ext]
	if !ok {
		return nil, models.NewValidationError("Invalid file type. Only images and videos are allowed.")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file content")
	}
	if int64(len(in.Content)) > s.maxSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large. Maximum size is %dMB.", s.maxSizeBytes/(1024*1024)))
	}

	filename := fmt.Sprintf("media-%s%s", uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, filename), in.Content, 0o644); err != nil {
		return nil, models.NewServiceUnavailableError(err)
	}

	kind := "video"
	if strings.HasPrefix(mimetype, "image/") {
		kind = "image"
	}

	file := &models.MediaFile{
		ID:           filename,
		OriginalName: in.OriginalName,
		Filename:     filename,
		Mimetype:     mimetype,
		Size:         int64(len(in.Content)),
		Path:         "/api/media/file/" + filename,
		Type:         kind,
		UploadedAt:   time.Now().UTC(),
		UploadedBy:   in.UploadedBy,
	}

	if kind == "image" {
		if dims, _, err := image.DecodeConfig(bytes.NewReader(in.Content)); err == nil {
			file.Width = dims.Width
			file.Height = dims.Height
		}
	}

	observability.MediaUploads.WithLabelValues(kind).Inc()
	return file, nil
}

// Resolve maps a stored filename to an absolute path, guarding against path
// escape. Returns Forbidden for names resolving outside the upload directory
// and NotFound for absent files.
func (s *Store) Resolve(filename string) (string, error) {
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	resolved, err := filepath.Abs(filepath.Join(s.dir, filename))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if resolved != root && !strings.HasPrefix(resolved, root+string(os.PathSeparator)) {
		return "", models.NewForbiddenError("Access denied")
	}
	if resolved == root {
		return "", models.NewNotFoundError("File")
	}

	if _, err := os.Stat(resolved); err != nil {
		return "", models.NewNotFoundError("File")
	}
	return resolved, nil
}

// ContentType infers the served content type from the file extension.
func (s *Store) ContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Delete removes a stored file, with the same path-escape guard as Resolve.
func (s *Store) Delete(filename string) error {
	resolved, err := s.Resolve(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(resolved); err != nil {
		return models.NewServiceUnavailableError(err)
	}
	return nil
}
