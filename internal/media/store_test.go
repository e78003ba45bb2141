package media

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(&config.Config{
		MediaUploadDir:       t.TempDir(),
		MediaMaxUploadSizeMB: 1,
		MediaMaxFiles:        3,
	})
	require.NoError(t, err)
	return store
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestStore_Save_Image(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	file, err := store.Save(SaveInput{
		OriginalName: "photo.PNG",
		Content:      pngBytes(t, 12, 8),
		UploadedBy:   "author-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "photo.PNG", file.OriginalName)
	assert.True(t, strings.HasPrefix(file.Filename, "media-"), "stored name is generated: %s", file.Filename)
	assert.True(t, strings.HasSuffix(file.Filename, ".png"), "extension is preserved lowercased: %s", file.Filename)
	assert.Equal(t, "image/png", file.Mimetype)
	assert.Equal(t, "image", file.Type)
	assert.Equal(t, 12, file.Width)
	assert.Equal(t, 8, file.Height)
	assert.Equal(t, "/api/media/file/"+file.Filename, file.Path)
	assert.Equal(t, "author-1", file.UploadedBy)

	// Bytes really are on disk.
	resolved, err := store.Resolve(file.Filename)
	require.NoError(t, err)
	onDisk, err := os.ReadFile(resolved)
	require.NoError(t, err)
	assert.Equal(t, file.Size, int64(len(onDisk)))
}

func TestStore_Save_VideoHasNoDimensions(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	file, err := store.Save(SaveInput{
		OriginalName: "clip.mp4",
		Content:      []byte("not really a video but stored as-is"),
		UploadedBy:   "author-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "video", file.Type)
	assert.Equal(t, "video/mp4", file.Mimetype)
	assert.Zero(t, file.Width)
	assert.Zero(t, file.Height)
}

func TestStore_Save_Rejections(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	tests := []struct {
		name  string
		input SaveInput
	}{
		{name: "disallowed extension", input: SaveInput{OriginalName: "script.exe", Content: []byte("x")}},
		{name: "no extension", input: SaveInput{OriginalName: "README", Content: []byte("x")}},
		{name: "empty content", input: SaveInput{OriginalName: "a.png", Content: nil}},
		{name: "over size limit", input: SaveInput{OriginalName: "big.png", Content: make([]byte, 2<<20)}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := store.Save(tt.input)
			require.Error(t, err)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.CodeValidation, appErr.Code)
		})
	}
}

func TestStore_Resolve_PathEscape(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	for _, name := range []string{"../secret.txt", "../../etc/passwd", "a/../../b.png"} {
		_, err := store.Resolve(name)
		require.Error(t, err, "name %q must not resolve", name)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code, "name %q", name)
	}
}

func TestStore_Resolve_MissingFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	_, err := store.Resolve("media-does-not-exist.png")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	file, err := store.Save(SaveInput{OriginalName: "gone.png", Content: pngBytes(t, 1, 1)})
	require.NoError(t, err)

	require.NoError(t, store.Delete(file.Filename))

	_, err = store.Resolve(file.Filename)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	// Deleting again reports not found.
	err = store.Delete(file.Filename)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestStore_ContentType(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	assert.Equal(t, "image/webp", store.ContentType("x.webp"))
	assert.Equal(t, "video/quicktime", store.ContentType("x.MOV"))
	assert.Equal(t, "application/octet-stream", store.ContentType("x.bin"))
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewStore(&config.Config{MediaUploadDir: dir})
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
