package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTimestamp(t *testing.T, v any) time.Time {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "expected timestamp string, got %T", v)
	ts, err := time.Parse(time.RFC3339Nano, s)
	require.NoError(t, err)
	return ts
}

func TestPostLifecycle(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	// Author creates a post; the author id comes from the credential.
	resp, created := doJSON(t, app, http.MethodPost, "/api/posts", "token-alice", map[string]string{
		"title":   "First post",
		"content": "Hello from Alice",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	postID, _ := created["id"].(string)
	require.NotEmpty(t, postID)
	assert.Equal(t, "alice", created["authorId"])

	createdAt := parseTimestamp(t, created["createdAt"])
	updatedAt := parseTimestamp(t, created["updatedAt"])
	assert.False(t, updatedAt.Before(createdAt), "updatedAt must not precede createdAt on create")

	// Anyone can read it without credentials.
	resp, fetched := doJSON(t, app, http.MethodGet, "/api/posts/"+postID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "First post", fetched["title"])

	// It appears in the public listing.
	resp, list := doJSONList(t, app, "/api/posts", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)

	// A different principal cannot update it.
	resp, body := doJSON(t, app, http.MethodPut, "/api/posts/"+postID, "token-mallory", map[string]string{
		"title":   "Hijacked",
		"content": "Mine now",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "You can only update your own posts", body["error"])

	// Nor delete it.
	resp, body = doJSON(t, app, http.MethodDelete, "/api/posts/"+postID, "token-mallory", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "You can only delete your own posts", body["error"])

	// The record is untouched.
	_, fetched = doJSON(t, app, http.MethodGet, "/api/posts/"+postID, "", nil)
	assert.Equal(t, "First post", fetched["title"])

	// The owner updates it. The pause keeps the refreshed updatedAt strictly
	// after the original timestamps.
	time.Sleep(10 * time.Millisecond)
	resp, updated := doJSON(t, app, http.MethodPut, "/api/posts/"+postID, "token-alice", map[string]string{
		"title":   "First post, revised",
		"content": "Hello again",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "First post, revised", updated["title"])
	assert.Equal(t, "alice", updated["authorId"])
	assert.Equal(t, created["createdAt"], updated["createdAt"], "createdAt never changes on update")
	assert.True(t, parseTimestamp(t, updated["updatedAt"]).After(createdAt),
		"updatedAt must move past the original createdAt on update")

	// The owner deletes it.
	resp, body = doJSON(t, app, http.MethodDelete, "/api/posts/"+postID, "token-alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Post deleted successfully", body["message"])
	assert.Equal(t, postID, body["id"])

	// A second delete reports not found: the record must exist to prove ownership.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/posts/"+postID, "token-alice", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/posts/"+postID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreatePost_Validation(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/posts", "token-alice", map[string]string{
		"title": "no content",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Title and content are required", body["error"])
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestCreatePost_IgnoresClientAuthorID(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	// A client-supplied authorId is not part of the schema and is dropped.
	resp, created := doJSON(t, app, http.MethodPost, "/api/posts", "token-alice", map[string]string{
		"title":    "Spoof attempt",
		"content":  "body",
		"authorId": "bob",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "alice", created["authorId"])
}

func TestGetUserPosts_OwnPostsOnly(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	for _, p := range []struct{ token, title string }{
		{"token-alice", "Alice one"},
		{"token-alice", "Alice two"},
		{"token-bob", "Bob one"},
	} {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", p.token, map[string]string{
			"title": p.title, "content": "body",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// Alice sees only her own posts.
	resp, list := doJSONList(t, app, "/api/posts/user/alice", "token-alice")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list, 2)
	for _, post := range list {
		assert.Equal(t, "alice", post["authorId"])
	}

	// Alice cannot list Bob's posts.
	resp, body := doJSON(t, app, http.MethodGet, "/api/posts/user/bob", "token-alice", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access denied: Can only fetch your own posts", body["error"])

	// Anonymous callers get 401 before any ownership comparison.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/posts/user/alice", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetPost_UnknownID(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/api/posts/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post not found", body["error"])
}
