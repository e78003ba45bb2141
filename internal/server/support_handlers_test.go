package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSupportMessage_ForwarderDown(t *testing.T) {
	t.Parallel()

	// The forwarder is unreachable; intake must still succeed.
	app, db := newTestApp(t, withForwarder(forwarderFunc(
		func(_ context.Context, _ *models.SupportMessage) error {
			return errors.New("dial tcp: connection refused")
		})))

	resp, body := doJSON(t, app, http.MethodPost, "/api/support", "", map[string]string{
		"name":    "Ana",
		"email":   "Ana@Example.com",
		"subject": "Billing",
		"message": "My invoice is wrong",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Support message sent successfully", body["message"])
	assert.Equal(t, false, body["telegramSent"])
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	// The message is persisted exactly once, with the outcome recorded.
	var stored []models.SupportMessage
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "ana@example.com", stored[0].Email, "email is lowercased")
	assert.Equal(t, models.SupportStatusNew, stored[0].Status)
	assert.False(t, stored[0].TelegramSent)
}

func TestCreateSupportMessage_ForwarderUp(t *testing.T) {
	t.Parallel()

	var forwarded *models.SupportMessage
	app, _ := newTestApp(t, withForwarder(forwarderFunc(
		func(_ context.Context, msg *models.SupportMessage) error {
			forwarded = msg
			return nil
		})))

	resp, body := doJSON(t, app, http.MethodPost, "/api/support", "", map[string]string{
		"name":    "Ana",
		"email":   "ana@example.com",
		"message": "help",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["telegramSent"])
	require.NotNil(t, forwarded)
	assert.Equal(t, "Ana", forwarded.Name)
}

func TestCreateSupportMessage_Validation(t *testing.T) {
	t.Parallel()

	app, db := newTestApp(t)

	tests := []struct {
		name    string
		payload map[string]string
		wantErr string
	}{
		{
			name:    "missing fields",
			payload: map[string]string{"email": "a@b.co"},
			wantErr: "Name, email, and message are required",
		},
		{
			name:    "bad email",
			payload: map[string]string{"name": "Ana", "email": "not-an-email", "message": "help"},
			wantErr: "Invalid email format",
		},
	}
	for _, tt := range tests {
		resp, body := doJSON(t, app, http.MethodPost, "/api/support", "", tt.payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, tt.name)
		assert.Equal(t, tt.wantErr, body["error"], tt.name)
	}

	// Nothing was persisted.
	var count int64
	require.NoError(t, db.Model(&models.SupportMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetSupportMessages(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	// Listing the inbox requires authentication.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/support", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	for _, subject := range []string{"first", "second", "third"} {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/support", "", map[string]string{
			"name": "Ana", "email": "ana@example.com", "subject": subject, "message": "help",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, list := doJSONList(t, app, "/api/support", "token-admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list, 3)
}
