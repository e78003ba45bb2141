package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramForwarder_Forward(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewTelegramForwarder("bot-token", "chat-42", WithAPIBase(srv.URL))
	err := f.Forward(context.Background(), &models.SupportMessage{
		Name:    "Ana",
		Email:   "ana@example.com",
		Subject: "Billing",
		Message: "My invoice is wrong",
	})
	require.NoError(t, err)

	assert.Equal(t, "/botbot-token/sendMessage", gotPath)
	assert.Equal(t, "chat-42", gotBody.ChatID)
	assert.Equal(t, "Markdown", gotBody.ParseMode)
	assert.Contains(t, gotBody.Text, "*From:* Ana")
	assert.Contains(t, gotBody.Text, "*Email:* ana@example.com")
	assert.Contains(t, gotBody.Text, "*Subject:* Billing")
	assert.Contains(t, gotBody.Text, "My invoice is wrong")
}

func TestTelegramForwarder_EmptySubjectPlaceholder(t *testing.T) {
	t.Parallel()

	text := formatMessage(&models.SupportMessage{
		Name:    "Ana",
		Email:   "ana@example.com",
		Message: "help",
	})
	assert.Contains(t, text, "*Subject:* No subject")
}

func TestTelegramForwarder_NotConfigured(t *testing.T) {
	t.Parallel()

	f := NewTelegramForwarder("", "")
	err := f.Forward(context.Background(), &models.SupportMessage{Name: "Ana"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTelegramForwarder_Non200IsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	f := NewTelegramForwarder("tok", "chat", WithAPIBase(srv.URL))
	err := f.Forward(context.Background(), &models.SupportMessage{Name: "Ana"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "502"), "error should carry the status: %v", err)
}

func TestTelegramForwarder_HonorsContextDeadline(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-blocked
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	defer close(blocked)

	f := NewTelegramForwarder("tok", "chat", WithAPIBase(srv.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := f.Forward(ctx, &models.SupportMessage{Name: "Ana"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "forward must give up when the context expires")
}
