// Package notify delivers support messages to the configured chat bot.
// Delivery is best effort: callers record the outcome as a flag and never fail
// the primary write because of it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"inkwell/internal/models"
)

// ForwardTimeout bounds a single delivery attempt. The support-message write
// path must never block longer than this on the forwarder.
const ForwardTimeout = 5 * time.Second

// ErrNotConfigured is returned when the bot token or chat id is missing.
var ErrNotConfigured = errors.New("telegram configuration not found")

// Forwarder relays a support message to the chat bot.
type Forwarder interface {
	Forward(ctx context.Context, msg *models.SupportMessage) error
}

// TelegramForwarder posts messages to the Telegram Bot API.
type TelegramForwarder struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

// Option customizes a TelegramForwarder.
type Option func(*TelegramForwarder)

// WithAPIBase overrides the Telegram API base URL (used in tests).
func WithAPIBase(base string) Option {
	return func(f *TelegramForwarder) { f.apiBase = base }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *TelegramForwarder) { f.client = client }
}

// NewTelegramForwarder creates a forwarder bound to the given bot and chat.
func NewTelegramForwarder(botToken, chatID string, opts ...Option) *TelegramForwarder {
	f := &TelegramForwarder{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  "https://api.telegram.org",
		client:   &http.Client{Timeout: ForwardTimeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Forward sends the support message to the configured chat. It honors ctx and
// the forwarder's own client timeout, whichever fires first.
func (f *TelegramForwarder) Forward(ctx context.Context, msg *models.SupportMessage) error {
	if f.botToken == "" || f.chatID == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    f.chatID,
		Text:      formatMessage(msg),
		ParseMode: "Markdown",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", f.apiBase, f.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram sendMessage returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// formatMessage renders the chat notification text for a support message.
func formatMessage(msg *models.SupportMessage) string {
	subject := msg.Subject
	if subject == "" {
		subject = "No subject"
	}
	return fmt.Sprintf(
		"🔔 *New Support Message*\n\n*From:* %s\n*Email:* %s\n*Subject:* %s\n\n*Message:*\n%s\n\n*Submitted:* %s",
		msg.Name, msg.Email, subject, msg.Message, time.Now().Format(time.RFC1123),
	)
}
