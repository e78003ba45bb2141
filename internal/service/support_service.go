package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"inkwell/internal/identity"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/notify"
	"inkwell/internal/observability"
	"inkwell/internal/policy"
	"inkwell/internal/repository"
)

// supportListLimit caps the admin listing at the most recent messages.
const supportListLimit = 50

// emailPattern is the basic local@domain.tld shape check applied to the
// sender address. Deliverability is not verified.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SupportService owns support-message intake and listing. Intake is public;
// forwarding to the chat bot is best effort and recorded as a flag.
type SupportService struct {
	supportRepo repository.SupportMessageRepository
	forwarder   notify.Forwarder
}

// CreateSupportMessageInput is the accepted payload for the support form.
type CreateSupportMessageInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// NewSupportService creates a SupportService. forwarder may be nil, in which
// case messages are persisted with TelegramSent=false.
func NewSupportService(supportRepo repository.SupportMessageRepository, forwarder notify.Forwarder) *SupportService {
	return &SupportService{supportRepo: supportRepo, forwarder: forwarder}
}

// Create validates, forwards and persists a support message. The forward
// attempt happens first, under its own bounded wait; its outcome is recorded
// on the message and the record is persisted exactly once. Forwarder failure
// never aborts the write.
func (s *SupportService) Create(ctx context.Context, in CreateSupportMessageInput) (*models.SupportMessage, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	message := strings.TrimSpace(in.Message)

	if name == "" || email == "" || message == "" {
		return nil, models.NewValidationError("Name, email, and message are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, models.NewValidationError("Invalid email format")
	}

	msg := &models.SupportMessage{
		Name:    name,
		Email:   email,
		Subject: strings.TrimSpace(in.Subject),
		Message: message,
		Status:  models.SupportStatusNew,
	}

	msg.TelegramSent = s.forward(ctx, msg)

	if err := s.supportRepo.Create(ctx, msg); err != nil {
		return nil, models.NewServiceUnavailableError(err)
	}
	return msg, nil
}

// forward attempts delivery within the bounded wait and reports success.
func (s *SupportService) forward(ctx context.Context, msg *models.SupportMessage) bool {
	if s.forwarder == nil {
		observability.ForwarderOutcomes.WithLabelValues("skipped").Inc()
		return false
	}

	fctx, cancel := context.WithTimeout(ctx, notify.ForwardTimeout)
	defer cancel()

	if err := s.forwarder.Forward(fctx, msg); err != nil {
		middleware.Logger.WarnContext(ctx, "support message forward failed",
			slog.String("error", err.Error()))
		observability.ForwarderOutcomes.WithLabelValues("failed").Inc()
		return false
	}
	observability.ForwarderOutcomes.WithLabelValues("sent").Inc()
	return true
}

// ListRecent returns up to the 50 most recent messages, newest first.
func (s *SupportService) ListRecent(ctx context.Context, principal *identity.Principal) ([]*models.SupportMessage, error) {
	if decision := policy.Decide(policy.OpListSupportMessages, principal, nil); !decision.Allowed {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}

	messages, err := s.supportRepo.ListRecent(ctx, supportListLimit)
	if err != nil {
		return nil, models.NewServiceUnavailableError(err)
	}
	return messages, nil
}
