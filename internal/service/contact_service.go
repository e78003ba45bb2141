package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/identity"
	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/repository"

	"github.com/spf13/cast"
	"gorm.io/gorm"
)

// ContactService owns the shared contact-directory CRUD contract. Contacts
// have no per-record owner; mutation is gated on authentication.
type ContactService struct {
	contactRepo repository.ContactRepository
}

// ContactInput is the accepted payload for creating or updating a contact.
// IsActive and Order are pointers/any so absence can be told from zero values:
// a missing IsActive defaults to true, a missing or non-numeric Order to 0.
type ContactInput struct {
	Type     string
	Label    string
	Value    string
	Icon     string
	IsActive *bool
	Order    any
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(contactRepo repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// validateContactFields normalizes and validates the shared create/update rules.
func validateContactFields(in ContactInput) (contactType, label, value, icon string, err error) {
	label = strings.TrimSpace(in.Label)
	value = strings.TrimSpace(in.Value)
	if strings.TrimSpace(in.Type) == "" || label == "" || value == "" {
		return "", "", "", "", models.NewValidationError("Type, label, and value are required")
	}

	contactType, ok := models.NormalizeContactType(in.Type)
	if !ok {
		return "", "", "", "", models.NewValidationError("Invalid contact type")
	}

	return contactType, label, value, strings.TrimSpace(in.Icon), nil
}

// ListPublic returns only active contacts, ordered for display. Public.
func (s *ContactService) ListPublic(ctx context.Context) ([]*models.Contact, error) {
	contacts, err := s.contactRepo.ListActive(ctx)
	if err != nil {
		return nil, models.NewServiceUnavailableError(err)
	}
	return contacts, nil
}

// ListAdmin returns every contact regardless of isActive, in display order.
func (s *ContactService) ListAdmin(ctx context.Context, principal *identity.Principal) ([]*models.Contact, error) {
	if decision := policy.Decide(policy.OpListContactsAdmin, principal, nil); !decision.Allowed {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}

	contacts, err := s.contactRepo.ListAll(ctx)
	if err != nil {
		return nil, models.NewServiceUnavailableError(err)
	}
	return contacts, nil
}

// Create stores a new contact directory entry.
func (s *ContactService) Create(ctx context.Context, principal *identity.Principal, in ContactInput) (*models.Contact, error) {
	if decision := policy.Decide(policy.OpCreateContact, principal, nil); !decision.Allowed {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}

	contactType, label, value, icon, err := validateContactFields(in)
	if err != nil {
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	contact := &models.Contact{
		Type:     contactType,
		Label:    label,
		Value:    value,
		Icon:     icon,
		IsActive: isActive,
		Order:    cast.ToInt(in.Order),
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, models.NewServiceUnavailableError(err)
	}
	return contact, nil
}

// Update revalidates and overwrites an existing contact. CreatedAt is kept;
// UpdatedAt is refreshed.
func (s *ContactService) Update(ctx context.Context, principal *identity.Principal, id string, in ContactInput) (*models.Contact, error) {
	contactType, label, value, icon, err := validateContactFields(in)
	if err != nil {
		return nil, err
	}

	contact, err := s.fetchForMutation(ctx, principal, policy.OpUpdateContact, id)
	if err != nil {
		return nil, err
	}

	contact.Type = contactType
	contact.Label = label
	contact.Value = value
	contact.Icon = icon
	if in.IsActive != nil {
		contact.IsActive = *in.IsActive
	}
	contact.Order = cast.ToInt(in.Order)

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, models.NewServiceUnavailableError(err)
	}
	return contact, nil
}

// Delete removes a contact directory entry.
func (s *ContactService) Delete(ctx context.Context, principal *identity.Principal, id string) error {
	if _, err := s.fetchForMutation(ctx, principal, policy.OpDeleteContact, id); err != nil {
		return err
	}
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return models.NewServiceUnavailableError(err)
	}
	return nil
}

func (s *ContactService) fetchForMutation(ctx context.Context, principal *identity.Principal, op policy.Operation, id string) (*models.Contact, error) {
	var target *policy.Target

	contact, err := s.contactRepo.GetByID(ctx, id)
	switch {
	case err == nil:
		target = &policy.Target{Exists: true}
	case errors.Is(err, gorm.ErrRecordNotFound):
		target = &policy.Target{Exists: false}
	default:
		return nil, models.NewServiceUnavailableError(err)
	}

	decision := policy.Decide(op, principal, target)
	if !decision.Allowed {
		switch decision.Reason {
		case policy.ReasonUnauthenticated:
			return nil, models.NewUnauthenticatedError("Authentication required")
		case policy.ReasonNotFound:
			return nil, models.NewNotFoundError("Contact")
		default:
			return nil, models.NewForbiddenError("Access denied")
		}
	}
	return contact, nil
}
