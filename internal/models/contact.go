package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is an entry in the shared, admin-curated contact directory.
// Contacts carry no per-record owner; mutation is gated on authentication only.
type Contact struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	Label     string    `gorm:"size:200;not null" json:"label"`
	Value     string    `gorm:"size:500;not null" json:"value"`
	Icon      string    `gorm:"size:100" json:"icon"`
	// No gorm default here: a default tag makes gorm omit false from the
	// INSERT, silently re-activating hidden entries. The service applies the
	// default for absent input instead.
	IsActive  bool      `gorm:"not null" json:"isActive"`
	Order     int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a store-generated identifier.
func (ct *Contact) BeforeCreate(_ *gorm.DB) error {
	if ct.ID == "" {
		ct.ID = uuid.NewString()
	}
	return nil
}

// Accepted contact channels.
const (
	ContactTypeWhatsApp = "whatsapp"
	ContactTypeTelegram = "telegram"
	ContactTypeEmail    = "email"
	ContactTypePhone    = "phone"
	ContactTypeWebsite  = "website"
	ContactTypeOther    = "other"
)

var contactTypes = map[string]struct{}{
	ContactTypeWhatsApp: {},
	ContactTypeTelegram: {},
	ContactTypeEmail:    {},
	ContactTypePhone:    {},
	ContactTypeWebsite:  {},
	ContactTypeOther:    {},
}

// NormalizeContactType lowercases t and reports whether it is a valid channel.
// Unrecognized types are rejected, never mapped to "other".
func NormalizeContactType(t string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(t))
	_, ok := contactTypes[normalized]
	return normalized, ok
}
