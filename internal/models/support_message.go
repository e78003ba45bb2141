package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Support message lifecycle states. Once created, only Status is ever mutated.
const (
	SupportStatusNew     = "new"
	SupportStatusRead    = "read"
	SupportStatusReplied = "replied"
)

// SupportMessage is an inbound message from the public support form.
// TelegramSent records the forwarder outcome at write time and is not revisited.
type SupportMessage struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Email        string    `gorm:"size:320;not null" json:"email"`
	Subject      string    `gorm:"size:500" json:"subject"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Status       string    `gorm:"size:20;not null;default:'new'" json:"status"`
	TelegramSent bool      `gorm:"not null;default:false" json:"telegramSent"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BeforeCreate assigns a store-generated identifier.
func (m *SupportMessage) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
