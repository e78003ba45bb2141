// Package models contains data structures for the application's domain records.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// MaxPostTitleLen caps the title length accepted on create/update.
	MaxPostTitleLen = 200
	// MaxPostContentLen caps the content length accepted on create/update.
	MaxPostContentLen = 10000
)

// Post is an authored blog entry. AuthorID and CreatedAt are immutable after
// creation; UpdatedAt is refreshed on every mutation.
type Post struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  string    `gorm:"size:128;not null;index" json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a store-generated identifier.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
