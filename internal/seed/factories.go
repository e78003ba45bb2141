// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// BuildPost constructs a post for the given author without persisting it.
// Optional override functions may modify the generated post.
func (f *Factory) BuildPost(authorID string, overrides ...func(*models.Post)) *models.Post {
	paragraphs := make([]string, 0, 3)
	for i := 0; i < 1+f.rng.Intn(3); i++ {
		paragraphs = append(paragraphs, gofakeit.Paragraph(1, 3, 8, " "))
	}

	post := &models.Post{
		Title:    strings.TrimSuffix(gofakeit.Sentence(6), "."),
		Content:  strings.Join(paragraphs, "\n\n"),
		AuthorID: authorID,
	}

	// realistic created_at spread over the last ~90 days
	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateContact constructs and persists a sample contact entry.
func (f *Factory) CreateContact(order int, overrides ...func(*models.Contact)) (*models.Contact, error) {
	presets := []models.Contact{
		{Type: models.ContactTypeEmail, Label: "Email", Value: gofakeit.Email(), Icon: "mail"},
		{Type: models.ContactTypeTelegram, Label: "Telegram", Value: "@" + gofakeit.Username(), Icon: "send"},
		{Type: models.ContactTypeWhatsApp, Label: "WhatsApp", Value: gofakeit.Phone(), Icon: "message-circle"},
		{Type: models.ContactTypeWebsite, Label: "Website", Value: gofakeit.URL(), Icon: "globe"},
		{Type: models.ContactTypePhone, Label: "Phone", Value: gofakeit.Phone(), Icon: "phone"},
	}
	contact := presets[f.rng.Intn(len(presets))]
	contact.Order = order
	contact.IsActive = true

	for _, override := range overrides {
		override(&contact)
	}

	if err := f.db.Create(&contact).Error; err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return &contact, nil
}

// CreateSupportMessage constructs and persists a sample support message.
func (f *Factory) CreateSupportMessage(overrides ...func(*models.SupportMessage)) (*models.SupportMessage, error) {
	msg := &models.SupportMessage{
		Name:    gofakeit.Name(),
		Email:   strings.ToLower(gofakeit.Email()),
		Subject: strings.TrimSuffix(gofakeit.Sentence(4), "."),
		Message: gofakeit.Paragraph(1, 2, 10, " "),
		Status:  models.SupportStatusNew,
	}

	for _, override := range overrides {
		override(msg)
	}

	if err := f.db.Create(msg).Error; err != nil {
		return nil, fmt.Errorf("create support message: %w", err)
	}
	return msg, nil
}
