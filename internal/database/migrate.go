package database

import (
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// registeredModels lists every persisted record type, one collection each.
func registeredModels() []any {
	return []any{
		&models.Post{},
		&models.Contact{},
		&models.SupportMessage{},
	}
}

// Migrate applies the schema for all registered models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(registeredModels()...)
}
