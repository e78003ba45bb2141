package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// SupportMessageRepository defines the interface for support-message persistence
type SupportMessageRepository interface {
	Create(ctx context.Context, msg *models.SupportMessage) error
	// ListRecent returns up to limit messages, newest first.
	ListRecent(ctx context.Context, limit int) ([]*models.SupportMessage, error)
}

type supportMessageRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewSupportMessageRepository creates a new support-message repository
func NewSupportMessageRepository(db *gorm.DB) SupportMessageRepository {
	return &supportMessageRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *supportMessageRepository) Create(ctx context.Context, msg *models.SupportMessage) error {
	defer r.metrics.TrackQuery("create", "support_messages")()
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *supportMessageRepository) ListRecent(ctx context.Context, limit int) ([]*models.SupportMessage, error) {
	defer r.metrics.TrackQuery("list_recent", "support_messages")()
	var messages []*models.SupportMessage
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
