package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// ContactRepository defines the interface for contact directory operations
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id string) (*models.Contact, error)
	// ListActive returns only isActive contacts, ordered for display.
	ListActive(ctx context.Context) ([]*models.Contact, error)
	// ListAll returns every contact regardless of isActive, in the same order.
	ListAll(ctx context.Context) ([]*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id string) error
}

type contactRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	defer r.metrics.TrackQuery("create", "contacts")()
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	defer r.metrics.TrackQuery("get", "contacts")()
	var contact models.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) ListActive(ctx context.Context) ([]*models.Contact, error) {
	defer r.metrics.TrackQuery("list_active", "contacts")()
	var contacts []*models.Contact
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&contacts).Error
	return contacts, err
}

func (r *contactRepository) ListAll(ctx context.Context) ([]*models.Contact, error) {
	defer r.metrics.TrackQuery("list_all", "contacts")()
	var contacts []*models.Contact
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Find(&contacts).Error
	return contacts, err
}

func (r *contactRepository) Update(ctx context.Context, contact *models.Contact) error {
	defer r.metrics.TrackQuery("update", "contacts")()
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	defer r.metrics.TrackQuery("delete", "contacts")()
	return r.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id).Error
}
