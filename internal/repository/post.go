// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID string) ([]*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
}

// postRepository implements PostRepository
type postRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer r.metrics.TrackQuery("create", "posts")()
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	defer r.metrics.TrackQuery("get", "posts")()
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByAuthorID(ctx context.Context, authorID string) ([]*models.Post, error) {
	defer r.metrics.TrackQuery("list_by_author", "posts")()
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	defer r.metrics.TrackQuery("list", "posts")()
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// Update writes the full record back. There is no version token: concurrent
// updates to the same post race with the later write winning.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer r.metrics.TrackQuery("update", "posts")()
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	defer r.metrics.TrackQuery("delete", "posts")()
	return r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error
}
