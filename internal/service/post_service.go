// Package service implements the CRUD services: input validation, policy
// enforcement, store access and output normalization.
package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/identity"
	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// PostService owns the post CRUD contract.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput is the accepted payload for creating a post. Any
// client-supplied author id is ignored; AuthorID is forced to the principal.
type CreatePostInput struct {
	Title   string
	Content string
}

// UpdatePostInput is the accepted payload for updating a post.
type UpdatePostInput struct {
	Title   string
	Content string
}

// NewPostService creates a PostService backed by the given repository.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// validatePostFields enforces the shared create/update field rules.
func validatePostFields(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" || content == "" {
		return "", "", models.NewValidationError("Title and content are required")
	}
	if len(title) > models.MaxPostTitleLen {
		return "", "", models.NewValidationError("Title too long (max 200 characters)")
	}
	if len(content) > models.MaxPostContentLen {
		return "", "", models.NewValidationError("Content too long (max 10000 characters)")
	}
	return title, content, nil
}

// storeError maps a repository error to the API taxonomy.
func storeError(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource)
	}
	return models.NewServiceUnavailableError(err)
}

// ListPublic returns all posts, newest first. Public.
func (s *PostService) ListPublic(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, models.NewServiceUnavailableError(err)
	}
	return posts, nil
}

// GetByID returns a single post. Public.
func (s *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Post")
	}
	return post, nil
}

// ListByAuthor returns the author's posts, newest first. Callers may only
// fetch their own posts.
func (s *PostService) ListByAuthor(ctx context.Context, principal *identity.Principal, authorID string) ([]*models.Post, error) {
	decision := policy.Decide(policy.OpListPostsByAuthor, principal, &policy.Target{Exists: true, OwnerID: authorID})
	if !decision.Allowed {
		if decision.Reason == policy.ReasonUnauthenticated {
			return nil, models.NewUnauthenticatedError("Authentication required")
		}
		return nil, models.NewForbiddenError("Access denied: Can only fetch your own posts")
	}

	posts, err := s.postRepo.GetByAuthorID(ctx, authorID)
	if err != nil {
		return nil, models.NewServiceUnavailableError(err)
	}
	return posts, nil
}

// Create stores a new post owned by the principal.
func (s *PostService) Create(ctx context.Context, principal *identity.Principal, in CreatePostInput) (*models.Post, error) {
	if decision := policy.Decide(policy.OpCreatePost, principal, nil); !decision.Allowed {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}

	title, content, err := validatePostFields(in.Title, in.Content)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: principal.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewServiceUnavailableError(err)
	}
	return post, nil
}

// Update overlays title and content on an existing post owned by the
// principal. CreatedAt and AuthorID are never touched; UpdatedAt is refreshed.
// There is no version token, so two concurrent updates race with the later
// write winning.
func (s *PostService) Update(ctx context.Context, principal *identity.Principal, id string, in UpdatePostInput) (*models.Post, error) {
	title, content, err := validatePostFields(in.Title, in.Content)
	if err != nil {
		return nil, err
	}

	post, err := s.fetchForMutation(ctx, principal, policy.OpUpdatePost, id)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewServiceUnavailableError(err)
	}
	return post, nil
}

// Delete removes the post after the same existence and ownership checks as
// Update. Deleting an already-deleted id returns NotFound: the record must
// exist to prove ownership.
func (s *PostService) Delete(ctx context.Context, principal *identity.Principal, id string) error {
	if _, err := s.fetchForMutation(ctx, principal, policy.OpDeletePost, id); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return models.NewServiceUnavailableError(err)
	}
	return nil
}

// fetchForMutation loads the target post and applies the mutation policy,
// with existence checked before ownership.
func (s *PostService) fetchForMutation(ctx context.Context, principal *identity.Principal, op policy.Operation, id string) (*models.Post, error) {
	var target *policy.Target

	post, err := s.postRepo.GetByID(ctx, id)
	switch {
	case err == nil:
		target = &policy.Target{Exists: true, OwnerID: post.AuthorID}
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
			return nil, models.NewNotFoundError("Post")
		default:
			if op == policy.OpDeletePost {
				return nil, models.NewForbiddenError("You can only delete your own posts")
			}
			return nil, models.NewForbiddenError("You can only update your own posts")
		}
	}
	return post, nil
}
