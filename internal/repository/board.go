package repository

import (
	"context"

	"personal-workspace/internal/domain"
)

// PostRepository stores board posts. Posts are returned with Author populated.
type PostRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Post, error)

	// List returns posts newest first. A non-empty search matches title or content.
	List(ctx context.Context, search string) ([]domain.Post, error)

	// Save inserts (ID == 0) or updates title and content.
	Save(ctx context.Context, post *domain.Post) error

	Delete(ctx context.Context, id uint) error
}

// CommentRepository stores post comments.
type CommentRepository interface {
	// ListByPost returns comments oldest first, with Author populated.
	ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error)

	Save(ctx context.Context, comment *domain.Comment) error
}
