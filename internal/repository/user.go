package repository

import (
	"context"

	"personal-workspace/internal/domain"
)

// UserRepository stores registered accounts.
type UserRepository interface {
	// FindByUsername returns ErrUserNotFound when no account has that name.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID returns ErrUserNotFound when the id is unknown.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// Save inserts a new user (ID == 0) or updates an existing one.
	// A username clash yields ErrDuplicateEntry.
	Save(ctx context.Context, user *domain.User) error
}
