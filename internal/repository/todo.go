package repository

import (
	"context"
	"time"

	"personal-workspace/internal/domain"
)

// TodoFilter narrows a todo listing. A nil Status means every status.
type TodoFilter struct {
	Status *domain.TodoStatus
	Query  string
}

// TodoRepository stores to-do items. Every mutation is scoped by owner.
type TodoRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Todo, error)

	// List returns the owner's todos newest first.
	List(ctx context.Context, ownerID uint, filter TodoFilter) ([]domain.Todo, error)

	Save(ctx context.Context, todo *domain.Todo) error

	// UpdateStatus, UpdateDueDate and Delete return ErrTodoNotFound when no row
	// matches both id and owner.
	UpdateStatus(ctx context.Context, id, ownerID uint, status domain.TodoStatus) error
	UpdateDueDate(ctx context.Context, id, ownerID uint, dueDate time.Time, status domain.TodoStatus) error
	Delete(ctx context.Context, id, ownerID uint) error
}
