package mocks

import (
	"context"
	"time"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"

	"github.com/stretchr/testify/mock"
)

var _ repository.TodoRepository = (*TodoRepository)(nil)

// TodoRepository is a mock of repository.TodoRepository.
type TodoRepository struct {
	mock.Mock
}

func (m *TodoRepository) FindByID(ctx context.Context, id uint) (*domain.Todo, error) {
	args := m.Called(ctx, id)
	var todo *domain.Todo
	if v := args.Get(0); v != nil {
		todo = v.(*domain.Todo)
	}
	return todo, args.Error(1)
}

func (m *TodoRepository) List(ctx context.Context, ownerID uint, filter repository.TodoFilter) ([]domain.Todo, error) {
	args := m.Called(ctx, ownerID, filter)
	var todos []domain.Todo
	if v := args.Get(0); v != nil {
		todos = v.([]domain.Todo)
	}
	return todos, args.Error(1)
}

func (m *TodoRepository) Save(ctx context.Context, todo *domain.Todo) error {
	return m.Called(ctx, todo).Error(0)
}

func (m *TodoRepository) UpdateStatus(ctx context.Context, id, ownerID uint, status domain.TodoStatus) error {
	return m.Called(ctx, id, ownerID, status).Error(0)
}

func (m *TodoRepository) UpdateDueDate(ctx context.Context, id, ownerID uint, dueDate time.Time, status domain.TodoStatus) error {
	return m.Called(ctx, id, ownerID, dueDate, status).Error(0)
}

func (m *TodoRepository) Delete(ctx context.Context, id, ownerID uint) error {
	return m.Called(ctx, id, ownerID).Error(0)
}
