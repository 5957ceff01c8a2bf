package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"
)

// GormTodoRepository is the GORM implementation of repository.TodoRepository.
// Every write carries user_id in its WHERE clause.
type GormTodoRepository struct {
	db *gorm.DB
}

func NewGormTodoRepository(db *gorm.DB) *GormTodoRepository {
	if db == nil {
		panic("database connection cannot be nil for GormTodoRepository")
	}
	return &GormTodoRepository{db: db}
}

func (r *GormTodoRepository) FindByID(ctx context.Context, id uint) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.db.WithContext(ctx).First(&todo, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTodoNotFound
		}
		return nil, fmt.Errorf("gorm: find todo by id %d: %w", id, err)
	}
	return &todo, nil
}

func (r *GormTodoRepository) List(ctx context.Context, ownerID uint, filter repository.TodoFilter) ([]domain.Todo, error) {
	var todos []domain.Todo
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Query != "" {
		q = q.Where("task LIKE ?", "%"+filter.Query+"%")
	}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("gorm: list todos of user %d: %w", ownerID, err)
	}
	return todos, nil
}

func (r *GormTodoRepository) Save(ctx context.Context, todo *domain.Todo) error {
	if err := r.db.WithContext(ctx).Save(todo).Error; err != nil {
		return fmt.Errorf("gorm: save todo (id: %d): %w", todo.ID, err)
	}
	return nil
}

func (r *GormTodoRepository) UpdateStatus(ctx context.Context, id, ownerID uint, status domain.TodoStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Todo{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("status", status)
	return ownedWriteResult(res, "update status of", id)
}

func (r *GormTodoRepository) UpdateDueDate(ctx context.Context, id, ownerID uint, dueDate time.Time, status domain.TodoStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Todo{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"due_date": dueDate.Format(domain.DateLayout),
			"status":   status,
		})
	return ownedWriteResult(res, "reschedule", id)
}

func (r *GormTodoRepository) Delete(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Delete(&domain.Todo{}, id)
	return ownedWriteResult(res, "delete", id)
}

// ownedWriteResult turns a write that matched no row into ErrTodoNotFound.
// The DSN sets clientFoundRows so an unchanged row still counts as matched.
func ownedWriteResult(res *gorm.DB, op string, id uint) error {
	if res.Error != nil {
		return fmt.Errorf("gorm: %s todo %d: %w", op, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrTodoNotFound
	}
	return nil
}
