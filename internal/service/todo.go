package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"personal-workspace/internal/calendar"
	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"

	"github.com/sirupsen/logrus"
)

// StatusFilterAll is the list filter value that disables status filtering.
const StatusFilterAll = "all"

// TodoReschedule is the data behind the reschedule calendar of one todo.
type TodoReschedule struct {
	Todo       *domain.Todo
	Grid       calendar.Grid
	CurrentDay int
	Today      time.Time
}

// TodoService manages private to-do lists. No user ever sees another user's todos.
type TodoService struct {
	todoRepo repository.TodoRepository
	activity ActivityRecorder
	now      func() time.Time
}

// NewTodoService creates a TodoService.
func NewTodoService(todoRepo repository.TodoRepository, activity ActivityRecorder) *TodoService {
	if todoRepo == nil {
		panic("TodoRepository cannot be nil for TodoService")
	}
	if activity == nil {
		activity = NopActivityRecorder{}
	}
	return &TodoService{todoRepo: todoRepo, activity: activity, now: time.Now}
}

// List returns the identity's todos newest first. statusFilter is "all", "" or a status slug.
func (s *TodoService) List(ctx context.Context, identity domain.Identity, statusFilter, query string) ([]domain.Todo, error) {
	filter := repository.TodoFilter{Query: strings.TrimSpace(query)}

	statusFilter = strings.TrimSpace(statusFilter)
	if statusFilter != "" && statusFilter != StatusFilterAll {
		status, err := domain.ParseTodoStatus(statusFilter)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		filter.Status = &status
	}

	todos, err := s.todoRepo.List(ctx, identity.UserID, filter)
	if err != nil {
		logrus.WithError(err).WithField("user_id", identity.UserID).Error("Failed to list todos")
		return nil, ErrStoreUnavailable
	}
	return todos, nil
}

// Create adds a todo. dueDateStr is optional; an empty statusStr means incomplete.
func (s *TodoService) Create(ctx context.Context, identity domain.Identity, task, dueDateStr, statusStr string) (*domain.Todo, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return nil, fmt.Errorf("%w: task is required", ErrValidation)
	}

	todo := &domain.Todo{UserID: identity.UserID, Task: task, Status: domain.TodoIncomplete}

	if dueDateStr = strings.TrimSpace(dueDateStr); dueDateStr != "" {
		due, err := domain.ParseDate(dueDateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date %q", ErrValidation, dueDateStr)
		}
		todo.DueDate = &due
	}
	if statusStr = strings.TrimSpace(statusStr); statusStr != "" {
		status, err := domain.ParseTodoStatus(statusStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		todo.Status = status
	}

	if err := s.todoRepo.Save(ctx, todo); err != nil {
		logrus.WithError(err).WithField("user_id", identity.UserID).Error("Failed to save todo")
		return nil, ErrStoreUnavailable
	}

	s.activity.Record(ctx, newActivity(identity, domain.ActivityTodoCreated, todo.ID, task))
	logrus.WithFields(logrus.Fields{"user_id": identity.UserID, "todo_id": todo.ID}).Info("Todo created")
	return todo, nil
}

// SetStatus assigns statusStr verbatim to the identity's todo.
func (s *TodoService) SetStatus(ctx context.Context, identity domain.Identity, todoID uint, statusStr string) (*domain.Todo, error) {
	status, err := domain.ParseTodoStatus(strings.TrimSpace(statusStr))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	todo, err := s.loadOwnedTodo(ctx, identity, todoID)
	if err != nil {
		return nil, err
	}

	if err := s.todoRepo.UpdateStatus(ctx, todoID, identity.UserID, status); err != nil {
		logrus.WithError(err).WithField("todo_id", todoID).Error("Failed to update todo status")
		return nil, mapRepoError(err)
	}

	todo.Status = status
	s.activity.Record(ctx, newActivity(identity, domain.ActivityTodoStatus, todoID, status.String()))
	return todo, nil
}

// Delete removes the identity's todo.
func (s *TodoService) Delete(ctx context.Context, identity domain.Identity, todoID uint) error {
	if _, err := s.loadOwnedTodo(ctx, identity, todoID); err != nil {
		return err
	}

	if err := s.todoRepo.Delete(ctx, todoID, identity.UserID); err != nil {
		logrus.WithError(err).WithField("todo_id", todoID).Error("Failed to delete todo")
		return mapRepoError(err)
	}

	s.activity.Record(ctx, newActivity(identity, domain.ActivityTodoDeleted, todoID, ""))
	logrus.WithFields(logrus.Fields{"user_id": identity.UserID, "todo_id": todoID}).Info("Todo deleted")
	return nil
}

// RescheduleCalendar returns the identity's todo with a month grid to pick a
// new due date from. year or month of 0 selects the current one.
func (s *TodoService) RescheduleCalendar(ctx context.Context, identity domain.Identity, todoID uint, year, month int) (*TodoReschedule, error) {
	todo, err := s.loadOwnedTodo(ctx, identity, todoID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = int(today.Month())
	}
	grid, err := calendar.Month(year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return &TodoReschedule{
		Todo:       todo,
		Grid:       grid,
		CurrentDay: grid.CurrentDay(today),
		Today:      today,
	}, nil
}

// Reschedule moves the due date of the identity's todo and applies the
// status transition for rescheduling.
func (s *TodoService) Reschedule(ctx context.Context, identity domain.Identity, todoID uint, newDueDateStr string) (*domain.Todo, error) {
	newDueDateStr = strings.TrimSpace(newDueDateStr)
	if newDueDateStr == "" {
		return nil, fmt.Errorf("%w: a new due date is required", ErrValidation)
	}
	due, err := domain.ParseDate(newDueDateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date %q", ErrValidation, newDueDateStr)
	}

	todo, err := s.loadOwnedTodo(ctx, identity, todoID)
	if err != nil {
		return nil, err
	}

	next := todo.Status.AfterReschedule()
	if err := s.todoRepo.UpdateDueDate(ctx, todoID, identity.UserID, due, next); err != nil {
		logrus.WithError(err).WithField("todo_id", todoID).Error("Failed to reschedule todo")
		return nil, mapRepoError(err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  identity.UserID,
		"todo_id":  todoID,
		"due_date": newDueDateStr,
		"from":     todo.Status.String(),
		"to":       next.String(),
	}).Info("Todo rescheduled")

	todo.DueDate = &due
	todo.Status = next
	s.activity.Record(ctx, newActivity(identity, domain.ActivityTodoReschedule, todoID, newDueDateStr))
	return todo, nil
}

// loadOwnedTodo applies the ownership gate: load, not found, forbidden.
func (s *TodoService) loadOwnedTodo(ctx context.Context, identity domain.Identity, todoID uint) (*domain.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, todoID)
	if err != nil {
		mapped := mapRepoError(err)
		if mapped != ErrNotFound {
			logrus.WithError(err).WithField("todo_id", todoID).Error("Failed to load todo")
		}
		return nil, mapped
	}
	if err := authorize(identity, todo.UserID); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":  identity.UserID,
			"todo_id":  todoID,
			"owner_id": todo.UserID,
		}).Warn("Rejected change to another user's todo")
		return nil, err
	}
	return todo, nil
}
