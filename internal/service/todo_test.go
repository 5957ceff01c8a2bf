package service_test

import (
	"context"
	"testing"
	"time"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"
	"personal-workspace/internal/repository/mocks"
	"personal-workspace/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTodoService_List(t *testing.T) {
	repo := new(mocks.TodoRepository)
	svc := service.NewTodoService(repo, nil)
	ctx := context.Background()

	repo.On("List", ctx, alice.UserID, repository.TodoFilter{Query: "milk"}).Return([]domain.Todo{{ID: 1}}, nil).Once()
	todos, err := svc.List(ctx, alice, service.StatusFilterAll, " milk ")
	require.NoError(t, err)
	assert.Len(t, todos, 1)

	done := domain.TodoDone
	repo.On("List", ctx, alice.UserID, repository.TodoFilter{Status: &done}).Return([]domain.Todo{}, nil).Once()
	_, err = svc.List(ctx, alice, "done", "")
	require.NoError(t, err)

	_, err = svc.List(ctx, alice, "archived", "")
	assert.ErrorIs(t, err, service.ErrValidation)
	repo.AssertExpectations(t)
}

func TestTodoService_Create(t *testing.T) {
	repo := new(mocks.TodoRepository)
	rec := &recordedActivities{}
	svc := service.NewTodoService(repo, rec)
	ctx := context.Background()

	repo.On("Save", ctx, mock.MatchedBy(func(td *domain.Todo) bool {
		return td.UserID == alice.UserID && td.Task == "Buy milk" &&
			td.Status == domain.TodoIncomplete && td.DueDate != nil && td.DueDate.Equal(date(2025, 3, 20))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Todo).ID = 3
	}).Return(nil).Once()

	todo, err := svc.Create(ctx, alice, "Buy milk", "2025-03-20", "")
	require.NoError(t, err)
	assert.Equal(t, uint(3), todo.ID)
	assert.Equal(t, "2025-03-20", todo.DueDateString())
	assert.Equal(t, []domain.ActivityKind{domain.ActivityTodoCreated}, rec.kinds())

	_, err = svc.Create(ctx, alice, " ", "", "")
	assert.ErrorIs(t, err, service.ErrValidation)
	_, err = svc.Create(ctx, alice, "task", "tomorrow", "")
	assert.ErrorIs(t, err, service.ErrValidation)
	_, err = svc.Create(ctx, alice, "task", "", "someday")
	assert.ErrorIs(t, err, service.ErrValidation)
	repo.AssertExpectations(t)
}

func TestTodoService_SetStatus(t *testing.T) {
	repo := new(mocks.TodoRepository)
	svc := service.NewTodoService(repo, nil)
	ctx := context.Background()

	repo.On("FindByID", ctx, uint(3)).Return(&domain.Todo{ID: 3, UserID: alice.UserID}, nil).Once()
	repo.On("UpdateStatus", ctx, uint(3), alice.UserID, domain.TodoRescheduled).Return(nil).Once()

	todo, err := svc.SetStatus(ctx, alice, 3, "rescheduled")
	require.NoError(t, err)
	assert.Equal(t, domain.TodoRescheduled, todo.Status)

	_, err = svc.SetStatus(ctx, alice, 3, "bogus")
	assert.ErrorIs(t, err, service.ErrValidation)
	repo.AssertExpectations(t)
}

func TestTodoService_OtherUsersTodoIsForbidden(t *testing.T) {
	repo := new(mocks.TodoRepository)
	svc := service.NewTodoService(repo, nil)
	ctx := context.Background()

	repo.On("FindByID", ctx, uint(3)).Return(&domain.Todo{ID: 3, UserID: alice.UserID, Status: domain.TodoDone}, nil)

	_, err := svc.SetStatus(ctx, bob, 3, "done")
	assert.ErrorIs(t, err, service.ErrForbidden)
	err = svc.Delete(ctx, bob, 3)
	assert.ErrorIs(t, err, service.ErrForbidden)
	_, err = svc.Reschedule(ctx, bob, 3, "2025-03-15")
	assert.ErrorIs(t, err, service.ErrForbidden)
	_, err = svc.RescheduleCalendar(ctx, bob, 3, 2025, 3)
	assert.ErrorIs(t, err, service.ErrForbidden)

	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateDueDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestTodoService_MissingTodo(t *testing.T) {
	repo := new(mocks.TodoRepository)
	svc := service.NewTodoService(repo, nil)
	ctx := context.Background()

	repo.On("FindByID", ctx, uint(404)).Return(nil, repository.ErrTodoNotFound)

	err := svc.Delete(ctx, alice, 404)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.Reschedule(ctx, alice, 404, "2025-03-15")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestTodoService_Reschedule(t *testing.T) {
	cases := []struct {
		from, want domain.TodoStatus
	}{
		{domain.TodoDone, domain.TodoIncomplete},
		{domain.TodoIncomplete, domain.TodoInProgress},
		{domain.TodoInProgress, domain.TodoInProgress},
		{domain.TodoRescheduled, domain.TodoRescheduled},
	}
	for _, tc := range cases {
		t.Run(tc.from.String(), func(t *testing.T) {
			repo := new(mocks.TodoRepository)
			rec := &recordedActivities{}
			svc := service.NewTodoService(repo, rec)
			ctx := context.Background()
			newDue := date(2025, 3, 15)

			repo.On("FindByID", ctx, uint(8)).Return(&domain.Todo{ID: 8, UserID: alice.UserID, Status: tc.from}, nil).Once()
			repo.On("UpdateDueDate", ctx, uint(8), alice.UserID, newDue, tc.want).Return(nil).Once()

			todo, err := svc.Reschedule(ctx, alice, 8, "2025-03-15")
			require.NoError(t, err)
			assert.Equal(t, tc.want, todo.Status)
			assert.Equal(t, "2025-03-15", todo.DueDateString())
			assert.Equal(t, []domain.ActivityKind{domain.ActivityTodoReschedule}, rec.kinds())
			repo.AssertExpectations(t)
		})
	}
}

func TestTodoService_Reschedule_Validation(t *testing.T) {
	repo := new(mocks.TodoRepository)
	svc := service.NewTodoService(repo, nil)

	_, err := svc.Reschedule(context.Background(), alice, 8, "")
	assert.ErrorIs(t, err, service.ErrValidation)
	_, err = svc.Reschedule(context.Background(), alice, 8, "2025-13-01")
	assert.ErrorIs(t, err, service.ErrValidation)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestTodoService_RescheduleCalendar(t *testing.T) {
	repo := new(mocks.TodoRepository)
	svc := service.NewTodoService(repo, nil)
	svc.SetClock(func() time.Time { return time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC) })
	ctx := context.Background()

	repo.On("FindByID", ctx, uint(8)).Return(&domain.Todo{ID: 8, UserID: alice.UserID}, nil)

	view, err := svc.RescheduleCalendar(ctx, alice, 8, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Grid.Month)
	assert.Equal(t, 15, view.CurrentDay)

	_, err = svc.RescheduleCalendar(ctx, alice, 8, 2025, 0)
	require.NoError(t, err)

	_, err = svc.RescheduleCalendar(ctx, alice, 8, 3000, 1)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestTodoService_Delete(t *testing.T) {
	repo := new(mocks.TodoRepository)
	svc := service.NewTodoService(repo, nil)
	ctx := context.Background()

	repo.On("FindByID", ctx, uint(3)).Return(&domain.Todo{ID: 3, UserID: alice.UserID}, nil).Once()
	repo.On("Delete", ctx, uint(3), alice.UserID).Return(nil).Once()

	require.NoError(t, svc.Delete(ctx, alice, 3))
	repo.AssertExpectations(t)
}
