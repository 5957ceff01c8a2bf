package http

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/dto"
	"personal-workspace/internal/middleware"
	"personal-workspace/internal/service"
)

const todoListPath = "/todos"

func reschedulePath(id uint) string { return fmt.Sprintf("/todos/reschedule/%d", id) }

// TodoHandler serves the private to-do list.
type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// List shows the user's todos filtered by ?status=all|<slug> and ?query=.
func (h *TodoHandler) List(c *gin.Context) {
	status := c.DefaultQuery("status", service.StatusFilterAll)
	query := c.Query("query")

	todos, err := h.todoService.List(c.Request.Context(), currentIdentity(c), status, query)
	if err != nil {
		if !errors.Is(err, service.ErrStoreUnavailable) {
			HandleServiceError(c, err, recovery{Default: todoListPath})
			return
		}
		middleware.AddFlash(c, middleware.FlashError, "Failed to load your to-do list. Please try again later.")
	}
	render(c, "todos_list", dto.TodoListView{
		Todos:         dto.NewTodoViews(todos),
		StatusFilter:  status,
		Query:         query,
		StatusOptions: domain.AllTodoStatuses(),
	})
}

func (h *TodoHandler) Add(c *gin.Context) {
	var form dto.TodoForm
	if err := c.ShouldBind(&form); err != nil {
		logrus.WithError(err).Warn("Handler.Todo.Add: Invalid input format")
		redirectWithFlash(c, todoListPath, middleware.FlashError, "Task is required.")
		return
	}

	_, err := h.todoService.Create(c.Request.Context(), currentIdentity(c), form.Task, form.DueDate, form.Status)
	if err != nil {
		HandleServiceError(c, err, recovery{Default: todoListPath, Failed: "Failed to add the to-do item."})
		return
	}
	redirectWithFlash(c, todoListPath, middleware.FlashSuccess, "To-do item added.")
}

// UpdateStatus sets the status named in the path.
func (h *TodoHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		redirectWithFlash(c, todoListPath, middleware.FlashError, "The requested item could not be found.")
		return
	}

	_, err := h.todoService.SetStatus(c.Request.Context(), currentIdentity(c), id, c.Param("status"))
	if err != nil {
		HandleServiceError(c, err, recovery{Default: todoListPath, Failed: "Failed to update the to-do status."})
		return
	}
	redirectWithFlash(c, todoListPath, middleware.FlashSuccess, "To-do status updated.")
}

func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		redirectWithFlash(c, todoListPath, middleware.FlashError, "The requested item could not be found.")
		return
	}

	if err := h.todoService.Delete(c.Request.Context(), currentIdentity(c), id); err != nil {
		HandleServiceError(c, err, recovery{Default: todoListPath, Failed: "Failed to delete the to-do item."})
		return
	}
	redirectWithFlash(c, todoListPath, middleware.FlashSuccess, "To-do item deleted.")
}

// RescheduleCalendar shows a month to pick the todo's new due date from.
func (h *TodoHandler) RescheduleCalendar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		redirectWithFlash(c, todoListPath, middleware.FlashError, "The requested item could not be found.")
		return
	}
	year, okYear := paramInt(c, "year")
	month, okMonth := paramInt(c, "month")
	if !okYear || !okMonth {
		redirectWithFlash(c, reschedulePath(id), middleware.FlashError, "Invalid year or month.")
		return
	}

	view, err := h.todoService.RescheduleCalendar(c.Request.Context(), currentIdentity(c), id, year, month)
	if err != nil {
		HandleServiceError(c, err, recovery{
			Validation: reschedulePath(id),
			Default:    todoListPath,
			Failed:     "Failed to load the to-do item.",
		})
		return
	}
	render(c, "todos_reschedule", dto.RescheduleView{
		Todo:     dto.NewTodoView(*view.Todo),
		Calendar: dto.NewCalendarView(view.Grid, view.CurrentDay, view.Today),
	})
}

// SetDueDate reschedules the todo to the posted date.
func (h *TodoHandler) SetDueDate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		redirectWithFlash(c, todoListPath, middleware.FlashError, "The requested item could not be found.")
		return
	}

	var form dto.DueDateForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithFlash(c, todoListPath, middleware.FlashError, "Please choose a new due date.")
		return
	}

	todo, err := h.todoService.Reschedule(c.Request.Context(), currentIdentity(c), id, form.NewDueDate)
	if err != nil {
		HandleServiceError(c, err, recovery{Default: todoListPath, Failed: "Failed to reschedule the to-do item."})
		return
	}
	redirectWithFlash(c, todoListPath, middleware.FlashSuccess,
		fmt.Sprintf("Due date moved to %s.", todo.DueDateString()))
}
