package http

import (
	"github.com/gin-gonic/gin"

	"personal-workspace/internal/middleware"
)

// Handlers groups the route handlers of the workspace.
type Handlers struct {
	Auth  *AuthHandler
	Board *BoardHandler
	Diary *DiaryHandler
	Todo  *TodoHandler
}

// RegisterRoutes mounts every page route. The session middleware must already
// be installed on r; board, diary and todo routes require a login.
func RegisterRoutes(r gin.IRouter, h Handlers) {
	r.GET("/", h.Auth.Index)
	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.GET("/logout", h.Auth.Logout)
	r.GET("/dashboard", h.Auth.Dashboard)

	board := r.Group("/board", middleware.RequireLogin())
	{
		board.GET("", h.Board.List)
		board.GET("/write", h.Board.WriteForm)
		board.POST("/write", h.Board.Write)
		board.GET("/view/:id", h.Board.View)
		board.GET("/edit/:id", h.Board.EditForm)
		board.POST("/edit/:id", h.Board.Edit)
		board.POST("/delete/:id", h.Board.Delete)
		board.POST("/comment/add/:id", h.Board.AddComment)
	}

	diary := r.Group("/diary", middleware.RequireLogin())
	{
		diary.GET("", h.Diary.Calendar)
		diary.GET("/calendar/:year/:month", h.Diary.Calendar)
		diary.GET("/entry/:date", h.Diary.Entry)
		diary.POST("/entry/:date", h.Diary.SaveEntry)
	}

	todos := r.Group("/todos", middleware.RequireLogin())
	{
		todos.GET("", h.Todo.List)
		todos.POST("/add", h.Todo.Add)
		todos.POST("/update_status/:id/:status", h.Todo.UpdateStatus)
		todos.POST("/delete/:id", h.Todo.Delete)
		todos.GET("/reschedule/:id", h.Todo.RescheduleCalendar)
		todos.GET("/reschedule/:id/:year/:month", h.Todo.RescheduleCalendar)
		todos.POST("/set_due_date/:id", h.Todo.SetDueDate)
	}
}
