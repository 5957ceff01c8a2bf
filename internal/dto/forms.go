// Package dto holds the form payloads accepted and the view models rendered by the HTTP handlers.
package dto

// CredentialsForm is posted by the register and login forms.
type CredentialsForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

type PostForm struct {
	Title   string `form:"title" json:"title"`
	Content string `form:"content" json:"content"`
}

type CommentForm struct {
	Content string `form:"content" json:"content"`
}

type DiaryForm struct {
	Title   string `form:"title" json:"title"`
	Content string `form:"content" json:"content"`
}

// TodoForm creates a todo. DueDate (YYYY-MM-DD) and Status (slug) are optional.
type TodoForm struct {
	Task    string `form:"task" json:"task"`
	DueDate string `form:"due_date" json:"due_date"`
	Status  string `form:"status" json:"status"`
}

type DueDateForm struct {
	NewDueDate string `form:"new_due_date" json:"new_due_date"`
}
