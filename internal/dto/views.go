package dto

import (
	"sort"
	"time"

	"personal-workspace/internal/calendar"
	"personal-workspace/internal/domain"
)

type AuthorView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type PostView struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    AuthorView `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	IsOwner   bool       `json:"is_owner"`
}

// NewPostView builds the view of post as seen by viewer.
func NewPostView(post domain.Post, viewer domain.Identity) PostView {
	return PostView{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Author:    AuthorView{ID: post.UserID, Username: post.Author.Username},
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
		IsOwner:   viewer.Owns(post.UserID),
	}
}

func NewPostViews(posts []domain.Post, viewer domain.Identity) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, NewPostView(p, viewer))
	}
	return views
}

type CommentView struct {
	ID        uint       `json:"id"`
	Content   string     `json:"content"`
	Author    AuthorView `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewCommentViews(comments []domain.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{
			ID:        c.ID,
			Content:   c.Content,
			Author:    AuthorView{ID: c.UserID, Username: c.Author.Username},
			CreatedAt: c.CreatedAt,
		})
	}
	return views
}

// PostDetailView is the single post page.
type PostDetailView struct {
	Post     PostView      `json:"post"`
	Comments []CommentView `json:"comments"`
}

// BoardListView is the board index.
type BoardListView struct {
	Posts []PostView `json:"posts"`
	Query string     `json:"query"`
}

type TodoView struct {
	ID        uint              `json:"id"`
	Task      string            `json:"task"`
	DueDate   string            `json:"due_date,omitempty"`
	Status    domain.TodoStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewTodoView(todo domain.Todo) TodoView {
	return TodoView{
		ID:        todo.ID,
		Task:      todo.Task,
		DueDate:   todo.DueDateString(),
		Status:    todo.Status,
		CreatedAt: todo.CreatedAt,
	}
}

func NewTodoViews(todos []domain.Todo) []TodoView {
	views := make([]TodoView, 0, len(todos))
	for _, t := range todos {
		views = append(views, NewTodoView(t))
	}
	return views
}

// TodoListView is the todo index with its active filters and the status choices.
type TodoListView struct {
	Todos         []TodoView          `json:"todos"`
	StatusFilter  string              `json:"status_filter"`
	Query         string              `json:"query"`
	StatusOptions []domain.TodoStatus `json:"status_options"`
}

// CalendarView is one month laid out Sunday first. CurrentDay is 0 unless the
// month is the current one.
type CalendarView struct {
	Year       int                `json:"year"`
	Month      int                `json:"month"`
	MonthName  string             `json:"month_name"`
	Weeks      [][7]int           `json:"weeks"`
	Prev       calendar.YearMonth `json:"prev"`
	Next       calendar.YearMonth `json:"next"`
	CurrentDay int                `json:"current_day"`
	Today      string             `json:"today"`
}

func NewCalendarView(grid calendar.Grid, currentDay int, today time.Time) CalendarView {
	return CalendarView{
		Year:       grid.Year,
		Month:      grid.Month,
		MonthName:  grid.MonthName(),
		Weeks:      grid.Weeks,
		Prev:       grid.Prev,
		Next:       grid.Next,
		CurrentDay: currentDay,
		Today:      today.Format(domain.DateLayout),
	}
}

type DiaryCalendarView struct {
	CalendarView
	EntryDates []string `json:"entry_dates"`
}

func NewDiaryCalendarView(cal CalendarView, entryDates map[string]bool) DiaryCalendarView {
	dates := make([]string, 0, len(entryDates))
	for d := range entryDates {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return DiaryCalendarView{CalendarView: cal, EntryDates: dates}
}

// DiaryEntryView is the entry page for one date. Exists is false for a blank day.
type DiaryEntryView struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Exists  bool   `json:"exists"`
}

func NewDiaryEntryView(date string, entry *domain.DiaryEntry) DiaryEntryView {
	if entry == nil {
		return DiaryEntryView{Date: date}
	}
	return DiaryEntryView{Date: date, Title: entry.Title, Content: entry.Content, Exists: true}
}

type RescheduleView struct {
	Todo     TodoView     `json:"todo"`
	Calendar CalendarView `json:"calendar"`
}
