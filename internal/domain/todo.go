package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidStatus is returned when a string does not name a TodoStatus.
var ErrInvalidStatus = errors.New("invalid todo status")

// TodoStatus is the closed set of to-do lifecycle states. The zero value is TodoIncomplete.
type TodoStatus uint8

const (
	TodoIncomplete TodoStatus = iota
	TodoInProgress
	TodoDone
	TodoRescheduled
)

var todoStatusSlugs = [...]string{
	TodoIncomplete:  "incomplete",
	TodoInProgress:  "in_progress",
	TodoDone:        "done",
	TodoRescheduled: "rescheduled",
}

// AllTodoStatuses lists every status in display order.
func AllTodoStatuses() []TodoStatus {
	return []TodoStatus{TodoIncomplete, TodoInProgress, TodoDone, TodoRescheduled}
}

// ParseTodoStatus maps a slug to its status.
func ParseTodoStatus(s string) (TodoStatus, error) {
	for i, slug := range todoStatusSlugs {
		if s == slug {
			return TodoStatus(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s TodoStatus) String() string {
	if int(s) < len(todoStatusSlugs) {
		return todoStatusSlugs[s]
	}
	return fmt.Sprintf("TodoStatus(%d)", uint8(s))
}

// AfterReschedule returns the status a to-do takes when its due date is moved.
// A finished item is reopened, a rescheduled item stays rescheduled and
// anything else is considered in progress.
func (s TodoStatus) AfterReschedule() TodoStatus {
	switch s {
	case TodoDone:
		return TodoIncomplete
	case TodoRescheduled:
		return TodoRescheduled
	default: // TodoIncomplete, TodoInProgress
		return TodoInProgress
	}
}

// MarshalText implements encoding.TextMarshaler so views carry the slug.
func (s TodoStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Value stores the status as its slug.
func (s TodoStatus) Value() (driver.Value, error) {
	if int(s) >= len(todoStatusSlugs) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, uint8(s))
	}
	return s.String(), nil
}

// Scan reads a slug column. Unknown values are rejected.
func (s *TodoStatus) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrInvalidStatus, src)
	}
	parsed, err := ParseTodoStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Todo is a single to-do item owned by one user.
type Todo struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"index;not null"`
	Task      string     `gorm:"size:255;not null"`
	DueDate   *time.Time `gorm:"type:date"`
	Status    TodoStatus `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
}

// DueDateString formats the due date, or returns "" when none is set.
func (t Todo) DueDateString() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(DateLayout)
}
