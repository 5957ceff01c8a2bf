package domain

import "time"

// ActivityKind names a recorded mutation.
type ActivityKind string

const (
	ActivityUserRegistered ActivityKind = "user.registered"
	ActivityPostCreated    ActivityKind = "post.created"
	ActivityPostUpdated    ActivityKind = "post.updated"
	ActivityPostDeleted    ActivityKind = "post.deleted"
	ActivityCommentAdded   ActivityKind = "comment.added"
	ActivityDiarySaved     ActivityKind = "diary.saved"
	ActivityTodoCreated    ActivityKind = "todo.created"
	ActivityTodoStatus     ActivityKind = "todo.status"
	ActivityTodoDeleted    ActivityKind = "todo.deleted"
	ActivityTodoReschedule ActivityKind = "todo.rescheduled"
)

// Activity is an audit record written asynchronously by the worker.
type Activity struct {
	ID         uint         `gorm:"primaryKey"`
	UserID     uint         `gorm:"index;not null"`
	Kind       ActivityKind `gorm:"size:50;not null"`
	SubjectID  uint         `gorm:"not null"`
	Detail     string       `gorm:"size:255"`
	OccurredAt time.Time    `gorm:"index;not null"`
}
