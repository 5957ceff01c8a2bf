package repository

import (
	"context"
	"time"

	"personal-workspace/internal/domain"
)

// DiaryRepository stores diary entries keyed by (user, date).
type DiaryRepository interface {
	// FindByDate returns ErrNotFound when the user has no entry that day.
	FindByDate(ctx context.Context, userID uint, date time.Time) (*domain.DiaryEntry, error)

	// ListDatesInMonth returns the dates in the month for which the user has an entry.
	ListDatesInMonth(ctx context.Context, userID uint, year, month int) ([]time.Time, error)

	// Upsert inserts the entry or, when (UserID, EntryDate) exists, updates its
	// title and content in the same statement.
	Upsert(ctx context.Context, entry *domain.DiaryEntry) error
}
