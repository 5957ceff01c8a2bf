package domain

import "time"

// DateLayout is the wire format for calendar dates (entry dates, due dates).
const DateLayout = "2006-01-02"

// DiaryEntry holds one user's diary text for one day. (UserID, EntryDate) is unique.
type DiaryEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_entry_date;not null"`
	EntryDate time.Time `gorm:"type:date;uniqueIndex:idx_user_entry_date;not null"`
	Title     string    `gorm:"size:255"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName keeps the diaries table name used by the existing schema.
func (DiaryEntry) TableName() string { return "diaries" }

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
