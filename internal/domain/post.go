package domain

import "time"

// Post is a board article. Only its author may edit or delete it.
type Post struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Title     string    `gorm:"size:255;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Author User `gorm:"foreignKey:UserID"`
}

// TableName keeps the board table name used by the existing schema.
func (Post) TableName() string { return "board" }

// Comment is an append-only reply to a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"column:board_id;index;not null"`
	UserID    uint      `gorm:"index;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	Author User `gorm:"foreignKey:UserID"`
}
