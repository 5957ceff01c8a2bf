// Package domain defines the entities shared by the store, services and handlers.
package domain

import "time"

// User is a registered account. Password holds the bcrypt hash.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(191);uniqueIndex:idx_username;not null"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Identity is the logged-in user for one request. Handlers pass it explicitly
// into every service call.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// Owns reports whether the identity is the recorded owner.
func (i Identity) Owns(ownerID uint) bool {
	return i.UserID != 0 && i.UserID == ownerID
}
