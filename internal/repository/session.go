package repository

import (
	"context"
	"time"

	"personal-workspace/internal/domain"
)

// Session is a server-side login record referenced by the session cookie.
type Session struct {
	ID        string          `json:"id"`
	Identity  domain.Identity `json:"identity"`
	CreatedAt time.Time       `json:"created_at"`
}

// SessionRepository persists login sessions, usually in Redis.
type SessionRepository interface {
	Create(ctx context.Context, session Session, ttl time.Duration) error

	// Find returns ErrSessionNotFound for unknown or expired sessions.
	Find(ctx context.Context, id string) (*Session, error)

	Delete(ctx context.Context, id string) error
}
