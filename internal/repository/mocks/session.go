package mocks

import (
	"context"
	"time"

	"personal-workspace/internal/repository"

	"github.com/stretchr/testify/mock"
)

var _ repository.SessionRepository = (*SessionRepository)(nil)

// SessionRepository is a mock of repository.SessionRepository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, session repository.Session, ttl time.Duration) error {
	return m.Called(ctx, session, ttl).Error(0)
}

func (m *SessionRepository) Find(ctx context.Context, id string) (*repository.Session, error) {
	args := m.Called(ctx, id)
	var session *repository.Session
	if v := args.Get(0); v != nil {
		session = v.(*repository.Session)
	}
	return session, args.Error(1)
}

func (m *SessionRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
