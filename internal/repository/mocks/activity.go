package mocks

import (
	"context"
	"time"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"

	"github.com/stretchr/testify/mock"
)

var _ repository.ActivityRepository = (*ActivityRepository)(nil)

// ActivityRepository is a mock of repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) SaveBatch(ctx context.Context, activities []domain.Activity) error {
	return m.Called(ctx, activities).Error(0)
}

func (m *ActivityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
