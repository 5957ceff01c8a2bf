package mocks

import (
	"context"
	"time"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"

	"github.com/stretchr/testify/mock"
)

var _ repository.DiaryRepository = (*DiaryRepository)(nil)

// DiaryRepository is a mock of repository.DiaryRepository.
type DiaryRepository struct {
	mock.Mock
}

func (m *DiaryRepository) FindByDate(ctx context.Context, userID uint, date time.Time) (*domain.DiaryEntry, error) {
	args := m.Called(ctx, userID, date)
	var entry *domain.DiaryEntry
	if v := args.Get(0); v != nil {
		entry = v.(*domain.DiaryEntry)
	}
	return entry, args.Error(1)
}

func (m *DiaryRepository) ListDatesInMonth(ctx context.Context, userID uint, year, month int) ([]time.Time, error) {
	args := m.Called(ctx, userID, year, month)
	var dates []time.Time
	if v := args.Get(0); v != nil {
		dates = v.([]time.Time)
	}
	return dates, args.Error(1)
}

func (m *DiaryRepository) Upsert(ctx context.Context, entry *domain.DiaryEntry) error {
	return m.Called(ctx, entry).Error(0)
}
