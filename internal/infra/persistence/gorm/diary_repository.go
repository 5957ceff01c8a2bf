package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"
)

// GormDiaryRepository is the GORM implementation of repository.DiaryRepository.
type GormDiaryRepository struct {
	db *gorm.DB
}

func NewGormDiaryRepository(db *gorm.DB) *GormDiaryRepository {
	if db == nil {
		panic("database connection cannot be nil for GormDiaryRepository")
	}
	return &GormDiaryRepository{db: db}
}

func (r *GormDiaryRepository) FindByDate(ctx context.Context, userID uint, date time.Time) (*domain.DiaryEntry, error) {
	var entry domain.DiaryEntry
	day := date.Format(domain.DateLayout)
	err := r.db.WithContext(ctx).Where("user_id = ? AND entry_date = ?", userID, day).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find diary entry of user %d on %s: %w", userID, day, err)
	}
	return &entry, nil
}

func (r *GormDiaryRepository) ListDatesInMonth(ctx context.Context, userID uint, year, month int) ([]time.Time, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	var dates []time.Time
	err := r.db.WithContext(ctx).Model(&domain.DiaryEntry{}).
		Where("user_id = ? AND entry_date >= ? AND entry_date < ?", userID,
			first.Format(domain.DateLayout), next.Format(domain.DateLayout)).
		Order("entry_date ASC").
		Pluck("entry_date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list diary dates of user %d in %04d-%02d: %w", userID, year, month, err)
	}
	return dates, nil
}

// Upsert writes the entry with INSERT ... ON DUPLICATE KEY UPDATE, so two
// saves of the same day never produce two rows.
func (r *GormDiaryRepository) Upsert(ctx context.Context, entry *domain.DiaryEntry) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "content", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("gorm: upsert diary entry of user %d on %s: %w",
			entry.UserID, entry.EntryDate.Format(domain.DateLayout), err)
	}
	return nil
}
