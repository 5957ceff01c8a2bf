package gormpersistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"personal-workspace/internal/domain"
)

// activityBatchSize caps the rows of one INSERT.
const activityBatchSize = 100

// GormActivityRepository is the GORM implementation of repository.ActivityRepository.
type GormActivityRepository struct {
	db *gorm.DB
}

func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	if db == nil {
		panic("database connection cannot be nil for GormActivityRepository")
	}
	return &GormActivityRepository{db: db}
}

// SaveBatch inserts activities in chunks.
func (r *GormActivityRepository) SaveBatch(ctx context.Context, activities []domain.Activity) error {
	if len(activities) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(&activities, activityBatchSize).Error; err != nil {
		return fmt.Errorf("gorm: failed to save activity batch (size %d): %w", len(activities), err)
	}
	return nil
}

// DeleteOlderThan removes activities recorded before cutoff and reports how many.
func (r *GormActivityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("occurred_at < ?", cutoff).Delete(&domain.Activity{})
	if res.Error != nil {
		return 0, fmt.Errorf("gorm: prune activities before %s: %w", cutoff.Format(time.RFC3339), res.Error)
	}
	return res.RowsAffected, nil
}
