package repository

import (
	"context"
	"time"

	"personal-workspace/internal/domain"
)

// ActivityRepository persists the audit trail written by the worker.
type ActivityRepository interface {
	SaveBatch(ctx context.Context, activities []domain.Activity) error

	// DeleteOlderThan removes records that occurred before cutoff and returns how many went.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
