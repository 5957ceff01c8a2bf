package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"
	"personal-workspace/internal/tasks"
)

func taskLogger(ctx context.Context, t *asynq.Task) *logrus.Entry {
	taskID := ""
	if rw := t.ResultWriter(); rw != nil {
		taskID = rw.TaskID()
	}
	currentRetry, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	return logrus.WithFields(logrus.Fields{
		"task_id":   taskID,
		"task_type": t.Type(),
		"retry":     currentRetry,
		"max_retry": maxRetry,
	})
}

// ActivityRecordHandler persists audit records enqueued by the web process.
type ActivityRecordHandler struct {
	activityRepo repository.ActivityRepository
}

func NewActivityRecordHandler(activityRepo repository.ActivityRepository) *ActivityRecordHandler {
	return &ActivityRecordHandler{activityRepo: activityRepo}
}

// ProcessTask implements asynq.Handler.
func (h *ActivityRecordHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := taskLogger(ctx, t)

	var payload tasks.ActivityRecordPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Activity.UserID == 0 || payload.Activity.Kind == "" {
		logCtx.Error("Activity payload missing user or kind")
		return fmt.Errorf("incomplete activity payload: %w", asynq.SkipRetry)
	}

	if err := h.activityRepo.SaveBatch(ctx, []domain.Activity{payload.Activity}); err != nil {
		logCtx.WithError(err).Errorf("Failed to save activity %s", payload.Activity.Kind)
		return fmt.Errorf("failed to save activity %s: %w", payload.Activity.Kind, err)
	}

	logCtx.WithFields(logrus.Fields{
		"user_id": payload.Activity.UserID,
		"kind":    payload.Activity.Kind,
	}).Debug("Activity persisted")
	return nil
}

// ActivityPruneHandler deletes audit records older than the retention window.
type ActivityPruneHandler struct {
	activityRepo repository.ActivityRepository
	retention    time.Duration
	now          func() time.Time
}

// NewActivityPruneHandler creates the handler; retentionDays <= 0 falls back to 90.
func NewActivityPruneHandler(activityRepo repository.ActivityRepository, retentionDays int) *ActivityPruneHandler {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &ActivityPruneHandler{
		activityRepo: activityRepo,
		retention:    time.Duration(retentionDays) * 24 * time.Hour,
		now:          time.Now,
	}
}

func (h *ActivityPruneHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := taskLogger(ctx, t)
	cutoff := h.now().UTC().Add(-h.retention)

	deleted, err := h.activityRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logCtx.WithError(err).Error("Failed to prune activities")
		return fmt.Errorf("prune activities before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	logCtx.WithFields(logrus.Fields{
		"cutoff":  cutoff.Format(time.RFC3339),
		"deleted": deleted,
	}).Info("Activity prune finished")
	return nil
}
