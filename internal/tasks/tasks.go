package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"personal-workspace/internal/domain"
)

// Task types handled by the worker.
const (
	TypeActivityRecord = "activity:record"
	TypeActivityPrune  = "activity:prune"
)

// ActivityRecordPayload carries one audit record to the worker.
type ActivityRecordPayload struct {
	Activity domain.Activity
}

// NewActivityRecordTask serializes activity into a task for the low queue.
func NewActivityRecordTask(activity domain.Activity) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(ActivityRecordPayload{Activity: activity})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeActivityRecord, payloadBytes, asynq.Queue("low"), asynq.MaxRetry(5)), nil
}

// NewActivityPruneTask builds the periodic retention task. It has no payload;
// the worker owns the retention window.
func NewActivityPruneTask() *asynq.Task {
	return asynq.NewTask(TypeActivityPrune, nil, asynq.Queue("low"), asynq.MaxRetry(1))
}

// Enqueuer is the part of *asynq.Client the recorder needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ActivityRecorder enqueues audit records for the worker. Enqueue failures are
// logged and dropped so the user's request still succeeds.
type ActivityRecorder struct {
	client Enqueuer
	log    *logrus.Entry
}

func NewActivityRecorder(client Enqueuer, logger *logrus.Logger) *ActivityRecorder {
	if client == nil {
		panic("Enqueuer cannot be nil for ActivityRecorder")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ActivityRecorder{client: client, log: logger.WithField("component", "activity_recorder")}
}

func (r *ActivityRecorder) Record(ctx context.Context, activity domain.Activity) {
	logCtx := r.log.WithFields(logrus.Fields{
		"user_id":    activity.UserID,
		"kind":       activity.Kind,
		"subject_id": activity.SubjectID,
	})
	task, err := NewActivityRecordTask(activity)
	if err != nil {
		logCtx.WithError(err).Error("Failed to build activity task")
		return
	}
	info, err := r.client.EnqueueContext(ctx, task)
	if err != nil {
		logCtx.WithError(fmt.Errorf("enqueue %s: %w", TypeActivityRecord, err)).Warn("Activity record dropped")
		return
	}
	logCtx.WithField("task_id", info.ID).Debug("Activity record enqueued")
}
