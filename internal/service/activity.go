package service

import (
	"context"
	"time"

	"personal-workspace/internal/domain"
)

// ActivityRecorder hands audit records to the background worker. Recording is
// best effort: failures are logged by the implementation and never fail the request.
type ActivityRecorder interface {
	Record(ctx context.Context, activity domain.Activity)
}

// NopActivityRecorder discards every record.
type NopActivityRecorder struct{}

func (NopActivityRecorder) Record(context.Context, domain.Activity) {}

func newActivity(identity domain.Identity, kind domain.ActivityKind, subjectID uint, detail string) domain.Activity {
	return domain.Activity{
		UserID:     identity.UserID,
		Kind:       kind,
		SubjectID:  subjectID,
		Detail:     detail,
		OccurredAt: time.Now().UTC(),
	}
}
