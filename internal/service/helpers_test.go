package service_test

import (
	"context"
	"sync"

	"personal-workspace/internal/domain"
)

// recordedActivities collects what the services hand to the activity log.
type recordedActivities struct {
	mu   sync.Mutex
	list []domain.Activity
}

func (r *recordedActivities) Record(_ context.Context, a domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, a)
}

func (r *recordedActivities) kinds() []domain.ActivityKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]domain.ActivityKind, 0, len(r.list))
	for _, a := range r.list {
		kinds = append(kinds, a.Kind)
	}
	return kinds
}

var (
	alice = domain.Identity{UserID: 1, Username: "alice"}
	bob   = domain.Identity{UserID: 2, Username: "bob"}
)
