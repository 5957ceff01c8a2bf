package worker

import "time"

func (h *ActivityPruneHandler) SetClock(now func() time.Time) {
	h.now = now
}
