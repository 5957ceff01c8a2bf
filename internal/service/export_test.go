package service

import "time"

// SetClock pins the time source of the calendar views in tests.
func (s *DiaryService) SetClock(now func() time.Time) { s.now = now }

// SetClock pins the time source of the reschedule calendar in tests.
func (s *TodoService) SetClock(now func() time.Time) { s.now = now }
