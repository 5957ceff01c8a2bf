package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"personal-workspace/internal/calendar"
	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"

	"github.com/sirupsen/logrus"
)

// DiaryCalendar is one month of the diary with the days that already have an entry.
type DiaryCalendar struct {
	Grid       calendar.Grid
	EntryDates map[string]bool // keyed by YYYY-MM-DD
	CurrentDay int             // 0 unless the grid shows the current month
	Today      time.Time
}

// DiaryService manages one diary per user: at most one entry per day.
type DiaryService struct {
	diaryRepo repository.DiaryRepository
	activity  ActivityRecorder
	now       func() time.Time
}

// NewDiaryService creates a DiaryService.
func NewDiaryService(diaryRepo repository.DiaryRepository, activity ActivityRecorder) *DiaryService {
	if diaryRepo == nil {
		panic("DiaryRepository cannot be nil for DiaryService")
	}
	if activity == nil {
		activity = NopActivityRecorder{}
	}
	return &DiaryService{diaryRepo: diaryRepo, activity: activity, now: time.Now}
}

// Calendar returns the identity's diary month. year or month of 0 selects the current one.
func (s *DiaryService) Calendar(ctx context.Context, identity domain.Identity, year, month int) (*DiaryCalendar, error) {
	today := s.now()
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = int(today.Month())
	}

	grid, err := calendar.Month(year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	dates, err := s.diaryRepo.ListDatesInMonth(ctx, identity.UserID, year, month)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": identity.UserID,
			"month":   calendar.YearMonth{Year: year, Month: month}.String(),
		}).Error("Failed to list diary dates")
		return nil, ErrStoreUnavailable
	}

	entryDates := make(map[string]bool, len(dates))
	for _, d := range dates {
		entryDates[d.Format(domain.DateLayout)] = true
	}

	return &DiaryCalendar{
		Grid:       grid,
		EntryDates: entryDates,
		CurrentDay: grid.CurrentDay(today),
		Today:      today,
	}, nil
}

// Entry returns the identity's entry for dateStr, or nil when the day is still empty.
func (s *DiaryService) Entry(ctx context.Context, identity domain.Identity, dateStr string) (*domain.DiaryEntry, error) {
	date, err := parseDiaryDate(dateStr)
	if err != nil {
		return nil, err
	}

	entry, err := s.diaryRepo.FindByDate(ctx, identity.UserID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		logrus.WithError(err).WithFields(logrus.Fields{"user_id": identity.UserID, "entry_date": dateStr}).Error("Failed to load diary entry")
		return nil, ErrStoreUnavailable
	}
	if err := authorize(identity, entry.UserID); err != nil {
		return nil, err
	}
	return entry, nil
}

// SaveEntry writes the entry for dateStr, updating the existing one for that
// day if there is one. created reports whether a new entry was written.
func (s *DiaryService) SaveEntry(ctx context.Context, identity domain.Identity, dateStr, title, content string) (entry *domain.DiaryEntry, created bool, err error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": identity.UserID, "entry_date": dateStr})

	date, err := parseDiaryDate(dateStr)
	if err != nil {
		return nil, false, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, false, fmt.Errorf("%w: diary content is required", ErrValidation)
	}

	existing, err := s.diaryRepo.FindByDate(ctx, identity.UserID, date)
	switch {
	case err == nil:
		if err := authorize(identity, existing.UserID); err != nil {
			logCtx.WithField("owner_id", existing.UserID).Warn("Rejected write to another user's diary")
			return nil, false, err
		}
	case errors.Is(err, repository.ErrNotFound):
		existing = nil
	default:
		logCtx.WithError(err).Error("Failed to load diary entry")
		return nil, false, ErrStoreUnavailable
	}

	entry = &domain.DiaryEntry{
		UserID:    identity.UserID,
		EntryDate: date,
		Title:     strings.TrimSpace(title),
		Content:   content,
	}
	if existing != nil {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	}
	if err := s.diaryRepo.Upsert(ctx, entry); err != nil {
		logCtx.WithError(err).Error("Failed to save diary entry")
		return nil, false, ErrStoreUnavailable
	}

	if existing == nil {
		// A concurrent save of the same day may have inserted first. The stored
		// row decides the id and whether this call created it.
		stored, err := s.diaryRepo.FindByDate(ctx, identity.UserID, date)
		if err != nil {
			logCtx.WithError(err).Error("Failed to reload diary entry after save")
			return nil, false, ErrStoreUnavailable
		}
		created = entry.ID != 0 && stored.ID == entry.ID
		entry = stored
	}

	s.activity.Record(ctx, newActivity(identity, domain.ActivityDiarySaved, entry.ID, dateStr))
	logCtx.WithFields(logrus.Fields{"entry_id": entry.ID, "created": created}).Info("Diary entry saved")
	return entry, created, nil
}

func parseDiaryDate(dateStr string) (time.Time, error) {
	date, err := domain.ParseDate(strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, dateStr)
	}
	return date, nil
}
