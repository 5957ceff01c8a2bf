package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/dto"
	"personal-workspace/internal/middleware"
	"personal-workspace/internal/service"
)

const diaryPath = "/diary"

// DiaryHandler serves the diary calendar and entries.
type DiaryHandler struct {
	diaryService *service.DiaryService
}

func NewDiaryHandler(diaryService *service.DiaryService) *DiaryHandler {
	return &DiaryHandler{diaryService: diaryService}
}

// Calendar shows a month, the current one when no year/month is given.
func (h *DiaryHandler) Calendar(c *gin.Context) {
	year, okYear := paramInt(c, "year")
	month, okMonth := paramInt(c, "month")
	if !okYear || !okMonth {
		redirectWithFlash(c, diaryPath, middleware.FlashError, "Invalid year or month.")
		return
	}

	cal, err := h.diaryService.Calendar(c.Request.Context(), currentIdentity(c), year, month)
	if err != nil {
		HandleServiceError(c, err, recovery{Default: "/", Validation: diaryPath, Failed: "Failed to load the diary."})
		return
	}
	render(c, "diary_calendar", dto.NewDiaryCalendarView(
		dto.NewCalendarView(cal.Grid, cal.CurrentDay, cal.Today),
		cal.EntryDates,
	))
}

func (h *DiaryHandler) Entry(c *gin.Context) {
	date := c.Param("date")

	entry, err := h.diaryService.Entry(c.Request.Context(), currentIdentity(c), date)
	if err != nil {
		HandleServiceError(c, err, recovery{Default: diaryPath, Failed: "Failed to load the diary entry."})
		return
	}
	render(c, "diary_entry", dto.NewDiaryEntryView(date, entry))
}

// SaveEntry writes the entry for the date and returns to that month.
func (h *DiaryHandler) SaveEntry(c *gin.Context) {
	date := c.Param("date")
	entryPath := "/diary/entry/" + date

	var form dto.DiaryForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithFlash(c, entryPath, middleware.FlashError, "Diary content is required.")
		return
	}

	entry, created, err := h.diaryService.SaveEntry(c.Request.Context(), currentIdentity(c), date, form.Title, form.Content)
	if err != nil {
		validation := entryPath
		if _, perr := domain.ParseDate(date); perr != nil {
			validation = diaryPath
		}
		HandleServiceError(c, err, recovery{
			Validation: validation,
			Default:    entryPath,
			Failed:     "Failed to save the diary entry.",
		})
		return
	}

	msg := "Diary entry updated."
	if created {
		msg = "Diary entry saved."
	}
	monthPath := fmt.Sprintf("/diary/calendar/%d/%d", entry.EntryDate.Year(), int(entry.EntryDate.Month()))
	redirectWithFlash(c, monthPath, middleware.FlashSuccess, msg)
}
