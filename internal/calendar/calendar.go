// Package calendar builds Sunday-first month grids and month navigation
// for the diary and todo reschedule views.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinYear = 1900
	MaxYear = 2100
)

// ErrInvalidRange is returned when a year or month falls outside the supported range.
var ErrInvalidRange = errors.New("calendar: year or month out of range")

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// String formats the month as YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// Grid is a month laid out in week rows, Sunday first. A zero slot is a blank
// day belonging to the previous or next month.
type Grid struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Weeks [][7]int  `json:"weeks"`
	Prev  YearMonth `json:"prev"`
	Next  YearMonth `json:"next"`
}

// Validate reports whether year and month are inside the supported range.
func Validate(year, month int) error {
	if month < 1 || month > 12 || year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: %d-%02d", ErrInvalidRange, year, month)
	}
	return nil
}

// Month builds the grid for the given month together with its neighbours.
func Month(year, month int) (Grid, error) {
	if err := Validate(year, month); err != nil {
		return Grid{}, err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	weeks := make([][7]int, 0, 6)
	var week [7]int
	slot := int(first.Weekday()) // Sunday == 0
	for day := 1; day <= daysInMonth; day++ {
		week[slot] = day
		slot++
		if slot == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			slot = 0
		}
	}
	if slot > 0 {
		weeks = append(weeks, week)
	}

	return Grid{
		Year:  year,
		Month: month,
		Weeks: weeks,
		Prev:  Prev(year, month),
		Next:  Next(year, month),
	}, nil
}

// Prev returns the month before year/month: the day before the first of the month.
func Prev(year, month int) YearMonth {
	d := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return YearMonth{Year: d.Year(), Month: int(d.Month())}
}

// Next returns the month after year/month. Adding 31 days to the first of any
// month always lands inside the following month.
func Next(year, month int) YearMonth {
	d := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 31)
	return YearMonth{Year: d.Year(), Month: int(d.Month())}
}

// Days returns the non-blank slots of the grid in order.
func (g Grid) Days() []int {
	days := make([]int, 0, 31)
	for _, week := range g.Weeks {
		for _, d := range week {
			if d != 0 {
				days = append(days, d)
			}
		}
	}
	return days
}

// Date returns the calendar date of a day in the grid's month.
func (g Grid) Date(day int) time.Time {
	return time.Date(g.Year, time.Month(g.Month), day, 0, 0, 0, 0, time.UTC)
}

// MonthName returns the English month name, e.g. "February".
func (g Grid) MonthName() string {
	return time.Month(g.Month).String()
}

// CurrentDay returns today's day number when the grid shows the month of now, else 0.
func (g Grid) CurrentDay(now time.Time) int {
	if now.Year() == g.Year && int(now.Month()) == g.Month {
		return now.Day()
	}
	return 0
}
