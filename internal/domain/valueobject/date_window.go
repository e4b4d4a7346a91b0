// Package valueobject contains domain value objects for the Budget Tracker system.
package valueobject

import (
	"errors"
	"time"
)

// DateLayout is the layout used for calendar days on the wire and in storage.
const DateLayout = "2006-01-02"

// ErrInvalidDateWindow is returned when a window ends before it starts.
var ErrInvalidDateWindow = errors.New("end date must not be before start date")

// CalendarDay returns midnight UTC of the day t falls on in its own location.
// All day comparisons go through it so time-of-day never leaks into a window check.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar day.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return CalendarDay(t), nil
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return CalendarDay(t).Format(DateLayout)
}

// DateWindow is an inclusive range of calendar days.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// NewDateWindow normalizes both bounds to calendar days and rejects inverted ranges.
func NewDateWindow(start, end time.Time) (DateWindow, error) {
	w := DateWindow{Start: CalendarDay(start), End: CalendarDay(end)}
	if w.End.Before(w.Start) {
		return DateWindow{}, ErrInvalidDateWindow
	}
	return w, nil
}

// Contains reports whether the calendar day of t lies within the window, bounds included.
func (w DateWindow) Contains(t time.Time) bool {
	day := CalendarDay(t)
	return !day.Before(CalendarDay(w.Start)) && !day.After(CalendarDay(w.End))
}

// Days returns the number of calendar days covered by the window.
func (w DateWindow) Days() int {
	return int(CalendarDay(w.End).Sub(CalendarDay(w.Start)).Hours()/24) + 1
}
