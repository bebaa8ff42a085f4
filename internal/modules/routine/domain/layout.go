package domain

import (
	"time"

	"zenith/internal/platform/clock"
)

// The calendar grid covers 06:00 to 23:00 in hourly rows.
const (
	GridStartHour = 6
	GridEndHour   = 23
	GridRows      = GridEndHour - GridStartHour
)

// Place returns the vertical offset and height of an event on the grid,
// measured in units per hour. Overlapping events are not resolved.
func Place(e Event, unit float64) (top, height float64) {
	start, end, err := e.Span()
	if err != nil {
		return 0, 0
	}
	top = float64(start-GridStartHour*60) / 60 * unit
	height = float64(end-start) / 60 * unit
	return top, height
}

type Mode string

const (
	ModeWeek Mode = "week"
	ModeDay  Mode = "day"
)

// ModeFor shows a single day on displays narrower than compactWidth.
func ModeFor(width, compactWidth int) Mode {
	if compactWidth > 0 && width > 0 && width < compactWidth {
		return ModeDay
	}
	return ModeWeek
}

// WeekStart returns midnight of the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	day := clock.StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

type View struct {
	Mode Mode
	Date time.Time
}

// Days lists the dates shown as columns: Monday first in week mode.
func (v View) Days() []time.Time {
	if v.Mode == ModeDay {
		return []time.Time{clock.StartOfDay(v.Date)}
	}
	start := WeekStart(v.Date)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// Shift moves the view by n weeks in week mode and n days in day mode.
func (v View) Shift(n int) View {
	if v.Mode == ModeDay {
		v.Date = v.Date.AddDate(0, 0, n)
	} else {
		v.Date = v.Date.AddDate(0, 0, 7*n)
	}
	return v
}

// Columns returns the indexes into v.Days() on which the event is drawn.
func Columns(e Event, v View) []int {
	var cols []int
	for i, day := range v.Days() {
		if e.OnWeekday(day.Weekday()) {
			cols = append(cols, i)
		}
	}
	return cols
}
