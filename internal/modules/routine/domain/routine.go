package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	apperrors "zenith/internal/platform/errors"
)

// Color is the hex tag stored on a routine.
type Color string

const (
	ColorRed    Color = "#ef4444"
	ColorBlue   Color = "#3b82f6"
	ColorGreen  Color = "#22c55e"
	ColorYellow Color = "#eab308"
	ColorPurple Color = "#8b5cf6"
	ColorPink   Color = "#ec4899"
)

var colorNames = []struct {
	Name  string
	Color Color
}{
	{"red", ColorRed},
	{"blue", ColorBlue},
	{"green", ColorGreen},
	{"yellow", ColorYellow},
	{"purple", ColorPurple},
	{"pink", ColorPink},
}

// ParseColor accepts a color name or its hex tag. Empty means blue.
func ParseColor(value string) (Color, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ColorBlue, nil
	}
	for _, c := range colorNames {
		if strings.EqualFold(value, c.Name) || strings.EqualFold(value, string(c.Color)) {
			return c.Color, nil
		}
	}
	return "", fmt.Errorf("%w: unknown color %q", apperrors.ErrInvalidInput, value)
}

func (c Color) Name() string {
	for _, n := range colorNames {
		if n.Color == c {
			return n.Name
		}
	}
	return string(c)
}

func ColorNames() []string {
	out := make([]string, 0, len(colorNames))
	for _, c := range colorNames {
		out = append(out, c.Name)
	}
	return out
}

// Event is a weekly recurring block. Days holds weekday numbers, 0 = Sunday.
type Event struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Title     string    `json:"title"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Days      []int     `json:"days"`
	Color     Color     `json:"color"`
}

// ParseClock turns "HH:MM" into minutes after midnight.
func ParseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil || len(value) != len("15:04") {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", apperrors.ErrInvalidInput, value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Span returns start and end in minutes after midnight.
func (e Event) Span() (start, end int, err error) {
	if start, err = ParseClock(e.StartTime); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(e.EndTime); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: routine title is required", apperrors.ErrInvalidInput)
	}
	if len(e.Days) == 0 {
		return fmt.Errorf("%w: select at least one weekday", apperrors.ErrInvalidInput)
	}
	for _, d := range e.Days {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: weekday %d out of range", apperrors.ErrInvalidInput, d)
		}
	}
	start, end, err := e.Span()
	if err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("%w: end time must be after start time", apperrors.ErrInvalidInput)
	}
	if _, err := ParseColor(string(e.Color)); err != nil {
		return err
	}
	return nil
}

func (e Event) OnWeekday(d time.Weekday) bool {
	return slices.Contains(e.Days, int(d))
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// ParseDays reads a comma separated weekday list such as "mon,wed,fri" or
// "1,3,5". Duplicates collapse and the result is sorted.
func ParseDays(value string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(value, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if len(part) > 3 {
			part = part[:3]
		}
		d, ok := weekdayNames[part]
		if !ok {
			if len(part) != 1 || part[0] < '0' || part[0] > '6' {
				return nil, fmt.Errorf("%w: unknown weekday %q", apperrors.ErrInvalidInput, part)
			}
			d = time.Weekday(part[0] - '0')
		}
		if !slices.Contains(days, int(d)) {
			days = append(days, int(d))
		}
	}
	slices.Sort(days)
	return days, nil
}
