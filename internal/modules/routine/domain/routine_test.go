package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenith/internal/modules/routine/domain"
	apperrors "zenith/internal/platform/errors"
)

func TestPlaceMeasuresFromSixInHours(t *testing.T) {
	t.Parallel()
	e := domain.Event{StartTime: "09:00", EndTime: "10:30"}
	for _, unit := range []float64{1, 2, 4, 64} {
		top, height := domain.Place(e, unit)
		assert.InDelta(t, 3*unit, top, 1e-9)
		assert.InDelta(t, 1.5*unit, height, 1e-9)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	valid := domain.Event{Title: "Gym", StartTime: "07:00", EndTime: "08:00", Days: []int{1, 3}, Color: domain.ColorRed}
	require.NoError(t, valid.Validate())

	cases := map[string]func(e domain.Event) domain.Event{
		"no days":       func(e domain.Event) domain.Event { e.Days = nil; return e },
		"bad day":       func(e domain.Event) domain.Event { e.Days = []int{7}; return e },
		"end first":     func(e domain.Event) domain.Event { e.EndTime = "06:59"; return e },
		"equal":         func(e domain.Event) domain.Event { e.EndTime = e.StartTime; return e },
		"bad clock":     func(e domain.Event) domain.Event { e.StartTime = "7am"; return e },
		"unknown color": func(e domain.Event) domain.Event { e.Color = "#000000"; return e },
		"no title":      func(e domain.Event) domain.Event { e.Title = " "; return e },
	}
	for name, mutate := range cases {
		assert.ErrorIs(t, mutate(valid).Validate(), apperrors.ErrInvalidInput, name)
	}
}

func TestWeekStartIsMonday(t *testing.T) {
	t.Parallel()
	sunday := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), domain.WeekStart(sunday))
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, domain.WeekStart(monday))
}

func TestColumnsByMode(t *testing.T) {
	t.Parallel()
	e := domain.Event{Days: []int{0, 1}}
	wednesday := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	week := domain.View{Mode: domain.ModeWeek, Date: wednesday}
	assert.Equal(t, []int{0, 6}, domain.Columns(e, week))

	day := domain.View{Mode: domain.ModeDay, Date: wednesday}
	assert.Empty(t, domain.Columns(e, day))
	assert.Equal(t, []int{0}, domain.Columns(e, day.Shift(-2)))

	assert.Equal(t, wednesday.AddDate(0, 0, 7), week.Shift(1).Date)
}

func TestModeFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.ModeDay, domain.ModeFor(80, 100))
	assert.Equal(t, domain.ModeWeek, domain.ModeFor(120, 100))
	assert.Equal(t, domain.ModeWeek, domain.ModeFor(0, 100))
}

func TestParseDays(t *testing.T) {
	t.Parallel()
	days, err := domain.ParseDays("Fri, mon,1,sunday")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 5}, days)
	_, err = domain.ParseDays("someday")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestParseColor(t *testing.T) {
	t.Parallel()
	c, err := domain.ParseColor("Purple")
	require.NoError(t, err)
	assert.Equal(t, domain.ColorPurple, c)
	c, err = domain.ParseColor("")
	require.NoError(t, err)
	assert.Equal(t, domain.ColorBlue, c)
	assert.Equal(t, "pink", domain.ColorPink.Name())
}
