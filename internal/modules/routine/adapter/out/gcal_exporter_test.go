package out_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	routineout "zenith/internal/modules/routine/adapter/out"
	"zenith/internal/modules/routine/domain"
	"zenith/internal/platform/clock"
)

type fakeCalendar struct {
	mu       sync.Mutex
	existing map[string]string
	inserted []calendar.Event
	patched  []string
}

func (f *fakeCalendar) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/events"):
		prop := r.URL.Query().Get("privateExtendedProperty")
		routineID := strings.TrimPrefix(prop, routineout.RoutineIDProperty+"=")
		items := []map[string]string{}
		if eventID, ok := f.existing[routineID]; ok {
			items = append(items, map[string]string{"id": eventID})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	case r.Method == http.MethodPost:
		var ev calendar.Event
		_ = json.NewDecoder(r.Body).Decode(&ev)
		f.inserted = append(f.inserted, ev)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "new"})
	case r.Method == http.MethodPatch:
		f.patched = append(f.patched, r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:])
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "patched"})
	default:
		http.Error(w, "unexpected", http.StatusBadRequest)
	}
}

func TestExportCreatesOrUpdatesByRoutineID(t *testing.T) {
	t.Parallel()
	fake := &fakeCalendar{existing: map[string]string{"r2": "evt-2"}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	ctx := context.Background()
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(server.Client()), option.WithEndpoint(server.URL+"/"))
	require.NoError(t, err)
	clk := clock.NewManual(time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC))
	exporter := routineout.NewGoogleCalendarExporter(srv, "", time.UTC, clk, nil)

	report, err := exporter.Export(ctx, []domain.Event{
		{ID: "r1", Title: "Gym", StartTime: "07:00", EndTime: "08:30", Days: []int{1, 3}, Color: domain.ColorRed},
		{ID: "r2", Title: "Read", StartTime: "21:00", EndTime: "22:00", Days: []int{0}, Color: domain.ColorBlue},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ExportReport{Created: 1, Updated: 1}, report)

	require.Len(t, fake.inserted, 1)
	got := fake.inserted[0]
	assert.Equal(t, "Gym", got.Summary)
	assert.Equal(t, []string{"RRULE:FREQ=WEEKLY;BYDAY=MO,WE"}, got.Recurrence)
	assert.Equal(t, "2026-10-12T07:00:00Z", got.Start.DateTime)
	assert.Equal(t, "2026-10-12T08:30:00Z", got.End.DateTime)
	assert.Equal(t, "r1", got.ExtendedProperties.Private[routineout.RoutineIDProperty])
	assert.Equal(t, "11", got.ColorId)
	assert.Equal(t, []string{"evt-2"}, fake.patched)
}

func TestFirstOccurrence(t *testing.T) {
	t.Parallel()
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	day, ok := routineout.FirstOccurrence(domain.Event{Days: []int{0}}, monday)
	require.True(t, ok)
	assert.Equal(t, time.Sunday, day.Weekday())
	_, ok = routineout.FirstOccurrence(domain.Event{}, monday)
	assert.False(t, ok)
}
