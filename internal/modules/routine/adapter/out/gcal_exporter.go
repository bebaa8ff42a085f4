package out

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"zenith/internal/modules/routine/domain"
	routineout "zenith/internal/modules/routine/port/out"
	"zenith/internal/platform/clock"
	"zenith/internal/platform/googleauth"
	"zenith/internal/platform/logging"
)

// RoutineIDProperty is the private extended property that ties a Google
// Calendar event back to its routine.
const RoutineIDProperty = "zenith_routine_id"

var byDay = [...]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// Google Calendar event color ids closest to each routine color.
var colorIDs = map[domain.Color]string{
	domain.ColorRed:    "11",
	domain.ColorBlue:   "7",
	domain.ColorGreen:  "10",
	domain.ColorYellow: "5",
	domain.ColorPurple: "3",
	domain.ColorPink:   "4",
}

type GoogleCalendarExporter struct {
	srv        *calendar.Service
	calendarID string
	loc        *time.Location
	clock      clock.Clock
	logger     *slog.Logger
}

func NewGoogleCalendarExporter(srv *calendar.Service, calendarID string, loc *time.Location, clk clock.Clock, logger *slog.Logger) *GoogleCalendarExporter {
	if calendarID == "" {
		calendarID = "primary"
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &GoogleCalendarExporter{srv: srv, calendarID: calendarID, loc: loc, clock: clk, logger: logger}
}

// DialGoogleCalendar authorizes against Google with the cached OAuth token,
// running the consent flow when there is none.
func DialGoogleCalendar(ctx context.Context, auth googleauth.Options, calendarID string, loc *time.Location, clk clock.Clock, logger *slog.Logger) (routineout.CalendarExporter, error) {
	auth.Scopes = []string{calendar.CalendarEventsScope}
	client, err := googleauth.Client(ctx, auth)
	if err != nil {
		return nil, err
	}
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return NewGoogleCalendarExporter(srv, calendarID, loc, clk, logger), nil
}

func (x *GoogleCalendarExporter) Export(ctx context.Context, events []domain.Event) (domain.ExportReport, error) {
	var report domain.ExportReport
	for _, e := range events {
		target, err := x.toCalendarEvent(e)
		if err != nil {
			return report, err
		}
		existing, err := x.find(ctx, e.ID)
		if err != nil {
			return report, fmt.Errorf("look up routine %s: %w", e.ID, err)
		}
		if existing != nil {
			if _, err := x.srv.Events.Patch(x.calendarID, existing.Id, target).Context(ctx).Do(); err != nil {
				return report, fmt.Errorf("update routine %s: %w", e.ID, err)
			}
			report.Updated++
			continue
		}
		if _, err := x.srv.Events.Insert(x.calendarID, target).Context(ctx).Do(); err != nil {
			return report, fmt.Errorf("create routine %s: %w", e.ID, err)
		}
		report.Created++
	}
	x.logger.Info("routines exported", "calendar", x.calendarID, "created", report.Created, "updated", report.Updated)
	return report, nil
}

func (x *GoogleCalendarExporter) find(ctx context.Context, routineID string) (*calendar.Event, error) {
	events, err := x.srv.Events.List(x.calendarID).
		PrivateExtendedProperty(RoutineIDProperty + "=" + routineID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

func (x *GoogleCalendarExporter) toCalendarEvent(e domain.Event) (*calendar.Event, error) {
	start, end, err := e.Span()
	if err != nil {
		return nil, err
	}
	first, ok := FirstOccurrence(e, domain.WeekStart(x.clock.Now().In(x.loc)))
	if !ok {
		return nil, fmt.Errorf("routine %s has no weekdays", e.ID)
	}
	startAt := first.Add(time.Duration(start) * time.Minute)
	endAt := first.Add(time.Duration(end) * time.Minute)
	return &calendar.Event{
		Summary: e.Title,
		ColorId: colorIDs[e.Color],
		Start: &calendar.EventDateTime{
			DateTime: startAt.Format(time.RFC3339),
			TimeZone: x.loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: endAt.Format(time.RFC3339),
			TimeZone: x.loc.String(),
		},
		Recurrence: []string{WeeklyRule(e.Days)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{RoutineIDProperty: e.ID},
		},
	}, nil
}

// WeeklyRule renders the RRULE for a routine's weekdays.
func WeeklyRule(days []int) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < len(byDay) {
			parts = append(parts, byDay[d])
		}
	}
	return "RRULE:FREQ=WEEKLY;BYDAY=" + strings.Join(parts, ",")
}

// FirstOccurrence returns the first day on or after from that the routine
// recurs on.
func FirstOccurrence(e domain.Event, from time.Time) (time.Time, bool) {
	for i := range 7 {
		day := from.AddDate(0, 0, i)
		if e.OnWeekday(day.Weekday()) {
			return day, true
		}
	}
	return time.Time{}, false
}

// LazyGoogleCalendar defers authorization until the first export, so the
// consent flow never runs for sessions that do not export.
type LazyGoogleCalendar struct {
	auth       googleauth.Options
	calendarID string
	loc        *time.Location
	clock      clock.Clock
	logger     *slog.Logger

	mu       sync.Mutex
	exporter routineout.CalendarExporter
}

func NewLazyGoogleCalendar(auth googleauth.Options, calendarID string, loc *time.Location, clk clock.Clock, logger *slog.Logger) *LazyGoogleCalendar {
	return &LazyGoogleCalendar{auth: auth, calendarID: calendarID, loc: loc, clock: clk, logger: logger}
}

func (l *LazyGoogleCalendar) Export(ctx context.Context, events []domain.Event) (domain.ExportReport, error) {
	l.mu.Lock()
	if l.exporter == nil {
		exporter, err := DialGoogleCalendar(ctx, l.auth, l.calendarID, l.loc, l.clock, l.logger)
		if err != nil {
			l.mu.Unlock()
			return domain.ExportReport{}, err
		}
		l.exporter = exporter
	}
	exporter := l.exporter
	l.mu.Unlock()
	return exporter.Export(ctx, events)
}
