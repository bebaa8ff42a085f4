package app

import (
	"context"
	"fmt"
	"strings"

	routinedto "zenith/internal/modules/routine/dto"
	boardview "zenith/internal/ui/views/board"
	calendarview "zenith/internal/ui/views/calendar"
	financeview "zenith/internal/ui/views/finance"
	rowsview "zenith/internal/ui/views/rows"
)

// reload re-reads whatever depends on source. Reads come from in-memory
// replicas, so they are done inline.
func (m *Model) reload(source string) {
	ctx := context.Background()
	switch source {
	case SourceTasks:
		m.reloadTasks(ctx)
		m.reloadGoals(ctx)
	case SourceContacts:
		m.reloadContacts(ctx)
		m.reloadPipeline(ctx)
	case SourceProspects, SourceStages:
		m.reloadPipeline(ctx)
	case SourceGoals:
		m.reloadGoals(ctx)
	case SourceRoutines:
		m.reloadCalendar(ctx)
	case SourceTransactions:
		m.reloadFinance(ctx)
	case SourceHistory:
		m.today = m.deps.Pomodoro.Today(ctx)
	}
}

func (m *Model) reloadTasks(ctx context.Context) {
	board := m.deps.Tasks.Board(ctx)
	cols := make([]boardview.Column, 0, len(board))
	for _, c := range board {
		col := boardview.Column{Title: c.Status}
		for _, t := range c.Tasks {
			meta := t.Priority
			if t.DueDate != "" {
				meta += "  due " + t.DueDate
			}
			if t.PomodorosDone > 0 {
				meta += fmt.Sprintf("  %d× %dm", t.PomodorosDone, t.TotalTimeSpent/60)
			}
			col.Cards = append(col.Cards, boardview.Card{ID: t.ID, Title: t.Title, Meta: meta})
		}
		cols = append(cols, col)
	}
	m.tasks.SetColumns(cols)
}

func (m *Model) reloadContacts(ctx context.Context) {
	contacts := m.deps.Contacts.List(ctx)
	rows := make([]rowsview.Row, 0, len(contacts))
	for _, c := range contacts {
		var meta []string
		for _, v := range []string{c.Company, c.Email, c.Phone} {
			if v != "" {
				meta = append(meta, v)
			}
		}
		rows = append(rows, rowsview.Row{ID: c.ID, Text: c.Name, Meta: strings.Join(meta, " · ")})
	}
	m.contacts.SetRows(rows)
}

func (m *Model) reloadPipeline(ctx context.Context) {
	lanes := m.deps.Pipeline.Board(ctx)
	cols := make([]boardview.Column, 0, len(lanes))
	for _, lane := range lanes {
		col := boardview.Column{Title: lane.Stage}
		for _, p := range lane.Prospects {
			title := p.ContactName
			if p.Orphaned {
				title = "(deleted contact)"
			}
			meta := p.Company
			if p.FollowUpDate != "" {
				meta = strings.TrimSpace(meta + "  follow up " + p.FollowUpDate)
			}
			col.Cards = append(col.Cards, boardview.Card{ID: p.ID, Title: title, Meta: meta})
		}
		cols = append(cols, col)
	}
	m.pipeline.SetColumns(cols)
}

func (m *Model) reloadGoals(ctx context.Context) {
	var rows []rowsview.Row
	for _, group := range m.deps.Goals.ByHorizon(ctx) {
		rows = append(rows, rowsview.Row{Text: group.Horizon + " term", Header: true})
		for _, g := range group.Goals {
			meta := fmt.Sprintf("%d/%d tasks  %.0f%%", g.Done, g.Total, g.Progress)
			if g.TargetDate != "" {
				meta += "  by " + g.TargetDate
			}
			rows = append(rows, rowsview.Row{ID: g.ID, Text: g.Title, Meta: meta})
		}
	}
	m.goals.SetRows(rows)
}

func (m *Model) reloadCalendar(ctx context.Context) {
	query := routinedto.CalendarQuery{Date: m.calendarDate, Width: m.width, Unit: 1}
	out, err := m.deps.Routines.Calendar(ctx, query)
	if err == nil {
		if unit := calendarview.Unit(m.height-4, out.Rows); unit != 1 {
			query.Unit = float64(unit)
			out, err = m.deps.Routines.Calendar(ctx, query)
		}
	}
	m.calendarErr = err
	if err != nil {
		return
	}
	m.calendar = out
	m.calendarUnit = max(1, int(query.Unit))
}

func (m *Model) reloadFinance(ctx context.Context) {
	summary, err := m.deps.Finance.Summary(ctx, m.period, m.anchor)
	if err != nil {
		m.status = "error: " + err.Error()
		return
	}
	m.summary = summary
	rows := make([]rowsview.Row, 0, len(summary.Transactions))
	for _, t := range summary.Transactions {
		rows = append(rows, rowsview.Row{
			ID:   t.ID,
			Text: fmt.Sprintf("%s  %-10s %s", t.Date, financeview.Money(t.Signed), t.Title),
			Meta: t.Category,
		})
	}
	m.txs.SetRows(rows)
}
