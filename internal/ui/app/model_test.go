package app_test

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assistantdto "zenith/internal/modules/assistant/dto"
	contactdto "zenith/internal/modules/contact/dto"
	financedto "zenith/internal/modules/finance/dto"
	goaldto "zenith/internal/modules/goal/dto"
	pipelinedto "zenith/internal/modules/pipeline/dto"
	pomodorodto "zenith/internal/modules/pomodoro/dto"
	routinedto "zenith/internal/modules/routine/dto"
	settingsdto "zenith/internal/modules/settings/dto"
	taskdto "zenith/internal/modules/task/dto"
	"zenith/internal/ui/app"
	"zenith/internal/ui/components"
)

type fakeTasks struct{ tasks []taskdto.TaskOutput }

func (f *fakeTasks) List(context.Context) []taskdto.TaskOutput { return f.tasks }
func (f *fakeTasks) Board(context.Context) []taskdto.ColumnOutput {
	cols := []taskdto.ColumnOutput{{Status: "Todo"}, {Status: "Doing"}, {Status: "Done"}}
	for _, t := range f.tasks {
		for i := range cols {
			if cols[i].Status == t.Status {
				cols[i].Tasks = append(cols[i].Tasks, t)
			}
		}
	}
	return cols
}
func (f *fakeTasks) Incomplete(context.Context) []taskdto.TaskOutput {
	var out []taskdto.TaskOutput
	for _, t := range f.tasks {
		if !t.IsDone() {
			out = append(out, t)
		}
	}
	return out
}
func (f *fakeTasks) Add(_ context.Context, title, _, priority, dueDate string) (string, error) {
	f.tasks = append(f.tasks, taskdto.TaskOutput{ID: title, Title: title, Status: "Todo", Priority: priority, DueDate: dueDate})
	return title, nil
}
func (f *fakeTasks) Move(_ context.Context, id, status string) error {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Status = status
		}
	}
	return nil
}
func (f *fakeTasks) Delete(context.Context, string) error { return nil }

type fakeContacts struct{}

func (fakeContacts) List(context.Context) []contactdto.ContactOutput { return nil }
func (fakeContacts) Add(_ context.Context, in contactdto.ContactInput) (contactdto.ContactOutput, error) {
	return contactdto.ContactOutput{Name: in.Name}, nil
}
func (fakeContacts) Delete(context.Context, string) error { return nil }

type fakePipeline struct{}

func (fakePipeline) Board(context.Context) []pipelinedto.LaneOutput { return nil }
func (fakePipeline) Promote(context.Context, string, string, string, string) (string, error) {
	return "p1", nil
}
func (fakePipeline) UpdateProspect(context.Context, pipelinedto.UpdateProspectInput) error {
	return nil
}
func (fakePipeline) MoveProspect(context.Context, string, string) error { return nil }
func (fakePipeline) DeleteProspect(context.Context, string) error       { return nil }
func (fakePipeline) SeedStages(context.Context) (int, error)            { return 5, nil }
func (fakePipeline) AddStage(context.Context, string) error             { return nil }
func (fakePipeline) RenameStage(context.Context, string, string) error  { return nil }
func (fakePipeline) DeleteStage(context.Context, string) (pipelinedto.DeleteStageOutput, error) {
	return pipelinedto.DeleteStageOutput{}, nil
}

type fakeGoals struct{}

func (fakeGoals) ByHorizon(context.Context) []goaldto.GroupOutput        { return nil }
func (fakeGoals) Add(context.Context, goaldto.GoalInput) (string, error) { return "g1", nil }
func (fakeGoals) Delete(context.Context, string) error                   { return nil }
func (fakeGoals) Link(context.Context, string, string) error             { return nil }
func (fakeGoals) Unlink(context.Context, string, string) error           { return nil }

type fakeRoutines struct{ dates []time.Time }

func (f *fakeRoutines) List(context.Context) []routinedto.RoutineOutput { return nil }
func (f *fakeRoutines) Add(context.Context, routinedto.RoutineInput) (string, error) {
	return "r1", nil
}
func (f *fakeRoutines) Delete(context.Context, string) error { return nil }
func (f *fakeRoutines) Calendar(_ context.Context, q routinedto.CalendarQuery) (routinedto.CalendarOutput, error) {
	f.dates = append(f.dates, q.Date)
	return routinedto.CalendarOutput{Mode: "week", StartHour: 8, Rows: 2, Days: []routinedto.CalendarDay{{Date: q.Date}}}, nil
}
func (f *fakeRoutines) ExportGoogleCalendar(context.Context) (routinedto.ExportOutput, error) {
	return routinedto.ExportOutput{}, nil
}
func (f *fakeRoutines) ParseDays(string) ([]int, error) { return []int{1}, nil }

type fakeFinance struct{}

func (fakeFinance) Add(context.Context, financedto.TransactionInput) (string, error) { return "x", nil }
func (fakeFinance) Delete(context.Context, string) error                             { return nil }
func (fakeFinance) Summary(_ context.Context, period string, anchor time.Time) (financedto.SummaryOutput, error) {
	return financedto.SummaryOutput{Period: period, Anchor: anchor}, nil
}

type fakePomodoro struct {
	state  pomodorodto.TimerOutput
	linked string
}

func (f *fakePomodoro) State(context.Context) pomodorodto.TimerOutput { return f.state }
func (f *fakePomodoro) Toggle(context.Context) pomodorodto.TimerOutput {
	f.state.Running = !f.state.Running
	return f.state
}
func (f *fakePomodoro) Reset(context.Context) pomodorodto.TimerOutput { return f.state }
func (f *fakePomodoro) Switch(context.Context, string) (pomodorodto.TimerOutput, error) {
	return f.state, nil
}
func (f *fakePomodoro) Link(_ context.Context, taskID string) error {
	f.linked = taskID
	return nil
}
func (f *fakePomodoro) Unlink(context.Context) pomodorodto.TimerOutput { return f.state }
func (f *fakePomodoro) FinishLinkedTask(context.Context) error         { return nil }
func (f *fakePomodoro) Today(context.Context) pomodorodto.TodayOutput {
	return pomodorodto.TodayOutput{}
}

type fakeAssistant struct{}

// floodAssistant streams far more chunks than the UI buffers.
type floodAssistant struct{ finished chan struct{} }

func (f floodAssistant) Ask(_ context.Context, q string, onChunk func(string)) (assistantdto.AskOutput, error) {
	defer close(f.finished)
	for range 500 {
		onChunk("x")
	}
	return assistantdto.AskOutput{Question: q}, nil
}

func (fakeAssistant) Ask(_ context.Context, q string, onChunk func(string)) (assistantdto.AskOutput, error) {
	onChunk("Hello ")
	onChunk("there")
	return assistantdto.AskOutput{Question: q, Answer: "Hello there"}, nil
}

type fakeSettings struct{ prefs settingsdto.PreferencesOutput }

func (f *fakeSettings) Show(context.Context) settingsdto.PreferencesOutput { return f.prefs }
func (f *fakeSettings) Theme(_ context.Context, theme string) (settingsdto.PreferencesOutput, error) {
	f.prefs.Theme = theme
	return f.prefs, nil
}
func (f *fakeSettings) Accent(_ context.Context, accent string) (settingsdto.PreferencesOutput, error) {
	f.prefs.Accent = accent
	return f.prefs, nil
}
func (f *fakeSettings) Export(context.Context) (settingsdto.ExportOutput, error) {
	return settingsdto.ExportOutput{}, nil
}
func (f *fakeSettings) Import(context.Context, []byte) (settingsdto.ImportOutput, error) {
	return settingsdto.ImportOutput{}, nil
}
func (f *fakeSettings) Clear(context.Context) error { return nil }

type fixture struct {
	tasks    *fakeTasks
	routines *fakeRoutines
	pomodoro *fakePomodoro
	settings *fakeSettings
	model    app.Model
}

func newFixture() *fixture {
	return newFixtureWith(context.Background(), fakeAssistant{})
}

func newFixtureWith(ctx context.Context, assistant app.AssistantPort) *fixture {
	f := &fixture{
		tasks:    &fakeTasks{},
		routines: &fakeRoutines{},
		pomodoro: &fakePomodoro{state: pomodorodto.TimerOutput{Kind: "Focus", Remaining: 1500, Duration: 1500}},
		settings: &fakeSettings{prefs: settingsdto.PreferencesOutput{Theme: "dark", Accent: "purple", AccentHex: "#8b5cf6"}},
	}
	f.model = app.NewModel(app.Deps{
		Tasks:     f.tasks,
		Contacts:  fakeContacts{},
		Pipeline:  fakePipeline{},
		Goals:     fakeGoals{},
		Routines:  f.routines,
		Finance:   fakeFinance{},
		Pomodoro:  f.pomodoro,
		Assistant: assistant,
		Settings:  f.settings,
		Now:       func() time.Time { return time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC) },
		Context:   ctx,
	})
	f.send(tea.WindowSizeMsg{Width: 160, Height: 40})
	return f
}

// send feeds msg to the model and runs the returned commands to completion.
func (f *fixture) send(msg tea.Msg) {
	for i := 0; msg != nil && i < 50; i++ {
		next, cmd := f.model.Update(msg)
		f.model = next.(app.Model)
		if cmd == nil {
			return
		}
		msg = cmd()
	}
}

func TestPaletteAddsTaskAndBoardFollowsChange(t *testing.T) {
	t.Parallel()
	f := newFixture()

	f.send(components.PaletteSubmitMsg{Input: "task:add Write report | High | 2026-03-20"})
	require.Len(t, f.tasks.tasks, 1)
	assert.Equal(t, "High", f.tasks.tasks[0].Priority)
	assert.Equal(t, "2026-03-20", f.tasks.tasks[0].DueDate)
	assert.Contains(t, f.model.View(), "task added")

	f.send(app.ChangedMsg{Source: app.SourceTasks})
	assert.Contains(t, f.model.View(), "Write report")

	f.send(components.PaletteSubmitMsg{Input: "task:move Done"})
	assert.Equal(t, "Done", f.tasks.tasks[0].Status)
}

func TestUnknownCommandReportsError(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.send(components.PaletteSubmitMsg{Input: "bogus now"})
	assert.Contains(t, f.model.View(), "unknown command: bogus")
}

func TestAskStreamsIntoAssistantTab(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.send(components.PaletteSubmitMsg{Input: "ask what should I do next?"})
	view := f.model.View()
	assert.Contains(t, view, "what should I do next?")
	assert.Contains(t, view, "Hello there")
}

func TestThemeCommandReloadsPreferences(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.send(components.PaletteSubmitMsg{Input: "theme light"})
	assert.Equal(t, "light", f.settings.prefs.Theme)

	f.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	view := f.model.View()
	assert.Contains(t, view, "theme   light")
	assert.Contains(t, view, "theme set to light")
}

func TestCalendarNavigationShiftsByWeek(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.send(components.PaletteSubmitMsg{Input: "calendar:next"})
	last := f.routines.dates[len(f.routines.dates)-1]
	assert.Equal(t, "2026-03-18", last.Format(time.DateOnly))

	f.send(components.PaletteSubmitMsg{Input: "calendar:today"})
	last = f.routines.dates[len(f.routines.dates)-1]
	assert.Equal(t, "2026-03-11", last.Format(time.DateOnly))
}

func TestPomodoroKeysDriveTimer(t *testing.T) {
	t.Parallel()
	f := newFixture()
	for range 6 {
		f.send(tea.KeyMsg{Type: tea.KeyTab})
	}
	assert.True(t, strings.Contains(f.model.View(), "25:00"))

	f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	assert.True(t, f.pomodoro.state.Running)
	f.send(app.TimerMsg{State: pomodorodto.TimerOutput{Kind: "Focus", Remaining: 1499, Duration: 1500, Running: true}})
	assert.Contains(t, f.model.View(), "24:59")
}

func TestPomodoroLinkSkipsFinishedTasks(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.tasks.tasks = []taskdto.TaskOutput{
		{ID: "t1", Title: "Report draft", Status: taskdto.StatusDone},
		{ID: "t2", Title: "Report review", Status: taskdto.StatusTodo},
	}
	f.send(app.ChangedMsg{Source: app.SourceTasks})

	f.send(components.PaletteSubmitMsg{Input: "pomodoro:link Report draft"})
	assert.Empty(t, f.pomodoro.linked)
	assert.Contains(t, f.model.View(), `no single task matches "Report draft"`)

	f.send(components.PaletteSubmitMsg{Input: "pomodoro:link report"})
	assert.Equal(t, "t2", f.pomodoro.linked)

	f.send(components.PaletteSubmitMsg{Input: "goal:link"})
	assert.Contains(t, f.model.View(), "nothing selected")
}

func TestAskStreamStopsWhenContextEnds(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	flood := floodAssistant{finished: make(chan struct{})}
	f := newFixtureWith(ctx, flood)

	_, cmd := f.model.Update(components.PaletteSubmitMsg{Input: "ask anything"})
	require.NotNil(t, cmd)
	cancel()

	select {
	case <-flood.finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("assistant stream blocked after the program context ended")
	}
}
