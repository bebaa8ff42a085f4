package app

import (
	"context"
	"time"

	assistantdto "zenith/internal/modules/assistant/dto"
	contactdto "zenith/internal/modules/contact/dto"
	financedto "zenith/internal/modules/finance/dto"
	goaldto "zenith/internal/modules/goal/dto"
	pipelinedto "zenith/internal/modules/pipeline/dto"
	pomodorodto "zenith/internal/modules/pomodoro/dto"
	routinedto "zenith/internal/modules/routine/dto"
	settingsdto "zenith/internal/modules/settings/dto"
	taskdto "zenith/internal/modules/task/dto"
)

// The ports below are the slices of each module's CLI handler that the
// terminal UI drives.

type TaskPort interface {
	List(ctx context.Context) []taskdto.TaskOutput
	Board(ctx context.Context) []taskdto.ColumnOutput
	Incomplete(ctx context.Context) []taskdto.TaskOutput
	Add(ctx context.Context, title, description, priority, dueDate string) (string, error)
	Move(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type ContactPort interface {
	List(ctx context.Context) []contactdto.ContactOutput
	Add(ctx context.Context, input contactdto.ContactInput) (contactdto.ContactOutput, error)
	Delete(ctx context.Context, id string) error
}

type PipelinePort interface {
	Board(ctx context.Context) []pipelinedto.LaneOutput
	Promote(ctx context.Context, contactID, stage, notes, followUp string) (string, error)
	UpdateProspect(ctx context.Context, input pipelinedto.UpdateProspectInput) error
	MoveProspect(ctx context.Context, id, stage string) error
	DeleteProspect(ctx context.Context, id string) error
	SeedStages(ctx context.Context) (int, error)
	AddStage(ctx context.Context, name string) error
	RenameStage(ctx context.Context, oldName, newName string) error
	DeleteStage(ctx context.Context, name string) (pipelinedto.DeleteStageOutput, error)
}

type GoalPort interface {
	ByHorizon(ctx context.Context) []goaldto.GroupOutput
	Add(ctx context.Context, input goaldto.GoalInput) (string, error)
	Delete(ctx context.Context, id string) error
	Link(ctx context.Context, goalID, taskID string) error
	Unlink(ctx context.Context, goalID, taskID string) error
}

type RoutinePort interface {
	List(ctx context.Context) []routinedto.RoutineOutput
	Add(ctx context.Context, input routinedto.RoutineInput) (string, error)
	Delete(ctx context.Context, id string) error
	Calendar(ctx context.Context, query routinedto.CalendarQuery) (routinedto.CalendarOutput, error)
	ExportGoogleCalendar(ctx context.Context) (routinedto.ExportOutput, error)
	ParseDays(value string) ([]int, error)
}

type FinancePort interface {
	Add(ctx context.Context, input financedto.TransactionInput) (string, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, period string, anchor time.Time) (financedto.SummaryOutput, error)
}

type PomodoroPort interface {
	State(ctx context.Context) pomodorodto.TimerOutput
	Toggle(ctx context.Context) pomodorodto.TimerOutput
	Reset(ctx context.Context) pomodorodto.TimerOutput
	Switch(ctx context.Context, kind string) (pomodorodto.TimerOutput, error)
	Link(ctx context.Context, taskID string) error
	Unlink(ctx context.Context) pomodorodto.TimerOutput
	FinishLinkedTask(ctx context.Context) error
	Today(ctx context.Context) pomodorodto.TodayOutput
}

type AssistantPort interface {
	Ask(ctx context.Context, question string, onChunk func(string)) (assistantdto.AskOutput, error)
}

type SettingsPort interface {
	Show(ctx context.Context) settingsdto.PreferencesOutput
	Theme(ctx context.Context, theme string) (settingsdto.PreferencesOutput, error)
	Accent(ctx context.Context, accent string) (settingsdto.PreferencesOutput, error)
	Export(ctx context.Context) (settingsdto.ExportOutput, error)
	Import(ctx context.Context, data []byte) (settingsdto.ImportOutput, error)
	Clear(ctx context.Context) error
}

// Deps wires the model to the modules. Now defaults to time.Now. Context
// bounds background work such as assistant streams; it should be cancelled
// when the program exits and defaults to context.Background.
type Deps struct {
	Tasks     TaskPort
	Contacts  ContactPort
	Pipeline  PipelinePort
	Goals     GoalPort
	Routines  RoutinePort
	Finance   FinancePort
	Pomodoro  PomodoroPort
	Assistant AssistantPort
	Settings  SettingsPort
	Now       func() time.Time
	Context   context.Context
}

// ChangedMsg tells the model that a collection it shows was updated.
type ChangedMsg struct{ Source string }

// TimerMsg carries a fresh pomodoro state, at least once per second while
// the timer runs.
type TimerMsg struct{ State pomodorodto.TimerOutput }

// Sources named in ChangedMsg.
const (
	SourceTasks        = "tasks"
	SourceContacts     = "contacts"
	SourceProspects    = "prospects"
	SourceStages       = "stages"
	SourceGoals        = "goals"
	SourceRoutines     = "routines"
	SourceTransactions = "transactions"
	SourceHistory      = "history"
)
