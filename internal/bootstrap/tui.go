package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	contactdto "zenith/internal/modules/contact/dto"
	financedto "zenith/internal/modules/finance/dto"
	goaldto "zenith/internal/modules/goal/dto"
	pipelinedto "zenith/internal/modules/pipeline/dto"
	pomodorodto "zenith/internal/modules/pomodoro/dto"
	routinedto "zenith/internal/modules/routine/dto"
	taskdto "zenith/internal/modules/task/dto"
	uiapp "zenith/internal/ui/app"
)

// relay queues module notifications for the program. Listeners run on the
// notifying goroutine, which may be the UI's own update loop, so they never
// block on the program.
type relay struct {
	ch chan tea.Msg
}

func newRelay() *relay {
	return &relay{ch: make(chan tea.Msg, 256)}
}

func (r *relay) push(msg tea.Msg) {
	select {
	case r.ch <- msg:
	default:
	}
}

func (r *relay) changed(source string) func() {
	return func() { r.push(uiapp.ChangedMsg{Source: source}) }
}

func (r *relay) forward(ctx context.Context, program *tea.Program) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-r.ch:
			program.Send(msg)
		}
	}
}

// background runs fn until ctx is done. The returned wait blocks until fn has
// returned.
func background(ctx context.Context, logger *slog.Logger, what string, fn func(context.Context) error) (wait func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(what+" stopped", "err", err)
		}
	}()
	return func() { <-done }
}

// RunTUI runs the terminal UI until the user quits or ctx is cancelled. The
// pomodoro timer ticks for as long as the UI is open and has stopped by the
// time RunTUI returns.
func RunTUI(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	model := uiapp.NewModel(uiapp.Deps{
		Tasks:     app.TaskCLI,
		Contacts:  app.ContactCLI,
		Pipeline:  app.PipelineCLI,
		Goals:     app.GoalCLI,
		Routines:  app.RoutineCLI,
		Finance:   app.FinanceCLI,
		Pomodoro:  app.PomodoroCLI,
		Assistant: app.AssistantCLI,
		Settings:  app.SettingsCLI,
		Context:   ctx,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	r := newRelay()
	tasks := r.changed(uiapp.SourceTasks)
	contacts := r.changed(uiapp.SourceContacts)
	prospects := r.changed(uiapp.SourceProspects)
	stages := r.changed(uiapp.SourceStages)
	goals := r.changed(uiapp.SourceGoals)
	routines := r.changed(uiapp.SourceRoutines)
	transactions := r.changed(uiapp.SourceTransactions)
	history := r.changed(uiapp.SourceHistory)
	unsubscribe := []func(){
		app.TaskCLI.Subscribe(func([]taskdto.TaskOutput) { tasks() }),
		app.ContactCLI.Subscribe(func([]contactdto.ContactOutput) { contacts() }),
		app.PipelineCLI.SubscribeProspects(func([]pipelinedto.ProspectOutput) { prospects() }),
		app.PipelineCLI.SubscribeStages(func([]pipelinedto.StageOutput) { stages() }),
		app.GoalCLI.Subscribe(func([]goaldto.GoalOutput) { goals() }),
		app.RoutineCLI.Subscribe(func([]routinedto.RoutineOutput) { routines() }),
		app.FinanceCLI.Subscribe(func([]financedto.TransactionOutput) { transactions() }),
		app.PomodoroCLI.SubscribeHistory(func([]pomodorodto.LogOutput) { history() }),
		app.PomodoroCLI.SubscribeState(func(state pomodorodto.TimerOutput) { r.push(uiapp.TimerMsg{State: state}) }),
	}
	defer func() {
		for _, fn := range unsubscribe {
			fn()
		}
	}()

	go r.forward(ctx, program)
	waitTimer := background(ctx, app.Logger, "pomodoro timer", app.PomodoroCLI.Run)

	_, err := program.Run()
	interrupted := ctx.Err() != nil
	cancel()
	waitTimer()
	if errors.Is(err, tea.ErrProgramKilled) && interrupted {
		return nil
	}
	return err
}
