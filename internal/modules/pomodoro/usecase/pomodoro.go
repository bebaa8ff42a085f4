package usecase

import (
	"context"

	"zenith/internal/modules/pomodoro/domain"
	pomodorodto "zenith/internal/modules/pomodoro/dto"
	pomodoroin "zenith/internal/modules/pomodoro/port/in"
	pomodoroout "zenith/internal/modules/pomodoro/port/out"
	"zenith/internal/modules/pomodoro/service"
	"zenith/internal/platform/clock"
)

type Interactor struct {
	runner  *service.Runner
	history *service.HistoryService
	tasks   pomodoroout.TaskGateway
	clock   clock.Clock
}

func NewInteractor(runner *service.Runner, history *service.HistoryService, tasks pomodoroout.TaskGateway, clk clock.Clock) pomodoroin.Usecase {
	return &Interactor{runner: runner, history: history, tasks: tasks, clock: clk}
}

func (i *Interactor) State(ctx context.Context) pomodorodto.TimerOutput {
	return i.timerOutput(ctx, i.runner.State())
}

func (i *Interactor) Toggle(ctx context.Context) pomodorodto.TimerOutput {
	return i.timerOutput(ctx, i.runner.Toggle())
}

func (i *Interactor) Reset(ctx context.Context) pomodorodto.TimerOutput {
	return i.timerOutput(ctx, i.runner.Reset())
}

func (i *Interactor) Switch(ctx context.Context, kind string) (pomodorodto.TimerOutput, error) {
	k, err := domain.ParseKind(kind)
	if err != nil {
		return pomodorodto.TimerOutput{}, err
	}
	return i.timerOutput(ctx, i.runner.Switch(k)), nil
}

func (i *Interactor) Link(ctx context.Context, taskID string) error {
	return i.runner.Link(ctx, taskID)
}

func (i *Interactor) Unlink(ctx context.Context) pomodorodto.TimerOutput {
	return i.timerOutput(ctx, i.runner.Unlink())
}

func (i *Interactor) FinishLinkedTask(ctx context.Context) error {
	return i.runner.FinishLinkedTask(ctx)
}

func (i *Interactor) Tick(ctx context.Context) (pomodorodto.CompletionOutput, bool) {
	done, ok := i.runner.Tick(ctx)
	return pomodorodto.CompletionOutput{Kind: string(done.Kind), Duration: done.Duration, TaskID: done.TaskID}, ok
}

func (i *Interactor) Run(ctx context.Context) error {
	return i.runner.Run(ctx, service.TickInterval)
}

func (i *Interactor) History(_ context.Context) []pomodorodto.LogOutput {
	return logOutputs(i.history.List())
}

func (i *Interactor) Today(_ context.Context) pomodorodto.TodayOutput {
	now := i.clock.Now()
	return pomodorodto.TodayOutput{
		Sessions:     logOutputs(i.history.Today(now)),
		FocusSeconds: i.history.FocusSecondsToday(now),
	}
}

func (i *Interactor) SubscribeState(fn func(pomodorodto.TimerOutput)) func() {
	return i.runner.Listen(func(state domain.State) { fn(i.timerOutput(context.Background(), state)) })
}

func (i *Interactor) SubscribeHistory(fn func([]pomodorodto.LogOutput)) func() {
	return i.history.Listen(func(logs []domain.Log) { fn(logOutputs(logs)) })
}

func (i *Interactor) timerOutput(ctx context.Context, state domain.State) pomodorodto.TimerOutput {
	out := pomodorodto.TimerOutput{
		Kind:         string(state.Kind),
		Remaining:    state.Remaining,
		Duration:     state.Kind.Duration(),
		Running:      state.Running,
		Completed:    state.Completed,
		LinkedTaskID: state.LinkedTaskID,
	}
	if state.LinkedTaskID != "" {
		if task, ok := i.tasks.Get(ctx, state.LinkedTaskID); ok {
			out.LinkedTaskTitle = task.Title
		}
	}
	return out
}

func logOutputs(logs []domain.Log) []pomodorodto.LogOutput {
	out := make([]pomodorodto.LogOutput, 0, len(logs))
	for _, l := range logs {
		lo := pomodorodto.LogOutput{ID: l.ID, Timestamp: l.CreatedAt, Kind: string(l.Kind), Duration: l.Duration}
		if l.LinkedTask != nil {
			lo.LinkedTaskID, lo.LinkedTaskTitle = l.LinkedTask.ID, l.LinkedTask.Title
		}
		out = append(out, lo)
	}
	return out
}
