package in

import (
	"context"

	pomodorodto "zenith/internal/modules/pomodoro/dto"
	pomodoroin "zenith/internal/modules/pomodoro/port/in"
)

type CLIHandler struct {
	usecase pomodoroin.Usecase
}

func NewCLIHandler(usecase pomodoroin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) State(ctx context.Context) pomodorodto.TimerOutput {
	return h.usecase.State(ctx)
}

func (h CLIHandler) Toggle(ctx context.Context) pomodorodto.TimerOutput {
	return h.usecase.Toggle(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) pomodorodto.TimerOutput {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Switch(ctx context.Context, kind string) (pomodorodto.TimerOutput, error) {
	return h.usecase.Switch(ctx, kind)
}

func (h CLIHandler) Link(ctx context.Context, taskID string) error {
	return h.usecase.Link(ctx, taskID)
}

func (h CLIHandler) Unlink(ctx context.Context) pomodorodto.TimerOutput {
	return h.usecase.Unlink(ctx)
}

func (h CLIHandler) FinishLinkedTask(ctx context.Context) error {
	return h.usecase.FinishLinkedTask(ctx)
}

func (h CLIHandler) Run(ctx context.Context) error {
	return h.usecase.Run(ctx)
}

func (h CLIHandler) History(ctx context.Context) []pomodorodto.LogOutput {
	return h.usecase.History(ctx)
}

func (h CLIHandler) Today(ctx context.Context) pomodorodto.TodayOutput {
	return h.usecase.Today(ctx)
}

func (h CLIHandler) SubscribeState(fn func(pomodorodto.TimerOutput)) func() {
	return h.usecase.SubscribeState(fn)
}

func (h CLIHandler) SubscribeHistory(fn func([]pomodorodto.LogOutput)) func() {
	return h.usecase.SubscribeHistory(fn)
}
