package in

import (
	"context"

	"zenith/internal/modules/pomodoro/dto"
)

type Usecase interface {
	State(ctx context.Context) dto.TimerOutput
	Toggle(ctx context.Context) dto.TimerOutput
	Reset(ctx context.Context) dto.TimerOutput
	Switch(ctx context.Context, kind string) (dto.TimerOutput, error)
	Link(ctx context.Context, taskID string) error
	Unlink(ctx context.Context) dto.TimerOutput
	FinishLinkedTask(ctx context.Context) error
	Tick(ctx context.Context) (dto.CompletionOutput, bool)
	// Run drives the timer from a ticker until ctx ends.
	Run(ctx context.Context) error
	History(ctx context.Context) []dto.LogOutput
	Today(ctx context.Context) dto.TodayOutput
	SubscribeState(fn func(dto.TimerOutput)) func()
	SubscribeHistory(fn func([]dto.LogOutput)) func()
}
