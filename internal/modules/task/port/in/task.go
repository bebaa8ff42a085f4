package in

import (
	"context"

	"zenith/internal/modules/task/dto"
)

type Usecase interface {
	List(ctx context.Context) []dto.TaskOutput
	Get(ctx context.Context, id string) (dto.TaskOutput, error)
	Add(ctx context.Context, input dto.AddInput) (string, error)
	Update(ctx context.Context, input dto.UpdateInput) error
	Move(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Board(ctx context.Context) []dto.ColumnOutput
	Incomplete(ctx context.Context) []dto.TaskOutput
	RecordPomodoro(ctx context.Context, input dto.RecordPomodoroInput) error
	Subscribe(fn func([]dto.TaskOutput)) func()
}
