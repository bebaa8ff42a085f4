package in

import (
	"context"

	"zenith/internal/modules/goal/dto"
)

type Usecase interface {
	List(ctx context.Context) []dto.GoalOutput
	Get(ctx context.Context, id string) (dto.GoalOutput, error)
	Add(ctx context.Context, input dto.GoalInput) (string, error)
	Update(ctx context.Context, input dto.UpdateInput) error
	Delete(ctx context.Context, id string) error
	LinkTask(ctx context.Context, goalID, taskID string) error
	UnlinkTask(ctx context.Context, goalID, taskID string) error
	ByHorizon(ctx context.Context) []dto.GroupOutput
	Subscribe(fn func([]dto.GoalOutput)) func()
}
