package in

import (
	"context"

	goaldto "zenith/internal/modules/goal/dto"
	goalin "zenith/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) []goaldto.GoalOutput {
	return h.usecase.List(ctx)
}

func (h CLIHandler) ByHorizon(ctx context.Context) []goaldto.GroupOutput {
	return h.usecase.ByHorizon(ctx)
}

func (h CLIHandler) Add(ctx context.Context, input goaldto.GoalInput) (string, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) Update(ctx context.Context, input goaldto.UpdateInput) error {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Link(ctx context.Context, goalID, taskID string) error {
	return h.usecase.LinkTask(ctx, goalID, taskID)
}

func (h CLIHandler) Unlink(ctx context.Context, goalID, taskID string) error {
	return h.usecase.UnlinkTask(ctx, goalID, taskID)
}

func (h CLIHandler) Subscribe(fn func([]goaldto.GoalOutput)) func() {
	return h.usecase.Subscribe(fn)
}
