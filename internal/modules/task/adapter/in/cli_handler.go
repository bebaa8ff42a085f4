package in

import (
	"context"

	taskdto "zenith/internal/modules/task/dto"
	taskin "zenith/internal/modules/task/port/in"
)

type CLIHandler struct {
	usecase taskin.Usecase
}

func NewCLIHandler(usecase taskin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) []taskdto.TaskOutput {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (taskdto.TaskOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Add(ctx context.Context, title, description, priority, dueDate string) (string, error) {
	return h.usecase.Add(ctx, taskdto.AddInput{Title: title, Description: description, Priority: priority, DueDate: dueDate})
}

func (h CLIHandler) Update(ctx context.Context, input taskdto.UpdateInput) error {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Move(ctx context.Context, id, status string) error {
	return h.usecase.Move(ctx, id, status)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Board(ctx context.Context) []taskdto.ColumnOutput {
	return h.usecase.Board(ctx)
}

func (h CLIHandler) Incomplete(ctx context.Context) []taskdto.TaskOutput {
	return h.usecase.Incomplete(ctx)
}

func (h CLIHandler) Subscribe(fn func([]taskdto.TaskOutput)) func() {
	return h.usecase.Subscribe(fn)
}
