package in

import (
	"context"

	routinedto "zenith/internal/modules/routine/dto"
	routinein "zenith/internal/modules/routine/port/in"
)

type CLIHandler struct {
	usecase routinein.Usecase
}

func NewCLIHandler(usecase routinein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) []routinedto.RoutineOutput {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Add(ctx context.Context, input routinedto.RoutineInput) (string, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) Update(ctx context.Context, input routinedto.UpdateInput) error {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Calendar(ctx context.Context, query routinedto.CalendarQuery) (routinedto.CalendarOutput, error) {
	return h.usecase.Calendar(ctx, query)
}

func (h CLIHandler) ExportGoogleCalendar(ctx context.Context) (routinedto.ExportOutput, error) {
	return h.usecase.ExportGoogleCalendar(ctx)
}

func (h CLIHandler) Subscribe(fn func([]routinedto.RoutineOutput)) func() {
	return h.usecase.Subscribe(fn)
}

func (h CLIHandler) ParseDays(value string) ([]int, error) {
	return h.usecase.ParseDays(value)
}
