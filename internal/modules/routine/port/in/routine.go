package in

import (
	"context"

	"zenith/internal/modules/routine/dto"
)

type Usecase interface {
	List(ctx context.Context) []dto.RoutineOutput
	Get(ctx context.Context, id string) (dto.RoutineOutput, error)
	Add(ctx context.Context, input dto.RoutineInput) (string, error)
	Update(ctx context.Context, input dto.UpdateInput) error
	Delete(ctx context.Context, id string) error
	Calendar(ctx context.Context, query dto.CalendarQuery) (dto.CalendarOutput, error)
	ExportGoogleCalendar(ctx context.Context) (dto.ExportOutput, error)
	Subscribe(fn func([]dto.RoutineOutput)) func()
	// ParseDays accepts weekday names or numbers (0 is Sunday), comma separated.
	ParseDays(value string) ([]int, error)
}
