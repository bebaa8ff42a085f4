package out

import (
	"context"

	"zenith/internal/modules/routine/domain"
)

type RoutineStore interface {
	Items() []domain.Event
	Find(id string) (domain.Event, bool)
	TryAdd(ctx context.Context, event domain.Event) (string, error)
	Update(ctx context.Context, event domain.Event)
	Delete(ctx context.Context, id string)
	Listen(fn func([]domain.Event)) func()
}

// CalendarExporter pushes routines to an external calendar as recurring
// events, updating the ones it created before.
type CalendarExporter interface {
	Export(ctx context.Context, events []domain.Event) (domain.ExportReport, error)
}
