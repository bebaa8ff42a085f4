package out

import (
	"context"

	"zenith/internal/modules/pomodoro/domain"
)

// HistoryStore is the append-only session log.
type HistoryStore interface {
	Items() []domain.Log
	TryAdd(ctx context.Context, log domain.Log) (string, error)
	Listen(fn func([]domain.Log)) func()
}

type TaskRef struct {
	ID    string
	Title string
	Done  bool
}

// TaskGateway is the slice of the task module the timer writes through to.
type TaskGateway interface {
	Get(ctx context.Context, id string) (TaskRef, bool)
	RecordFocus(ctx context.Context, id string, seconds int) error
	Complete(ctx context.Context, id string) error
}

type Alarm interface {
	Play(ctx context.Context) error
}
