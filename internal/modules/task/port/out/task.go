package out

import (
	"context"

	"zenith/internal/modules/task/domain"
)

// TaskStore is the synchronized task collection.
type TaskStore interface {
	Items() []domain.Task
	Find(id string) (domain.Task, bool)
	TryAdd(ctx context.Context, task domain.Task) (string, error)
	Update(ctx context.Context, task domain.Task)
	TryUpdate(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, id string)
	Listen(fn func([]domain.Task)) func()
}
