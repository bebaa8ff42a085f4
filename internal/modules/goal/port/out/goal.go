package out

import (
	"context"

	"zenith/internal/modules/goal/domain"
)

type GoalStore interface {
	Items() []domain.Goal
	Find(id string) (domain.Goal, bool)
	TryAdd(ctx context.Context, goal domain.Goal) (string, error)
	Update(ctx context.Context, goal domain.Goal)
	Delete(ctx context.Context, id string)
	Listen(fn func([]domain.Goal)) func()
}

// TaskLookup resolves weak task references for progress.
type TaskLookup interface {
	Lookup(ctx context.Context, id string) (domain.TaskState, bool)
}
