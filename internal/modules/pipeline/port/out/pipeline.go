package out

import (
	"context"

	"zenith/internal/modules/pipeline/domain"
)

type ProspectStore interface {
	Items() []domain.Prospect
	Find(id string) (domain.Prospect, bool)
	TryAdd(ctx context.Context, prospect domain.Prospect) (string, error)
	Update(ctx context.Context, prospect domain.Prospect)
	TryUpdate(ctx context.Context, prospect domain.Prospect) error
	Delete(ctx context.Context, id string)
	// OnStage reads from the server, not the local snapshot.
	OnStage(ctx context.Context, stage string) ([]domain.Prospect, error)
	Listen(fn func([]domain.Prospect)) func()
}

type StageStore interface {
	Items() []domain.Stage
	TryAdd(ctx context.Context, stage domain.Stage) (string, error)
	TryUpdate(ctx context.Context, stage domain.Stage) error
	Named(ctx context.Context, name string) ([]domain.Stage, error)
	// DeleteNamed removes every stage document called name in one batch.
	DeleteNamed(ctx context.Context, name string) (int, error)
	Listen(fn func([]domain.Stage)) func()
}

type ContactDirectory interface {
	Lookup(ctx context.Context, id string) (domain.ContactRef, bool)
}
