package out

import (
	"context"

	"zenith/internal/modules/assistant/domain"
)

type DataSource interface {
	Snapshot(ctx context.Context) domain.Snapshot
}

type Generator interface {
	Generate(ctx context.Context, prompt string, onChunk func(string)) error
}
