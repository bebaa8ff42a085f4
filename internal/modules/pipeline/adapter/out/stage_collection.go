package out

import (
	"context"
	"fmt"
	"log/slog"

	"zenith/internal/modules/pipeline/domain"
	pipelineout "zenith/internal/modules/pipeline/port/out"
	"zenith/internal/platform/docstore"
	"zenith/internal/platform/synced"
)

const StagesCollection = "salesStages"

type stageCodec struct{}

func (stageCodec) Decode(doc docstore.Document) (domain.Stage, error) {
	name := doc.Fields.String("name")
	if name == "" {
		return domain.Stage{}, fmt.Errorf("stage %s has no name", doc.ID)
	}
	return domain.Stage{ID: doc.ID, CreatedAt: doc.CreatedAt, Name: name}, nil
}

func (stageCodec) Encode(s domain.Stage) docstore.Fields {
	return docstore.Fields{"name": s.Name}
}

func (stageCodec) ID(s domain.Stage) string { return s.ID }

// StageMirror is the sales stage registry, oldest first.
type StageMirror struct {
	*synced.Collection[domain.Stage]
}

var _ pipelineout.StageStore = StageMirror{}

func NewStageCollection(store docstore.Store, cache synced.Cache, logger *slog.Logger) StageMirror {
	return StageMirror{synced.New[domain.Stage](store, StagesCollection, stageCodec{}, synced.Options{
		Order:    docstore.Asc(docstore.FieldCreatedAt),
		Cache:    cache,
		CacheKey: "zenith-sales-stages",
		Logger:   logger,
	})}
}

func (c StageMirror) Named(ctx context.Context, name string) ([]domain.Stage, error) {
	return c.Query(ctx, "name", name)
}

func (c StageMirror) DeleteNamed(ctx context.Context, name string) (int, error) {
	return c.DeleteWhere(ctx, "name", name)
}
