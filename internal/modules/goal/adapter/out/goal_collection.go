package out

import (
	"fmt"
	"log/slog"

	"zenith/internal/modules/goal/domain"
	"zenith/internal/platform/docstore"
	"zenith/internal/platform/synced"
)

const Collection = "goals"

type goalCodec struct{}

func (goalCodec) Decode(doc docstore.Document) (domain.Goal, error) {
	f := doc.Fields
	if !f.Has("title") {
		return domain.Goal{}, fmt.Errorf("goal %s has no title", doc.ID)
	}
	horizon := domain.Horizon(f.String("horizon"))
	if horizon == "" {
		horizon = domain.HorizonShort
	}
	taskIDs := f.Strings("taskIds")
	if taskIDs == nil {
		taskIDs = []string{}
	}
	return domain.Goal{
		ID:          doc.ID,
		CreatedAt:   doc.CreatedAt,
		Title:       f.String("title"),
		Description: f.String("description"),
		TargetDate:  f.String("targetDate"),
		Horizon:     horizon,
		TaskIDs:     taskIDs,
	}, nil
}

func (goalCodec) Encode(g domain.Goal) docstore.Fields {
	taskIDs := g.TaskIDs
	if taskIDs == nil {
		taskIDs = []string{}
	}
	return docstore.Fields{
		"title":       g.Title,
		"description": g.Description,
		"targetDate":  g.TargetDate,
		"horizon":     string(g.Horizon),
		"taskIds":     taskIDs,
	}
}

func (goalCodec) ID(g domain.Goal) string { return g.ID }

func NewGoalCollection(store docstore.Store, cache synced.Cache, logger *slog.Logger) *synced.Collection[domain.Goal] {
	return synced.New[domain.Goal](store, Collection, goalCodec{}, synced.Options{
		Order:  docstore.Desc(docstore.FieldCreatedAt),
		Cache:  cache,
		Logger: logger,
	})
}
