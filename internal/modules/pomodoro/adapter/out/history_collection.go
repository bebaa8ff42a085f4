package out

import (
	"fmt"
	"log/slog"

	"zenith/internal/modules/pomodoro/domain"
	"zenith/internal/platform/docstore"
	"zenith/internal/platform/synced"
)

const (
	Collection = "pomodoroHistory"
	CacheKey   = "zenith-pomodoro-history"
)

type logCodec struct{}

func (logCodec) Decode(doc docstore.Document) (domain.Log, error) {
	f := doc.Fields
	if !f.Has("type") {
		return domain.Log{}, fmt.Errorf("pomodoro log %s has no type", doc.ID)
	}
	l := domain.Log{
		ID:        doc.ID,
		CreatedAt: doc.CreatedAt,
		Kind:      domain.Kind(f.String("type")),
		Duration:  f.Int("duration"),
	}
	if linked := f.Object("linkedTask"); linked != nil {
		l.LinkedTask = &domain.LinkedTask{ID: linked.String("id"), Title: linked.String("title")}
	}
	return l, nil
}

func (logCodec) Encode(l domain.Log) docstore.Fields {
	fields := docstore.Fields{
		"type":     string(l.Kind),
		"duration": l.Duration,
	}
	if l.LinkedTask != nil {
		fields["linkedTask"] = map[string]any{"id": l.LinkedTask.ID, "title": l.LinkedTask.Title}
	}
	return fields
}

func (logCodec) ID(l domain.Log) string { return l.ID }

// NewHistoryCollection mirrors the session log, newest first.
func NewHistoryCollection(store docstore.Store, cache synced.Cache, logger *slog.Logger) *synced.Collection[domain.Log] {
	return synced.New[domain.Log](store, Collection, logCodec{}, synced.Options{
		Order:    docstore.Desc(docstore.FieldCreatedAt),
		Cache:    cache,
		CacheKey: CacheKey,
		Logger:   logger,
	})
}
