package out

import (
	"fmt"
	"log/slog"

	"zenith/internal/modules/routine/domain"
	"zenith/internal/platform/docstore"
	"zenith/internal/platform/synced"
)

const Collection = "routines"

type routineCodec struct{}

func (routineCodec) Decode(doc docstore.Document) (domain.Event, error) {
	f := doc.Fields
	if !f.Has("title") || !f.Has("startTime") || !f.Has("endTime") {
		return domain.Event{}, fmt.Errorf("routine %s is incomplete", doc.ID)
	}
	color := domain.Color(f.String("color"))
	if color == "" {
		color = domain.ColorBlue
	}
	return domain.Event{
		ID:        doc.ID,
		CreatedAt: doc.CreatedAt,
		Title:     f.String("title"),
		StartTime: f.String("startTime"),
		EndTime:   f.String("endTime"),
		Days:      f.Ints("days"),
		Color:     color,
	}, nil
}

func (routineCodec) Encode(e domain.Event) docstore.Fields {
	days := e.Days
	if days == nil {
		days = []int{}
	}
	return docstore.Fields{
		"title":     e.Title,
		"startTime": e.StartTime,
		"endTime":   e.EndTime,
		"days":      days,
		"color":     string(e.Color),
	}
}

func (routineCodec) ID(e domain.Event) string { return e.ID }

func NewRoutineCollection(store docstore.Store, cache synced.Cache, logger *slog.Logger) *synced.Collection[domain.Event] {
	return synced.New[domain.Event](store, Collection, routineCodec{}, synced.Options{
		Order:  docstore.Desc(docstore.FieldCreatedAt),
		Cache:  cache,
		Logger: logger,
	})
}
