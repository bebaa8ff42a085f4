package out

import (
	"fmt"
	"log/slog"

	"zenith/internal/modules/task/domain"
	"zenith/internal/platform/docstore"
	"zenith/internal/platform/synced"
)

const Collection = "tasks"

type taskCodec struct{}

func (taskCodec) Decode(doc docstore.Document) (domain.Task, error) {
	f := doc.Fields
	if !f.Has("title") {
		return domain.Task{}, fmt.Errorf("task %s has no title", doc.ID)
	}
	status := domain.Status(f.String("status"))
	if status == "" {
		status = domain.StatusTodo
	}
	priority := domain.Priority(f.String("priority"))
	if priority == "" {
		priority = domain.PriorityMedium
	}
	return domain.Task{
		ID:             doc.ID,
		CreatedAt:      doc.CreatedAt,
		Title:          f.String("title"),
		Description:    f.String("description"),
		Status:         status,
		Priority:       priority,
		DueDate:        f.String("dueDate"),
		PomodorosDone:  f.Int("pomodorosDone"),
		TotalTimeSpent: f.Int("totalTimeSpent"),
	}, nil
}

func (taskCodec) Encode(t domain.Task) docstore.Fields {
	return docstore.Fields{
		"title":          t.Title,
		"description":    t.Description,
		"status":         string(t.Status),
		"priority":       string(t.Priority),
		"dueDate":        t.DueDate,
		"pomodorosDone":  t.PomodorosDone,
		"totalTimeSpent": t.TotalTimeSpent,
	}
}

func (taskCodec) ID(t domain.Task) string { return t.ID }

// NewTaskCollection mirrors the tasks collection, newest first.
func NewTaskCollection(store docstore.Store, cache synced.Cache, logger *slog.Logger) *synced.Collection[domain.Task] {
	return synced.New[domain.Task](store, Collection, taskCodec{}, synced.Options{
		Order:  docstore.Desc(docstore.FieldCreatedAt),
		Cache:  cache,
		Logger: logger,
	})
}
