package out

import (
	"context"

	"zenith/internal/modules/goal/domain"
	goalout "zenith/internal/modules/goal/port/out"
	taskin "zenith/internal/modules/task/port/in"
)

type TaskLookup struct {
	tasks taskin.Usecase
}

func NewTaskLookup(tasks taskin.Usecase) goalout.TaskLookup {
	return &TaskLookup{tasks: tasks}
}

func (l *TaskLookup) Lookup(ctx context.Context, id string) (domain.TaskState, bool) {
	task, err := l.tasks.Get(ctx, id)
	if err != nil {
		return domain.TaskState{}, false
	}
	return domain.TaskState{ID: task.ID, Title: task.Title, Done: task.IsDone()}, true
}
