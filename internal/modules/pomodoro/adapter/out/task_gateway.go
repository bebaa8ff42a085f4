package out

import (
	"context"

	pomodoroout "zenith/internal/modules/pomodoro/port/out"
	taskdto "zenith/internal/modules/task/dto"
	taskin "zenith/internal/modules/task/port/in"
)

type TaskGateway struct {
	tasks taskin.Usecase
}

func NewTaskGateway(tasks taskin.Usecase) pomodoroout.TaskGateway {
	return &TaskGateway{tasks: tasks}
}

func (g *TaskGateway) Get(ctx context.Context, id string) (pomodoroout.TaskRef, bool) {
	task, err := g.tasks.Get(ctx, id)
	if err != nil {
		return pomodoroout.TaskRef{}, false
	}
	return pomodoroout.TaskRef{ID: task.ID, Title: task.Title, Done: task.IsDone()}, true
}

func (g *TaskGateway) RecordFocus(ctx context.Context, id string, seconds int) error {
	return g.tasks.RecordPomodoro(ctx, taskdto.RecordPomodoroInput{TaskID: id, Seconds: seconds})
}

func (g *TaskGateway) Complete(ctx context.Context, id string) error {
	return g.tasks.Move(ctx, id, taskdto.StatusDone)
}
