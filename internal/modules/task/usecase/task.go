package usecase

import (
	"context"

	"zenith/internal/modules/task/domain"
	taskdto "zenith/internal/modules/task/dto"
	taskin "zenith/internal/modules/task/port/in"
	"zenith/internal/modules/task/service"
)

type Interactor struct {
	svc *service.TaskService
}

func NewInteractor(svc *service.TaskService) taskin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(_ context.Context) []taskdto.TaskOutput {
	return toOutputs(i.svc.List())
}

func (i *Interactor) Get(_ context.Context, id string) (taskdto.TaskOutput, error) {
	task, err := i.svc.Get(id)
	if err != nil {
		return taskdto.TaskOutput{}, err
	}
	return toOutput(task), nil
}

func (i *Interactor) Add(ctx context.Context, input taskdto.AddInput) (string, error) {
	priority, err := domain.ParsePriority(input.Priority)
	if err != nil {
		return "", err
	}
	return i.svc.Add(ctx, domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     input.DueDate,
	})
}

func (i *Interactor) Update(ctx context.Context, input taskdto.UpdateInput) error {
	task, err := i.svc.Get(input.ID)
	if err != nil {
		return err
	}
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		status, err := domain.ParseStatus(*input.Status)
		if err != nil {
			return err
		}
		task.Status = status
	}
	if input.Priority != nil {
		priority, err := domain.ParsePriority(*input.Priority)
		if err != nil {
			return err
		}
		task.Priority = priority
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}
	return i.svc.Save(ctx, task)
}

func (i *Interactor) Move(ctx context.Context, id, status string) error {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return err
	}
	return i.svc.Move(ctx, id, parsed)
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	i.svc.Delete(ctx, id)
	return nil
}

func (i *Interactor) Board(_ context.Context) []taskdto.ColumnOutput {
	cols := domain.Board(i.svc.List())
	out := make([]taskdto.ColumnOutput, 0, len(cols))
	for _, col := range cols {
		out = append(out, taskdto.ColumnOutput{Status: string(col.Status), Tasks: toOutputs(col.Tasks)})
	}
	return out
}

func (i *Interactor) Incomplete(_ context.Context) []taskdto.TaskOutput {
	return toOutputs(i.svc.Incomplete())
}

func (i *Interactor) RecordPomodoro(ctx context.Context, input taskdto.RecordPomodoroInput) error {
	return i.svc.RecordPomodoro(ctx, input.TaskID, input.Seconds)
}

func (i *Interactor) Subscribe(fn func([]taskdto.TaskOutput)) func() {
	return i.svc.Listen(func(tasks []domain.Task) { fn(toOutputs(tasks)) })
}

func toOutputs(tasks []domain.Task) []taskdto.TaskOutput {
	out := make([]taskdto.TaskOutput, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toOutput(t))
	}
	return out
}

func toOutput(t domain.Task) taskdto.TaskOutput {
	return taskdto.TaskOutput{
		ID:             t.ID,
		CreatedAt:      t.CreatedAt,
		Title:          t.Title,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		DueDate:        t.DueDate,
		PomodorosDone:  t.PomodorosDone,
		TotalTimeSpent: t.TotalTimeSpent,
	}
}
