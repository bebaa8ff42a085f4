package usecase

import (
	"context"

	"zenith/internal/modules/goal/domain"
	goaldto "zenith/internal/modules/goal/dto"
	goalin "zenith/internal/modules/goal/port/in"
	"zenith/internal/modules/goal/service"
)

type Interactor struct {
	svc *service.GoalService
}

func NewInteractor(svc *service.GoalService) goalin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) []goaldto.GoalOutput {
	return i.outputs(ctx, i.svc.List())
}

func (i *Interactor) Get(ctx context.Context, id string) (goaldto.GoalOutput, error) {
	goal, err := i.svc.Get(id)
	if err != nil {
		return goaldto.GoalOutput{}, err
	}
	return i.output(ctx, goal), nil
}

func (i *Interactor) Add(ctx context.Context, input goaldto.GoalInput) (string, error) {
	horizon, err := domain.ParseHorizon(input.Horizon)
	if err != nil {
		return "", err
	}
	return i.svc.Add(ctx, domain.Goal{
		Title:       input.Title,
		Description: input.Description,
		TargetDate:  input.TargetDate,
		Horizon:     horizon,
		TaskIDs:     input.TaskIDs,
	})
}

func (i *Interactor) Update(ctx context.Context, input goaldto.UpdateInput) error {
	goal, err := i.svc.Get(input.ID)
	if err != nil {
		return err
	}
	if input.Title != nil {
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.TargetDate != nil {
		goal.TargetDate = *input.TargetDate
	}
	if input.Horizon != nil {
		horizon, err := domain.ParseHorizon(*input.Horizon)
		if err != nil {
			return err
		}
		goal.Horizon = horizon
	}
	return i.svc.Save(ctx, goal)
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	i.svc.Delete(ctx, id)
	return nil
}

func (i *Interactor) LinkTask(ctx context.Context, goalID, taskID string) error {
	return i.svc.LinkTask(ctx, goalID, taskID)
}

func (i *Interactor) UnlinkTask(ctx context.Context, goalID, taskID string) error {
	return i.svc.UnlinkTask(ctx, goalID, taskID)
}

func (i *Interactor) ByHorizon(ctx context.Context) []goaldto.GroupOutput {
	groups := domain.ByHorizon(i.svc.List())
	out := make([]goaldto.GroupOutput, 0, len(groups))
	for _, g := range groups {
		out = append(out, goaldto.GroupOutput{Horizon: string(g.Horizon), Goals: i.outputs(ctx, g.Goals)})
	}
	return out
}

func (i *Interactor) Subscribe(fn func([]goaldto.GoalOutput)) func() {
	return i.svc.Listen(func(goals []domain.Goal) { fn(i.outputs(context.Background(), goals)) })
}

func (i *Interactor) outputs(ctx context.Context, goals []domain.Goal) []goaldto.GoalOutput {
	out := make([]goaldto.GoalOutput, 0, len(goals))
	for _, g := range goals {
		out = append(out, i.output(ctx, g))
	}
	return out
}

func (i *Interactor) output(ctx context.Context, g domain.Goal) goaldto.GoalOutput {
	out := goaldto.GoalOutput{
		ID:          g.ID,
		CreatedAt:   g.CreatedAt,
		Title:       g.Title,
		Description: g.Description,
		TargetDate:  g.TargetDate,
		Horizon:     string(g.Horizon),
		TaskIDs:     g.TaskIDs,
	}
	for _, id := range g.TaskIDs {
		if task, ok := i.svc.Task(ctx, id); ok {
			out.Tasks = append(out.Tasks, goaldto.LinkedTask{ID: task.ID, Title: task.Title, Done: task.Done})
		}
	}
	p := i.svc.Progress(ctx, g)
	out.Done, out.Total, out.Progress = p.Done, p.Total, p.Percent
	return out
}
