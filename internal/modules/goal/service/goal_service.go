package service

import (
	"context"
	"fmt"
	"strings"

	"zenith/internal/modules/goal/domain"
	goalout "zenith/internal/modules/goal/port/out"
	apperrors "zenith/internal/platform/errors"
)

type GoalService struct {
	store goalout.GoalStore
	tasks goalout.TaskLookup
}

func NewGoalService(store goalout.GoalStore, tasks goalout.TaskLookup) *GoalService {
	return &GoalService{store: store, tasks: tasks}
}

func (s *GoalService) List() []domain.Goal {
	return s.store.Items()
}

func (s *GoalService) Get(id string) (domain.Goal, error) {
	goal, ok := s.store.Find(id)
	if !ok {
		return domain.Goal{}, fmt.Errorf("goal %s: %w", id, apperrors.ErrNotFound)
	}
	return goal, nil
}

func (s *GoalService) Add(ctx context.Context, goal domain.Goal) (string, error) {
	goal.Title = strings.TrimSpace(goal.Title)
	if goal.TaskIDs == nil {
		goal.TaskIDs = []string{}
	}
	if err := goal.Validate(); err != nil {
		return "", err
	}
	docID, err := s.store.TryAdd(ctx, goal)
	if err != nil {
		return "", fmt.Errorf("add goal: %w", err)
	}
	return docID, nil
}

func (s *GoalService) Save(ctx context.Context, goal domain.Goal) error {
	if err := goal.Validate(); err != nil {
		return err
	}
	s.store.Update(ctx, goal)
	return nil
}

func (s *GoalService) Delete(ctx context.Context, id string) {
	s.store.Delete(ctx, id)
}

// LinkTask refuses ids that do not resolve to a task right now; ids that
// dangle later are tolerated.
func (s *GoalService) LinkTask(ctx context.Context, goalID, taskID string) error {
	goal, err := s.Get(goalID)
	if err != nil {
		return err
	}
	if _, ok := s.Task(ctx, taskID); !ok {
		return fmt.Errorf("task %s: %w", taskID, apperrors.ErrNotFound)
	}
	goal, changed := goal.LinkTask(taskID)
	if !changed {
		return nil
	}
	s.store.Update(ctx, goal)
	return nil
}

func (s *GoalService) UnlinkTask(ctx context.Context, goalID, taskID string) error {
	goal, err := s.Get(goalID)
	if err != nil {
		return err
	}
	goal, changed := goal.UnlinkTask(taskID)
	if !changed {
		return nil
	}
	s.store.Update(ctx, goal)
	return nil
}

func (s *GoalService) Task(ctx context.Context, id string) (domain.TaskState, bool) {
	if s.tasks == nil {
		return domain.TaskState{}, false
	}
	return s.tasks.Lookup(ctx, id)
}

func (s *GoalService) Progress(ctx context.Context, goal domain.Goal) domain.Progress {
	return domain.ComputeProgress(goal, func(id string) (domain.TaskState, bool) {
		return s.Task(ctx, id)
	})
}

func (s *GoalService) Listen(fn func([]domain.Goal)) func() {
	return s.store.Listen(fn)
}
