package service

import (
	"context"
	"fmt"

	"zenith/internal/modules/task/domain"
	taskout "zenith/internal/modules/task/port/out"
	apperrors "zenith/internal/platform/errors"
)

type TaskService struct {
	store taskout.TaskStore
}

func NewTaskService(store taskout.TaskStore) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) List() []domain.Task {
	return s.store.Items()
}

func (s *TaskService) Get(id string) (domain.Task, error) {
	task, ok := s.store.Find(id)
	if !ok {
		return domain.Task{}, fmt.Errorf("task %s: %w", id, apperrors.ErrNotFound)
	}
	return task, nil
}

func (s *TaskService) Add(ctx context.Context, task domain.Task) (string, error) {
	task = domain.NewTask(task.Title, task.Description, task.Priority, task.DueDate)
	if err := task.Validate(); err != nil {
		return "", err
	}
	docID, err := s.store.TryAdd(ctx, task)
	if err != nil {
		return "", fmt.Errorf("add task: %w", err)
	}
	return docID, nil
}

// Save overwrites the stored task. Unknown ids reach the store and fail there.
func (s *TaskService) Save(ctx context.Context, task domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	s.store.Update(ctx, task)
	return nil
}

func (s *TaskService) Move(ctx context.Context, id string, status domain.Status) error {
	task, err := s.Get(id)
	if err != nil {
		return err
	}
	if task.Status == status {
		return nil
	}
	task.Status = status
	return s.Save(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, id string) {
	s.store.Delete(ctx, id)
}

func (s *TaskService) Incomplete() []domain.Task {
	var out []domain.Task
	for _, t := range s.store.Items() {
		if !t.Completed() {
			out = append(out, t)
		}
	}
	return out
}

// RecordPomodoro writes the incremented counters through to the store.
func (s *TaskService) RecordPomodoro(ctx context.Context, id string, seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("%w: duration must be non-negative", apperrors.ErrInvalidInput)
	}
	task, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.store.TryUpdate(ctx, task.RecordFocus(seconds))
}

func (s *TaskService) Listen(fn func([]domain.Task)) func() {
	return s.store.Listen(fn)
}
