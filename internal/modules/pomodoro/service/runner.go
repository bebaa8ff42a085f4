package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"zenith/internal/modules/pomodoro/domain"
	pomodoroout "zenith/internal/modules/pomodoro/port/out"
	"zenith/internal/platform/clock"
	apperrors "zenith/internal/platform/errors"
	"zenith/internal/platform/logging"
)

const TickInterval = time.Second

// Runner owns the process-wide timer. Completions play the alarm, append a
// history entry and, for focus sessions with a linked task, credit the task.
type Runner struct {
	clock   clock.Clock
	history pomodoroout.HistoryStore
	tasks   pomodoroout.TaskGateway
	alarm   pomodoroout.Alarm
	logger  *slog.Logger

	mu        sync.Mutex
	timer     domain.Timer
	listeners map[int]func(domain.State)
	nextID    int
	alarms    sync.WaitGroup
}

func NewRunner(clk clock.Clock, history pomodoroout.HistoryStore, tasks pomodoroout.TaskGateway, alarm pomodoroout.Alarm, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{
		clock:     clk,
		history:   history,
		tasks:     tasks,
		alarm:     alarm,
		logger:    logger,
		timer:     domain.NewTimer(),
		listeners: map[int]func(domain.State){},
	}
}

func (r *Runner) State() domain.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.State()
}

func (r *Runner) Toggle() domain.State {
	return r.mutate(func(t *domain.Timer) error {
		t.Toggle(r.clock.Now())
		return nil
	})
}

func (r *Runner) Reset() domain.State {
	return r.mutate(func(t *domain.Timer) error {
		t.Reset()
		return nil
	})
}

func (r *Runner) Switch(kind domain.Kind) domain.State {
	return r.mutate(func(t *domain.Timer) error {
		t.Switch(kind)
		return nil
	})
}

// Link attaches an existing, unfinished task to the timer.
func (r *Runner) Link(ctx context.Context, taskID string) error {
	ref, ok := r.tasks.Get(ctx, taskID)
	if !ok {
		return fmt.Errorf("task %s: %w", taskID, apperrors.ErrNotFound)
	}
	if ref.Done {
		return fmt.Errorf("%w: task %q is already done", apperrors.ErrInvalidInput, ref.Title)
	}
	var err error
	r.mutate(func(t *domain.Timer) error {
		err = t.Link(taskID)
		return err
	})
	return err
}

func (r *Runner) Unlink() domain.State {
	return r.mutate(func(t *domain.Timer) error {
		t.Unlink()
		return nil
	})
}

// FinishLinkedTask marks the linked task Done and frees the timer.
func (r *Runner) FinishLinkedTask(ctx context.Context) error {
	taskID := r.State().LinkedTaskID
	if taskID == "" {
		return fmt.Errorf("%w: no task is linked", apperrors.ErrInvalidInput)
	}
	if err := r.tasks.Complete(ctx, taskID); err != nil {
		return fmt.Errorf("finish task %s: %w", taskID, err)
	}
	r.Unlink()
	return nil
}

// Tick advances the timer to the current time. A completed session is
// recorded before Tick returns; only the alarm plays in the background.
func (r *Runner) Tick(ctx context.Context) (domain.Completion, bool) {
	var (
		done domain.Completion
		ok   bool
	)
	r.mutate(func(t *domain.Timer) error {
		done, ok = t.Tick(r.clock.Now())
		return nil
	})
	if ok {
		r.complete(ctx, done)
	}
	return done, ok
}

// Run ticks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = TickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.alarms.Wait()
			return ctx.Err()
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

func (r *Runner) Listen(fn func(domain.State)) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// WaitAlarms blocks until alarms started by completions have finished.
func (r *Runner) WaitAlarms() {
	r.alarms.Wait()
}

func (r *Runner) complete(ctx context.Context, done domain.Completion) {
	if r.alarm != nil {
		r.alarms.Add(1)
		go func() {
			defer r.alarms.Done()
			if err := r.alarm.Play(context.WithoutCancel(ctx)); err != nil {
				r.logger.Warn("alarm playback failed", "err", err)
			}
		}()
	}

	entry := domain.Log{Kind: done.Kind, Duration: done.Duration}
	var task pomodoroout.TaskRef
	linked := false
	if done.TaskID != "" {
		task, linked = r.tasks.Get(ctx, done.TaskID)
		if linked {
			entry.LinkedTask = &domain.LinkedTask{ID: task.ID, Title: task.Title}
		}
	}
	if _, err := r.history.TryAdd(ctx, entry); err != nil {
		r.logger.Error("record pomodoro session", "type", done.Kind, "err", err)
	}
	if linked {
		if err := r.tasks.RecordFocus(ctx, task.ID, done.Duration); err != nil {
			r.logger.Error("credit pomodoro to task", "task", task.ID, "err", err)
		}
	}
}

func (r *Runner) mutate(fn func(t *domain.Timer) error) domain.State {
	r.mu.Lock()
	err := fn(&r.timer)
	state := r.timer.State()
	listeners := make([]func(domain.State), 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.mu.Unlock()
	if err == nil {
		for _, l := range listeners {
			l(state)
		}
	}
	return state
}
