package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pomodoroadapter "zenith/internal/modules/pomodoro/adapter/out"
	pomodorodto "zenith/internal/modules/pomodoro/dto"
	pomodoroin "zenith/internal/modules/pomodoro/port/in"
	"zenith/internal/modules/pomodoro/service"
	"zenith/internal/modules/pomodoro/usecase"
	taskout "zenith/internal/modules/task/adapter/out"
	taskdto "zenith/internal/modules/task/dto"
	taskin "zenith/internal/modules/task/port/in"
	taskservice "zenith/internal/modules/task/service"
	taskusecase "zenith/internal/modules/task/usecase"
	"zenith/internal/platform/clock"
	"zenith/internal/platform/docstore"
	apperrors "zenith/internal/platform/errors"
	"zenith/internal/platform/id"
)

type countingAlarm struct {
	plays atomic.Int32
	err   error
}

func (a *countingAlarm) Play(context.Context) error {
	a.plays.Add(1)
	return a.err
}

type fixture struct {
	pomodoro pomodoroin.Usecase
	tasks    taskin.Usecase
	clk      *clock.Manual
	alarm    *countingAlarm
	runner   *service.Runner
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	clk := clock.NewManual(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk, &id.Sequence{Prefix: "doc"})
	tasks := taskout.NewTaskCollection(store, nil, nil)
	history := pomodoroadapter.NewHistoryCollection(store, nil, nil)
	require.NoError(t, tasks.Start(ctx))
	require.NoError(t, history.Start(ctx))
	require.NoError(t, tasks.WaitReady(ctx))
	require.NoError(t, history.WaitReady(ctx))
	t.Cleanup(func() {
		tasks.Stop()
		history.Stop()
		_ = store.Close()
	})

	taskUC := taskusecase.NewInteractor(taskservice.NewTaskService(tasks))
	gateway := pomodoroadapter.NewTaskGateway(taskUC)
	alarm := &countingAlarm{err: errors.New("no audio device")}
	runner := service.NewRunner(clk, history, gateway, alarm, nil)
	uc := usecase.NewInteractor(runner, service.NewHistoryService(history), gateway, clk)
	return fixture{pomodoro: uc, tasks: taskUC, clk: clk, alarm: alarm, runner: runner}
}

func (f fixture) finishSession(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	state := f.pomodoro.Toggle(ctx)
	require.True(t, state.Running)
	f.clk.Advance(time.Duration(state.Remaining) * time.Second)
	_, ok := f.pomodoro.Tick(ctx)
	require.True(t, ok)
}

func TestFocusCompletionCreditsLinkedTaskAndLogs(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	taskID, err := f.tasks.Add(ctx, taskdto.AddInput{Title: "Write docs"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { _, err := f.tasks.Get(ctx, taskID); return err == nil }, time.Second, 5*time.Millisecond)

	require.NoError(t, f.pomodoro.Link(ctx, taskID))
	assert.Equal(t, "Write docs", f.pomodoro.State(ctx).LinkedTaskTitle)
	require.ErrorIs(t, f.pomodoro.Link(ctx, taskID), apperrors.ErrTaskLinked)

	f.finishSession(t)
	f.runner.WaitAlarms()

	require.Eventually(t, func() bool {
		task, err := f.tasks.Get(ctx, taskID)
		return err == nil && task.PomodorosDone == 1 && task.TotalTimeSpent == 1500
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(f.pomodoro.History(ctx)) == 1 }, time.Second, 5*time.Millisecond)

	entry := f.pomodoro.History(ctx)[0]
	assert.Equal(t, "Focus", entry.Kind)
	assert.Equal(t, 1500, entry.Duration)
	assert.Equal(t, taskID, entry.LinkedTaskID)
	assert.Equal(t, "Write docs", entry.LinkedTaskTitle)
	assert.Equal(t, int32(1), f.alarm.plays.Load(), "alarm failures do not stop recording")

	state := f.pomodoro.State(ctx)
	assert.Equal(t, "Short Break", state.Kind)
	assert.Equal(t, 300, state.Remaining)
	assert.False(t, state.Running)

	today := f.pomodoro.Today(ctx)
	assert.Equal(t, 1500, today.FocusSeconds)
}

func TestBreakCompletionLogsWithoutTask(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.pomodoro.Switch(ctx, "short")
	require.NoError(t, err)
	f.finishSession(t)

	require.Eventually(t, func() bool { return len(f.pomodoro.History(ctx)) == 1 }, time.Second, 5*time.Millisecond)
	entry := f.pomodoro.History(ctx)[0]
	assert.Equal(t, "Short Break", entry.Kind)
	assert.Empty(t, entry.LinkedTaskID)
	assert.Equal(t, "Focus", f.pomodoro.State(ctx).Kind)
}

func TestSwitchAbandonsWithoutLogging(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	f.pomodoro.Toggle(ctx)
	f.clk.Advance(20 * time.Minute)
	_, err := f.pomodoro.Switch(ctx, "long break")
	require.NoError(t, err)
	f.clk.Advance(time.Hour)
	_, ok := f.pomodoro.Tick(ctx)
	assert.False(t, ok)

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, f.pomodoro.History(ctx))
	_, err = f.pomodoro.Switch(ctx, "siesta")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestFinishLinkedTaskMarksDoneAndUnlinks(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.pomodoro.FinishLinkedTask(ctx), apperrors.ErrInvalidInput)
	require.ErrorIs(t, f.pomodoro.Link(ctx, "missing"), apperrors.ErrNotFound)

	taskID, err := f.tasks.Add(ctx, taskdto.AddInput{Title: "Ship"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { _, err := f.tasks.Get(ctx, taskID); return err == nil }, time.Second, 5*time.Millisecond)
	require.NoError(t, f.pomodoro.Link(ctx, taskID))

	require.NoError(t, f.pomodoro.FinishLinkedTask(ctx))
	assert.Empty(t, f.pomodoro.State(ctx).LinkedTaskID)
	require.Eventually(t, func() bool {
		task, err := f.tasks.Get(ctx, taskID)
		return err == nil && task.Status == taskdto.StatusDone
	}, time.Second, 5*time.Millisecond)
}

func TestLinkRejectsFinishedTask(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	taskID, err := f.tasks.Add(ctx, taskdto.AddInput{Title: "Already shipped"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { _, err := f.tasks.Get(ctx, taskID); return err == nil }, time.Second, 5*time.Millisecond)
	require.NoError(t, f.tasks.Move(ctx, taskID, taskdto.StatusDone))
	require.Eventually(t, func() bool {
		task, err := f.tasks.Get(ctx, taskID)
		return err == nil && task.IsDone()
	}, time.Second, 5*time.Millisecond)

	require.ErrorIs(t, f.pomodoro.Link(ctx, taskID), apperrors.ErrInvalidInput)
	assert.Empty(t, f.pomodoro.State(ctx).LinkedTaskID)
}

func TestStateListenersSeeTransitions(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	var seen atomic.Int32
	cancel := f.pomodoro.SubscribeState(func(pomodorodto.TimerOutput) { seen.Add(1) })
	f.pomodoro.Toggle(ctx)
	f.pomodoro.Reset(ctx)
	cancel()
	f.pomodoro.Toggle(ctx)
	assert.Equal(t, int32(2), seen.Load())
}
