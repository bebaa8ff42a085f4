package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taskout "zenith/internal/modules/task/adapter/out"
	taskdto "zenith/internal/modules/task/dto"
	taskin "zenith/internal/modules/task/port/in"
	"zenith/internal/modules/task/service"
	"zenith/internal/modules/task/usecase"
	"zenith/internal/platform/clock"
	"zenith/internal/platform/docstore"
	apperrors "zenith/internal/platform/errors"
	"zenith/internal/platform/id"
)

func newUsecase(t *testing.T) (taskin.Usecase, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk, &id.Sequence{Prefix: "task"})
	col := taskout.NewTaskCollection(store, nil, nil)
	require.NoError(t, col.Start(context.Background()))
	require.NoError(t, col.WaitReady(context.Background()))
	t.Cleanup(func() {
		col.Stop()
		_ = store.Close()
	})
	return usecase.NewInteractor(service.NewTaskService(col)), clk
}

func strPtr(s string) *string { return &s }

func TestAddForcesDefaultsAndAppearsOnlyAfterEcho(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	ctx := context.Background()

	taskID, err := uc.Add(ctx, taskdto.AddInput{Title: "  Write report ", Priority: "high", DueDate: "2026-05-10"})
	require.NoError(t, err)
	require.NotEmpty(t, taskID)

	require.Eventually(t, func() bool { return len(uc.List(ctx)) == 1 }, time.Second, 5*time.Millisecond)
	got, err := uc.Get(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, "Todo", got.Status)
	assert.Equal(t, "High", got.Priority)
	assert.Zero(t, got.PomodorosDone)
	assert.Zero(t, got.TotalTimeSpent)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestAddRejectsInvalidInputWithoutWriting(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	ctx := context.Background()

	_, err := uc.Add(ctx, taskdto.AddInput{Title: "  "})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.Add(ctx, taskdto.AddInput{Title: "x", Priority: "urgent"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.Add(ctx, taskdto.AddInput{Title: "x", DueDate: "10/05/2026"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, uc.List(ctx))
}

func TestMoveUpdateBoardAndDelete(t *testing.T) {
	t.Parallel()
	uc, clk := newUsecase(t)
	ctx := context.Background()

	a, err := uc.Add(ctx, taskdto.AddInput{Title: "a"})
	require.NoError(t, err)
	clk.Advance(time.Minute)
	b, err := uc.Add(ctx, taskdto.AddInput{Title: "b"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(uc.List(ctx)) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "b", uc.List(ctx)[0].Title, "newest first")

	require.NoError(t, uc.Move(ctx, a, "Doing"))
	require.NoError(t, uc.Update(ctx, taskdto.UpdateInput{ID: b, Status: strPtr("Done"), Description: strPtr("shipped")}))
	require.Eventually(t, func() bool {
		board := uc.Board(ctx)
		return len(board[1].Tasks) == 1 && len(board[2].Tasks) == 1
	}, time.Second, 5*time.Millisecond)

	board := uc.Board(ctx)
	assert.Equal(t, []string{"Todo", "Doing", "Done"}, []string{board[0].Status, board[1].Status, board[2].Status})
	assert.Empty(t, board[0].Tasks)
	assert.Equal(t, "shipped", board[2].Tasks[0].Description)

	incomplete := uc.Incomplete(ctx)
	require.Len(t, incomplete, 1)
	assert.Equal(t, a, incomplete[0].ID)

	require.ErrorIs(t, uc.Move(ctx, a, "Blocked"), apperrors.ErrInvalidInput)
	require.ErrorIs(t, uc.Move(ctx, "missing", "Done"), apperrors.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, a))
	require.Eventually(t, func() bool { return len(uc.List(ctx)) == 1 }, time.Second, 5*time.Millisecond)
}

func TestRecordPomodoroIncrementsCounters(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	ctx := context.Background()

	taskID, err := uc.Add(ctx, taskdto.AddInput{Title: "deep work"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(uc.List(ctx)) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, uc.RecordPomodoro(ctx, taskdto.RecordPomodoroInput{TaskID: taskID, Seconds: 1500}))
	require.Eventually(t, func() bool {
		got, err := uc.Get(ctx, taskID)
		return err == nil && got.PomodorosDone == 1 && got.TotalTimeSpent == 1500
	}, time.Second, 5*time.Millisecond)
}

func TestAddReportsFailedWrite(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk, &id.Sequence{Prefix: "task"})
	col := taskout.NewTaskCollection(store, nil, nil)
	require.NoError(t, col.Start(context.Background()))
	t.Cleanup(func() {
		col.Stop()
		_ = store.Close()
	})
	uc := usecase.NewInteractor(service.NewTaskService(col))

	offline := errors.New("offline")
	store.FailWrites(offline)
	taskID, err := uc.Add(context.Background(), taskdto.AddInput{Title: "Unsent"})
	require.ErrorIs(t, err, offline)
	assert.Empty(t, taskID)
}
