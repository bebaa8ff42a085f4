package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pipelineout "zenith/internal/modules/pipeline/adapter/out"
	"zenith/internal/modules/pipeline/domain"
	pipelinedto "zenith/internal/modules/pipeline/dto"
	pipelinein "zenith/internal/modules/pipeline/port/in"
	"zenith/internal/modules/pipeline/service"
	"zenith/internal/modules/pipeline/usecase"
	"zenith/internal/platform/clock"
	"zenith/internal/platform/docstore"
	apperrors "zenith/internal/platform/errors"
	"zenith/internal/platform/id"
)

type fakeContacts map[string]domain.ContactRef

func (f fakeContacts) Lookup(_ context.Context, id string) (domain.ContactRef, bool) {
	c, ok := f[id]
	return c, ok
}

type fixture struct {
	uc    pipelinein.Usecase
	store *docstore.Memory
	clk   *clock.Manual
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	clk := clock.NewManual(time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk, &id.Sequence{Prefix: "doc"})
	prospects := pipelineout.NewProspectCollection(store, nil, nil)
	stages := pipelineout.NewStageCollection(store, nil, nil)
	ctx := context.Background()
	require.NoError(t, prospects.Start(ctx))
	require.NoError(t, stages.Start(ctx))
	require.NoError(t, prospects.WaitReady(ctx))
	require.NoError(t, stages.WaitReady(ctx))
	t.Cleanup(func() {
		prospects.Stop()
		stages.Stop()
		_ = store.Close()
	})
	contacts := fakeContacts{
		"c1": {ID: "c1", Name: "Ada", Company: "Analytical Engines"},
		"c2": {ID: "c2", Name: "Grace", Company: "Navy"},
	}
	uc := usecase.NewInteractor(service.NewPipelineService(prospects, stages, contacts))
	return fixture{uc: uc, store: store, clk: clk}
}

func (f fixture) addStages(t *testing.T, names ...string) {
	t.Helper()
	ctx := context.Background()
	for _, name := range names {
		f.clk.Advance(time.Second)
		require.NoError(t, f.uc.AddStage(ctx, name))
		require.Eventually(t, func() bool { return hasStage(f.uc.Stages(ctx), name) }, time.Second, 5*time.Millisecond)
	}
}

func hasStage(stages []pipelinedto.StageOutput, name string) bool {
	for _, s := range stages {
		if s.Name == name {
			return true
		}
	}
	return false
}

func stageNames(stages []pipelinedto.StageOutput) []string {
	out := make([]string, 0, len(stages))
	for _, s := range stages {
		out = append(out, s.Name)
	}
	return out
}

func TestPromoteDefaultsToFirstStageOrNew(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	pid, err := f.uc.Promote(ctx, pipelinedto.PromoteInput{ContactID: "c1"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { _, err := f.uc.GetProspect(ctx, pid); return err == nil }, time.Second, 5*time.Millisecond)
	p, _ := f.uc.GetProspect(ctx, pid)
	assert.Equal(t, domain.DefaultStageName, p.Stage)
	assert.Equal(t, "Analytical Engines", p.Company)

	f.addStages(t, "Lead", "Won")
	pid, err = f.uc.Promote(ctx, pipelinedto.PromoteInput{ContactID: "c2"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { _, err := f.uc.GetProspect(ctx, pid); return err == nil }, time.Second, 5*time.Millisecond)
	p, _ = f.uc.GetProspect(ctx, pid)
	assert.Equal(t, "Lead", p.Stage)

	_, err = f.uc.Promote(ctx, pipelinedto.PromoteInput{ContactID: "nobody"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.uc.Promote(ctx, pipelinedto.PromoteInput{ContactID: "c1", Stage: "Imaginary"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAddStageRejectsEmptyAndDuplicate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.addStages(t, "New")

	require.ErrorIs(t, f.uc.AddStage(ctx, "   "), apperrors.ErrInvalidInput)
	require.ErrorIs(t, f.uc.AddStage(ctx, " New "), apperrors.ErrDuplicateStage)
}

func TestDeleteStageReassignsProspectsThenRemovesStage(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.addStages(t, "A", "B", "C")

	p1, err := f.uc.Promote(ctx, pipelinedto.PromoteInput{ContactID: "c1", Stage: "B"})
	require.NoError(t, err)
	p2, err := f.uc.Promote(ctx, pipelinedto.PromoteInput{ContactID: "c2", Stage: "B"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(f.uc.ListProspects(ctx)) == 2 }, time.Second, 5*time.Millisecond)

	out, err := f.uc.DeleteStage(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, "A", out.Fallback)
	assert.Equal(t, 2, out.Reassigned)
	assert.Equal(t, 1, out.StagesDeleted)

	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"A", "C"}, stageNames(f.uc.Stages(ctx)))
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		a, errA := f.uc.GetProspect(ctx, p1)
		b, errB := f.uc.GetProspect(ctx, p2)
		return errA == nil && errB == nil && a.Stage == "A" && b.Stage == "A"
	}, time.Second, 5*time.Millisecond)
}

func TestDeleteLastStageIsRefused(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.addStages(t, "Only")

	_, err := f.uc.DeleteStage(ctx, "Only")
	require.ErrorIs(t, err, apperrors.ErrLastStage)
	assert.Equal(t, []string{"Only"}, stageNames(f.uc.Stages(ctx)))
}

func TestFailedReassignmentKeepsStageAndRetrySucceeds(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.addStages(t, "A", "B")

	pid, err := f.uc.Promote(ctx, pipelinedto.PromoteInput{ContactID: "c1", Stage: "B"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { _, err := f.uc.GetProspect(ctx, pid); return err == nil }, time.Second, 5*time.Millisecond)

	f.store.FailWrites(errors.New("offline"))
	_, err = f.uc.DeleteStage(ctx, "B")
	require.Error(t, err)
	assert.Equal(t, []string{"A", "B"}, stageNames(f.uc.Stages(ctx)))

	f.store.FailWrites(nil)
	out, err := f.uc.DeleteStage(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, 1, out.StagesDeleted)
	require.Eventually(t, func() bool {
		p, err := f.uc.GetProspect(ctx, pid)
		return err == nil && p.Stage == "A"
	}, time.Second, 5*time.Millisecond)
}

func TestRenameStageMovesProspects(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.addStages(t, "Lead", "Won")

	pid, err := f.uc.Promote(ctx, pipelinedto.PromoteInput{ContactID: "c1", Stage: "Lead"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { _, err := f.uc.GetProspect(ctx, pid); return err == nil }, time.Second, 5*time.Millisecond)

	require.ErrorIs(t, f.uc.RenameStage(ctx, "Lead", "Won"), apperrors.ErrDuplicateStage)
	require.ErrorIs(t, f.uc.RenameStage(ctx, "Lead", " "), apperrors.ErrInvalidInput)
	require.NoError(t, f.uc.RenameStage(ctx, "Lead", "Lead"))

	require.NoError(t, f.uc.RenameStage(ctx, "Lead", "Qualified"))
	require.Eventually(t, func() bool {
		p, err := f.uc.GetProspect(ctx, pid)
		return err == nil && p.Stage == "Qualified" &&
			assert.ObjectsAreEqual([]string{"Qualified", "Won"}, stageNames(f.uc.Stages(ctx)))
	}, time.Second, 5*time.Millisecond)
}

func TestSeedStagesOnlyFillsEmptyRegistry(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.uc.SeedStages(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(domain.DefaultStages), n)
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(domain.DefaultStages, stageNames(f.uc.Stages(ctx)))
	}, time.Second, 5*time.Millisecond)

	n, err = f.uc.SeedStages(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
