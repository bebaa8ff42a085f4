package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contactout "zenith/internal/modules/contact/adapter/out"
	contactdto "zenith/internal/modules/contact/dto"
	"zenith/internal/modules/contact/service"
	"zenith/internal/modules/contact/usecase"
	"zenith/internal/platform/clock"
	"zenith/internal/platform/docstore"
	apperrors "zenith/internal/platform/errors"
	"zenith/internal/platform/id"
)

func TestAddReturnsEchoThenSnapshotCatchesUp(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk, &id.Sequence{Prefix: "contact"})
	defer store.Close()
	col := contactout.NewContactCollection(store, nil, nil)
	ctx := context.Background()
	require.NoError(t, col.Start(ctx))
	defer col.Stop()
	uc := usecase.NewInteractor(service.NewContactService(clk, col))

	echo, err := uc.Add(ctx, contactdto.ContactInput{Name: "Ada Lovelace", Company: "Analytical Engines"})
	require.NoError(t, err)
	assert.Equal(t, "contact-1", echo.ID)
	assert.Equal(t, clk.Now(), echo.CreatedAt)

	require.Eventually(t, func() bool { _, err := uc.Get(ctx, echo.ID); return err == nil }, time.Second, 5*time.Millisecond)

	email := "ada@example.com"
	require.NoError(t, uc.Update(ctx, contactdto.UpdateInput{ID: echo.ID, Email: &email}))
	require.Eventually(t, func() bool {
		got, err := uc.Get(ctx, echo.ID)
		return err == nil && got.Email == email && got.Company == "Analytical Engines"
	}, time.Second, 5*time.Millisecond)

	bad := "not-an-email"
	require.ErrorIs(t, uc.Update(ctx, contactdto.UpdateInput{ID: echo.ID, Email: &bad}), apperrors.ErrInvalidInput)
	_, err = uc.Add(ctx, contactdto.ContactInput{Name: " "})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	require.NoError(t, uc.Delete(ctx, echo.ID))
	require.Eventually(t, func() bool { return len(uc.List(ctx)) == 0 }, time.Second, 5*time.Millisecond)
}

func TestAddWithoutStoredRecordReturnsNoEcho(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk, &id.Sequence{Prefix: "contact"})
	defer store.Close()
	col := contactout.NewContactCollection(store, nil, nil)
	ctx := context.Background()
	require.NoError(t, col.Start(ctx))
	defer col.Stop()
	uc := usecase.NewInteractor(service.NewContactService(clk, col))

	offline := errors.New("offline")
	store.FailWrites(offline)
	echo, err := uc.Add(ctx, contactdto.ContactInput{Name: "Grace Hopper"})
	require.ErrorIs(t, err, offline)
	assert.Empty(t, echo.ID)
	assert.Empty(t, echo.Name)
}
