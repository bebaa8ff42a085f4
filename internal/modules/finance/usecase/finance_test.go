package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	financeout "zenith/internal/modules/finance/adapter/out"
	financedto "zenith/internal/modules/finance/dto"
	financein "zenith/internal/modules/finance/port/in"
	"zenith/internal/modules/finance/service"
	"zenith/internal/modules/finance/usecase"
	"zenith/internal/platform/clock"
	"zenith/internal/platform/docstore"
	apperrors "zenith/internal/platform/errors"
	"zenith/internal/platform/id"
)

func newUsecase(t *testing.T) financein.Usecase {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemory(clock.NewManual(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)), &id.Sequence{Prefix: "tx"})
	col := financeout.NewTransactionCollection(store, nil, nil)
	require.NoError(t, col.Start(ctx))
	require.NoError(t, col.WaitReady(ctx))
	t.Cleanup(func() {
		col.Stop()
		_ = store.Close()
	})
	return usecase.NewInteractor(service.NewFinanceService(col))
}

func TestTransactionsOrderedByDateDescending(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t)
	ctx := context.Background()

	for _, in := range []financedto.TransactionInput{
		{Title: "rent", Amount: 900, Type: "expense", Category: "housing", Date: "2026-10-02"},
		{Title: "salary", Amount: 2500, Type: "Income", Category: "Salary", Date: "2026-10-28"},
		{Title: "lunch", Amount: 12.5, Type: "Expense", Category: "Food", Date: "2026-10-15"},
	} {
		_, err := uc.Add(ctx, in)
		require.NoError(t, err)
	}
	require.Eventually(t, func() bool { return len(uc.List(ctx)) == 3 }, time.Second, 5*time.Millisecond)

	list := uc.List(ctx)
	assert.Equal(t, []string{"salary", "lunch", "rent"}, []string{list[0].Title, list[1].Title, list[2].Title})
	assert.Equal(t, "Housing", list[2].Category)
	assert.InDelta(t, -900.0, list[2].Signed, 1e-9)

	summary, err := uc.Summary(ctx, "monthly", time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.InDelta(t, 1587.5, summary.Balance, 1e-9)
	require.Len(t, summary.ByCategory, 2)
	assert.Equal(t, "Housing", summary.ByCategory[0].Category)
}

func TestUpdateRevalidatesCategoryOnTypeChange(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t)
	ctx := context.Background()

	txID, err := uc.Add(ctx, financedto.TransactionInput{Title: "bonus", Amount: 100, Type: "Income", Category: "Gifts", Date: "2026-10-02"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { _, err := uc.Get(ctx, txID); return err == nil }, time.Second, 5*time.Millisecond)

	expense := "Expense"
	require.ErrorIs(t, uc.Update(ctx, financedto.UpdateInput{ID: txID, Type: &expense}), apperrors.ErrInvalidInput)

	other := "Other"
	require.NoError(t, uc.Update(ctx, financedto.UpdateInput{ID: txID, Type: &expense, Category: &other}))
	require.Eventually(t, func() bool {
		tx, err := uc.Get(ctx, txID)
		return err == nil && tx.Type == "Expense" && tx.Category == "Other"
	}, time.Second, 5*time.Millisecond)

	_, err = uc.Add(ctx, financedto.TransactionInput{Title: "x", Amount: -5, Type: "Expense", Category: "Food", Date: "2026-10-02"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.Summary(ctx, "weekly", time.Now())
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
