package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"zenith/internal/modules/finance/domain"
	financeout "zenith/internal/modules/finance/port/out"
	apperrors "zenith/internal/platform/errors"
)

type FinanceService struct {
	store financeout.TransactionStore
}

func NewFinanceService(store financeout.TransactionStore) *FinanceService {
	return &FinanceService{store: store}
}

func (s *FinanceService) List() []domain.Transaction {
	return s.store.Items()
}

func (s *FinanceService) Get(id string) (domain.Transaction, error) {
	tx, ok := s.store.Find(id)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", id, apperrors.ErrNotFound)
	}
	return tx, nil
}

func (s *FinanceService) Add(ctx context.Context, tx domain.Transaction) (string, error) {
	tx.Title = strings.TrimSpace(tx.Title)
	if err := tx.Validate(); err != nil {
		return "", err
	}
	docID, err := s.store.TryAdd(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("add transaction: %w", err)
	}
	return docID, nil
}

func (s *FinanceService) Save(ctx context.Context, tx domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	s.store.Update(ctx, tx)
	return nil
}

func (s *FinanceService) Delete(ctx context.Context, id string) {
	s.store.Delete(ctx, id)
}

func (s *FinanceService) Summary(period domain.Period, anchor time.Time) domain.Summary {
	return domain.Summarize(s.store.Items(), period, anchor)
}

func (s *FinanceService) Listen(fn func([]domain.Transaction)) func() {
	return s.store.Listen(fn)
}
