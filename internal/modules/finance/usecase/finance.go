package usecase

import (
	"context"
	"time"

	"zenith/internal/modules/finance/domain"
	financedto "zenith/internal/modules/finance/dto"
	financein "zenith/internal/modules/finance/port/in"
	"zenith/internal/modules/finance/service"
)

type Interactor struct {
	svc *service.FinanceService
}

func NewInteractor(svc *service.FinanceService) financein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(_ context.Context) []financedto.TransactionOutput {
	return toOutputs(i.svc.List())
}

func (i *Interactor) Get(_ context.Context, id string) (financedto.TransactionOutput, error) {
	tx, err := i.svc.Get(id)
	if err != nil {
		return financedto.TransactionOutput{}, err
	}
	return toOutput(tx), nil
}

func (i *Interactor) Add(ctx context.Context, input financedto.TransactionInput) (string, error) {
	txType, err := domain.ParseType(input.Type)
	if err != nil {
		return "", err
	}
	category, err := domain.ParseCategory(txType, input.Category)
	if err != nil {
		return "", err
	}
	return i.svc.Add(ctx, domain.Transaction{
		Title:    input.Title,
		Amount:   input.Amount,
		Type:     txType,
		Category: category,
		Date:     input.Date,
	})
}

// Update re-checks the category whenever the type or the category changes.
func (i *Interactor) Update(ctx context.Context, input financedto.UpdateInput) error {
	tx, err := i.svc.Get(input.ID)
	if err != nil {
		return err
	}
	if input.Title != nil {
		tx.Title = *input.Title
	}
	if input.Amount != nil {
		tx.Amount = *input.Amount
	}
	if input.Type != nil {
		if tx.Type, err = domain.ParseType(*input.Type); err != nil {
			return err
		}
	}
	if input.Category != nil {
		tx.Category = *input.Category
	}
	if input.Type != nil || input.Category != nil {
		if tx.Category, err = domain.ParseCategory(tx.Type, tx.Category); err != nil {
			return err
		}
	}
	if input.Date != nil {
		tx.Date = *input.Date
	}
	return i.svc.Save(ctx, tx)
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	i.svc.Delete(ctx, id)
	return nil
}

func (i *Interactor) Summary(_ context.Context, period string, anchor time.Time) (financedto.SummaryOutput, error) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return financedto.SummaryOutput{}, err
	}
	s := i.svc.Summary(p, anchor)
	out := financedto.SummaryOutput{
		Period:       string(s.Period),
		Anchor:       s.Anchor,
		Income:       s.Income,
		Expenses:     s.Expenses,
		Balance:      s.Balance,
		Transactions: toOutputs(s.Transactions),
	}
	for _, c := range s.ByCategory {
		out.ByCategory = append(out.ByCategory, financedto.CategorySpendOutput{Category: c.Category, Amount: c.Amount, Percent: c.Percent})
	}
	return out, nil
}

func (i *Interactor) Categories(_ context.Context) financedto.CategoriesOutput {
	return financedto.CategoriesOutput{
		Income:  append([]string(nil), domain.IncomeCategories...),
		Expense: append([]string(nil), domain.ExpenseCategories...),
	}
}

func (i *Interactor) Subscribe(fn func([]financedto.TransactionOutput)) func() {
	return i.svc.Listen(func(txs []domain.Transaction) { fn(toOutputs(txs)) })
}

func toOutputs(txs []domain.Transaction) []financedto.TransactionOutput {
	out := make([]financedto.TransactionOutput, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toOutput(tx))
	}
	return out
}

func toOutput(tx domain.Transaction) financedto.TransactionOutput {
	return financedto.TransactionOutput{
		ID:        tx.ID,
		CreatedAt: tx.CreatedAt,
		Title:     tx.Title,
		Amount:    tx.Amount,
		Signed:    tx.Signed(),
		Type:      string(tx.Type),
		Category:  tx.Category,
		Date:      tx.Date,
	}
}
