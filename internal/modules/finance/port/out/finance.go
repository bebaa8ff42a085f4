package out

import (
	"context"

	"zenith/internal/modules/finance/domain"
)

type TransactionStore interface {
	Items() []domain.Transaction
	Find(id string) (domain.Transaction, bool)
	TryAdd(ctx context.Context, tx domain.Transaction) (string, error)
	Update(ctx context.Context, tx domain.Transaction)
	Delete(ctx context.Context, id string)
	Listen(fn func([]domain.Transaction)) func()
}
