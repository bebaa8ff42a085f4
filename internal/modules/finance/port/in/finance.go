package in

import (
	"context"
	"time"

	"zenith/internal/modules/finance/dto"
)

type Usecase interface {
	List(ctx context.Context) []dto.TransactionOutput
	Get(ctx context.Context, id string) (dto.TransactionOutput, error)
	Add(ctx context.Context, input dto.TransactionInput) (string, error)
	Update(ctx context.Context, input dto.UpdateInput) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, period string, anchor time.Time) (dto.SummaryOutput, error)
	Categories(ctx context.Context) dto.CategoriesOutput
	Subscribe(fn func([]dto.TransactionOutput)) func()
}
