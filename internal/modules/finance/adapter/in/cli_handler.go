package in

import (
	"context"
	"time"

	financedto "zenith/internal/modules/finance/dto"
	financein "zenith/internal/modules/finance/port/in"
)

type CLIHandler struct {
	usecase financein.Usecase
}

func NewCLIHandler(usecase financein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) []financedto.TransactionOutput {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Add(ctx context.Context, input financedto.TransactionInput) (string, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) Update(ctx context.Context, input financedto.UpdateInput) error {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Summary(ctx context.Context, period string, anchor time.Time) (financedto.SummaryOutput, error) {
	return h.usecase.Summary(ctx, period, anchor)
}

func (h CLIHandler) Categories(ctx context.Context) financedto.CategoriesOutput {
	return h.usecase.Categories(ctx)
}

func (h CLIHandler) Subscribe(fn func([]financedto.TransactionOutput)) func() {
	return h.usecase.Subscribe(fn)
}
