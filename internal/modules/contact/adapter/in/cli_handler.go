package in

import (
	"context"

	contactdto "zenith/internal/modules/contact/dto"
	contactin "zenith/internal/modules/contact/port/in"
)

type CLIHandler struct {
	usecase contactin.Usecase
}

func NewCLIHandler(usecase contactin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) []contactdto.ContactOutput {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (contactdto.ContactOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Add(ctx context.Context, input contactdto.ContactInput) (contactdto.ContactOutput, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) Update(ctx context.Context, input contactdto.UpdateInput) error {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Subscribe(fn func([]contactdto.ContactOutput)) func() {
	return h.usecase.Subscribe(fn)
}
