package in

import (
	"context"

	"zenith/internal/modules/contact/dto"
)

type Usecase interface {
	List(ctx context.Context) []dto.ContactOutput
	Get(ctx context.Context, id string) (dto.ContactOutput, error)
	// Add returns a locally built echo of the new contact so callers can chain
	// on its id before the snapshot arrives.
	Add(ctx context.Context, input dto.ContactInput) (dto.ContactOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) error
	Delete(ctx context.Context, id string) error
	Subscribe(fn func([]dto.ContactOutput)) func()
}
