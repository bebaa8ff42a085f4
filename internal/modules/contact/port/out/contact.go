package out

import (
	"context"

	"zenith/internal/modules/contact/domain"
)

type ContactStore interface {
	Items() []domain.Contact
	Find(id string) (domain.Contact, bool)
	TryAdd(ctx context.Context, contact domain.Contact) (string, error)
	Update(ctx context.Context, contact domain.Contact)
	Delete(ctx context.Context, id string)
	Listen(fn func([]domain.Contact)) func()
}
