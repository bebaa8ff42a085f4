package out

import (
	"fmt"
	"log/slog"

	"zenith/internal/modules/contact/domain"
	"zenith/internal/platform/docstore"
	"zenith/internal/platform/synced"
)

const Collection = "contacts"

type contactCodec struct{}

func (contactCodec) Decode(doc docstore.Document) (domain.Contact, error) {
	f := doc.Fields
	if !f.Has("name") {
		return domain.Contact{}, fmt.Errorf("contact %s has no name", doc.ID)
	}
	return domain.Contact{
		ID:        doc.ID,
		CreatedAt: doc.CreatedAt,
		Name:      f.String("name"),
		Company:   f.String("company"),
		Email:     f.String("email"),
		Phone:     f.String("phone"),
		Notes:     f.String("notes"),
	}, nil
}

func (contactCodec) Encode(c domain.Contact) docstore.Fields {
	return docstore.Fields{
		"name":    c.Name,
		"company": c.Company,
		"email":   c.Email,
		"phone":   c.Phone,
		"notes":   c.Notes,
	}
}

func (contactCodec) ID(c domain.Contact) string { return c.ID }

func NewContactCollection(store docstore.Store, cache synced.Cache, logger *slog.Logger) *synced.Collection[domain.Contact] {
	return synced.New[domain.Contact](store, Collection, contactCodec{}, synced.Options{
		Order:  docstore.Desc(docstore.FieldCreatedAt),
		Cache:  cache,
		Logger: logger,
	})
}
