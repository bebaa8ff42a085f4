package out

import (
	"context"

	contactin "zenith/internal/modules/contact/port/in"
	"zenith/internal/modules/pipeline/domain"
	pipelineout "zenith/internal/modules/pipeline/port/out"
)

type ContactDirectory struct {
	contacts contactin.Usecase
}

func NewContactDirectory(contacts contactin.Usecase) pipelineout.ContactDirectory {
	return &ContactDirectory{contacts: contacts}
}

func (d *ContactDirectory) Lookup(ctx context.Context, id string) (domain.ContactRef, bool) {
	contact, err := d.contacts.Get(ctx, id)
	if err != nil {
		return domain.ContactRef{}, false
	}
	return domain.ContactRef{ID: contact.ID, Name: contact.Name, Company: contact.Company}, true
}
