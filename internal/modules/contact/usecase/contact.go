package usecase

import (
	"context"

	"zenith/internal/modules/contact/domain"
	contactdto "zenith/internal/modules/contact/dto"
	contactin "zenith/internal/modules/contact/port/in"
	"zenith/internal/modules/contact/service"
)

type Interactor struct {
	svc *service.ContactService
}

func NewInteractor(svc *service.ContactService) contactin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(_ context.Context) []contactdto.ContactOutput {
	contacts := i.svc.List()
	out := make([]contactdto.ContactOutput, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, toOutput(c))
	}
	return out
}

func (i *Interactor) Get(_ context.Context, id string) (contactdto.ContactOutput, error) {
	contact, err := i.svc.Get(id)
	if err != nil {
		return contactdto.ContactOutput{}, err
	}
	return toOutput(contact), nil
}

func (i *Interactor) Add(ctx context.Context, input contactdto.ContactInput) (contactdto.ContactOutput, error) {
	contact, err := i.svc.Add(ctx, domain.Contact{
		Name:    input.Name,
		Company: input.Company,
		Email:   input.Email,
		Phone:   input.Phone,
		Notes:   input.Notes,
	})
	if err != nil {
		return contactdto.ContactOutput{}, err
	}
	return toOutput(contact), nil
}

func (i *Interactor) Update(ctx context.Context, input contactdto.UpdateInput) error {
	contact, err := i.svc.Get(input.ID)
	if err != nil {
		return err
	}
	apply(&contact.Name, input.Name)
	apply(&contact.Company, input.Company)
	apply(&contact.Email, input.Email)
	apply(&contact.Phone, input.Phone)
	apply(&contact.Notes, input.Notes)
	return i.svc.Save(ctx, contact)
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	i.svc.Delete(ctx, id)
	return nil
}

func (i *Interactor) Subscribe(fn func([]contactdto.ContactOutput)) func() {
	return i.svc.Listen(func(contacts []domain.Contact) {
		out := make([]contactdto.ContactOutput, 0, len(contacts))
		for _, c := range contacts {
			out = append(out, toOutput(c))
		}
		fn(out)
	})
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func toOutput(c domain.Contact) contactdto.ContactOutput {
	return contactdto.ContactOutput{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		Name:      c.Name,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
	}
}
