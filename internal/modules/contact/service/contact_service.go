package service

import (
	"context"
	"fmt"
	"strings"

	"zenith/internal/modules/contact/domain"
	contactout "zenith/internal/modules/contact/port/out"
	"zenith/internal/platform/clock"
	apperrors "zenith/internal/platform/errors"
)

type ContactService struct {
	clock clock.Clock
	store contactout.ContactStore
}

func NewContactService(clock clock.Clock, store contactout.ContactStore) *ContactService {
	return &ContactService{clock: clock, store: store}
}

func (s *ContactService) List() []domain.Contact {
	return s.store.Items()
}

func (s *ContactService) Get(id string) (domain.Contact, error) {
	contact, ok := s.store.Find(id)
	if !ok {
		return domain.Contact{}, fmt.Errorf("contact %s: %w", id, apperrors.ErrNotFound)
	}
	return contact, nil
}

// Add writes the contact and returns it stamped with the new id and the local
// time; the stored creation time is assigned by the server.
func (s *ContactService) Add(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	contact.Name = strings.TrimSpace(contact.Name)
	if err := contact.Validate(); err != nil {
		return domain.Contact{}, err
	}
	docID, err := s.store.TryAdd(ctx, contact)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("add contact: %w", err)
	}
	contact.ID = docID
	contact.CreatedAt = s.clock.Now()
	return contact, nil
}

func (s *ContactService) Save(ctx context.Context, contact domain.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	s.store.Update(ctx, contact)
	return nil
}

func (s *ContactService) Delete(ctx context.Context, id string) {
	s.store.Delete(ctx, id)
}

func (s *ContactService) Listen(fn func([]domain.Contact)) func() {
	return s.store.Listen(fn)
}
