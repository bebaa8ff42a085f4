package service

import (
	"context"
	"fmt"
	"strings"

	"zenith/internal/modules/routine/domain"
	routineout "zenith/internal/modules/routine/port/out"
	apperrors "zenith/internal/platform/errors"
)

type RoutineService struct {
	store        routineout.RoutineStore
	exporter     routineout.CalendarExporter
	compactWidth int
}

// NewRoutineService takes an optional exporter; without one, export reports
// ErrNotConfigured.
func NewRoutineService(store routineout.RoutineStore, exporter routineout.CalendarExporter, compactWidth int) *RoutineService {
	return &RoutineService{store: store, exporter: exporter, compactWidth: compactWidth}
}

func (s *RoutineService) List() []domain.Event {
	return s.store.Items()
}

func (s *RoutineService) Get(id string) (domain.Event, error) {
	event, ok := s.store.Find(id)
	if !ok {
		return domain.Event{}, fmt.Errorf("routine %s: %w", id, apperrors.ErrNotFound)
	}
	return event, nil
}

func (s *RoutineService) Add(ctx context.Context, event domain.Event) (string, error) {
	event.Title = strings.TrimSpace(event.Title)
	if err := event.Validate(); err != nil {
		return "", err
	}
	docID, err := s.store.TryAdd(ctx, event)
	if err != nil {
		return "", fmt.Errorf("add routine: %w", err)
	}
	return docID, nil
}

func (s *RoutineService) Save(ctx context.Context, event domain.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	s.store.Update(ctx, event)
	return nil
}

func (s *RoutineService) Delete(ctx context.Context, id string) {
	s.store.Delete(ctx, id)
}

func (s *RoutineService) Mode(width int) domain.Mode {
	return domain.ModeFor(width, s.compactWidth)
}

func (s *RoutineService) Export(ctx context.Context) (domain.ExportReport, error) {
	if s.exporter == nil {
		return domain.ExportReport{}, fmt.Errorf("calendar export: %w", apperrors.ErrNotConfigured)
	}
	report, err := s.exporter.Export(ctx, s.store.Items())
	if err != nil {
		return report, fmt.Errorf("calendar export: %w", err)
	}
	return report, nil
}

func (s *RoutineService) Listen(fn func([]domain.Event)) func() {
	return s.store.Listen(fn)
}
