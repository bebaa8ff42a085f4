package usecase

import (
	"context"
	"fmt"
	"slices"

	"zenith/internal/modules/routine/domain"
	routinedto "zenith/internal/modules/routine/dto"
	routinein "zenith/internal/modules/routine/port/in"
	"zenith/internal/modules/routine/service"
	apperrors "zenith/internal/platform/errors"
)

type Interactor struct {
	svc *service.RoutineService
}

func NewInteractor(svc *service.RoutineService) routinein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(_ context.Context) []routinedto.RoutineOutput {
	return toOutputs(i.svc.List())
}

func (i *Interactor) Get(_ context.Context, id string) (routinedto.RoutineOutput, error) {
	event, err := i.svc.Get(id)
	if err != nil {
		return routinedto.RoutineOutput{}, err
	}
	return toOutput(event), nil
}

func (i *Interactor) Add(ctx context.Context, input routinedto.RoutineInput) (string, error) {
	color, err := domain.ParseColor(input.Color)
	if err != nil {
		return "", err
	}
	return i.svc.Add(ctx, domain.Event{
		Title:     input.Title,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Days:      normalizeDays(input.Days),
		Color:     color,
	})
}

func (i *Interactor) Update(ctx context.Context, input routinedto.UpdateInput) error {
	event, err := i.svc.Get(input.ID)
	if err != nil {
		return err
	}
	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.StartTime != nil {
		event.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = *input.EndTime
	}
	if input.Days != nil {
		event.Days = normalizeDays(*input.Days)
	}
	if input.Color != nil {
		color, err := domain.ParseColor(*input.Color)
		if err != nil {
			return err
		}
		event.Color = color
	}
	return i.svc.Save(ctx, event)
}

func (i *Interactor) ParseDays(value string) ([]int, error) {
	return domain.ParseDays(value)
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	i.svc.Delete(ctx, id)
	return nil
}

func (i *Interactor) Calendar(_ context.Context, query routinedto.CalendarQuery) (routinedto.CalendarOutput, error) {
	mode := domain.Mode(query.Mode)
	switch mode {
	case "":
		mode = i.svc.Mode(query.Width)
	case domain.ModeWeek, domain.ModeDay:
	default:
		return routinedto.CalendarOutput{}, fmt.Errorf("%w: unknown calendar mode %q", apperrors.ErrInvalidInput, query.Mode)
	}
	unit := query.Unit
	if unit <= 0 {
		unit = 1
	}
	view := domain.View{Mode: mode, Date: query.Date}
	days := view.Days()
	out := routinedto.CalendarOutput{
		Mode:      string(mode),
		StartHour: domain.GridStartHour,
		Rows:      domain.GridRows,
		Days:      make([]routinedto.CalendarDay, len(days)),
	}
	for idx, day := range days {
		out.Days[idx].Date = day
	}
	for _, event := range i.svc.List() {
		top, height := domain.Place(event, unit)
		for _, col := range domain.Columns(event, view) {
			out.Days[col].Events = append(out.Days[col].Events, routinedto.PlacedEvent{
				RoutineOutput: toOutput(event),
				Top:           top,
				Height:        height,
			})
		}
	}
	for idx := range out.Days {
		slices.SortStableFunc(out.Days[idx].Events, func(a, b routinedto.PlacedEvent) int {
			switch {
			case a.Top < b.Top:
				return -1
			case a.Top > b.Top:
				return 1
			}
			return 0
		})
	}
	return out, nil
}

func (i *Interactor) ExportGoogleCalendar(ctx context.Context) (routinedto.ExportOutput, error) {
	report, err := i.svc.Export(ctx)
	return routinedto.ExportOutput{Created: report.Created, Updated: report.Updated}, err
}

func (i *Interactor) Subscribe(fn func([]routinedto.RoutineOutput)) func() {
	return i.svc.Listen(func(events []domain.Event) { fn(toOutputs(events)) })
}

func normalizeDays(days []int) []int {
	out := slices.Clone(days)
	slices.Sort(out)
	return slices.Compact(out)
}

func toOutputs(events []domain.Event) []routinedto.RoutineOutput {
	out := make([]routinedto.RoutineOutput, 0, len(events))
	for _, e := range events {
		out = append(out, toOutput(e))
	}
	return out
}

func toOutput(e domain.Event) routinedto.RoutineOutput {
	return routinedto.RoutineOutput{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		Title:     e.Title,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Days:      e.Days,
		Color:     string(e.Color),
		ColorName: e.Color.Name(),
	}
}
