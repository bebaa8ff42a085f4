package usecase

import (
	"context"

	"zenith/internal/modules/pipeline/domain"
	pipelinedto "zenith/internal/modules/pipeline/dto"
	pipelinein "zenith/internal/modules/pipeline/port/in"
	"zenith/internal/modules/pipeline/service"
)

type Interactor struct {
	svc *service.PipelineService
}

func NewInteractor(svc *service.PipelineService) pipelinein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListProspects(ctx context.Context) []pipelinedto.ProspectOutput {
	return i.outputs(ctx, i.svc.Prospects())
}

func (i *Interactor) GetProspect(ctx context.Context, id string) (pipelinedto.ProspectOutput, error) {
	p, err := i.svc.Prospect(id)
	if err != nil {
		return pipelinedto.ProspectOutput{}, err
	}
	return i.output(ctx, p), nil
}

func (i *Interactor) Promote(ctx context.Context, input pipelinedto.PromoteInput) (string, error) {
	return i.svc.Promote(ctx, domain.Prospect{
		ContactID:    input.ContactID,
		Stage:        input.Stage,
		Notes:        input.Notes,
		FollowUpDate: input.FollowUpDate,
	})
}

func (i *Interactor) UpdateProspect(ctx context.Context, input pipelinedto.UpdateProspectInput) error {
	p, err := i.svc.Prospect(input.ID)
	if err != nil {
		return err
	}
	if input.Stage != nil {
		p.Stage = *input.Stage
	}
	if input.Notes != nil {
		p.Notes = *input.Notes
	}
	if input.FollowUpDate != nil {
		p.FollowUpDate = *input.FollowUpDate
	}
	return i.svc.SaveProspect(ctx, p)
}

func (i *Interactor) MoveProspect(ctx context.Context, id, stage string) error {
	return i.svc.MoveProspect(ctx, id, stage)
}

func (i *Interactor) DeleteProspect(ctx context.Context, id string) error {
	i.svc.DeleteProspect(ctx, id)
	return nil
}

func (i *Interactor) Board(ctx context.Context) []pipelinedto.LaneOutput {
	lanes := i.svc.Board(ctx)
	out := make([]pipelinedto.LaneOutput, 0, len(lanes))
	for _, lane := range lanes {
		lo := pipelinedto.LaneOutput{Stage: lane.Stage}
		for _, card := range lane.Cards {
			lo.Prospects = append(lo.Prospects, cardOutput(card))
		}
		out = append(out, lo)
	}
	return out
}

func (i *Interactor) Stages(_ context.Context) []pipelinedto.StageOutput {
	return stageOutputs(i.svc.Stages())
}

func (i *Interactor) SeedStages(ctx context.Context) (int, error) {
	return i.svc.SeedStages(ctx)
}

func (i *Interactor) AddStage(ctx context.Context, name string) error {
	return i.svc.AddStage(ctx, name)
}

func (i *Interactor) RenameStage(ctx context.Context, oldName, newName string) error {
	return i.svc.RenameStage(ctx, oldName, newName)
}

func (i *Interactor) DeleteStage(ctx context.Context, name string) (pipelinedto.DeleteStageOutput, error) {
	res, err := i.svc.DeleteStage(ctx, name)
	return pipelinedto.DeleteStageOutput{
		Stage:         res.Stage,
		Fallback:      res.Fallback,
		Reassigned:    res.Reassigned,
		StagesDeleted: res.Deleted,
	}, err
}

func (i *Interactor) SubscribeProspects(fn func([]pipelinedto.ProspectOutput)) func() {
	return i.svc.ListenProspects(func(prospects []domain.Prospect) {
		fn(i.outputs(context.Background(), prospects))
	})
}

func (i *Interactor) SubscribeStages(fn func([]pipelinedto.StageOutput)) func() {
	return i.svc.ListenStages(func(stages []domain.Stage) { fn(stageOutputs(stages)) })
}

func (i *Interactor) outputs(ctx context.Context, prospects []domain.Prospect) []pipelinedto.ProspectOutput {
	out := make([]pipelinedto.ProspectOutput, 0, len(prospects))
	for _, p := range prospects {
		out = append(out, i.output(ctx, p))
	}
	return out
}

func (i *Interactor) output(ctx context.Context, p domain.Prospect) pipelinedto.ProspectOutput {
	card := domain.Card{Prospect: p, Orphaned: true}
	if contact, ok := i.svc.Contact(ctx, p.ContactID); ok {
		card.Contact, card.Orphaned = contact, false
	}
	return cardOutput(card)
}

func cardOutput(card domain.Card) pipelinedto.ProspectOutput {
	p := card.Prospect
	return pipelinedto.ProspectOutput{
		ID:           p.ID,
		CreatedAt:    p.CreatedAt,
		ContactID:    p.ContactID,
		ContactName:  card.Contact.Name,
		Company:      card.Contact.Company,
		Orphaned:     card.Orphaned,
		Stage:        p.Stage,
		Notes:        p.Notes,
		FollowUpDate: p.FollowUpDate,
	}
}

func stageOutputs(stages []domain.Stage) []pipelinedto.StageOutput {
	out := make([]pipelinedto.StageOutput, 0, len(stages))
	for _, s := range stages {
		out = append(out, pipelinedto.StageOutput{ID: s.ID, Name: s.Name})
	}
	return out
}
