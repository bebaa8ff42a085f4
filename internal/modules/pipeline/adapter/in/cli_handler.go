package in

import (
	"context"

	pipelinedto "zenith/internal/modules/pipeline/dto"
	pipelinein "zenith/internal/modules/pipeline/port/in"
)

type CLIHandler struct {
	usecase pipelinein.Usecase
}

func NewCLIHandler(usecase pipelinein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListProspects(ctx context.Context) []pipelinedto.ProspectOutput {
	return h.usecase.ListProspects(ctx)
}

func (h CLIHandler) GetProspect(ctx context.Context, id string) (pipelinedto.ProspectOutput, error) {
	return h.usecase.GetProspect(ctx, id)
}

func (h CLIHandler) Promote(ctx context.Context, contactID, stage, notes, followUp string) (string, error) {
	return h.usecase.Promote(ctx, pipelinedto.PromoteInput{ContactID: contactID, Stage: stage, Notes: notes, FollowUpDate: followUp})
}

func (h CLIHandler) UpdateProspect(ctx context.Context, input pipelinedto.UpdateProspectInput) error {
	return h.usecase.UpdateProspect(ctx, input)
}

func (h CLIHandler) MoveProspect(ctx context.Context, id, stage string) error {
	return h.usecase.MoveProspect(ctx, id, stage)
}

func (h CLIHandler) DeleteProspect(ctx context.Context, id string) error {
	return h.usecase.DeleteProspect(ctx, id)
}

func (h CLIHandler) Board(ctx context.Context) []pipelinedto.LaneOutput {
	return h.usecase.Board(ctx)
}

func (h CLIHandler) Stages(ctx context.Context) []pipelinedto.StageOutput {
	return h.usecase.Stages(ctx)
}

func (h CLIHandler) SeedStages(ctx context.Context) (int, error) {
	return h.usecase.SeedStages(ctx)
}

func (h CLIHandler) AddStage(ctx context.Context, name string) error {
	return h.usecase.AddStage(ctx, name)
}

func (h CLIHandler) RenameStage(ctx context.Context, oldName, newName string) error {
	return h.usecase.RenameStage(ctx, oldName, newName)
}

func (h CLIHandler) DeleteStage(ctx context.Context, name string) (pipelinedto.DeleteStageOutput, error) {
	return h.usecase.DeleteStage(ctx, name)
}

func (h CLIHandler) SubscribeProspects(fn func([]pipelinedto.ProspectOutput)) func() {
	return h.usecase.SubscribeProspects(fn)
}

func (h CLIHandler) SubscribeStages(fn func([]pipelinedto.StageOutput)) func() {
	return h.usecase.SubscribeStages(fn)
}
