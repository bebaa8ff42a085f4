package in

import (
	"context"

	"zenith/internal/modules/pipeline/dto"
)

type Usecase interface {
	ListProspects(ctx context.Context) []dto.ProspectOutput
	GetProspect(ctx context.Context, id string) (dto.ProspectOutput, error)
	Promote(ctx context.Context, input dto.PromoteInput) (string, error)
	UpdateProspect(ctx context.Context, input dto.UpdateProspectInput) error
	MoveProspect(ctx context.Context, id, stage string) error
	DeleteProspect(ctx context.Context, id string) error
	Board(ctx context.Context) []dto.LaneOutput

	Stages(ctx context.Context) []dto.StageOutput
	SeedStages(ctx context.Context) (int, error)
	AddStage(ctx context.Context, name string) error
	RenameStage(ctx context.Context, oldName, newName string) error
	DeleteStage(ctx context.Context, name string) (dto.DeleteStageOutput, error)

	SubscribeProspects(fn func([]dto.ProspectOutput)) func()
	SubscribeStages(fn func([]dto.StageOutput)) func()
}
