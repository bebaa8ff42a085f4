package usecase

import (
	"context"
	"strings"

	assistantdto "zenith/internal/modules/assistant/dto"
	assistantin "zenith/internal/modules/assistant/port/in"
	"zenith/internal/modules/assistant/service"
)

type Interactor struct {
	svc *service.AssistantService
}

func NewInteractor(svc *service.AssistantService) assistantin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Ask(ctx context.Context, question string, onChunk func(string)) (assistantdto.AskOutput, error) {
	answer, err := i.svc.Ask(ctx, question, onChunk)
	if err != nil {
		return assistantdto.AskOutput{}, err
	}
	return assistantdto.AskOutput{
		Question: strings.TrimSpace(question),
		Answer:   answer.Text,
		Error:    answer.Error,
	}, nil
}

func (i *Interactor) Prompt(ctx context.Context, question string) (string, error) {
	return i.svc.Prompt(ctx, question)
}
