package in

import (
	"context"

	assistantdto "zenith/internal/modules/assistant/dto"
	assistantin "zenith/internal/modules/assistant/port/in"
)

type CLIHandler struct {
	usecase assistantin.Usecase
}

func NewCLIHandler(usecase assistantin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Ask(ctx context.Context, question string, onChunk func(string)) (assistantdto.AskOutput, error) {
	return h.usecase.Ask(ctx, question, onChunk)
}

func (h CLIHandler) Prompt(ctx context.Context, question string) (string, error) {
	return h.usecase.Prompt(ctx, question)
}
