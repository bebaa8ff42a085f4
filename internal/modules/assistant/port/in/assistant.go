package in

import (
	"context"

	"zenith/internal/modules/assistant/dto"
)

type Usecase interface {
	// Ask streams each chunk to onChunk as it arrives and returns the whole
	// answer once the stream ends.
	Ask(ctx context.Context, question string, onChunk func(string)) (dto.AskOutput, error)
	Prompt(ctx context.Context, question string) (string, error)
}
