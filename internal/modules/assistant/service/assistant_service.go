package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"zenith/internal/modules/assistant/domain"
	assistantout "zenith/internal/modules/assistant/port/out"
	apperrors "zenith/internal/platform/errors"
)

type AssistantService struct {
	data      assistantout.DataSource
	generator assistantout.Generator
	logger    *slog.Logger
}

// NewAssistantService accepts a nil generator; Ask then reports
// ErrNotConfigured.
func NewAssistantService(data assistantout.DataSource, generator assistantout.Generator, logger *slog.Logger) *AssistantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssistantService{data: data, generator: generator, logger: logger}
}

func (s *AssistantService) Prompt(ctx context.Context, question string) (string, error) {
	question, err := domain.ValidateQuestion(question)
	if err != nil {
		return "", err
	}
	return domain.BuildPrompt(domain.BuildSummary(s.data.Snapshot(ctx)), question)
}

func (s *AssistantService) Ask(ctx context.Context, question string, onChunk func(string)) (domain.Answer, error) {
	prompt, err := s.Prompt(ctx, question)
	if err != nil {
		return domain.Answer{}, err
	}
	if s.generator == nil {
		return domain.Answer{}, fmt.Errorf("assistant: %w", apperrors.ErrNotConfigured)
	}

	var text strings.Builder
	err = s.generator.Generate(ctx, prompt, func(chunk string) {
		text.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	})
	answer := domain.Answer{Text: text.String()}
	if err != nil {
		s.logger.Error("assistant generation failed", "err", err, "partial", len(answer.Text))
		answer.Error = domain.FailureMessage
	}
	return answer, nil
}
