package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenith/internal/modules/assistant/domain"
	"zenith/internal/modules/assistant/service"
	"zenith/internal/modules/assistant/usecase"
	apperrors "zenith/internal/platform/errors"
)

type staticData domain.Snapshot

func (s staticData) Snapshot(context.Context) domain.Snapshot { return domain.Snapshot(s) }

type scriptedGenerator struct {
	chunks  []string
	err     error
	prompts []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string, onChunk func(string)) error {
	g.prompts = append(g.prompts, prompt)
	for _, c := range g.chunks {
		onChunk(c)
	}
	return g.err
}

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestAskStreamsAndAccumulates(t *testing.T) {
	t.Parallel()
	gen := &scriptedGenerator{chunks: []string{"You have ", "**one** task."}}
	data := staticData{Tasks: []domain.TaskRecord{{Title: "Ship it", Status: "Todo", Priority: "High"}}}
	uc := usecase.NewInteractor(service.NewAssistantService(data, gen, quietLogger()))

	var seen []string
	out, err := uc.Ask(context.Background(), " What is left? ", func(chunk string) { seen = append(seen, chunk) })
	require.NoError(t, err)
	assert.Equal(t, gen.chunks, seen)
	assert.Equal(t, "You have **one** task.", out.Answer)
	assert.Empty(t, out.Error)
	assert.Equal(t, "What is left?", out.Question)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], `"title": "Ship it"`)
	assert.True(t, strings.HasSuffix(gen.prompts[0], "User question:\nWhat is left?"))
}

func TestAskKeepsPartialTextOnStreamError(t *testing.T) {
	t.Parallel()
	gen := &scriptedGenerator{chunks: []string{"Half an"}, err: errors.New("connection reset")}
	uc := usecase.NewInteractor(service.NewAssistantService(staticData{}, gen, quietLogger()))

	out, err := uc.Ask(context.Background(), "summarise", nil)
	require.NoError(t, err)
	assert.Equal(t, "Half an", out.Answer)
	assert.Equal(t, domain.FailureMessage, out.Error)
}

func TestAskRejectsEmptyQuestionWithoutCallingModel(t *testing.T) {
	t.Parallel()
	gen := &scriptedGenerator{}
	uc := usecase.NewInteractor(service.NewAssistantService(staticData{}, gen, quietLogger()))

	_, err := uc.Ask(context.Background(), "   ", nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Empty(t, gen.prompts)
}

func TestAskWithoutGeneratorIsNotConfigured(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewAssistantService(staticData{}, nil, quietLogger()))

	_, err := uc.Ask(context.Background(), "hello", nil)
	require.ErrorIs(t, err, apperrors.ErrNotConfigured)

	prompt, err := uc.Prompt(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, domain.Persona))
}
