package out_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	assistantout "zenith/internal/modules/assistant/adapter/out"
	apperrors "zenith/internal/platform/errors"
)

func TestGeminiGeneratorNeedsAPIKey(t *testing.T) {
	t.Parallel()
	_, err := assistantout.NewGeminiGenerator(context.Background(), " ", "gemini-2.5-flash")
	require.ErrorIs(t, err, apperrors.ErrNotConfigured)
}
