package in

import (
	"context"

	"zenith/internal/modules/settings/dto"
)

type Usecase interface {
	Preferences(ctx context.Context) dto.PreferencesOutput
	SetTheme(ctx context.Context, theme string) (dto.PreferencesOutput, error)
	SetAccent(ctx context.Context, accent string) (dto.PreferencesOutput, error)
	Accents(ctx context.Context) []string
	Export(ctx context.Context) (dto.ExportOutput, error)
	// Import writes nothing unless the whole document parses.
	Import(ctx context.Context, data []byte) (dto.ImportOutput, error)
	ClearAll(ctx context.Context) error
}
