package in

import (
	"context"

	settingsdto "zenith/internal/modules/settings/dto"
	settingsin "zenith/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) settingsdto.PreferencesOutput {
	return h.usecase.Preferences(ctx)
}

func (h CLIHandler) Theme(ctx context.Context, theme string) (settingsdto.PreferencesOutput, error) {
	return h.usecase.SetTheme(ctx, theme)
}

func (h CLIHandler) Accent(ctx context.Context, accent string) (settingsdto.PreferencesOutput, error) {
	return h.usecase.SetAccent(ctx, accent)
}

func (h CLIHandler) Export(ctx context.Context) (settingsdto.ExportOutput, error) {
	return h.usecase.Export(ctx)
}

func (h CLIHandler) Import(ctx context.Context, data []byte) (settingsdto.ImportOutput, error) {
	return h.usecase.Import(ctx, data)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.ClearAll(ctx)
}
