package usecase

import (
	"context"

	"zenith/internal/modules/settings/domain"
	settingsdto "zenith/internal/modules/settings/dto"
	settingsin "zenith/internal/modules/settings/port/in"
	"zenith/internal/modules/settings/service"
	"zenith/internal/platform/clock"
)

type Interactor struct {
	svc   *service.SettingsService
	clock clock.Clock
}

func NewInteractor(svc *service.SettingsService, clk clock.Clock) settingsin.Usecase {
	return &Interactor{svc: svc, clock: clk}
}

func (i *Interactor) Preferences(context.Context) settingsdto.PreferencesOutput {
	return toOutput(i.svc.Preferences())
}

func (i *Interactor) SetTheme(_ context.Context, theme string) (settingsdto.PreferencesOutput, error) {
	t, err := domain.ParseTheme(theme)
	if err != nil {
		return settingsdto.PreferencesOutput{}, err
	}
	prefs, err := i.svc.SetTheme(t)
	return toOutput(prefs), err
}

func (i *Interactor) SetAccent(_ context.Context, accent string) (settingsdto.PreferencesOutput, error) {
	a, err := domain.ParseAccent(accent)
	if err != nil {
		return settingsdto.PreferencesOutput{}, err
	}
	prefs, err := i.svc.SetAccent(a)
	return toOutput(prefs), err
}

func (i *Interactor) Accents(context.Context) []string {
	out := make([]string, 0, len(domain.Accents))
	for _, a := range domain.Accents {
		out = append(out, string(a))
	}
	return out
}

func (i *Interactor) Export(context.Context) (settingsdto.ExportOutput, error) {
	entries, err := i.svc.Export()
	if err != nil {
		return settingsdto.ExportOutput{}, err
	}
	data, err := domain.EncodeBackup(entries)
	if err != nil {
		return settingsdto.ExportOutput{}, err
	}
	return settingsdto.ExportOutput{
		Filename: domain.BackupFilename(i.clock.Now()),
		Data:     data,
		Keys:     len(entries),
	}, nil
}

func (i *Interactor) Import(_ context.Context, data []byte) (settingsdto.ImportOutput, error) {
	entries, skipped, err := domain.DecodeBackup(data)
	if err != nil {
		return settingsdto.ImportOutput{}, err
	}
	if err := i.svc.Import(entries); err != nil {
		return settingsdto.ImportOutput{}, err
	}
	return settingsdto.ImportOutput{Written: len(entries), Skipped: skipped}, nil
}

func (i *Interactor) ClearAll(context.Context) error {
	return i.svc.ClearAll()
}

func toOutput(p domain.Preferences) settingsdto.PreferencesOutput {
	return settingsdto.PreferencesOutput{Theme: string(p.Theme), Accent: string(p.Accent), AccentHex: p.Accent.Hex()}
}
