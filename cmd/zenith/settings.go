package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zenith/internal/bootstrap"
	settingsdto "zenith/internal/modules/settings/dto"
)

func printPrefs(cmd *cobra.Command, p settingsdto.PreferencesOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\naccent: %s (%s)\n", p.Theme, p.Accent, p.AccentHex)
}

func newSettingsCmd(o *rootOptions) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Local preferences and backups"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show theme and accent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				printPrefs(cmd, app.SettingsCLI.Show(ctx))
				return nil
			})
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "theme <light|dark>",
		Short: "Set the theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.SettingsCLI.Theme(ctx, args[0])
				if err != nil {
					return err
				}
				printPrefs(cmd, p)
				return nil
			})
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "accent <purple|blue|green|orange|pink>",
		Short: "Set the accent color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.SettingsCLI.Accent(ctx, args[0])
				if err != nil {
					return err
				}
				printPrefs(cmd, p)
				return nil
			})
		},
	})

	var outPath string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the local settings backup as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SettingsCLI.Export(ctx)
				if err != nil {
					return err
				}
				path := outPath
				if path == "" {
					path = out.Filename
				}
				if path == "-" {
					_, err = cmd.OutOrStdout().Write(out.Data)
					return err
				}
				if err := os.WriteFile(path, out.Data, 0o644); err != nil {
					return fmt.Errorf("write backup: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d keys written to %s\n", out.Keys, path)
				return nil
			})
		},
	}
	export.Flags().StringVar(&outPath, "out", "", "output file, - for stdout (default zenith-backup-<date>.json)")

	settings.AddCommand(export, &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a settings backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SettingsCLI.Import(ctx, data)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d keys restored, %d skipped\n", out.Written, out.Skipped)
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "clear",
		Short: "Forget every local setting and cached snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SettingsCLI.Clear(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "local settings cleared")
				return nil
			})
		},
	})
	return settings
}
