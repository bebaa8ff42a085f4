package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"zenith/internal/bootstrap"
	"zenith/internal/platform/config"
)

// startTimeout bounds the wait for the first snapshot of every collection.
const startTimeout = 15 * time.Second

type rootOptions struct {
	dataDir    string
	configPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	defaultDir, err := config.DefaultDataDir()
	if err != nil {
		defaultDir = ".zenith"
	}

	root := &cobra.Command{
		Use:           "zenith",
		Short:         "Personal productivity workspace for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDir, "directory holding the database and local settings")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <data-dir>/"+config.FileName+")")

	root.AddCommand(
		newTUICmd(opts),
		newServeCmd(opts),
		newTaskCmd(opts),
		newContactCmd(opts),
		newProspectCmd(opts),
		newStageCmd(opts),
		newGoalCmd(opts),
		newRoutineCmd(opts),
		newFinanceCmd(opts),
		newPomodoroCmd(opts),
		newAskCmd(opts),
		newSettingsCmd(opts),
	)
	return root
}

func (o *rootOptions) load() (config.Config, error) {
	return config.Load(o.dataDir, o.configPath)
}

// withApp builds the application, waits for the replicas to be ready, runs
// fn and closes everything.
func withApp(o *rootOptions, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := o.load()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	err = app.Start(startCtx)
	cancel()
	if err != nil {
		_ = app.Close()
		return err
	}
	runErr := fn(ctx, app)
	if err := app.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func newTUICmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the zenith terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(o, bootstrap.RunTUI)
		},
	}
}

func newServeCmd(o *rootOptions) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Share the local database with other zenith processes",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			if listen == "" {
				listen = cfg.Store.Address
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return bootstrap.Serve(ctx, cfg, listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (default store.address)")
	return cmd
}

// optional returns a pointer to value when the flag was set on the command line.
func optional[T any](cmd *cobra.Command, flag string, value T) *T {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
