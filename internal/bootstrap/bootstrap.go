package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	assistantinadapter "zenith/internal/modules/assistant/adapter/in"
	assistantoutadapter "zenith/internal/modules/assistant/adapter/out"
	assistantout "zenith/internal/modules/assistant/port/out"
	assistantservice "zenith/internal/modules/assistant/service"
	assistantusecase "zenith/internal/modules/assistant/usecase"
	contactinadapter "zenith/internal/modules/contact/adapter/in"
	contactoutadapter "zenith/internal/modules/contact/adapter/out"
	contactservice "zenith/internal/modules/contact/service"
	contactusecase "zenith/internal/modules/contact/usecase"
	financeinadapter "zenith/internal/modules/finance/adapter/in"
	financeoutadapter "zenith/internal/modules/finance/adapter/out"
	financeservice "zenith/internal/modules/finance/service"
	financeusecase "zenith/internal/modules/finance/usecase"
	goalinadapter "zenith/internal/modules/goal/adapter/in"
	goaloutadapter "zenith/internal/modules/goal/adapter/out"
	goalservice "zenith/internal/modules/goal/service"
	goalusecase "zenith/internal/modules/goal/usecase"
	pipelineinadapter "zenith/internal/modules/pipeline/adapter/in"
	pipelineoutadapter "zenith/internal/modules/pipeline/adapter/out"
	pipelineservice "zenith/internal/modules/pipeline/service"
	pipelineusecase "zenith/internal/modules/pipeline/usecase"
	pomodoroinadapter "zenith/internal/modules/pomodoro/adapter/in"
	pomodorooutadapter "zenith/internal/modules/pomodoro/adapter/out"
	pomodoroservice "zenith/internal/modules/pomodoro/service"
	pomodorousecase "zenith/internal/modules/pomodoro/usecase"
	routineinadapter "zenith/internal/modules/routine/adapter/in"
	routineoutadapter "zenith/internal/modules/routine/adapter/out"
	routineout "zenith/internal/modules/routine/port/out"
	routineservice "zenith/internal/modules/routine/service"
	routineusecase "zenith/internal/modules/routine/usecase"
	settingsinadapter "zenith/internal/modules/settings/adapter/in"
	settingsoutadapter "zenith/internal/modules/settings/adapter/out"
	settingsservice "zenith/internal/modules/settings/service"
	settingsusecase "zenith/internal/modules/settings/usecase"
	taskinadapter "zenith/internal/modules/task/adapter/in"
	taskoutadapter "zenith/internal/modules/task/adapter/out"
	taskservice "zenith/internal/modules/task/service"
	taskusecase "zenith/internal/modules/task/usecase"
	"zenith/internal/platform/clock"
	"zenith/internal/platform/config"
	"zenith/internal/platform/docstore"
	"zenith/internal/platform/docstore/remote"
	apperrors "zenith/internal/platform/errors"
	"zenith/internal/platform/googleauth"
	"zenith/internal/platform/id"
	"zenith/internal/platform/localstore"
	"zenith/internal/platform/logging"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	TaskCLI      taskinadapter.CLIHandler
	ContactCLI   contactinadapter.CLIHandler
	PipelineCLI  pipelineinadapter.CLIHandler
	GoalCLI      goalinadapter.CLIHandler
	RoutineCLI   routineinadapter.CLIHandler
	FinanceCLI   financeinadapter.CLIHandler
	PomodoroCLI  pomodoroinadapter.CLIHandler
	AssistantCLI assistantinadapter.CLIHandler
	SettingsCLI  settingsinadapter.CLIHandler

	store   docstore.Store
	local   *localstore.Bolt
	mirrors []mirror
	runner  *pomodoroservice.Runner
}

// mirror is a live collection replica.
type mirror interface {
	Start(ctx context.Context) error
	WaitReady(ctx context.Context) error
	Stop()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	clk := clock.SystemClock{}

	local, err := localstore.Open(cfg.LocalStorage.Path)
	if err != nil {
		return nil, err
	}
	store, err := openStore(cfg, clk)
	if err != nil {
		_ = local.Close()
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		_ = store.Close()
		_ = local.Close()
		return nil, fmt.Errorf("calendar timezone: %w", err)
	}

	tasks := taskoutadapter.NewTaskCollection(store, local, logger)
	contacts := contactoutadapter.NewContactCollection(store, local, logger)
	prospects := pipelineoutadapter.NewProspectCollection(store, local, logger)
	stages := pipelineoutadapter.NewStageCollection(store, local, logger)
	goals := goaloutadapter.NewGoalCollection(store, local, logger)
	routines := routineoutadapter.NewRoutineCollection(store, local, logger)
	transactions := financeoutadapter.NewTransactionCollection(store, local, logger)
	history := pomodorooutadapter.NewHistoryCollection(store, local, logger)

	taskUC := taskusecase.NewInteractor(taskservice.NewTaskService(tasks))
	contactUC := contactusecase.NewInteractor(contactservice.NewContactService(clk, contacts))
	pipelineUC := pipelineusecase.NewInteractor(pipelineservice.NewPipelineService(
		prospects,
		stages,
		pipelineoutadapter.NewContactDirectory(contactUC),
	))
	goalUC := goalusecase.NewInteractor(goalservice.NewGoalService(goals, goaloutadapter.NewTaskLookup(taskUC)))
	routineUC := routineusecase.NewInteractor(routineservice.NewRoutineService(
		routines,
		calendarExporter(cfg, loc, clk, logger),
		cfg.Calendar.CompactWidth,
	))
	financeUC := financeusecase.NewInteractor(financeservice.NewFinanceService(transactions))

	taskGateway := pomodorooutadapter.NewTaskGateway(taskUC)
	alarm := pomodorooutadapter.NewAlarm(cfg.Alarm.Enabled, pomodorooutadapter.PlayerOptions{
		Command:  cfg.Alarm.Player,
		AssetURL: cfg.Alarm.AssetURL,
		CacheDir: cfg.AlarmCacheDir(),
		Volume:   cfg.Alarm.Volume,
		Logger:   logger,
	}, os.Stdout)
	runner := pomodoroservice.NewRunner(clk, history, taskGateway, alarm, logger)
	pomodoroUC := pomodorousecase.NewInteractor(runner, pomodoroservice.NewHistoryService(history), taskGateway, clk)

	assistantUC := assistantusecase.NewInteractor(assistantservice.NewAssistantService(
		assistantoutadapter.NewDataSource(assistantoutadapter.Workspace{
			Tasks:    taskUC,
			Goals:    goalUC,
			Finance:  financeUC,
			Pipeline: pipelineUC,
			Contacts: contactUC,
		}),
		generator(ctx, cfg, logger),
		logger,
	))

	settingsSvc, err := settingsservice.NewSettingsService(settingsoutadapter.NewLocalStore(local))
	if err != nil {
		_ = store.Close()
		_ = local.Close()
		return nil, err
	}

	return &App{
		Config:       cfg,
		Logger:       logger,
		TaskCLI:      taskinadapter.NewCLIHandler(taskUC),
		ContactCLI:   contactinadapter.NewCLIHandler(contactUC),
		PipelineCLI:  pipelineinadapter.NewCLIHandler(pipelineUC),
		GoalCLI:      goalinadapter.NewCLIHandler(goalUC),
		RoutineCLI:   routineinadapter.NewCLIHandler(routineUC),
		FinanceCLI:   financeinadapter.NewCLIHandler(financeUC),
		PomodoroCLI:  pomodoroinadapter.NewCLIHandler(pomodoroUC),
		AssistantCLI: assistantinadapter.NewCLIHandler(assistantUC),
		SettingsCLI:  settingsinadapter.NewCLIHandler(settingsusecase.NewInteractor(settingsSvc, clk)),
		store:        store,
		local:        local,
		mirrors:      []mirror{tasks, contacts, prospects, stages, goals, routines, transactions, history},
		runner:       runner,
	}, nil
}

// Start subscribes every collection and waits for the first snapshots.
func (a *App) Start(ctx context.Context) error {
	for _, m := range a.mirrors {
		if err := m.Start(ctx); err != nil {
			return fmt.Errorf("start collection: %w", err)
		}
	}
	for _, m := range a.mirrors {
		if err := m.WaitReady(ctx); err != nil {
			return fmt.Errorf("wait for collection: %w", err)
		}
	}
	return nil
}

func (a *App) Close() error {
	for _, m := range a.mirrors {
		m.Stop()
	}
	a.runner.WaitAlarms()
	return errors.Join(a.store.Close(), a.local.Close())
}

// Serve exposes the local document store to other zenith processes.
func Serve(ctx context.Context, cfg config.Config, address string) error {
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	store, err := docstore.OpenSQLite(cfg.Store.DBPath, clock.SystemClock{}, id.UUID{})
	if err != nil {
		return err
	}
	defer store.Close()

	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", address, err)
	}
	logger.Info("document store listening", "address", lis.Addr().String(), "db", cfg.Store.DBPath)
	return remote.NewServer(store, logger).Serve(ctx, lis)
}

func openStore(cfg config.Config, clk clock.Clock) (docstore.Store, error) {
	if cfg.Store.Backend == config.BackendRemote {
		client, err := remote.Dial(cfg.Store.Address)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	store, err := docstore.OpenSQLite(cfg.Store.DBPath, clk, id.UUID{})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func calendarExporter(cfg config.Config, loc *time.Location, clk clock.Clock, logger *slog.Logger) routineout.CalendarExporter {
	if _, err := os.Stat(cfg.Calendar.CredentialsPath); err != nil {
		logger.Debug("google calendar export disabled", "credentials", cfg.Calendar.CredentialsPath)
		return nil
	}
	return routineoutadapter.NewLazyGoogleCalendar(googleauth.Options{
		CredentialsPath: cfg.Calendar.CredentialsPath,
		TokenPath:       cfg.Calendar.TokenPath,
		Prompt:          os.Stderr,
		Logger:          logger,
	}, cfg.Calendar.GoogleCalendarID, loc, clk, logger)
}

func generator(ctx context.Context, cfg config.Config, logger *slog.Logger) assistantout.Generator {
	var (
		gen assistantout.Generator
		err error
	)
	switch cfg.Assistant.Provider {
	case config.ProviderPlugin:
		gen, err = assistantoutadapter.NewPluginGenerator(cfg.Assistant.PluginBinary, cfg.Assistant.Model, logger.Enabled(ctx, slog.LevelDebug))
	default:
		gen, err = assistantoutadapter.NewGeminiGenerator(ctx, os.Getenv(cfg.Assistant.APIKeyEnv), cfg.Assistant.Model)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotConfigured) {
			logger.Debug("assistant disabled", "provider", cfg.Assistant.Provider, "err", err)
		} else {
			logger.Warn("assistant unavailable", "provider", cfg.Assistant.Provider, "err", err)
		}
		return nil
	}
	return gen
}
