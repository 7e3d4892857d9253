package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/cadence/internal/cli"
	"github.com/alexanderramin/cadence/internal/config"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/logging"
	"github.com/alexanderramin/cadence/internal/notify"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Initialize(cfg.Log.Debug, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer closeLog()

	// Determine DB path: config or env, else ~/.cadence/cadence.db
	dbPath := cfg.DBPath
	if dbPath == "" {
		if dbPath, err = config.DefaultDBPath(); err != nil {
			return err
		}
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	observer := service.NewSlogUseCaseObserver(logger)
	uow := db.NewSQLiteUnitOfWork(database)
	opts := cfg.AnalyticsOptions()

	recorder := service.NewSessionRecorder(uow, service.RecorderConfig{
		UserID:     cfg.UserID,
		MaxRetries: *cfg.PersistRetries,
		Offset:     opts.Offset,
	}, observer)

	notifiers := notify.Multi{}
	if *cfg.Notify.Bell {
		notifiers = append(notifiers, notify.NewBell(os.Stderr))
	}
	if cfg.Notify.Desktop {
		desktop := notify.NewDesktop(cfg.Notify.AppName)
		defer desktop.Close()
		notifiers = append(notifiers, desktop)
	}

	app := &cli.App{
		Config: &cfg,
		Timer: cli.TimerOptions{
			Settings:       cfg.TimerSettings(),
			TickInterval:   cfg.Timer.TickInterval.Duration,
			AutoStartDelay: cfg.Timer.AutoStartDelay.Duration,
			Reversed:       cfg.Timer.Reverse,
		},
		Recorder: recorder,
		Activity: service.NewActivityService(recorder, service.ActivityConfig{
			UserID:  cfg.UserID,
			Options: opts,
		}, observer),
		Stopwatch: service.NewStopwatchService(repository.NewSQLiteStopwatchRepo(database), cfg.UserID, observer),
		Sessions:  service.NewSessionQueryService(repository.NewSQLiteSessionRecordRepo(database), cfg.UserID),
		Notifier:  notifiers,
		Logger:    logger,
	}

	// Forms and the timer TUI need an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
