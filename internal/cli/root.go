package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/cadence/internal/config"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/notify"
	"github.com/alexanderramin/cadence/internal/service"
	"github.com/alexanderramin/cadence/internal/timer"
	"github.com/spf13/cobra"
)

// TimerOptions are the timer settings a `cadence timer` run starts from.
type TimerOptions struct {
	Settings       domain.TimerSettings
	TickInterval   time.Duration
	AutoStartDelay time.Duration
	Reversed       bool
}

// App holds the services and settings CLI commands run against.
type App struct {
	Config *config.Config
	Timer  TimerOptions

	Recorder  service.SessionRecorder
	Activity  service.ActivityService
	Stopwatch service.StopwatchService
	Sessions  service.SessionQueryService

	Notifier notify.Notifier
	Logger   *slog.Logger
	// Clock drives the timer controller; nil means the system clock.
	Clock timer.Clock
	// Now is the wall clock for listings; nil means time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. Forms and the TUI
	// are only used when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "cadence" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cadence",
		Short:         "Focus timer with an activity heatmap",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTimerCmd(app),
		newActivityCmd(app),
		newStatsCmd(app),
		newSessionCmd(app),
		newStopwatchCmd(app),
		newConfigCmd(app),
	)

	return root
}
