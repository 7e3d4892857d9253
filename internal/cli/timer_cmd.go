package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newTimerCmd(app *App) *cobra.Command {
	var headless, reverse bool
	var task string
	var cycle, sessions int

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the focus timer",
		Long: "Run the focus timer. On a terminal this opens the interactive timer;\n" +
			"otherwise (or with --headless) it runs focus periods and prints progress.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.Timer
			if cycle > 0 {
				if cycle < domain.MinCycleLength {
					return fmt.Errorf("--cycle must be at least %d", domain.MinCycleLength)
				}
				opts.Settings.CycleLength = cycle
			}
			opts.Reversed = opts.Reversed || reverse
			if opts.Reversed && headless {
				return fmt.Errorf("--reverse has no end and cannot run headless")
			}

			tui := !headless && app.interactive()
			return runTimer(cmd.Context(), app, opts, task, func(ctx context.Context, ctl timerControl, pump *eventPump) error {
				if tui {
					return runTimerTUI(ctx, ctl, pump, opts.Settings)
				}
				return runHeadless(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), ctl, pump, opts.Settings, sessions)
			})
		},
	}

	cmd.Flags().BoolVar(&headless, "headless", false, "Print progress lines instead of the interactive timer")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Count up instead of down")
	cmd.Flags().StringVar(&task, "task", "", "Task reference attached to recorded sessions")
	cmd.Flags().IntVar(&cycle, "cycle", 0, "Work periods before a long break")
	cmd.Flags().IntVar(&sessions, "sessions", 1, "Headless: exit after this many focus periods (0 runs until interrupted)")

	return cmd
}

// runTimer owns the controller for the duration of one front-end run. The
// controller is torn down only after the front-end returns, so a final Stop
// issued by the front-end is still recorded.
func runTimer(parent context.Context, app *App, opts TimerOptions, task string,
	frontEnd func(ctx context.Context, ctl timerControl, pump *eventPump) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctlCtx, cancel := context.WithCancel(parent)
	defer cancel()

	var engineOpts []timer.EngineOption
	if opts.Reversed {
		engineOpts = append(engineOpts, timer.WithReversed())
	}
	engine := timer.NewEngine(opts.Settings, engineOpts...)

	pump := newEventPump(ctlCtx.Done())
	var recorder timer.Recorder
	if app.Recorder != nil {
		recorder = app.Recorder
	}
	ctl := timer.NewController(engine, timer.ControllerOptions{
		Clock:          app.Clock,
		TickInterval:   opts.TickInterval,
		AutoStartDelay: opts.AutoStartDelay,
		Recorder:       recorder,
		Notifier:       app.Notifier,
		Logger:         app.Logger,
		OnEvent:        pump.event,
		OnError:        pump.fail,
	})

	g, gctx := errgroup.WithContext(ctlCtx)
	g.Go(func() error { return ctl.Run(gctx) })
	g.Go(func() error {
		defer cancel()
		if task != "" {
			ctl.SetTask(task)
		}
		sigCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return frontEnd(sigCtx, ctl, pump)
	})
	return g.Wait()
}

func runTimerTUI(ctx context.Context, ctl timerControl, pump *eventPump, settings domain.TimerSettings) error {
	p := tea.NewProgram(newTimerModel(ctl, pump, settings), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		// Interrupted: record the open period like a quit would.
		if !ctl.State().Idle() {
			stopDraining(ctl, pump)
		}
		return nil
	}
	return err
}

// runHeadless starts a period and keeps the cycle going, printing a line
// per minute and one per completion. It returns after the requested number
// of focus periods, or on interrupt after stopping the open period.
//
// The loop tracks state from events instead of querying the controller,
// which may be waiting for this loop to drain the pump.
func runHeadless(ctx context.Context, out, errOut io.Writer, ctl timerControl, pump *eventPump,
	settings domain.TimerSettings, sessions int) error {
	st := ctl.Start()
	fmt.Fprintln(out, formatter.FormatTimerLine(st, settings.DurationFor(st.Mode)))

	completed, lastActual := 0, 0
	// Ticks arrive several times per second, so one minute value repeats.
	printed := -1
	for {
		select {
		case <-ctx.Done():
			if !st.Idle() {
				stopDraining(ctl, pump)
				fmt.Fprintln(out, formatter.Dim("Stopped. Partial "+st.Mode.Label()+" recorded."))
			}
			return nil

		case msg := <-pump.ch:
			switch m := msg.(type) {
			case timerFailMsg:
				fmt.Fprintln(errOut, formatter.StyleRed.Render("warning: ")+m.err.Error())

			case timerEventMsg:
				switch ev := m.event.(type) {
				case timer.TickEvent:
					st.Mode, st.Seconds = ev.Mode, ev.Seconds
					st.Running = ev.Status == domain.StatusRunning
					st.Paused = ev.Status == domain.StatusPaused
					if st.Running && ev.Seconds%60 == 0 && ev.Seconds != ev.Total && ev.Seconds != 0 && ev.Seconds != printed {
						printed = ev.Seconds
						fmt.Fprintln(out, formatter.FormatTimerLine(st, ev.Total))
					}
				case timer.SessionCompleteEvent:
					lastActual = ev.ActualSeconds
				case timer.ModeChangedEvent:
					st.Mode, st.SessionsCompleted = ev.To, ev.SessionsCompleted
					printed = -1
					if ev.Skipped {
						continue
					}
					// The finished period's record and notice are handled
					// by the time its mode change arrives.
					fmt.Fprintln(out, formatter.FormatCompletion(ev.From, ev.To, lastActual))
					if ev.From == domain.ModeWork {
						completed++
						if sessions > 0 && completed >= sessions {
							return nil
						}
					}
					if !ev.AutoStart {
						st = ctl.Start()
						fmt.Fprintln(out, formatter.FormatTimerLine(st, settings.DurationFor(st.Mode)))
					}
				}
			}
		}
	}
}
