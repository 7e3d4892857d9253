package timer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/notify"
)

const (
	// DefaultTickInterval is how often a running timer refreshes its value.
	DefaultTickInterval = 250 * time.Millisecond
	// DefaultAutoStartDelay is the pause between a mode switch and an
	// automatic start of the next period.
	DefaultAutoStartDelay = 3 * time.Second
)

// Recorder receives finalized session records.
type Recorder interface {
	Persist(ctx context.Context, rec domain.SessionRecord) (domain.SessionRecord, error)
}

// ControllerOptions configures a Controller. Zero values fall back to
// defaults; a nil Recorder or Notifier disables that side effect.
type ControllerOptions struct {
	Clock          Clock
	TickInterval   time.Duration
	AutoStartDelay time.Duration
	Recorder       Recorder
	Notifier       notify.Notifier
	Logger         *slog.Logger

	// OnEvent observes every engine event on the controller goroutine.
	OnEvent func(Event)
	// OnError observes side-effect failures (persist, notify). Timer state
	// is never rolled back because of them.
	OnError func(error)
}

// Controller owns an Engine on a single goroutine. Commands from any
// goroutine are serialized through a channel, and the periodic tick is
// armed only while the engine is running.
type Controller struct {
	engine *Engine
	opts   ControllerOptions

	cmds chan command
	done chan struct{}

	ticker    Ticker
	autoTimer Timer
}

type command struct {
	name  string
	apply func(e *Engine, now time.Time) []Event
	reply chan domain.TimerState
	// passive commands leave a pending auto-start in place.
	passive bool
}

// NewController wraps engine. Call Run to start processing commands.
func NewController(engine *Engine, opts ControllerOptions) *Controller {
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.AutoStartDelay <= 0 {
		opts.AutoStartDelay = DefaultAutoStartDelay
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Noop{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		engine: engine,
		opts:   opts,
		cmds:   make(chan command),
		done:   make(chan struct{}),
	}
}

// Run processes commands and clock signals until ctx is cancelled. The tick
// clock and any pending auto-start timer are released before it returns.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)
	defer c.cancelAutoStart()
	defer c.releaseClock()

	c.opts.Logger.Debug("timer controller started")
	c.dispatch(ctx, []Event{c.engine.tickEvent()})

	for {
		select {
		case <-ctx.Done():
			c.opts.Logger.Debug("timer controller shutting down")
			return nil
		case cmd := <-c.cmds:
			if !cmd.passive {
				c.cancelAutoStart()
			}
			c.opts.Logger.Debug("timer command", "command", cmd.name)
			c.dispatch(ctx, cmd.apply(c.engine, c.opts.Clock.Now()))
			c.syncClock()
			cmd.reply <- c.engine.State()
		case now := <-c.tickC():
			c.dispatch(ctx, c.engine.Tick(now))
			c.syncClock()
		case now := <-c.autoStartC():
			c.autoTimer = nil
			if c.engine.AutoStartPending() {
				c.opts.Logger.Debug("timer auto-start", "mode", c.engine.State().Mode)
				c.dispatch(ctx, c.engine.Start(now))
			}
			c.syncClock()
		}
	}
}

// Done is closed once Run has returned.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) Start() domain.TimerState {
	return c.do("start", func(e *Engine, now time.Time) []Event { return e.Start(now) })
}

func (c *Controller) Pause() domain.TimerState {
	return c.do("pause", func(e *Engine, now time.Time) []Event { return e.Pause(now) })
}

func (c *Controller) Resume() domain.TimerState {
	return c.do("resume", func(e *Engine, now time.Time) []Event { return e.Resume(now) })
}

// Toggle starts, pauses or resumes depending on the current state.
func (c *Controller) Toggle() domain.TimerState {
	return c.do("toggle", func(e *Engine, now time.Time) []Event {
		switch e.State().Status() {
		case domain.StatusRunning:
			return e.Pause(now)
		case domain.StatusPaused:
			return e.Resume(now)
		default:
			return e.Start(now)
		}
	})
}

func (c *Controller) Skip() domain.TimerState {
	return c.do("skip", func(e *Engine, now time.Time) []Event { return e.Skip(now) })
}

func (c *Controller) Stop() domain.TimerState {
	return c.do("stop", func(e *Engine, now time.Time) []Event { return e.Stop(now) })
}

func (c *Controller) Reset() domain.TimerState {
	return c.do("reset", func(e *Engine, _ time.Time) []Event { return e.Reset() })
}

func (c *Controller) ResetAll() domain.TimerState {
	return c.do("reset_all", func(e *Engine, _ time.Time) []Event { return e.ResetAll() })
}

func (c *Controller) ToggleReverse() domain.TimerState {
	return c.do("toggle_reverse", func(e *Engine, _ time.Time) []Event { return e.ToggleReverse() })
}

func (c *Controller) SetCycleLength(n int) domain.TimerState {
	return c.send(command{name: "set_cycle_length", passive: true, apply: func(e *Engine, _ time.Time) []Event {
		return e.SetCycleLength(n)
	}})
}

func (c *Controller) SetTask(ref string) domain.TimerState {
	return c.send(command{name: "set_task", passive: true, apply: func(e *Engine, _ time.Time) []Event {
		e.SetTask(ref)
		return nil
	}})
}

// State returns the current timer state without changing it.
func (c *Controller) State() domain.TimerState {
	return c.send(command{name: "state", passive: true, apply: func(*Engine, time.Time) []Event { return nil }})
}

func (c *Controller) do(name string, apply func(e *Engine, now time.Time) []Event) domain.TimerState {
	return c.send(command{name: name, apply: apply})
}

// send hands a command to the Run goroutine and waits for the resulting
// state. After Run has returned it reports the final state.
func (c *Controller) send(cmd command) domain.TimerState {
	cmd.reply = make(chan domain.TimerState, 1)
	select {
	case c.cmds <- cmd:
	case <-c.done:
		return c.engine.State()
	}
	select {
	case st := <-cmd.reply:
		return st
	case <-c.done:
		return c.engine.State()
	}
}

func (c *Controller) dispatch(ctx context.Context, evs []Event) {
	for _, ev := range evs {
		if c.opts.OnEvent != nil {
			c.opts.OnEvent(ev)
		}
		switch ev := ev.(type) {
		case RecordFinalizedEvent:
			c.persist(ctx, ev.Record)
		case SessionCompleteEvent:
			c.alert(ctx, ev)
		}
	}
}

func (c *Controller) persist(ctx context.Context, rec domain.SessionRecord) {
	if c.opts.Recorder == nil {
		return
	}
	if _, err := c.opts.Recorder.Persist(ctx, rec); err != nil {
		c.opts.Logger.Warn("persisting session record failed",
			"session_id", rec.ID,
			"mode", rec.Mode,
			"retryable", domain.IsRetryable(err),
			"error", err,
		)
		c.fail(fmt.Errorf("persisting session %s: %w", rec.ID, err))
	}
}

func (c *Controller) alert(ctx context.Context, ev SessionCompleteEvent) {
	// Events are dispatched after the engine has advanced, so its mode is
	// already the next one.
	n := notify.Notice{Mode: ev.Mode, Next: c.engine.State().Mode, ActualSeconds: ev.ActualSeconds}
	if err := c.opts.Notifier.Notify(ctx, n); err != nil {
		c.opts.Logger.Warn("sending completion notice failed", "error", err)
		c.fail(fmt.Errorf("notifying completion: %w", err))
	}
}

func (c *Controller) fail(err error) {
	if c.opts.OnError != nil {
		c.opts.OnError(err)
	}
}

// syncClock arms the tick clock while the engine runs and releases it
// otherwise, and does the same for the one-shot auto-start timer.
func (c *Controller) syncClock() {
	st := c.engine.State()
	switch {
	case st.Running && c.ticker == nil:
		c.ticker = c.opts.Clock.NewTicker(c.opts.TickInterval)
		c.opts.Logger.Debug("tick clock armed", "interval", c.opts.TickInterval)
	case !st.Running && c.ticker != nil:
		c.releaseClock()
	}

	switch {
	case c.engine.AutoStartPending() && c.autoTimer == nil:
		c.autoTimer = c.opts.Clock.NewTimer(c.opts.AutoStartDelay)
	case !c.engine.AutoStartPending() && c.autoTimer != nil:
		c.autoTimer.Stop()
		c.autoTimer = nil
	}
}

func (c *Controller) releaseClock() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.ticker = nil
	c.opts.Logger.Debug("tick clock released")
}

func (c *Controller) cancelAutoStart() {
	if c.autoTimer != nil {
		c.autoTimer.Stop()
		c.autoTimer = nil
	}
	c.engine.CancelAutoStart()
}

// tickC returns nil while no ticker is armed; a nil channel never fires.
func (c *Controller) tickC() <-chan time.Time {
	if c.ticker == nil {
		return nil
	}
	return c.ticker.C()
}

func (c *Controller) autoStartC() <-chan time.Time {
	if c.autoTimer == nil {
		return nil
	}
	return c.autoTimer.C()
}
