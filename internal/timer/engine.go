// Package timer implements the focus/break cycle state machine and the
// single-goroutine controller that drives it from a clock.
package timer

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/google/uuid"
)

// Engine is the timer state machine. It owns exactly one TimerState and is
// not safe for concurrent use: callers serialize every operation, which the
// Controller does by running it on one goroutine.
//
// Every operation takes the current wall clock and returns the events it
// produced. Operations called in a state where they do not apply are no-ops
// and return no events.
type Engine struct {
	settings domain.TimerSettings
	state    domain.TimerState

	// targetAt is when the remaining time reaches zero (forward mode).
	targetAt time.Time
	// anchorAt is when the elapsed time was zero (reverse mode).
	anchorAt time.Time
	// frozen is the exact remaining (forward) or elapsed (reverse) time
	// captured on Pause. state.Seconds is only its rounded display value.
	frozen time.Duration

	draft      *domain.SessionRecord
	taskRef    string
	completing bool
	autoStart  bool

	newID func() string
}

// EngineOption configures an Engine during construction.
type EngineOption func(*Engine)

// WithIDFunc replaces the session ID generator.
func WithIDFunc(fn func() string) EngineOption {
	return func(e *Engine) {
		e.newID = fn
	}
}

// WithReversed starts the engine in count-up mode.
func WithReversed() EngineOption {
	return func(e *Engine) {
		e.state.Reversed = true
		e.state.Seconds = 0
	}
}

// NewEngine creates an idle engine in Work mode.
func NewEngine(settings domain.TimerSettings, opts ...EngineOption) *Engine {
	if settings.CycleLength < domain.MinCycleLength {
		settings.CycleLength = domain.DefaultTimerSettings().CycleLength
	}
	e := &Engine{
		settings: settings,
		state: domain.TimerState{
			Mode:        domain.ModeWork,
			Seconds:     settings.WorkSeconds,
			CycleLength: settings.CycleLength,
		},
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a copy of the current timer state.
func (e *Engine) State() domain.TimerState {
	return e.state
}

// Total returns the planned length of the current mode in seconds.
func (e *Engine) Total() int {
	return e.settings.DurationFor(e.state.Mode)
}

// AutoStartPending reports whether the last mode switch asked for the next
// period to start on its own.
func (e *Engine) AutoStartPending() bool {
	return e.autoStart
}

// Draft returns the open session record, if a period is running or paused.
func (e *Engine) Draft() (domain.SessionRecord, bool) {
	if e.draft == nil {
		return domain.SessionRecord{}, false
	}
	return *e.draft, true
}

// Start arms a fresh period for the current mode. No-op unless idle.
func (e *Engine) Start(now time.Time) []Event {
	if !e.state.Idle() {
		return nil
	}
	total := e.Total()
	e.autoStart = false
	e.completing = false
	e.state.Running = true
	if e.state.Reversed {
		e.state.Seconds = 0
		e.anchorAt = now
	} else {
		e.state.Seconds = total
		e.targetAt = now.Add(time.Duration(total) * time.Second)
	}
	e.draft = &domain.SessionRecord{
		ID:             e.newID(),
		Mode:           e.state.Mode,
		PlannedSeconds: total,
		StartedAt:      now,
		TaskRef:        e.taskRef,
	}
	return []Event{e.tickEvent()}
}

// Pause freezes the displayed value. No-op unless running.
func (e *Engine) Pause(now time.Time) []Event {
	if !e.state.Running {
		return nil
	}
	if evs := e.Tick(now); !e.state.Running {
		return evs
	}
	if e.state.Reversed {
		e.frozen = now.Sub(e.anchorAt)
	} else {
		e.frozen = e.targetAt.Sub(now)
	}
	e.state.Running = false
	e.state.Paused = true
	return []Event{e.tickEvent()}
}

// Resume continues a paused period from the frozen value. No-op unless paused.
func (e *Engine) Resume(now time.Time) []Event {
	if !e.state.Paused {
		return nil
	}
	e.state.Paused = false
	e.state.Running = true
	if e.state.Reversed {
		e.anchorAt = now.Add(-e.frozen)
	} else {
		e.targetAt = now.Add(e.frozen)
	}
	e.frozen = 0
	return []Event{e.tickEvent()}
}

// Tick recomputes the displayed value from the wall clock instead of
// decrementing it, so late or throttled ticks never accumulate drift.
// In forward mode reaching zero completes the period exactly once.
func (e *Engine) Tick(now time.Time) []Event {
	if !e.state.Running || e.completing {
		return nil
	}
	e.state.Seconds = e.measure(now)
	evs := []Event{e.tickEvent()}
	if !e.state.Reversed && e.state.Seconds == 0 {
		evs = append(evs, e.complete(now)...)
	}
	return evs
}

// Skip moves to the next mode as a natural completion would, including the
// work-cycle increment, but finalizes no record and emits no completion.
func (e *Engine) Skip(now time.Time) []Event {
	e.draft = nil
	return e.advance(true)
}

// Stop ends an open period early and finalizes its record as not completed.
// The mode does not change. No-op while idle.
func (e *Engine) Stop(now time.Time) []Event {
	if e.state.Idle() || e.draft == nil {
		return nil
	}
	var evs []Event
	if e.state.Running {
		evs = e.Tick(now)
		if !e.state.Running {
			return evs
		}
	}
	rec := *e.draft
	_ = rec.Finalize(int(e.elapsed(now)/time.Second), now, false)
	e.clearPeriod()
	return []Event{RecordFinalizedEvent{Record: rec}, e.tickEvent()}
}

// Reset returns the current mode to its fresh value without changing the
// mode or the completed-session count. An open period is discarded.
func (e *Engine) Reset() []Event {
	e.clearPeriod()
	return []Event{e.tickEvent()}
}

// ResetAll returns to an idle Work period with a zeroed cycle and forward counting.
func (e *Engine) ResetAll() []Event {
	e.state.Mode = domain.ModeWork
	e.state.SessionsCompleted = 0
	e.state.Reversed = false
	e.clearPeriod()
	return []Event{e.tickEvent()}
}

// ToggleReverse flips between counting down and counting up. Only permitted
// while idle.
func (e *Engine) ToggleReverse() []Event {
	if !e.state.Idle() {
		return nil
	}
	e.state.Reversed = !e.state.Reversed
	e.state.Seconds = e.fresh()
	return []Event{e.tickEvent()}
}

// SetCycleLength changes how many work periods precede a long break.
// Values below domain.MinCycleLength are ignored.
func (e *Engine) SetCycleLength(n int) []Event {
	if n < domain.MinCycleLength {
		return nil
	}
	e.state.CycleLength = n
	e.settings.CycleLength = n
	return nil
}

// SetTask attaches a task reference to the open period and to later ones.
func (e *Engine) SetTask(ref string) {
	e.taskRef = ref
	if e.draft != nil {
		e.draft.TaskRef = ref
	}
}

// CancelAutoStart drops a pending auto-start request.
func (e *Engine) CancelAutoStart() {
	e.autoStart = false
}

func (e *Engine) complete(now time.Time) []Event {
	e.completing = true
	rec := *e.draft
	_ = rec.Finalize(rec.PlannedSeconds-e.state.Seconds, now, true)
	e.draft = nil

	evs := []Event{
		RecordFinalizedEvent{Record: rec},
		SessionCompleteEvent{SessionID: rec.ID, Mode: rec.Mode, ActualSeconds: rec.ActualSeconds},
	}
	return append(evs, e.advance(false)...)
}

// advance applies the mode-transition rule shared by completion and skip.
func (e *Engine) advance(skipped bool) []Event {
	from := e.state.Mode
	next := domain.ModeWork
	if from == domain.ModeWork {
		e.state.SessionsCompleted++
		next = domain.ModeShortBreak
		if e.state.SessionsCompleted%e.state.CycleLength == 0 {
			next = domain.ModeLongBreak
		}
	}
	e.state.Mode = next
	e.clearPeriod()
	e.autoStart = e.settings.AutoStartInto(next)

	return []Event{
		ModeChangedEvent{
			From:              from,
			To:                next,
			Skipped:           skipped,
			AutoStart:         e.autoStart,
			SessionsCompleted: e.state.SessionsCompleted,
		},
		e.tickEvent(),
	}
}

func (e *Engine) clearPeriod() {
	e.draft = nil
	e.autoStart = false
	e.state.Running = false
	e.state.Paused = false
	e.state.Seconds = e.fresh()
	e.frozen = 0
}

func (e *Engine) fresh() int {
	if e.state.Reversed {
		return 0
	}
	return e.Total()
}

func (e *Engine) measure(now time.Time) int {
	if e.state.Reversed {
		d := now.Sub(e.anchorAt)
		if d <= 0 {
			return 0
		}
		return int(d / time.Second)
	}
	d := e.targetAt.Sub(now)
	if d <= 0 {
		return 0
	}
	// Round up so the display only reads zero once the period is over.
	return int((d + time.Second - 1) / time.Second)
}

// elapsed is the exact time spent running in the open period.
func (e *Engine) elapsed(now time.Time) time.Duration {
	var d time.Duration
	switch {
	case e.state.Reversed && e.state.Paused:
		d = e.frozen
	case e.state.Reversed:
		d = now.Sub(e.anchorAt)
	case e.state.Paused:
		d = time.Duration(e.draft.PlannedSeconds)*time.Second - e.frozen
	default:
		d = time.Duration(e.draft.PlannedSeconds)*time.Second - e.targetAt.Sub(now)
	}
	return max(d, 0)
}

func (e *Engine) tickEvent() TickEvent {
	return TickEvent{
		Mode:    e.state.Mode,
		Seconds: e.state.Seconds,
		Total:   e.Total(),
		Status:  e.state.Status(),
	}
}
