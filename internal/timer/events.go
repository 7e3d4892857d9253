package timer

import "github.com/alexanderramin/cadence/internal/domain"

// Event is something the engine reports back to its owner after a command
// or a tick.
type Event interface {
	eventName() string
}

// TickEvent carries the value currently shown by the timer: remaining
// seconds in forward mode, elapsed seconds in reverse mode.
type TickEvent struct {
	Mode    domain.SessionMode
	Seconds int
	Total   int
	Status  domain.TimerStatus
}

// SessionCompleteEvent fires once per period that ran down to zero.
type SessionCompleteEvent struct {
	SessionID     string
	Mode          domain.SessionMode
	ActualSeconds int
}

// RecordFinalizedEvent hands a closed session record to the recorder.
type RecordFinalizedEvent struct {
	Record domain.SessionRecord
}

// ModeChangedEvent reports a cycle transition, natural or skipped.
type ModeChangedEvent struct {
	From              domain.SessionMode
	To                domain.SessionMode
	Skipped           bool
	AutoStart         bool
	SessionsCompleted int
}

func (TickEvent) eventName() string            { return "tick" }
func (SessionCompleteEvent) eventName() string { return "session_complete" }
func (RecordFinalizedEvent) eventName() string { return "record_finalized" }
func (ModeChangedEvent) eventName() string     { return "mode_changed" }
