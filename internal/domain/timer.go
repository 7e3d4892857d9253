package domain

// MinCycleLength is the smallest accepted number of work sessions per long break.
const MinCycleLength = 2

// TimerSettings holds the durations and chaining flags one timer runs with.
type TimerSettings struct {
	WorkSeconds       int
	ShortBreakSeconds int
	LongBreakSeconds  int
	CycleLength       int
	AutoStartBreaks   bool
	AutoStartWork     bool
}

func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		WorkSeconds:       25 * 60,
		ShortBreakSeconds: 5 * 60,
		LongBreakSeconds:  15 * 60,
		CycleLength:       4,
	}
}

// DurationFor returns the planned length in seconds of a fresh period in mode m.
func (s TimerSettings) DurationFor(m SessionMode) int {
	switch m {
	case ModeShortBreak:
		return s.ShortBreakSeconds
	case ModeLongBreak:
		return s.LongBreakSeconds
	default:
		return s.WorkSeconds
	}
}

// AutoStartInto reports whether a transition into mode m should start the
// timer on its own.
func (s TimerSettings) AutoStartInto(m SessionMode) bool {
	if m.IsBreak() {
		return s.AutoStartBreaks
	}
	return s.AutoStartWork
}

// TimerState is the observable state of one timer. Seconds holds the
// remaining time in forward mode and the elapsed time in reverse mode.
type TimerState struct {
	Mode              SessionMode
	Seconds           int
	Running           bool
	Paused            bool
	Reversed          bool
	SessionsCompleted int
	CycleLength       int
}

func (s TimerState) Status() TimerStatus {
	switch {
	case s.Running:
		return StatusRunning
	case s.Paused:
		return StatusPaused
	default:
		return StatusIdle
	}
}

func (s TimerState) Idle() bool {
	return !s.Running && !s.Paused
}
