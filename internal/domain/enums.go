package domain

type SessionMode string

const (
	ModeWork       SessionMode = "work"
	ModeShortBreak SessionMode = "short_break"
	ModeLongBreak  SessionMode = "long_break"
)

// ValidSessionModes is the canonical set of accepted session mode strings.
var ValidSessionModes = map[string]bool{
	"work": true, "short_break": true, "long_break": true,
}

// IsBreak reports whether the mode is one of the two break modes.
func (m SessionMode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// Label returns the human-facing name of the mode.
func (m SessionMode) Label() string {
	switch m {
	case ModeWork:
		return "Focus"
	case ModeShortBreak:
		return "Short break"
	case ModeLongBreak:
		return "Long break"
	default:
		return string(m)
	}
}

type TimerStatus string

const (
	StatusIdle    TimerStatus = "idle"
	StatusRunning TimerStatus = "running"
	StatusPaused  TimerStatus = "paused"
)

// ActivityTier is a coarse classification of how active a user is over a
// window. It normalizes intensity scoring.
type ActivityTier string

const (
	TierLow    ActivityTier = "low"
	TierMedium ActivityTier = "medium"
	TierHigh   ActivityTier = "high"
	TierExpert ActivityTier = "expert"
)
