package domain

import "time"

// SessionRecord is the durable record of one focus or break period.
// It is created when the period starts and finalized at most once.
type SessionRecord struct {
	ID             string
	UserID         string
	Mode           SessionMode
	PlannedSeconds int
	ActualSeconds  int
	StartedAt      time.Time
	EndedAt        *time.Time
	CompletedAt    *time.Time
	Completed      bool
	TaskRef        string
}

// Finalized reports whether the record has been closed by a completion or a stop.
func (r *SessionRecord) Finalized() bool {
	return r.EndedAt != nil
}

// Finalize closes the record. Only a natural run to zero sets Completed and
// CompletedAt.
func (r *SessionRecord) Finalize(actualSeconds int, at time.Time, completed bool) error {
	if r.Finalized() {
		return ErrAlreadyFinalized
	}
	if actualSeconds < 0 {
		actualSeconds = 0
	}
	ended := at
	r.ActualSeconds = actualSeconds
	r.EndedAt = &ended
	r.Completed = completed
	if completed {
		r.CompletedAt = &ended
	}
	return nil
}

// StopwatchBlock is a span of free-running time recorded outside the
// pomodoro cycle.
type StopwatchBlock struct {
	ID        string
	UserID    string
	StartedAt time.Time
	Seconds   int
	Note      string
	CreatedAt time.Time
}

// ActivitySnapshot is one read-consistent view of a user's records for a range.
type ActivitySnapshot struct {
	Sessions []SessionRecord
	Blocks   []StopwatchBlock
}
