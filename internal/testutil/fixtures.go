package testutil

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/google/uuid"
)

// TestUserID is the user every fixture belongs to unless overridden.
const TestUserID = "test-user"

// Session record options
type RecordOption func(*domain.SessionRecord)

func WithMode(m domain.SessionMode) RecordOption {
	return func(r *domain.SessionRecord) {
		r.Mode = m
		if m.IsBreak() && r.PlannedSeconds == 1500 {
			r.PlannedSeconds = 300
		}
	}
}

func WithUser(id string) RecordOption {
	return func(r *domain.SessionRecord) {
		r.UserID = id
	}
}

func WithPlanned(seconds int) RecordOption {
	return func(r *domain.SessionRecord) {
		r.PlannedSeconds = seconds
	}
}

// Stopped finalizes the record as abandoned after actual seconds.
func Stopped(actual int) RecordOption {
	return func(r *domain.SessionRecord) {
		r.ActualSeconds = actual
		r.Completed = false
	}
}

// Unfinalized leaves the record open.
func Unfinalized() RecordOption {
	return func(r *domain.SessionRecord) {
		r.EndedAt = nil
		r.CompletedAt = nil
		r.Completed = false
	}
}

func WithTask(ref string) RecordOption {
	return func(r *domain.SessionRecord) {
		r.TaskRef = ref
	}
}

// NewTestRecord returns a completed work record started at startedAt that
// ran its full planned length. Options adjust it afterwards; the end time
// follows the actual length.
func NewTestRecord(startedAt time.Time, opts ...RecordOption) *domain.SessionRecord {
	r := &domain.SessionRecord{
		ID:             uuid.New().String(),
		UserID:         TestUserID,
		Mode:           domain.ModeWork,
		PlannedSeconds: 1500,
		ActualSeconds:  -1,
		StartedAt:      startedAt.UTC().Truncate(time.Second),
		Completed:      true,
	}
	ended := startedAt
	r.EndedAt = &ended
	for _, opt := range opts {
		opt(r)
	}
	if r.ActualSeconds < 0 {
		r.ActualSeconds = r.PlannedSeconds
	}
	if r.EndedAt != nil {
		end := r.StartedAt.Add(time.Duration(r.ActualSeconds) * time.Second)
		r.EndedAt = &end
		if r.Completed {
			r.CompletedAt = &end
		}
	}
	return r
}

// Stopwatch block options
type BlockOption func(*domain.StopwatchBlock)

func WithNote(note string) BlockOption {
	return func(b *domain.StopwatchBlock) {
		b.Note = note
	}
}

func WithBlockUser(id string) BlockOption {
	return func(b *domain.StopwatchBlock) {
		b.UserID = id
	}
}

func NewTestBlock(startedAt time.Time, seconds int, opts ...BlockOption) *domain.StopwatchBlock {
	b := &domain.StopwatchBlock{
		ID:        uuid.New().String(),
		UserID:    TestUserID,
		StartedAt: startedAt.UTC().Truncate(time.Second),
		Seconds:   seconds,
		CreatedAt: startedAt.UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}
