package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// SessionRecorder is the durable side of the timer: it stores finalized
// session records and serves read-consistent snapshots of a date range.
type SessionRecorder interface {
	// Persist stores a finalized record. Storage failures come back as a
	// *domain.RetryableError; the caller's timer state is never affected.
	Persist(ctx context.Context, rec domain.SessionRecord) (domain.SessionRecord, error)
	// FetchRange returns the user's session records and stopwatch blocks
	// whose civil dates fall in [start, end].
	FetchRange(ctx context.Context, userID string, start, end time.Time) (domain.ActivitySnapshot, error)
}

// DateRange is an inclusive range of civil dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

type ActivityService interface {
	GetActivity(ctx context.Context, start, end time.Time) (domain.ActivityWindow, error)
	// GetWindows computes one window per range, concurrently.
	GetWindows(ctx context.Context, ranges []DateRange) ([]domain.ActivityWindow, error)
	// Today returns the current civil date at the bucketing offset.
	Today() time.Time
}

type StopwatchService interface {
	LogBlock(ctx context.Context, b *domain.StopwatchBlock) error
	ListRecent(ctx context.Context, days int) ([]*domain.StopwatchBlock, error)
}

type SessionQueryService interface {
	ListRecent(ctx context.Context, days int) ([]*domain.SessionRecord, error)
	Delete(ctx context.Context, id string) error
}
