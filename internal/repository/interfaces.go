package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// SessionRecordRepo stores finalized timer periods.
type SessionRecordRepo interface {
	Create(ctx context.Context, r *domain.SessionRecord) error
	GetByID(ctx context.Context, id string) (*domain.SessionRecord, error)
	// ListBetween returns the user's records started in [from, to), oldest first.
	ListBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.SessionRecord, error)
	// ListRecent returns the user's records started at or after since, newest first.
	ListRecent(ctx context.Context, userID string, since time.Time) ([]*domain.SessionRecord, error)
	Delete(ctx context.Context, id string) error
}

// StopwatchRepo stores free-running time blocks.
type StopwatchRepo interface {
	Create(ctx context.Context, b *domain.StopwatchBlock) error
	ListBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.StopwatchBlock, error)
	ListRecent(ctx context.Context, userID string, since time.Time) ([]*domain.StopwatchBlock, error)
	Delete(ctx context.Context, id string) error
}
