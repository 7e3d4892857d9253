package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

// RecorderConfig configures NewSessionRecorder.
type RecorderConfig struct {
	// UserID is stamped on records that arrive without one.
	UserID string
	// MaxRetries is the number of extra persist attempts after a storage failure.
	MaxRetries int
	// Offset is the civil-day boundary used to turn dates into instants.
	Offset time.Duration
}

type sessionRecorder struct {
	uow      db.UnitOfWork
	cfg      RecorderConfig
	observer UseCaseObserver
}

func NewSessionRecorder(uow db.UnitOfWork, cfg RecorderConfig, observers ...UseCaseObserver) SessionRecorder {
	return &sessionRecorder{
		uow:      uow,
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sessionRecorder) Persist(ctx context.Context, rec domain.SessionRecord) (_ domain.SessionRecord, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"session_id": rec.ID,
		"mode":       string(rec.Mode),
		"completed":  rec.Completed,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "persist_session",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if !rec.Finalized() {
		return domain.SessionRecord{}, domain.ErrNotFinalized
	}
	if rec.UserID == "" {
		rec.UserID = s.cfg.UserID
	}

	var lastErr error
	attempts := 1 + s.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		fields["attempts"] = i + 1
		lastErr = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteSessionRecordRepo(tx).Create(ctx, &rec)
		})
		if lastErr == nil {
			return rec, nil
		}

		// Retrying cannot fix these.
		if errors.Is(lastErr, repository.ErrAlreadyExists) || errors.Is(lastErr, domain.ErrNotFinalized) {
			return domain.SessionRecord{}, lastErr
		}
		if ctx.Err() != nil {
			break
		}
	}

	return domain.SessionRecord{}, &domain.RetryableError{
		Err: fmt.Errorf("%w: %w", ErrRetryExhausted, lastErr),
	}
}

func (s *sessionRecorder) FetchRange(ctx context.Context, userID string, start, end time.Time) (domain.ActivitySnapshot, error) {
	start, end = domain.NormalizeDate(start), domain.NormalizeDate(end)
	if end.Before(start) {
		return domain.ActivitySnapshot{}, domain.ErrInvalidRange
	}
	from := domain.DayStart(start, s.cfg.Offset)
	to := domain.DayStart(end.AddDate(0, 0, 1), s.cfg.Offset)

	var snap domain.ActivitySnapshot
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		records, err := repository.NewSQLiteSessionRecordRepo(tx).ListBetween(ctx, userID, from, to)
		if err != nil {
			return err
		}
		blocks, err := repository.NewSQLiteStopwatchRepo(tx).ListBetween(ctx, userID, from, to)
		if err != nil {
			return err
		}

		snap.Sessions = make([]domain.SessionRecord, len(records))
		for i, r := range records {
			snap.Sessions[i] = *r
		}
		snap.Blocks = make([]domain.StopwatchBlock, len(blocks))
		for i, b := range blocks {
			snap.Blocks[i] = *b
		}
		return nil
	})
	if err != nil {
		return domain.ActivitySnapshot{}, fmt.Errorf("fetching activity range: %w", err)
	}
	return snap, nil
}
