package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/google/uuid"
)

type stopwatchService struct {
	blocks   repository.StopwatchRepo
	userID   string
	now      func() time.Time
	observer UseCaseObserver
}

func NewStopwatchService(blocks repository.StopwatchRepo, userID string, observers ...UseCaseObserver) StopwatchService {
	return &stopwatchService{
		blocks:   blocks,
		userID:   userID,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// LogBlock stores a block of free-running time. A block without a start
// time is taken to have ended now.
func (s *stopwatchService) LogBlock(ctx context.Context, b *domain.StopwatchBlock) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "log_stopwatch",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"seconds": b.Seconds},
		})
	}()

	if b.Seconds <= 0 {
		return ErrInvalidBlock
	}
	now := s.now().UTC()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.UserID == "" {
		b.UserID = s.userID
	}
	if b.StartedAt.IsZero() {
		b.StartedAt = now.Add(-time.Duration(b.Seconds) * time.Second)
	}
	b.CreatedAt = now
	return s.blocks.Create(ctx, b)
}

func (s *stopwatchService) ListRecent(ctx context.Context, days int) ([]*domain.StopwatchBlock, error) {
	return s.blocks.ListRecent(ctx, s.userID, s.now().AddDate(0, 0, -days))
}
