package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ActivityConfig configures NewActivityService.
type ActivityConfig struct {
	UserID  string
	Options analytics.Options
	// Now defaults to time.Now.
	Now func() time.Time
}

type activityService struct {
	recorder SessionRecorder
	cfg      ActivityConfig
	observer UseCaseObserver
}

func NewActivityService(recorder SessionRecorder, cfg ActivityConfig, observers ...UseCaseObserver) ActivityService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &activityService{
		recorder: recorder,
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *activityService) Today() time.Time {
	return domain.CivilDate(s.cfg.Now(), s.cfg.Options.Offset)
}

// GetActivity rebuilds the window from a fresh snapshot on every call.
func (s *activityService) GetActivity(ctx context.Context, start, end time.Time) (w domain.ActivityWindow, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"start": start.Format(domain.DateLayout),
		"end":   end.Format(domain.DateLayout),
	}
	defer func() {
		if err == nil {
			fields["total_sessions"] = w.TotalSessions
			fields["current_streak"] = w.CurrentStreak
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "get_activity",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if domain.NormalizeDate(end).Before(domain.NormalizeDate(start)) {
		return domain.ActivityWindow{}, domain.ErrInvalidRange
	}
	snap, err := s.recorder.FetchRange(ctx, s.cfg.UserID, start, end)
	if err != nil {
		return domain.ActivityWindow{}, err
	}
	return analytics.BuildWindow(snap, start, end, s.Today(), s.cfg.Options)
}

func (s *activityService) GetWindows(ctx context.Context, ranges []DateRange) ([]domain.ActivityWindow, error) {
	out := make([]domain.ActivityWindow, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		g.Go(func() error {
			w, err := s.GetActivity(gctx, r.Start, r.End)
			if err != nil {
				return err
			}
			out[i] = w
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// TrailingRange returns the range of n days ending today.
func TrailingRange(today time.Time, n int) DateRange {
	today = domain.NormalizeDate(today)
	return DateRange{Start: today.AddDate(0, 0, -(n - 1)), End: today}
}
