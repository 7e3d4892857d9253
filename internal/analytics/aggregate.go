package analytics

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// Aggregate buckets snap into one DailyActivity per civil date in
// [start, end], zero-filling dates without records. Records outside the
// range are ignored. Only a range whose end precedes its start is an error.
//
// A day's SessionCount is its completed work sessions plus its stopwatch
// blocks. Focus minutes count every finalized work session, completed or
// stopped early, plus free-running time; breaks never count.
func Aggregate(snap domain.ActivitySnapshot, start, end time.Time, opts Options) ([]domain.DailyActivity, error) {
	start, end = domain.NormalizeDate(start), domain.NormalizeDate(end)
	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}

	n := domain.DaysBetween(start, end) + 1
	days := make([]domain.DailyActivity, n)
	for i := range days {
		days[i].Date = start.AddDate(0, 0, i)
	}
	bucket := func(t time.Time) (*domain.DailyActivity, bool) {
		i := domain.DaysBetween(start, domain.CivilDate(t, opts.Offset))
		if i < 0 || i >= n {
			return nil, false
		}
		return &days[i], true
	}

	for _, rec := range snap.Sessions {
		if rec.Mode != domain.ModeWork || !rec.Finalized() {
			continue
		}
		day, ok := bucket(rec.StartedAt)
		if !ok {
			continue
		}
		day.PomodoroSeconds += rec.ActualSeconds
		if rec.Completed {
			day.PomodoroSessionCount++
			day.SessionCount++
		}
	}

	for _, b := range snap.Blocks {
		if b.Seconds <= 0 {
			continue
		}
		day, ok := bucket(b.StartedAt)
		if !ok {
			continue
		}
		day.FreeRunningSeconds += b.Seconds
		day.SessionCount++
	}

	for i := range days {
		d := &days[i]
		d.TotalFocusMinutes = d.PomodoroSeconds/60 + d.FreeRunningSeconds/60
		d.BaseIntensity = focusBand(d.TotalFocusMinutes, opts.FocusBands)
	}
	return days, nil
}

func focusBand(minutes int, bands []int) int {
	level := 0
	for _, b := range bands {
		if minutes < b {
			break
		}
		level++
	}
	return level
}
