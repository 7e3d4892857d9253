package analytics

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// BuildWindow derives the full ActivityWindow for [start, end] from one
// snapshot: daily buckets, intensity, streaks and totals.
func BuildWindow(snap domain.ActivitySnapshot, start, end, today time.Time, opts Options) (domain.ActivityWindow, error) {
	days, err := Aggregate(snap, start, end, opts)
	if err != nil {
		return domain.ActivityWindow{}, err
	}
	days, tier := ApplyIntensity(days, today, opts.Tuning)
	current, longest := Streaks(days, today, opts.GraceToday)

	w := domain.ActivityWindow{
		StartDate:     domain.NormalizeDate(start),
		EndDate:       domain.NormalizeDate(end),
		Days:          days,
		Tier:          tier,
		CurrentStreak: current,
		LongestStreak: longest,
	}
	for _, d := range days {
		w.TotalSessions += d.SessionCount
		w.TotalMinutes += d.TotalFocusMinutes
	}
	return w, nil
}
