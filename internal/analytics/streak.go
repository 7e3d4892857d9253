package analytics

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// Streaks returns the current and longest runs of consecutive active days.
//
// The longest run may lie anywhere in days. The current run ends today when
// today is active. With graceToday set, an inactive today falls back to a
// run ending yesterday, since the day is still in progress; a fully elapsed
// inactive day always breaks the run.
func Streaks(days []domain.DailyActivity, today time.Time, graceToday bool) (current, longest int) {
	active := make(map[time.Time]bool, len(days))
	run := 0
	var prev time.Time
	for _, d := range days {
		date := domain.NormalizeDate(d.Date)
		if !d.Active() {
			run = 0
			continue
		}
		active[date] = true
		if run > 0 && domain.DaysBetween(prev, date) == 1 {
			run++
		} else {
			run = 1
		}
		prev = date
		longest = max(longest, run)
	}

	anchor := domain.NormalizeDate(today)
	if !active[anchor] {
		if !graceToday {
			return 0, longest
		}
		anchor = anchor.AddDate(0, 0, -1)
	}
	for active[anchor] {
		current++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return current, longest
}
