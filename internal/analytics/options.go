// Package analytics turns a snapshot of session records and stopwatch blocks
// into per-day activity, intensity, streaks and a calendar grid. Everything
// here is a pure function of its inputs and safe to call concurrently.
package analytics

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// Options tunes how a window is derived.
type Options struct {
	// Offset is the fixed UTC offset whose midnight separates civil days.
	Offset time.Duration
	// FocusBands are ascending focus-minute thresholds. A day's base
	// intensity is the number of bands its focus minutes reach.
	FocusBands []int
	// GraceToday keeps a streak alive while today has no activity yet.
	GraceToday bool
	Tuning     IntensityTuning
}

func DefaultOptions() Options {
	return Options{
		Offset:     domain.DefaultBucketOffset,
		FocusBands: []int{1, 25, 60, 120},
		GraceToday: true,
		Tuning:     DefaultTuning(),
	}
}
