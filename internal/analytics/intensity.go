package analytics

import (
	"math"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// TierThreshold qualifies a window for Tier when its average sessions per
// day or its peak daily count reaches the given minimum.
type TierThreshold struct {
	Tier       domain.ActivityTier
	MinAverage float64
	MinPeak    int
}

// IntensityTuning holds the heuristic constants of the intensity model.
type IntensityTuning struct {
	// Thresholds are checked in order; the first match wins, otherwise the
	// window is TierLow.
	Thresholds      []TierThreshold
	TierMultipliers map[domain.ActivityTier]float64
	RatioWeight     float64
	BaseWeight      float64
	RecencyBonus    int
	RecentDays      int
}

func DefaultTuning() IntensityTuning {
	return IntensityTuning{
		Thresholds: []TierThreshold{
			{Tier: domain.TierExpert, MinAverage: 5, MinPeak: 10},
			{Tier: domain.TierHigh, MinAverage: 3, MinPeak: 6},
			{Tier: domain.TierMedium, MinAverage: 1.5, MinPeak: 3},
		},
		TierMultipliers: map[domain.ActivityTier]float64{
			domain.TierLow:    1.2,
			domain.TierMedium: 1.0,
			domain.TierHigh:   0.8,
			domain.TierExpert: 0.6,
		},
		RatioWeight:  3,
		BaseWeight:   0.7,
		RecencyBonus: 1,
		RecentDays:   7,
	}
}

// Multiplier returns the scaling applied to a tier, 1 when unset.
func (t IntensityTuning) Multiplier(tier domain.ActivityTier) float64 {
	if m, ok := t.TierMultipliers[tier]; ok {
		return m
	}
	return 1
}

// ClassifyTier derives the window's activity tier from its average sessions
// per day and its peak daily count.
func ClassifyTier(days []domain.DailyActivity, tuning IntensityTuning) domain.ActivityTier {
	if len(days) == 0 {
		return domain.TierLow
	}
	total, peak := 0, 0
	for _, d := range days {
		total += d.SessionCount
		peak = max(peak, d.SessionCount)
	}
	avg := float64(total) / float64(len(days))
	for _, th := range tuning.Thresholds {
		if avg >= th.MinAverage || peak >= th.MinPeak {
			return th.Tier
		}
	}
	return domain.TierLow
}

// Score computes one day's intensity. The recency bonus is added after the
// first clamp and the result clamped again, so it is always in
// [0, domain.MaxIntensity].
func Score(count, maxDaily, base int, tier domain.ActivityTier, recent bool, tuning IntensityTuning) int {
	ratio := float64(count) / float64(max(maxDaily, 1))
	raw := math.Round((ratio*tuning.RatioWeight + float64(base)*tuning.BaseWeight) * tuning.Multiplier(tier))
	level := clamp(int(raw), 0, domain.MaxIntensity)
	if count > 0 && recent {
		level += tuning.RecencyBonus
	}
	return clamp(level, 0, domain.MaxIntensity)
}

// ApplyIntensity returns a copy of days with IntensityLevel filled in,
// together with the window's tier.
func ApplyIntensity(days []domain.DailyActivity, today time.Time, tuning IntensityTuning) ([]domain.DailyActivity, domain.ActivityTier) {
	tier := ClassifyTier(days, tuning)
	peak := 0
	for _, d := range days {
		peak = max(peak, d.SessionCount)
	}

	out := make([]domain.DailyActivity, len(days))
	for i, d := range days {
		age := domain.DaysBetween(d.Date, today)
		recent := age >= 0 && age < tuning.RecentDays
		d.IntensityLevel = Score(d.SessionCount, peak, d.BaseIntensity, tier, recent, tuning)
		out[i] = d
	}
	return out, tier
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
