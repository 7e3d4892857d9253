package domain

import "time"

// MaxIntensity is the upper bound of DailyActivity.IntensityLevel.
const MaxIntensity = 6

// DailyActivity is the per-date bucket of a queried window. Date is a civil
// date stored as midnight UTC.
type DailyActivity struct {
	Date                 time.Time
	SessionCount         int
	PomodoroSessionCount int
	FreeRunningSeconds   int
	PomodoroSeconds      int
	TotalFocusMinutes    int
	BaseIntensity        int
	IntensityLevel       int
}

func (d DailyActivity) Active() bool {
	return d.SessionCount > 0
}

// ActivityWindow is the derived analytics result for one queried date range.
type ActivityWindow struct {
	StartDate     time.Time
	EndDate       time.Time
	Days          []DailyActivity
	Tier          ActivityTier
	TotalSessions int
	TotalMinutes  int
	CurrentStreak int
	LongestStreak int
}
