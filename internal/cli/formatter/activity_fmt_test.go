package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow() domain.ActivityWindow {
	start := date(2025, 3, 9)
	w := domain.ActivityWindow{
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 6),
		Tier:          domain.TierMedium,
		TotalSessions: 5,
		TotalMinutes:  140,
		CurrentStreak: 2,
		LongestStreak: 3,
	}
	for i := 0; i < 7; i++ {
		d := domain.DailyActivity{Date: start.AddDate(0, 0, i)}
		if i%2 == 0 {
			d.SessionCount = 1
		}
		w.Days = append(w.Days, d)
	}
	return w
}

func TestFormatActivity_Summary(t *testing.T) {
	w := testWindow()
	g, err := analytics.BuildGrid(w.Days, w.StartDate, w.EndDate)
	require.NoError(t, err)

	out := stripANSI(FormatActivity(w, g))
	assert.Contains(t, out, "ACTIVITY MAR 9, 2025 – MAR 15, 2025")
	assert.Contains(t, out, "Current streak: 2 days")
	assert.Contains(t, out, "Longest: 3 days")
	assert.Contains(t, out, "Sessions: 5")
	assert.Contains(t, out, "Focus: 2h 20m")
	assert.Contains(t, out, "Tier: Medium")
	assert.Contains(t, out, "Less · ░ ▒ ▓ █ More")
}

func TestFormatActivity_NoStreak(t *testing.T) {
	w := testWindow()
	w.CurrentStreak = 0
	g, err := analytics.BuildGrid(w.Days, w.StartDate, w.EndDate)
	require.NoError(t, err)

	assert.Contains(t, stripANSI(FormatActivity(w, g)), "Current streak: none")
}

func TestFormatStats_Rows(t *testing.T) {
	w := testWindow()
	out := stripANSI(FormatStats([]string{"7 days"}, []domain.ActivityWindow{w}))

	assert.Contains(t, out, "FOCUS STATS")
	assert.Contains(t, out, "7 days")
	// 4 of 7 days have a session; 140 minutes over 7 days is 20 a day.
	assert.Contains(t, out, "4/7")
	assert.Contains(t, out, "20m")
	assert.Equal(t, 4, ActiveDays(w))
}

func TestTimerProgress(t *testing.T) {
	st := domain.TimerState{Mode: domain.ModeWork, Seconds: 900}
	assert.InDelta(t, 0.4, TimerProgress(st, 1500), 1e-9)

	st.Reversed = true
	assert.InDelta(t, 0.6, TimerProgress(st, 1500), 1e-9)

	st.Seconds = 4000
	assert.Equal(t, 1.0, TimerProgress(st, 1500))
	assert.Zero(t, TimerProgress(st, 0))
}

func TestCycleDots(t *testing.T) {
	st := domain.TimerState{SessionsCompleted: 6, CycleLength: 4}
	assert.Equal(t, "●●○○", stripANSI(CycleDots(st)))
	assert.Empty(t, CycleDots(domain.TimerState{}))
}

func TestFormatTimerLine(t *testing.T) {
	st := domain.TimerState{Mode: domain.ModeShortBreak, Seconds: 150, Paused: true, CycleLength: 4, SessionsCompleted: 1}
	out := stripANSI(FormatTimerLine(st, 300))

	assert.Contains(t, out, "● SHORT BREAK")
	assert.Contains(t, out, "02:30")
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "Paused")
	assert.Contains(t, out, "●○○○")
}

func TestFormatSessionTable(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	ended := now.Add(-time.Hour)
	records := []*domain.SessionRecord{
		{ID: "aaaaaaaa-1", Mode: domain.ModeWork, PlannedSeconds: 1500, ActualSeconds: 1500, StartedAt: now.Add(-2 * time.Hour), EndedAt: &ended, Completed: true, TaskRef: "write report"},
		{ID: "bbbbbbbb-2", Mode: domain.ModeShortBreak, PlannedSeconds: 300, ActualSeconds: 120, StartedAt: now.Add(-30 * time.Minute), EndedAt: &ended},
	}

	out := stripANSI(FormatSessionTable(records, now))
	assert.Contains(t, out, "aaaaaaaa")
	assert.Contains(t, out, "✔ completed")
	assert.Contains(t, out, "■ stopped")
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "30m ago")
	assert.Contains(t, out, "write report")
	assert.Contains(t, out, "02:00")
}
