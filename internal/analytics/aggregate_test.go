package analytics

import (
	"testing"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func finalizedWork(startedAt time.Time, actual int, completed bool) domain.SessionRecord {
	rec := domain.SessionRecord{
		ID:             "s-" + startedAt.Format(time.RFC3339),
		Mode:           domain.ModeWork,
		PlannedSeconds: 1500,
		StartedAt:      startedAt,
	}
	_ = rec.Finalize(actual, startedAt.Add(time.Duration(actual)*time.Second), completed)
	return rec
}

func TestAggregate_ZeroFillsRange(t *testing.T) {
	days, err := Aggregate(domain.ActivitySnapshot{}, date("2025-03-01"), date("2025-03-07"), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, days, 7)
	for i, d := range days {
		assert.Equal(t, date("2025-03-01").AddDate(0, 0, i), d.Date)
		assert.Zero(t, d.SessionCount)
		assert.Zero(t, d.TotalFocusMinutes)
		assert.Zero(t, d.IntensityLevel)
	}
}

func TestAggregate_SingleDayRange(t *testing.T) {
	days, err := Aggregate(domain.ActivitySnapshot{}, date("2025-03-01"), date("2025-03-01"), DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, days, 1)
}

func TestAggregate_InvalidRange(t *testing.T) {
	_, err := Aggregate(domain.ActivitySnapshot{}, date("2025-03-02"), date("2025-03-01"), DefaultOptions())
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestAggregate_CompletedWorkSession(t *testing.T) {
	snap := domain.ActivitySnapshot{Sessions: []domain.SessionRecord{
		finalizedWork(time.Date(2025, 3, 15, 2, 0, 0, 0, time.UTC), 1500, true),
	}}
	days, err := Aggregate(snap, date("2025-03-15"), date("2025-03-15"), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, days[0].SessionCount)
	assert.Equal(t, 1, days[0].PomodoroSessionCount)
	assert.Equal(t, 25, days[0].TotalFocusMinutes)
}

func TestAggregate_SessionKinds(t *testing.T) {
	at := time.Date(2025, 3, 15, 3, 0, 0, 0, time.UTC)
	brk := domain.SessionRecord{ID: "b", Mode: domain.ModeShortBreak, PlannedSeconds: 300, StartedAt: at}
	_ = brk.Finalize(300, at.Add(5*time.Minute), true)
	open := domain.SessionRecord{ID: "open", Mode: domain.ModeWork, PlannedSeconds: 1500, StartedAt: at}

	snap := domain.ActivitySnapshot{Sessions: []domain.SessionRecord{
		finalizedWork(at, 1500, true),
		finalizedWork(at.Add(time.Hour), 600, false), // stopped early
		brk,
		open,
	}}
	days, err := Aggregate(snap, date("2025-03-15"), date("2025-03-15"), DefaultOptions())
	require.NoError(t, err)

	d := days[0]
	assert.Equal(t, 1, d.SessionCount, "only completed work counts as a session")
	assert.Equal(t, 1, d.PomodoroSessionCount)
	assert.Equal(t, 2100, d.PomodoroSeconds, "stopped work still counts as focus time")
	assert.Equal(t, 35, d.TotalFocusMinutes)
}

func TestAggregate_FocusMinutesFloorEachSourceSeparately(t *testing.T) {
	at := time.Date(2025, 3, 15, 3, 0, 0, 0, time.UTC)
	snap := domain.ActivitySnapshot{
		Sessions: []domain.SessionRecord{finalizedWork(at, 1530, true)},
		Blocks: []domain.StopwatchBlock{
			{ID: "w1", StartedAt: at, Seconds: 50},
			{ID: "w2", StartedAt: at.Add(time.Hour), Seconds: 40},
		},
	}
	days, err := Aggregate(snap, date("2025-03-15"), date("2025-03-15"), DefaultOptions())
	require.NoError(t, err)

	d := days[0]
	assert.Equal(t, 90, d.FreeRunningSeconds)
	assert.Equal(t, 25+1, d.TotalFocusMinutes)
	assert.Equal(t, 3, d.SessionCount, "each stopwatch block counts as a session")
	assert.Equal(t, 1, d.PomodoroSessionCount)
}

func TestAggregate_FixedOffsetDayBoundary(t *testing.T) {
	snap := domain.ActivitySnapshot{Blocks: []domain.StopwatchBlock{
		// 23:59 and 00:00 at UTC+8.
		{ID: "late", StartedAt: time.Date(2025, 3, 14, 15, 59, 0, 0, time.UTC), Seconds: 60},
		{ID: "early", StartedAt: time.Date(2025, 3, 14, 16, 0, 0, 0, time.UTC), Seconds: 120},
	}}

	days, err := Aggregate(snap, date("2025-03-14"), date("2025-03-15"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 60, days[0].FreeRunningSeconds)
	assert.Equal(t, 120, days[1].FreeRunningSeconds)
}

func TestAggregate_IgnoresViewerZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 21:00 in New York on the 14th is already the 15th at UTC+8.
	at := time.Date(2025, 3, 14, 21, 0, 0, 0, ny)
	snap := domain.ActivitySnapshot{Sessions: []domain.SessionRecord{finalizedWork(at, 1500, true)}}

	days, err := Aggregate(snap, date("2025-03-14"), date("2025-03-15"), DefaultOptions())
	require.NoError(t, err)
	assert.Zero(t, days[0].SessionCount)
	assert.Equal(t, 1, days[1].SessionCount)
}

func TestAggregate_CustomOffset(t *testing.T) {
	opts := DefaultOptions()
	opts.Offset = 0
	snap := domain.ActivitySnapshot{Blocks: []domain.StopwatchBlock{
		{ID: "a", StartedAt: time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC), Seconds: 60},
	}}
	days, err := Aggregate(snap, date("2025-03-14"), date("2025-03-15"), opts)
	require.NoError(t, err)
	assert.Equal(t, 60, days[0].FreeRunningSeconds)
	assert.Zero(t, days[1].FreeRunningSeconds)
}

func TestAggregate_IgnoresOutOfRangeAndEmptyBlocks(t *testing.T) {
	snap := domain.ActivitySnapshot{
		Sessions: []domain.SessionRecord{finalizedWork(time.Date(2025, 2, 1, 3, 0, 0, 0, time.UTC), 1500, true)},
		Blocks: []domain.StopwatchBlock{
			{ID: "future", StartedAt: time.Date(2025, 4, 1, 3, 0, 0, 0, time.UTC), Seconds: 600},
			{ID: "empty", StartedAt: time.Date(2025, 3, 1, 3, 0, 0, 0, time.UTC), Seconds: 0},
		},
	}
	days, err := Aggregate(snap, date("2025-03-01"), date("2025-03-02"), DefaultOptions())
	require.NoError(t, err)
	for _, d := range days {
		assert.False(t, d.Active())
	}
}

func TestAggregate_BaseIntensityFromFocusBands(t *testing.T) {
	cases := []struct {
		minutes int
		want    int
	}{
		{0, 0},
		{1, 1},
		{24, 1},
		{25, 2},
		{59, 2},
		{60, 3},
		{120, 4},
		{600, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, focusBand(tc.minutes, DefaultOptions().FocusBands), "minutes=%d", tc.minutes)
	}
}
