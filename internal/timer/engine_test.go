package timer

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)

func testSettings() domain.TimerSettings {
	return domain.TimerSettings{
		WorkSeconds:       1500,
		ShortBreakSeconds: 300,
		LongBreakSeconds:  900,
		CycleLength:       4,
	}
}

func newTestEngine(opts ...EngineOption) *Engine {
	n := 0
	opts = append([]EngineOption{WithIDFunc(func() string {
		n++
		return fmt.Sprintf("sess-%d", n)
	})}, opts...)
	return NewEngine(testSettings(), opts...)
}

// runToZero starts the current period at now and ticks once at its end.
func runToZero(e *Engine, now time.Time) ([]Event, time.Time) {
	total := e.Total()
	evs := e.Start(now)
	end := now.Add(time.Duration(total) * time.Second)
	return append(evs, e.Tick(end)...), end
}

func eventsOf[T Event](evs []Event) []T {
	var out []T
	for _, ev := range evs {
		if typed, ok := ev.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func TestNewEngine_Defaults(t *testing.T) {
	e := newTestEngine()
	st := e.State()
	assert.Equal(t, domain.ModeWork, st.Mode)
	assert.Equal(t, 1500, st.Seconds)
	assert.Equal(t, domain.StatusIdle, st.Status())
	assert.Equal(t, 4, st.CycleLength)
	assert.Equal(t, 0, st.SessionsCompleted)
}

func TestNewEngine_InvalidCycleLengthFallsBack(t *testing.T) {
	s := testSettings()
	s.CycleLength = 1
	e := NewEngine(s)
	assert.Equal(t, 4, e.State().CycleLength)
}

func TestStart_ArmsFreshDurationAndOpensDraft(t *testing.T) {
	e := newTestEngine()
	evs := e.Start(t0)

	require.Len(t, evs, 1)
	tick := evs[0].(TickEvent)
	assert.Equal(t, 1500, tick.Seconds)
	assert.Equal(t, 1500, tick.Total)
	assert.Equal(t, domain.StatusRunning, tick.Status)

	draft, ok := e.Draft()
	require.True(t, ok)
	assert.Equal(t, "sess-1", draft.ID)
	assert.Equal(t, domain.ModeWork, draft.Mode)
	assert.Equal(t, 1500, draft.PlannedSeconds)
	assert.Equal(t, t0, draft.StartedAt)
	assert.False(t, draft.Finalized())
}

func TestStart_ReentrantWhileRunningIsNoop(t *testing.T) {
	e := newTestEngine()
	e.Start(t0)
	e.Tick(t0.Add(time.Minute))

	assert.Nil(t, e.Start(t0.Add(2*time.Minute)))
	draft, _ := e.Draft()
	assert.Equal(t, "sess-1", draft.ID, "a second start must not open a new record")
	assert.Equal(t, 1440, e.State().Seconds)
}

func TestStart_WhilePausedIsNoop(t *testing.T) {
	e := newTestEngine()
	e.Start(t0)
	e.Pause(t0.Add(time.Minute))
	assert.Nil(t, e.Start(t0.Add(2*time.Minute)))
	assert.True(t, e.State().Paused)
}

func TestPauseResume_InvalidStatesAreNoops(t *testing.T) {
	e := newTestEngine()
	assert.Nil(t, e.Pause(t0), "pause while idle")
	assert.Nil(t, e.Resume(t0), "resume while idle")

	e.Start(t0)
	assert.Nil(t, e.Resume(t0.Add(time.Second)), "resume while running")

	e.Pause(t0.Add(2 * time.Second))
	assert.Nil(t, e.Pause(t0.Add(3*time.Second)), "pause while paused")
	assert.Equal(t, domain.StatusPaused, e.State().Status())
}

func TestPauseResume_ExcludesPausedTime(t *testing.T) {
	e := newTestEngine()
	e.Start(t0)
	e.Pause(t0.Add(10 * time.Minute))
	assert.Equal(t, 900, e.State().Seconds)

	// An hour on pause changes nothing.
	assert.Nil(t, e.Tick(t0.Add(70*time.Minute)))
	assert.Equal(t, 900, e.State().Seconds)

	e.Resume(t0.Add(70 * time.Minute))
	e.Tick(t0.Add(75 * time.Minute))
	assert.Equal(t, 600, e.State().Seconds)
}

func TestPauseResume_KeepsSubSecondProgress(t *testing.T) {
	e := newTestEngine()
	now := t0
	e.Start(now)
	for range 20 {
		now = now.Add(800 * time.Millisecond)
		e.Pause(now)
		now = now.Add(5 * time.Second)
		e.Resume(now)
	}

	// 16s of running time across twenty short stretches.
	e.Tick(now)
	assert.Equal(t, 1484, e.State().Seconds)

	evs := e.Stop(now)
	records := eventsOf[RecordFinalizedEvent](evs)
	require.Len(t, records, 1)
	assert.Equal(t, 16, records[0].Record.ActualSeconds)
}

func TestPauseResume_ReverseKeepsSubSecondProgress(t *testing.T) {
	e := newTestEngine(WithReversed())
	now := t0
	e.Start(now)
	for range 10 {
		now = now.Add(1500 * time.Millisecond)
		e.Pause(now)
		now = now.Add(time.Minute)
		e.Resume(now)
	}

	e.Tick(now)
	assert.Equal(t, 15, e.State().Seconds)
}

func TestStop_WhilePausedCountsExactElapsed(t *testing.T) {
	e := newTestEngine()
	e.Start(t0)
	e.Pause(t0.Add(90*time.Second + 900*time.Millisecond))
	assert.Equal(t, 1410, e.State().Seconds, "display rounds remaining up")

	evs := e.Stop(t0.Add(time.Hour))
	records := eventsOf[RecordFinalizedEvent](evs)
	require.Len(t, records, 1)
	assert.Equal(t, 90, records[0].Record.ActualSeconds)
}

func TestTick_IsDriftCorrected(t *testing.T) {
	e := newTestEngine()
	e.Start(t0)

	// Irregular, sparse ticks land on the wall-clock value.
	e.Tick(t0.Add(1 * time.Second))
	e.Tick(t0.Add(7*time.Minute + 300*time.Millisecond))
	assert.Equal(t, 1500-7*60, e.State().Seconds, "partial second rounds up")

	e.Tick(t0.Add(10 * time.Minute))
	assert.Equal(t, 900, e.State().Seconds)
}

func TestTick_IdleProducesNothing(t *testing.T) {
	e := newTestEngine()
	assert.Nil(t, e.Tick(t0))
	assert.Equal(t, 1500, e.State().Seconds)
}

func TestTick_NeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		e := newTestEngine()
		if rng.Intn(2) == 1 {
			e.ToggleReverse()
		}
		now := t0
		e.Start(now)
		for step := 0; step < 20; step++ {
			// Jumps of up to 10 minutes, sometimes backwards.
			now = now.Add(time.Duration(rng.Intn(600_000)-60_000) * time.Millisecond)
			for _, ev := range e.Tick(now) {
				if tick, ok := ev.(TickEvent); ok {
					assert.GreaterOrEqual(t, tick.Seconds, 0, "trial %d step %d", trial, step)
				}
			}
			assert.GreaterOrEqual(t, e.State().Seconds, 0, "trial %d step %d", trial, step)
			if e.State().Idle() {
				e.Start(now)
			}
		}
	}
}

func TestCompletion_FiresExactlyOnce(t *testing.T) {
	e := newTestEngine()
	evs, end := runToZero(e, t0)

	completes := eventsOf[SessionCompleteEvent](evs)
	require.Len(t, completes, 1)
	assert.Equal(t, "sess-1", completes[0].SessionID)
	assert.Equal(t, domain.ModeWork, completes[0].Mode)
	assert.Equal(t, 1500, completes[0].ActualSeconds)

	records := eventsOf[RecordFinalizedEvent](evs)
	require.Len(t, records, 1)
	rec := records[0].Record
	assert.True(t, rec.Completed)
	assert.Equal(t, 1500, rec.ActualSeconds)
	require.NotNil(t, rec.CompletedAt)
	assert.Equal(t, end, *rec.CompletedAt)

	// Late duplicate ticks produce nothing.
	assert.Nil(t, e.Tick(end))
	assert.Nil(t, e.Tick(end.Add(time.Second)))
}

func TestCompletion_LateTickStillCompletesOnce(t *testing.T) {
	e := newTestEngine()
	e.Start(t0)
	// A throttled callback arrives long after the period should have ended.
	evs := e.Tick(t0.Add(2 * time.Hour))
	assert.Len(t, eventsOf[SessionCompleteEvent](evs), 1)
	assert.Equal(t, domain.ModeShortBreak, e.State().Mode)
	assert.Equal(t, 1, e.State().SessionsCompleted)
}

func TestCompletion_WorkIncrementsSessionsCompletedByOne(t *testing.T) {
	e := newTestEngine()
	now := t0
	for i := 1; i <= 6; i++ {
		require.Equal(t, domain.ModeWork, e.State().Mode)
		before := e.State().SessionsCompleted
		_, now = runToZero(e, now)
		assert.Equal(t, before+1, e.State().SessionsCompleted)
		// Finish the break; breaks never touch the counter.
		_, now = runToZero(e, now)
		assert.Equal(t, before+1, e.State().SessionsCompleted)
	}
}

func TestCompletion_ModeSequenceForCycleOfFour(t *testing.T) {
	e := newTestEngine()
	seq := []domain.SessionMode{e.State().Mode}
	now := t0
	for len(seq) < 8 {
		_, now = runToZero(e, now)
		seq = append(seq, e.State().Mode)
	}

	assert.Equal(t, []domain.SessionMode{
		domain.ModeWork, domain.ModeShortBreak,
		domain.ModeWork, domain.ModeShortBreak,
		domain.ModeWork, domain.ModeShortBreak,
		domain.ModeWork, domain.ModeLongBreak,
	}, seq)

	_, _ = runToZero(e, now)
	assert.Equal(t, domain.ModeWork, e.State().Mode, "long break returns to work")
}

func TestCompletion_LeavesNextModeIdleAndFresh(t *testing.T) {
	e := newTestEngine()
	evs, _ := runToZero(e, t0)

	st := e.State()
	assert.Equal(t, domain.StatusIdle, st.Status())
	assert.Equal(t, 300, st.Seconds)

	changes := eventsOf[ModeChangedEvent](evs)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.ModeWork, changes[0].From)
	assert.Equal(t, domain.ModeShortBreak, changes[0].To)
	assert.False(t, changes[0].Skipped)
	assert.False(t, changes[0].AutoStart)
}

func TestSkip_IntoLongBreakWithoutCompletion(t *testing.T) {
	e := newTestEngine()
	now := t0
	for i := 0; i < 3; i++ {
		_, now = runToZero(e, now) // work
		e.Skip(now)                // skip break
	}
	require.Equal(t, 3, e.State().SessionsCompleted)
	require.Equal(t, domain.ModeWork, e.State().Mode)

	e.Start(now)
	evs := e.Skip(now.Add(time.Minute))

	assert.Empty(t, eventsOf[SessionCompleteEvent](evs))
	assert.Empty(t, eventsOf[RecordFinalizedEvent](evs))
	assert.Equal(t, domain.ModeLongBreak, e.State().Mode)
	assert.Equal(t, 4, e.State().SessionsCompleted, "skipped work still advances the cycle")

	changes := eventsOf[ModeChangedEvent](evs)
	require.Len(t, changes, 1)
	assert.True(t, changes[0].Skipped)
	_, open := e.Draft()
	assert.False(t, open, "the skipped period's record is dropped")
}

func TestSkip_BreakReturnsToWork(t *testing.T) {
	e := newTestEngine()
	e.Skip(t0)
	require.Equal(t, domain.ModeShortBreak, e.State().Mode)
	e.Skip(t0)
	assert.Equal(t, domain.ModeWork, e.State().Mode)
	assert.Equal(t, 1, e.State().SessionsCompleted)
}

func TestStop_FinalizesIncompleteRecord(t *testing.T) {
	e := newTestEngine()
	e.Start(t0)
	evs := e.Stop(t0.Add(10 * time.Minute))

	records := eventsOf[RecordFinalizedEvent](evs)
	require.Len(t, records, 1)
	rec := records[0].Record
	assert.False(t, rec.Completed)
	assert.Equal(t, 600, rec.ActualSeconds, "planned minus remaining")
	assert.Nil(t, rec.CompletedAt)
	require.NotNil(t, rec.EndedAt)

	st := e.State()
	assert.Equal(t, domain.ModeWork, st.Mode, "stop keeps the mode")
	assert.Equal(t, 0, st.SessionsCompleted)
	assert.Equal(t, 1500, st.Seconds)
	assert.Equal(t, domain.StatusIdle, st.Status())
	assert.Empty(t, eventsOf[SessionCompleteEvent](evs))
}

func TestStop_WhilePausedUsesFrozenValue(t *testing.T) {
	e := newTestEngine()
	e.Start(t0)
	e.Pause(t0.Add(5 * time.Minute))
	evs := e.Stop(t0.Add(50 * time.Minute))

	records := eventsOf[RecordFinalizedEvent](evs)
	require.Len(t, records, 1)
	assert.Equal(t, 300, records[0].Record.ActualSeconds)
}

func TestStop_IdleIsNoop(t *testing.T) {
	e := newTestEngine()
	assert.Nil(t, e.Stop(t0))
}

func TestStop_AfterTargetPassedCompletesInstead(t *testing.T) {
	e := newTestEngine()
	e.Start(t0)
	evs := e.Stop(t0.Add(30 * time.Minute))

	records := eventsOf[RecordFinalizedEvent](evs)
	require.Len(t, records, 1)
	assert.True(t, records[0].Record.Completed)
	assert.Len(t, eventsOf[SessionCompleteEvent](evs), 1)
}

func TestReset_KeepsModeAndCount(t *testing.T) {
	e := newTestEngine()
	_, now := runToZero(e, t0)
	e.Start(now)
	e.Tick(now.Add(time.Minute))

	e.Reset()
	st := e.State()
	assert.Equal(t, domain.ModeShortBreak, st.Mode)
	assert.Equal(t, 1, st.SessionsCompleted)
	assert.Equal(t, 300, st.Seconds)
	assert.Equal(t, domain.StatusIdle, st.Status())
	_, open := e.Draft()
	assert.False(t, open)
}

func TestResetAll(t *testing.T) {
	e := newTestEngine()
	_, now := runToZero(e, t0)
	e.Start(now)
	e.Pause(now.Add(time.Second))

	e.ResetAll()
	st := e.State()
	assert.Equal(t, domain.ModeWork, st.Mode)
	assert.Equal(t, 0, st.SessionsCompleted)
	assert.False(t, st.Reversed)
	assert.Equal(t, domain.StatusIdle, st.Status())
	assert.Equal(t, 1500, st.Seconds)
}

func TestResetAll_ClearsReverse(t *testing.T) {
	e := newTestEngine(WithReversed())
	e.ResetAll()
	assert.False(t, e.State().Reversed)
	assert.Equal(t, 1500, e.State().Seconds)
}

func TestToggleReverse_OnlyWhileIdle(t *testing.T) {
	e := newTestEngine()
	evs := e.ToggleReverse()
	require.Len(t, evs, 1)
	assert.True(t, e.State().Reversed)
	assert.Equal(t, 0, e.State().Seconds, "count-up starts from zero")

	e.ToggleReverse()
	assert.False(t, e.State().Reversed)
	assert.Equal(t, 1500, e.State().Seconds)

	e.Start(t0)
	assert.Nil(t, e.ToggleReverse(), "running")
	e.Pause(t0.Add(time.Second))
	assert.Nil(t, e.ToggleReverse(), "paused")
	assert.False(t, e.State().Reversed)
}

func TestReverse_CountsUpAndNeverCompletes(t *testing.T) {
	e := newTestEngine(WithReversed())
	e.Start(t0)

	e.Tick(t0.Add(90*time.Second + 700*time.Millisecond))
	assert.Equal(t, 90, e.State().Seconds)

	evs := e.Tick(t0.Add(3 * time.Hour))
	assert.Empty(t, eventsOf[SessionCompleteEvent](evs))
	assert.Equal(t, 3*3600, e.State().Seconds)
	assert.True(t, e.State().Running)
}

func TestReverse_PauseResumeAndStop(t *testing.T) {
	e := newTestEngine(WithReversed())
	e.Start(t0)
	e.Pause(t0.Add(2 * time.Minute))
	e.Resume(t0.Add(10 * time.Minute))
	evs := e.Stop(t0.Add(13 * time.Minute))

	records := eventsOf[RecordFinalizedEvent](evs)
	require.Len(t, records, 1)
	assert.Equal(t, 300, records[0].Record.ActualSeconds, "elapsed, excluding the pause")
	assert.False(t, records[0].Record.Completed)
	assert.Equal(t, 0, e.State().Seconds)
}

func TestAutoStart_GatedPerDirection(t *testing.T) {
	cases := []struct {
		name         string
		breaks, work bool
		wantIntoBrk  bool
		wantIntoWork bool
	}{
		{"none", false, false, false, false},
		{"breaks only", true, false, true, false},
		{"work only", false, true, false, true},
		{"both", true, true, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testSettings()
			s.AutoStartBreaks = tc.breaks
			s.AutoStartWork = tc.work
			e := NewEngine(s)

			evs, now := runToZero(e, t0)
			assert.Equal(t, tc.wantIntoBrk, e.AutoStartPending())
			assert.Equal(t, tc.wantIntoBrk, eventsOf[ModeChangedEvent](evs)[0].AutoStart)

			e.Reset()
			_, _ = runToZero(e, now)
			assert.Equal(t, domain.ModeWork, e.State().Mode)
			assert.Equal(t, tc.wantIntoWork, e.AutoStartPending())
		})
	}
}

func TestAutoStart_ClearedByStartAndReset(t *testing.T) {
	s := testSettings()
	s.AutoStartBreaks = true
	e := NewEngine(s)

	_, now := runToZero(e, t0)
	require.True(t, e.AutoStartPending())
	e.Start(now)
	assert.False(t, e.AutoStartPending())

	e.Reset()
	e.Skip(now)
	e.Skip(now)
	require.True(t, e.AutoStartPending(), "skipping into a break also chains")
	e.Reset()
	assert.False(t, e.AutoStartPending())
}

func TestSetCycleLength(t *testing.T) {
	e := newTestEngine()
	e.SetCycleLength(1)
	assert.Equal(t, 4, e.State().CycleLength, "below minimum is ignored")

	e.SetCycleLength(2)
	assert.Equal(t, 2, e.State().CycleLength)

	now := t0
	_, now = runToZero(e, now)
	assert.Equal(t, domain.ModeShortBreak, e.State().Mode)
	_, now = runToZero(e, now)
	_, _ = runToZero(e, now)
	assert.Equal(t, domain.ModeLongBreak, e.State().Mode)
}

func TestSetTask_AppliesToOpenAndLaterRecords(t *testing.T) {
	e := newTestEngine()
	e.Start(t0)
	e.SetTask("task-42")

	draft, _ := e.Draft()
	assert.Equal(t, "task-42", draft.TaskRef)

	_, _ = runToZero(e, t0.Add(time.Hour))
	e.Skip(t0)
	e.Start(t0.Add(2 * time.Hour))
	draft, _ = e.Draft()
	assert.Equal(t, "task-42", draft.TaskRef)
}
