package formatter

import (
	"fmt"

	"github.com/alexanderramin/cadence/internal/domain"
)

// TimerProgress is the fraction of the period already behind the timer.
// Reverse mode has no fixed end and reports the elapsed share of total
// capped at 1.
func TimerProgress(st domain.TimerState, total int) float64 {
	if total <= 0 {
		return 0
	}
	done := total - st.Seconds
	if st.Reversed {
		done = st.Seconds
	}
	return max(0, min(float64(done)/float64(total), 1))
}

// CycleDots renders the position inside the current cycle, for example
// "●●○○" after two work periods of four.
func CycleDots(st domain.TimerState) string {
	if st.CycleLength <= 0 {
		return ""
	}
	done := st.SessionsCompleted % st.CycleLength
	dots := ""
	for i := 0; i < st.CycleLength; i++ {
		if i < done {
			dots += StyleHeader.Render("●")
		} else {
			dots += Dim("○")
		}
	}
	return dots
}

// FormatTimerLine is the single-line rendering used by the headless timer.
func FormatTimerLine(st domain.TimerState, total int) string {
	direction := ""
	if st.Reversed {
		direction = Dim(" ↑")
	}
	return fmt.Sprintf("%s  %s%s  %s  %s  %s",
		ModeBadge(st.Mode),
		Bold(FormatClock(st.Seconds)), direction,
		RenderProgress(TimerProgress(st, total), 20, ModeStyle(st.Mode).Render),
		StatusPill(st.Status()),
		CycleDots(st),
	)
}

// FormatCompletion announces a finished period and the next mode.
func FormatCompletion(finished, next domain.SessionMode, actualSeconds int) string {
	return fmt.Sprintf("%s %s finished after %s. Next: %s",
		StyleGreen.Render("✔"), finished.Label(), FormatClock(actualSeconds), ModeBadge(next))
}
