package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/domain"
)

// FormatActivity renders a window as a heatmap followed by streak and total
// lines.
func FormatActivity(w domain.ActivityWindow, g analytics.Grid) string {
	var b strings.Builder
	b.WriteString(RenderHeatmap(g))
	b.WriteString(strings.Repeat(" ", heatLabelWidth) + HeatmapLegend())
	b.WriteString("\n\n")
	b.WriteString(summaryLines(w))

	title := fmt.Sprintf("Activity %s – %s",
		w.StartDate.Format("Jan 2, 2006"), w.EndDate.Format("Jan 2, 2006"))
	return RenderBox(title, b.String())
}

func summaryLines(w domain.ActivityWindow) string {
	streak := StyleGreen.Render(Plural(w.CurrentStreak, "day"))
	if w.CurrentStreak == 0 {
		streak = Dim("none")
	}
	return fmt.Sprintf("%s %s   %s %s\n%s %s   %s %s   %s %s",
		Dim("Current streak:"), streak,
		Dim("Longest:"), Bold(Plural(w.LongestStreak, "day")),
		Dim("Sessions:"), Bold(fmt.Sprint(w.TotalSessions)),
		Dim("Focus:"), Bold(FormatMinutes(w.TotalMinutes)),
		Dim("Tier:"), TierBadge(w.Tier),
	)
}

// ActiveDays counts days with at least one session.
func ActiveDays(w domain.ActivityWindow) int {
	n := 0
	for _, d := range w.Days {
		if d.Active() {
			n++
		}
	}
	return n
}

// FormatStats renders one row per window. labels and windows are parallel.
func FormatStats(labels []string, windows []domain.ActivityWindow) string {
	headers := []string{"WINDOW", "SESSIONS", "FOCUS", "ACTIVE", "DAILY AVG", "STREAK", "BEST", "TIER"}
	rows := make([][]string, 0, len(windows))
	for i, w := range windows {
		avg := 0
		if len(w.Days) > 0 {
			avg = w.TotalMinutes / len(w.Days)
		}
		rows = append(rows, []string{
			Bold(labels[i]),
			fmt.Sprint(w.TotalSessions),
			FormatMinutes(w.TotalMinutes),
			fmt.Sprintf("%d/%d", ActiveDays(w), len(w.Days)),
			FormatMinutes(avg),
			Plural(w.CurrentStreak, "day"),
			Plural(w.LongestStreak, "day"),
			TierBadge(w.Tier),
		})
	}
	return RenderBox("Focus stats", RenderTable(headers, rows))
}
