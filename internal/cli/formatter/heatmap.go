package formatter

import (
	"strings"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/domain"
)

// Glyphs by intensity level. Colors carry the full scale; glyphs keep the
// levels apart when color is unavailable.
var heatGlyphs = []string{"·", "░", "░", "▒", "▒", "▓", "█"}

const heatLabelWidth = 4

var weekdayLabels = [7]string{"", "Mon", "", "Wed", "", "Fri", ""}

// HeatGlyph returns the colored cell for an intensity level.
func HeatGlyph(level int) string {
	level = max(0, min(level, domain.MaxIntensity))
	return IntensityStyle(level).Render(heatGlyphs[level])
}

// RenderHeatmap draws the grid as seven weekday rows under a row of month
// labels. Each week is one two-character column.
func RenderHeatmap(g analytics.Grid) string {
	var b strings.Builder
	b.WriteString(Dim(monthRow(g)))
	b.WriteString("\n")

	for dow := 0; dow < 7; dow++ {
		b.WriteString(Dim(padRight(weekdayLabels[dow], heatLabelWidth)))
		for w, week := range g.Weeks {
			cell := week[dow]
			if cell.InRange {
				b.WriteString(HeatGlyph(cell.Activity.IntensityLevel))
			} else {
				b.WriteString(" ")
			}
			if w < len(g.Weeks)-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HeatmapLegend renders "Less · ░ ▒ ▓ █ More" in intensity colors.
func HeatmapLegend() string {
	parts := []string{Dim("Less")}
	for _, level := range []int{0, 1, 3, 5, 6} {
		parts = append(parts, HeatGlyph(level))
	}
	parts = append(parts, Dim("More"))
	return strings.Join(parts, " ")
}

// monthRow positions each label over its first week column. A label that
// would collide with the previous one is dropped.
func monthRow(g analytics.Grid) string {
	row := []rune(strings.Repeat(" ", heatLabelWidth+2*len(g.Weeks)))
	next := 0
	for _, m := range g.Months {
		pos := heatLabelWidth + 2*m.Week
		label := []rune(m.String())
		if pos < next || pos+len(label) > len(row) {
			continue
		}
		copy(row[pos:], label)
		next = pos + len(label) + 1
	}
	return strings.TrimRight(string(row), " ")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
