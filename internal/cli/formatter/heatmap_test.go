package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRenderHeatmap_Layout(t *testing.T) {
	// 2025-03-01 is a Saturday, so the grid starts on Sunday 2025-02-23.
	start, end := date(2025, 3, 1), date(2025, 3, 15)
	days := []domain.DailyActivity{
		{Date: date(2025, 3, 15), SessionCount: 4, IntensityLevel: 6},
		{Date: date(2025, 3, 3), SessionCount: 1, IntensityLevel: 3},
	}
	g, err := analytics.BuildGrid(days, start, end)
	require.NoError(t, err)

	got := strings.Split(strings.TrimRight(stripANSI(RenderHeatmap(g)), "\n"), "\n")
	want := []string{
		"    Mar",
		"      · ·",
		"Mon   ▒ ·",
		"      · ·",
		"Wed   · ·",
		"      · ·",
		"Fri   · ·",
		"    · · █",
	}
	assert.Equal(t, want, got)
}

func TestRenderHeatmap_MonthLabelsOverFirstWeek(t *testing.T) {
	// Feb 1 falls in week 4 and Mar 1 in week 8 of a grid that starts on
	// Sunday 2024-12-29.
	g, err := analytics.BuildGrid(nil, date(2025, 1, 1), date(2025, 3, 31))
	require.NoError(t, err)
	assert.Equal(t, "    Jan     Feb     Mar", monthRow(g))
}

func TestRenderHeatmap_CollidingMonthLabelIsDropped(t *testing.T) {
	// Only two days of March are in range, so April starts one column later
	// and has no room.
	g, err := analytics.BuildGrid(nil, date(2025, 3, 30), date(2025, 4, 30))
	require.NoError(t, err)
	assert.Equal(t, "    Mar", monthRow(g))
}

func TestHeatGlyph_ClampsLevels(t *testing.T) {
	assert.Equal(t, "·", stripANSI(HeatGlyph(-1)))
	assert.Equal(t, "█", stripANSI(HeatGlyph(domain.MaxIntensity+3)))
}

func TestHeatmapLegend(t *testing.T) {
	assert.Equal(t, "Less · ░ ▒ ▓ █ More", stripANSI(HeatmapLegend()))
}
