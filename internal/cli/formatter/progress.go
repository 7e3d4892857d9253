package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░]  45%. The bar takes
// the given style; pct is clamped to [0, 1].
func RenderProgress(pct float64, width int, style func(...string) string) string {
	pct = max(0, min(pct, 1))
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if style != nil {
		bar = style(bar)
	}
	return fmt.Sprintf("[%s] %3.0f%%", bar, pct*100)
}
