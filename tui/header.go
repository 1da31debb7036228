package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"cloctui/stats"
)

// drawHeaderBar renders the run metadata above the table: tool version on
// the first line, timing and counts on the second.
func drawHeaderBar(buf [][]Cell, y int, h stats.RunHeader) {
	base := tcell.StyleDefault
	drawText(buf, 0, y, fmt.Sprintf("Running on CLOC v%s", h.ToolVersion), base.Bold(true))
	drawText(buf, 0, y+1, fmt.Sprintf(
		"Elapsed time: %.2f sec | Files counted: %d | Lines counted: %d",
		h.ElapsedSeconds, h.FileCount, h.LineCount,
	), base)
}
