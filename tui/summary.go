package tui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"cloctui/stats"
	"cloctui/table"
)

// summaryBar renders the SUM row under the table, aligned with its columns.
// The first cell's width follows the flexible column through WidthUpdate
// events; the remaining cells are column width plus both padding sides.
type summaryBar struct {
	labelWidth int
}

func newSummaryBar() *summaryBar {
	return &summaryBar{labelWidth: table.SummaryOffset}
}

func (s *summaryBar) setWidth(update table.WidthUpdate) {
	s.labelWidth = update.Summary
}

func (s *summaryBar) draw(buf [][]Cell, y, width int, sum stats.SummaryStat, cols []table.Column) {
	style := tcell.StyleDefault.Bold(true)
	fillRow(buf, y, 0, width, style)

	drawText(buf, 0, y, "SUM:", style)
	x := s.labelWidth
	for _, c := range cols {
		if c.Flexible {
			continue
		}
		var text string
		switch c.ID {
		case table.ColLanguage:
			text = fmt.Sprintf("%d files", sum.FileCount)
		case table.ColBlank:
			text = strconv.Itoa(sum.Blank)
		case table.ColComment:
			text = strconv.Itoa(sum.Comment)
		case table.ColCode:
			text = strconv.Itoa(sum.Code)
		case table.ColTotal:
			text = strconv.Itoa(sum.Total())
		}
		drawText(buf, x, y, table.Ellipsize(text, c.Width+2), style)
		x += c.Width + 2
	}
}
