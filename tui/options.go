package tui

import (
	"github.com/gdamore/tcell/v2"
)

// Focusable slots of the options bar, in Tab order.
const (
	optShowFiles = iota
	optByLanguage
	optByDir
	optFilter
	optCount
)

var optLabels = [3]string{"Show files", "Group by language", "Group by dir"}

// optionsBar holds the grouping buttons and the path filter input.
type optionsBar struct {
	focus  int
	filter string

	// hit-test data captured during draw
	y     int
	spans [optCount][2]int
}

func newOptionsBar() *optionsBar {
	return &optionsBar{focus: optShowFiles, y: -1}
}

func (o *optionsBar) cycleFocus() {
	o.focus = (o.focus + 1) % optCount
}

// itemAt maps a screen position to a bar slot.
func (o *optionsBar) itemAt(x, y int) (int, bool) {
	if y != o.y {
		return -1, false
	}
	for i, span := range o.spans {
		if x >= span[0] && x < span[1] {
			return i, true
		}
	}
	return -1, false
}

func (o *optionsBar) draw(buf [][]Cell, y, width int) {
	o.y = y
	base := tcell.StyleDefault
	button := base.Reverse(true)
	focused := base.Reverse(true).Foreground(tcell.ColorYellow).Bold(true)

	x := 0
	for i, label := range optLabels {
		style := button
		if o.focus == i {
			style = focused
		}
		start := x
		x = drawText(buf, x, y, " "+label+" ", style)
		o.spans[i] = [2]int{start, x}
		x++
	}

	// The filter input takes the rest of the line.
	start := x
	inputStyle := base.Underline(true)
	if o.focus == optFilter {
		inputStyle = inputStyle.Foreground(tcell.ColorYellow)
	}
	fillRow(buf, y, start, width, inputStyle)
	if o.filter == "" && o.focus != optFilter {
		drawText(buf, start+1, y, "Filter by path", base.Underline(true).Dim(true))
	} else {
		end := drawText(buf, start+1, y, o.filter, inputStyle)
		if o.focus == optFilter && end < width {
			drawText(buf, end, y, " ", inputStyle.Reverse(true))
		}
	}
	o.spans[optFilter] = [2]int{start, width}
}
