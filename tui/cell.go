package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell represents a single character cell of the rendered frame.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// newBuffer allocates a blank frame filled with the given style.
func newBuffer(w, h int, style tcell.Style) [][]Cell {
	buf := make([][]Cell, h)
	for y := range buf {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: style}
		}
		buf[y] = row
	}
	return buf
}

// drawText writes s at (x, y), clipped to the buffer. Returns the x position
// after the last written cell. Wide runes occupy their full width.
func drawText(buf [][]Cell, x, y int, s string, style tcell.Style) int {
	if y < 0 || y >= len(buf) {
		return x
	}
	row := buf[y]
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if x < 0 || x+w > len(row) {
			x += w
			continue
		}
		row[x] = Cell{Ch: ch, Style: style}
		for i := 1; i < w; i++ {
			row[x+i] = Cell{Ch: ' ', Style: style}
		}
		x += w
	}
	return x
}

// fillRow paints a horizontal span with a style, keeping the characters.
func fillRow(buf [][]Cell, y, x0, x1 int, style tcell.Style) {
	if y < 0 || y >= len(buf) {
		return
	}
	row := buf[y]
	for x := x0; x < x1 && x < len(row); x++ {
		if x < 0 {
			continue
		}
		row[x] = Cell{Ch: row[x].Ch, Style: style}
	}
}

// bufferLines flattens a frame to plain text, one string per row, trailing
// blanks trimmed. Used for the inline-mode dump on exit.
func bufferLines(buf [][]Cell) []string {
	lines := make([]string, len(buf))
	for y, row := range buf {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.Ch)
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines
}
