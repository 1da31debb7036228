package tui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"

	"cloctui/table"
)

// dataTable renders one view of the scan result and owns its sort state.
// All mutation happens on the app's action queue; drawing happens on the
// render path with the app lock held.
type dataTable struct {
	mode    table.ViewMode
	cols    []table.Column
	sort    *table.SortState
	allRows []table.Row
	rows    []table.Row
	filter  string

	padding   int
	minPath   int
	flexWidth int
	zebra     bool
	scroll    int

	baseStyle   tcell.Style
	headerStyle tcell.Style
	accentStyle tcell.Style
	zebraStyle  tcell.Style

	// hit-test data captured during draw
	headerY  int
	colSpans map[string][2]int
	bodyTop  int
	bodyRows int
}

func newDataTable(padding, minPath int, zebra bool) *dataTable {
	base := tcell.StyleDefault
	t := &dataTable{
		mode:        table.ViewFlat,
		cols:        table.Columns(table.ViewFlat),
		padding:     padding,
		minPath:     minPath,
		zebra:       zebra,
		baseStyle:   base,
		headerStyle: base.Bold(true),
		accentStyle: base.Foreground(tcell.ColorYellow),
		zebraStyle:  base.Background(tcell.ColorDarkSlateGray),
		colSpans:    make(map[string][2]int),
		headerY:     -1,
	}
	t.sort = table.NewSortState(table.ColumnIDs(t.cols))
	return t
}

// setRows installs a freshly built row set for the current mode, keeping the
// filter and the active sort applied.
func (t *dataTable) setRows(rows []table.Row) {
	t.allRows = rows
	t.scroll = 0
	t.rebuild()
}

// setMode switches the grouping view. The column set changes, so the sort
// state drops entries for vanished columns; a surviving active sort is
// re-applied to the new row set.
func (t *dataTable) setMode(mode table.ViewMode, rows []table.Row) {
	t.mode = mode
	t.cols = table.Columns(mode)
	t.sort.Restrict(table.ColumnIDs(t.cols))
	t.allRows = rows
	t.scroll = 0
	t.rebuild()
}

// setFilter applies a label substring filter.
func (t *dataTable) setFilter(filter string) {
	t.filter = filter
	t.scroll = 0
	t.rebuild()
}

// selectColumn advances the tri-state sort cycle for a column and reorders
// the rows. Columns absent from the current view are ignored: the binding
// set is fixed while the column set varies per view.
func (t *dataTable) selectColumn(id string) {
	if !t.sort.Has(id) {
		return
	}
	t.sort.Select(id)
	t.rebuild()
}

func (t *dataTable) rebuild() {
	t.rows = table.Filter(t.allRows, t.filter)
	if col, phase := t.sort.Active(); col != "" {
		table.Sort(t.rows, col, phase)
	}
}

// relayout recomputes the flexible column width for a terminal width and
// returns the event for the summary bar.
func (t *dataTable) relayout(total int) table.WidthUpdate {
	var min int
	for _, c := range t.cols {
		if c.Flexible {
			min = c.Width
			if c.ID == table.ColPath && t.minPath > 0 {
				min = t.minPath
			}
		}
	}
	update := table.Layout{
		Total:    total,
		FixedSum: table.FixedSum(t.cols),
		Padding:  t.padding,
		Columns:  len(t.cols),
		Min:      min,
		Content:  table.ContentWidth(t.rows),
	}.Compute()
	t.flexWidth = update.Flex
	return update
}

func (t *dataTable) scrollBy(delta int) {
	t.scroll += delta
	max := len(t.rows) - t.bodyRows
	if max < 0 {
		max = 0
	}
	if t.scroll > max {
		t.scroll = max
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
}

// columnAt maps a screen position to a header column, for click-to-sort.
func (t *dataTable) columnAt(x, y int) (string, bool) {
	if y != t.headerY {
		return "", false
	}
	for id, span := range t.colSpans {
		if x >= span[0] && x < span[1] {
			return id, true
		}
	}
	return "", false
}

// draw renders the header and visible rows into buf starting at row y,
// using at most h rows, and records hit-test geometry.
func (t *dataTable) draw(buf [][]Cell, y, h, width int) {
	if h <= 0 {
		return
	}
	t.headerY = y
	t.bodyTop = y + 1
	t.bodyRows = h - 1

	x := 0
	for _, c := range t.cols {
		w := c.Width
		if c.Flexible {
			w = t.flexWidth
		}
		start := x
		x += t.padding
		label := c.ID + " " // indicator follows the title
		drawText(buf, x, y, table.Ellipsize(label, w), t.headerStyle)
		indX := x + len(c.ID) + 1
		if indX < x+w {
			drawText(buf, indX, y, t.sort.Phase(c.ID).Indicator(), t.accentStyle)
		}
		x += w + t.padding
		t.colSpans[c.ID] = [2]int{start, x}
	}

	for i := 0; i < t.bodyRows; i++ {
		idx := t.scroll + i
		if idx >= len(t.rows) {
			break
		}
		rowY := t.bodyTop + i
		style := t.baseStyle
		if t.zebra && idx%2 == 1 {
			style = t.zebraStyle
		}
		t.drawRow(buf, rowY, width, t.rows[idx], style)
	}
}

func (t *dataTable) drawRow(buf [][]Cell, y, width int, r table.Row, style tcell.Style) {
	fillRow(buf, y, 0, width, style)
	x := 0
	for _, c := range t.cols {
		w := c.Width
		if c.Flexible {
			w = t.flexWidth
		}
		x += t.padding
		switch {
		case c.Numeric:
			val := strconv.Itoa(numericCell(r, c.ID))
			if len(val) > w {
				val = table.Ellipsize(val, w)
			}
			drawText(buf, x+w-len(val), y, val, style)
		case c.ID == table.ColLanguage:
			drawText(buf, x, y, table.Ellipsize(r.Language, w), languageStyle(r.Language, style))
		default:
			drawText(buf, x, y, table.Ellipsize(r.Label, w), style)
		}
		x += w + t.padding
	}
}

func numericCell(r table.Row, id string) int {
	switch id {
	case table.ColBlank:
		return r.Blank
	case table.ColComment:
		return r.Comment
	case table.ColCode:
		return r.Code
	default:
		return r.Total()
	}
}

// languageStyle tints a language name with its conventional color when one
// is known.
func languageStyle(lang string, base tcell.Style) tcell.Style {
	hex := enry.GetColor(lang)
	if hex == "" {
		return base
	}
	return base.Foreground(tcell.GetColor(hex))
}
