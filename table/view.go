// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: table/view.go
// Summary: View modes, column sets and row construction for the stats table.

package table

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"cloctui/stats"
)

// ViewMode selects which presentation of a scan result is rendered.
type ViewMode int

const (
	ViewFlat ViewMode = iota
	ViewByLanguage
	ViewByDirectory
)

// Column ids. The flexible column is "path" except in the by-language view,
// where the language column takes its place.
const (
	ColPath     = "path"
	ColLanguage = "language"
	ColBlank    = "blank"
	ColComment  = "comment"
	ColCode     = "code"
	ColTotal    = "total"
)

// Column describes one table column. Width is the fixed width for numeric
// columns, or the minimum width for the flexible one.
type Column struct {
	ID       string
	Width    int
	Numeric  bool
	Flexible bool
}

// Fixed column widths and flexible-column minimums, shared with the summary
// bar so there is a single source of truth for alignment.
var colWidths = map[string]int{
	ColPath:     15,
	ColLanguage: 14,
	ColBlank:    7,
	ColComment:  9,
	ColCode:     7,
	ColTotal:    7,
}

// Columns returns the column set valid for a view mode. Grouped views drop
// one column: the group key itself is the row's display name.
func Columns(mode ViewMode) []Column {
	numeric := []Column{
		{ID: ColBlank, Width: colWidths[ColBlank], Numeric: true},
		{ID: ColComment, Width: colWidths[ColComment], Numeric: true},
		{ID: ColCode, Width: colWidths[ColCode], Numeric: true},
		{ID: ColTotal, Width: colWidths[ColTotal], Numeric: true},
	}
	switch mode {
	case ViewByLanguage:
		return append([]Column{
			{ID: ColLanguage, Width: colWidths[ColLanguage], Flexible: true},
		}, numeric...)
	case ViewByDirectory:
		return append([]Column{
			{ID: ColPath, Width: colWidths[ColPath], Flexible: true},
		}, numeric...)
	default:
		return append([]Column{
			{ID: ColPath, Width: colWidths[ColPath], Flexible: true},
			{ID: ColLanguage, Width: colWidths[ColLanguage]},
		}, numeric...)
	}
}

// ColumnIDs returns just the ids of a column set.
func ColumnIDs(cols []Column) []string {
	ids := make([]string, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}
	return ids
}

// FixedSum returns the combined width of all non-flexible columns.
func FixedSum(cols []Column) int {
	sum := 0
	for _, c := range cols {
		if !c.Flexible {
			sum += c.Width
		}
	}
	return sum
}

// Row is one displayable line of the current view. Label is the flexible
// column's raw value (path, directory or language depending on the view);
// comparisons always use these raw strings, never styled output.
type Row struct {
	Label    string
	Language string
	Blank    int
	Comment  int
	Code     int
}

// Total returns blank+comment+code.
func (r Row) Total() int { return r.Blank + r.Comment + r.Code }

// Rows builds the row set for a view mode from a scan result. Flat rows keep
// cloc's emission order; grouped rows keep first-appearance order. That order
// is the tie-break baseline for stable sorts.
func Rows(res *stats.ScanResult, mode ViewMode) []Row {
	switch mode {
	case ViewByLanguage:
		return groupedRows(res.ByLanguage)
	case ViewByDirectory:
		return groupedRows(res.ByDirectory)
	default:
		files := res.FileStats()
		rows := make([]Row, len(files))
		for i, f := range files {
			rows[i] = Row{
				Label:    f.Path,
				Language: f.Language,
				Blank:    f.Blank,
				Comment:  f.Comment,
				Code:     f.Code,
			}
		}
		return rows
	}
}

func groupedRows(g stats.Grouping) []Row {
	rows := make([]Row, 0, len(g.Keys))
	for _, key := range g.Keys {
		stat := g.Stats[key]
		rows = append(rows, Row{
			Label:    key,
			Language: key,
			Blank:    stat.Blank,
			Comment:  stat.Comment,
			Code:     stat.Code,
		})
	}
	return rows
}

// Filter returns the rows whose label contains the given substring. An empty
// filter returns the input unchanged.
func Filter(rows []Row, substr string) []Row {
	if substr == "" {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(r.Label, substr) {
			out = append(out, r)
		}
	}
	return out
}

// ContentWidth returns the natural width of the flexible column: the widest
// rendered label in the row set.
func ContentWidth(rows []Row) int {
	widest := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.Label); w > widest {
			widest = w
		}
	}
	return widest
}

// Ellipsize truncates s to fit in w cells, appending an ellipsis when the
// content does not fit.
func Ellipsize(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}
