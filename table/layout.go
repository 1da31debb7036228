// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: table/layout.go
// Summary: Flexible-column width computation for the available terminal width.

package table

// SummaryOffset aligns the summary bar's label cell with the table's
// flexible column (accounts for the table border and padding of the cell).
const SummaryOffset = 3

// Layout carries the inputs of one width computation. Padding is applied on
// both sides of every column.
type Layout struct {
	Total    int // available terminal width
	FixedSum int // combined width of the fixed columns
	Padding  int // per-side cell padding
	Columns  int // total column count, fixed plus flexible
	Min      int // minimum width of the flexible column
	Content  int // natural width of the flexible column's widest value
}

// WidthUpdate is emitted to the presentation layer whenever the flexible
// column is resized; Summary is the matching width for the summary bar's
// first cell.
type WidthUpdate struct {
	Flex    int
	Summary int
}

// FlexWidth resolves the flexible column width. The column auto-fits its
// content when there is room, is clamped to the remaining space when the
// content overflows, and never drops below the configured minimum.
func (l Layout) FlexWidth() int {
	available := l.Total - l.FixedSum - l.Padding*2*l.Columns
	switch {
	case l.Content > available:
		if available < l.Min {
			return l.Min
		}
		return available
	case l.Content < l.Min:
		return l.Min
	default:
		return l.Content
	}
}

// Compute resolves the flexible width and derives the summary event. It is
// re-run on every terminal resize and every grouping-mode switch.
func (l Layout) Compute() WidthUpdate {
	flex := l.FlexWidth()
	return WidthUpdate{Flex: flex, Summary: flex + SummaryOffset}
}
