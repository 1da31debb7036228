// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: table/sort.go
// Summary: Tri-state per-column sort protocol and row ordering.

package table

import (
	"fmt"
	"sort"
)

// Phase is a column's position in the sort cycle. Repeated selections of the
// same column toggle between ascending and descending; a column only returns
// to unsorted when a different column is selected.
type Phase int

const (
	PhaseUnsorted Phase = iota
	PhaseAscending
	PhaseDescending
)

// Indicator is the glyph shown next to the column title.
func (p Phase) Indicator() string {
	switch p {
	case PhaseAscending:
		return "↑"
	case PhaseDescending:
		return "↓"
	default:
		return "-"
	}
}

// SortState tracks the phase of every column in the currently displayed
// view. At most one column is ever in a non-unsorted phase. Each table view
// owns its own SortState; the state is never shared between views.
type SortState struct {
	phases map[string]Phase
}

// NewSortState creates a state with every column unsorted.
func NewSortState(columns []string) *SortState {
	s := &SortState{phases: make(map[string]Phase, len(columns))}
	for _, id := range columns {
		s.phases[id] = PhaseUnsorted
	}
	return s
}

// Select applies the transition for choosing a column and returns its new
// phase. Selecting an unsorted column resets every other column first, so
// the mutual-exclusivity invariant holds after any sequence of selections.
// Selecting a column that is not part of the current view is a programming
// error and panics.
func (s *SortState) Select(column string) Phase {
	current, ok := s.phases[column]
	if !ok {
		panic(fmt.Sprintf("table: sort on unknown column %q", column))
	}

	switch current {
	case PhaseUnsorted:
		for id := range s.phases {
			s.phases[id] = PhaseUnsorted
		}
		s.phases[column] = PhaseAscending
	case PhaseAscending:
		s.phases[column] = PhaseDescending
	case PhaseDescending:
		s.phases[column] = PhaseAscending
	default:
		panic(fmt.Sprintf("table: column %q in impossible phase %d", column, current))
	}
	return s.phases[column]
}

// Phase returns the current phase of a column, PhaseUnsorted if the column
// is not part of the view.
func (s *SortState) Phase(column string) Phase {
	return s.phases[column]
}

// Active returns the single sorted column and its phase, or ("", unsorted)
// when no column is sorted.
func (s *SortState) Active() (string, Phase) {
	for id, p := range s.phases {
		if p != PhaseUnsorted {
			return id, p
		}
	}
	return "", PhaseUnsorted
}

// Has reports whether a column is part of the tracked view.
func (s *SortState) Has(column string) bool {
	_, ok := s.phases[column]
	return ok
}

// Restrict rebuilds the state for a new column set. Columns that survive the
// view switch keep their phase; dropped columns lose their entry, and newly
// appearing columns start unsorted.
func (s *SortState) Restrict(columns []string) {
	next := make(map[string]Phase, len(columns))
	for _, id := range columns {
		next[id] = s.phases[id]
	}
	s.phases = next
}

// Sort orders rows in place for the given column and phase, stably: rows
// that compare equal keep their original order. The ascending phase shows
// the largest value first, so the first press on a count column surfaces
// the biggest contributors; descending shows the smallest first.
func Sort(rows []Row, column string, phase Phase) {
	if phase == PhaseUnsorted {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if phase == PhaseAscending {
			return less(rows[j], rows[i], column)
		}
		return less(rows[i], rows[j], column)
	})
}

// less compares two rows on a column in natural ascending order. Text
// columns compare case-sensitively on the raw label.
func less(a, b Row, column string) bool {
	switch column {
	case ColPath:
		return a.Label < b.Label
	case ColLanguage:
		return a.Language < b.Language
	case ColBlank:
		return a.Blank < b.Blank
	case ColComment:
		return a.Comment < b.Comment
	case ColCode:
		return a.Code < b.Code
	case ColTotal:
		return a.Total() < b.Total()
	default:
		panic(fmt.Sprintf("table: compare on unknown column %q", column))
	}
}
