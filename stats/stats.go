// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stats/stats.go
// Summary: Data model for one cloc scan: per-file, summary and header records.

package stats

// FileStat holds the counts reported by cloc for a single file.
// The total line count is always derived, never stored.
type FileStat struct {
	Path     string
	Language string
	Blank    int
	Comment  int
	Code     int
}

// Total returns blank+comment+code.
func (f FileStat) Total() int { return f.Blank + f.Comment + f.Code }

// SummaryStat is the aggregate cloc reports over a whole scan.
type SummaryStat struct {
	Blank     int
	Comment   int
	Code      int
	FileCount int
}

// Total returns blank+comment+code.
func (s SummaryStat) Total() int { return s.Blank + s.Comment + s.Code }

// RunHeader is immutable metadata about one cloc invocation.
type RunHeader struct {
	ToolVersion    string
	ElapsedSeconds float64
	FileCount      int
	LineCount      int
}

// GroupedStat is one aggregated row of a grouped view. Key is a language
// name or a directory path; the display name of the row IS the key.
type GroupedStat struct {
	Key     string
	Blank   int
	Comment int
	Code    int
}

// Total returns blank+comment+code.
func (g GroupedStat) Total() int { return g.Blank + g.Comment + g.Code }

// Grouping is a keyed set of GroupedStats plus the first-appearance order
// of the keys. The order only matters for tie-breaking during sorts; the
// sums themselves are order-independent.
type Grouping struct {
	Stats map[string]GroupedStat
	Keys  []string
}

// ScanResult owns everything produced by one scan. It is created atomically
// once invocation and parsing complete and is immutable afterwards; a new
// scan replaces it wholesale.
type ScanResult struct {
	Header      RunHeader
	Summary     SummaryStat
	Files       map[string]FileStat
	ByLanguage  Grouping
	ByDirectory Grouping

	order []string
}

// NewScanResult assembles a ScanResult from parsed records. The files slice
// carries the order in which cloc emitted them; that order is preserved for
// the flat view and used for sort tie-breaking.
func NewScanResult(header RunHeader, summary SummaryStat, files []FileStat) *ScanResult {
	res := &ScanResult{
		Header:  header,
		Summary: summary,
		Files:   make(map[string]FileStat, len(files)),
		order:   make([]string, 0, len(files)),
	}
	for _, f := range files {
		if _, ok := res.Files[f.Path]; !ok {
			res.order = append(res.order, f.Path)
		}
		res.Files[f.Path] = f
	}
	res.ByLanguage, res.ByDirectory = Aggregate(res.FileStats())
	return res
}

// FileStats returns the per-file records in their original emission order.
func (r *ScanResult) FileStats() []FileStat {
	out := make([]FileStat, 0, len(r.order))
	for _, path := range r.order {
		out = append(out, r.Files[path])
	}
	return out
}
