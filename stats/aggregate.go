// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: stats/aggregate.go
// Summary: Derives the by-language and by-directory groupings from file stats.

package stats

import "path/filepath"

// Aggregate folds a per-file record set into its two alternate groupings.
// It is a pure function: the sums are commutative, so any iteration order
// over the same inputs yields identical groups.
func Aggregate(files []FileStat) (byLanguage, byDirectory Grouping) {
	byLanguage = Grouping{Stats: make(map[string]GroupedStat)}
	byDirectory = Grouping{Stats: make(map[string]GroupedStat)}

	for _, f := range files {
		accumulate(&byLanguage, f.Language, f)
		accumulate(&byDirectory, parentDir(f.Path), f)
	}
	return byLanguage, byDirectory
}

func accumulate(g *Grouping, key string, f FileStat) {
	stat, ok := g.Stats[key]
	if !ok {
		stat = GroupedStat{Key: key}
		g.Keys = append(g.Keys, key)
	}
	stat.Blank += f.Blank
	stat.Comment += f.Comment
	stat.Code += f.Code
	g.Stats[key] = stat
}

// parentDir returns the parent directory component of path. Root-level
// files group under the empty key rather than ".".
func parentDir(path string) string {
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir
}
