// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"path/filepath"
	"testing"
	"time"

	"cloctui/stats"
)

func testResult(code int) *stats.ScanResult {
	return stats.NewScanResult(
		stats.RunHeader{ToolVersion: "2.04", ElapsedSeconds: 0.42, FileCount: 3, LineCount: code + 12},
		stats.SummaryStat{FileCount: 3, Blank: 4, Comment: 8, Code: code},
		[]stats.FileStat{{Path: "a.go", Language: "Go", Blank: 4, Comment: 8, Code: code}},
	)
}

func TestRecordAndRecent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), 10)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := store.Record("/proj/a", started, testResult(100)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Record("/proj/b", started.Add(time.Hour), testResult(200)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entries, err := store.Recent(5)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Target != "/proj/b" {
		t.Errorf("newest target = %q, want /proj/b", entries[0].Target)
	}
	if entries[0].Code != 200 || entries[1].Code != 100 {
		t.Errorf("codes = %d, %d, want 200, 100", entries[0].Code, entries[1].Code)
	}
	if entries[0].ToolVersion != "2.04" {
		t.Errorf("tool version = %q, want 2.04", entries[0].ToolVersion)
	}
	if !entries[1].StartedAt.Equal(started) {
		t.Errorf("started at = %v, want %v", entries[1].StartedAt, started)
	}
}

func TestRecordPrunesBeyondLimit(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), 3)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	base := time.Now()
	for i := 0; i < 6; i++ {
		if err := store.Record("/proj", base.Add(time.Duration(i)*time.Minute), testResult(i)); err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	// The three newest survive.
	if entries[0].Code != 5 || entries[2].Code != 3 {
		t.Errorf("retained codes = %d..%d, want 5..3", entries[0].Code, entries[2].Code)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path, 10)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if err := store.Record("/proj", time.Now(), testResult(1)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	store.Close()

	store, err = Open(path, 10)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer store.Close()

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1 after reopen", len(entries))
	}
}

func TestRecentEmptyStore(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), 10)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}
