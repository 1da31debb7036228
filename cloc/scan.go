// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cloc/scan.go
// Summary: High-level scan orchestration: probe, invoke, parse, deliver.

package cloc

import (
	"context"
	"os"
	"time"

	"cloctui/stats"
)

// Scanner runs complete scans. The zero value scans with cloc from PATH,
// the current directory as working directory and the default timeout.
type Scanner struct {
	Base    string
	WorkDir string
	Timeout time.Duration
}

// Outcome is what a finished scan delivers: exactly one of Result or Err.
type Outcome struct {
	Result *stats.ScanResult
	Err    error
}

// Scan probes the tool, runs it against target and parses the output. The
// context bounds the whole invocation; cancellation kills the process and
// no partial result is ever returned.
func (s Scanner) Scan(ctx context.Context, target string) (*stats.ScanResult, error) {
	if err := Probe(s.base()); err != nil {
		return nil, err
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := NewCommand(target, s.WorkDir, timeout)
	cmd.Base = s.base()

	started := time.Now()
	raw, err := cmd.Execute(ctx)
	if err != nil {
		debugLog.Printf("scan of %q failed after %v: %v", target, time.Since(started), err)
		return nil, err
	}
	debugLog.Printf("scan of %q produced %d bytes in %v", target, len(raw), time.Since(started))

	return Parse(raw)
}

// Start launches Scan on its own goroutine and returns a channel that
// delivers the single outcome. The interactive display stays responsive
// while cloc runs; discarding the UI cancels ctx, which tears the process
// down and discards the result.
func (s Scanner) Start(ctx context.Context, target string) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		result, err := s.Scan(ctx, target)
		if ctx.Err() != nil {
			// Torn down while running: nothing is published.
			return
		}
		out <- Outcome{Result: result, Err: err}
	}()
	return out
}

func (s Scanner) base() string {
	if s.Base == "" {
		return "cloc"
	}
	return s.Base
}

// ValidateTarget checks that a scan target exists and is a directory. This
// runs before any process is spawned.
func ValidateTarget(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &InvalidTargetError{Path: path, Reason: "does not exist"}
	}
	if !info.IsDir() {
		return &InvalidTargetError{Path: path, Reason: "is not a directory"}
	}
	return nil
}
