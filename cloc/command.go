// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cloc/command.go
// Summary: Builds and executes the external cloc process.

package cloc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"syscall"
	"time"
)

// DefaultTimeout bounds both the whole invocation and cloc's own per-file
// processing timeout.
const DefaultTimeout = 15 * time.Second

// Option is a named option with a value, e.g. --timeout 15.
type Option struct {
	Name  string
	Value string
}

// Command is the full description of one cloc invocation. It is populated
// once and never mutated; Execute can be called from any goroutine.
type Command struct {
	Base    string
	Flags   []string
	Options []Option
	Target  string
	Dir     string
}

// NewCommand builds the invocation used for a scan: per-file detail,
// machine-readable JSON output and a processing timeout, against a single
// target path.
func NewCommand(target, workDir string, timeout time.Duration) Command {
	secs := int(timeout / time.Second)
	if secs <= 0 {
		secs = int(DefaultTimeout / time.Second)
	}
	return Command{
		Base:  "cloc",
		Flags: []string{"--by-file", "--json"},
		Options: []Option{
			{Name: "--timeout", Value: strconv.Itoa(secs)},
		},
		Target: target,
		Dir:    workDir,
	}
}

// Args returns the argument vector after the base command.
func (c Command) Args() []string {
	args := make([]string, 0, len(c.Flags)+2*len(c.Options)+1)
	args = append(args, c.Flags...)
	for _, opt := range c.Options {
		args = append(args, opt.Name, opt.Value)
	}
	args = append(args, c.Target)
	return args
}

// Execute runs the command and returns its raw stdout. A nonzero exit comes
// back as an *InvocationError; cancelling the context kills the process and
// surfaces as a terminated invocation.
func (c Command) Execute(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Base, c.Args()...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	debugLog.Printf("exec: %s %v (dir=%s)", c.Base, c.Args(), c.Dir)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			invErr := Categorize(waitCode(exitErr))
			if detail := bytes.TrimSpace(stderr.Bytes()); len(detail) > 0 {
				invErr.Detail = fmt.Sprintf("%s: %s", invErr.Detail, detail)
			}
			return nil, invErr
		}
		if ctx.Err() != nil {
			// Timed out or torn down before the process even started.
			return nil, Categorize(-int(syscall.SIGKILL))
		}
		// The binary vanished between probe and run.
		return nil, Categorize(127)
	}
	return stdout.Bytes(), nil
}

// waitCode recovers the shell-style exit code: -signal for a signal death,
// the plain exit code otherwise.
func waitCode(exitErr *exec.ExitError) int {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal())
	}
	return exitErr.ExitCode()
}

// Probe verifies the tool is resolvable on PATH and minimally runnable via a
// version check. It never performs a real scan; a failure here is reported
// as NotInstalledError, independent of any later invocation failure.
func Probe(base string) error {
	if base == "" {
		base = "cloc"
	}
	if _, err := exec.LookPath(base); err != nil {
		return &NotInstalledError{Reason: err}
	}
	cmd := exec.Command(base, "--version")
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return &NotInstalledError{Reason: err}
	}
	return nil
}
