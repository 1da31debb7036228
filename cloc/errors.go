// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cloc/errors.go
// Summary: Typed error taxonomy for probing, invoking and parsing cloc.

package cloc

import "fmt"

// Category classifies a nonzero exit from a real cloc invocation.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryArchiveCreationFailed
	CategoryPermissionDenied
	CategoryToolNotFound
	CategoryTerminatedBySignal
)

func (c Category) String() string {
	switch c {
	case CategoryArchiveCreationFailed:
		return "archive-creation-failed"
	case CategoryPermissionDenied:
		return "permission-denied"
	case CategoryToolNotFound:
		return "tool-not-found"
	case CategoryTerminatedBySignal:
		return "terminated-by-signal"
	default:
		return "unknown"
	}
}

// InvocationError is a categorized nonzero exit from cloc. Signal is only
// set for the terminated-by-signal category.
type InvocationError struct {
	Category Category
	Code     int
	Signal   int
	Detail   string
}

func (e *InvocationError) Error() string {
	return e.Detail
}

// Categorize maps a process exit code to an InvocationError. A negative
// code or a code above 128 means the process died to a signal; the reported
// signal is the negated code, following the shell wait-status convention.
func Categorize(code int) *InvocationError {
	if code < 0 || code > 128 {
		sig := -code
		return &InvocationError{
			Category: CategoryTerminatedBySignal,
			Code:     code,
			Signal:   sig,
			Detail:   fmt.Sprintf("cloc was terminated by signal %d", sig),
		}
	}

	switch code {
	case 25:
		return &InvocationError{
			Category: CategoryArchiveCreationFailed,
			Code:     code,
			Detail:   "failed to create tarfile of files from git, or the target is not a git repository",
		}
	case 126:
		return &InvocationError{
			Category: CategoryPermissionDenied,
			Code:     code,
			Detail:   "permission denied; check the permissions of the working directory",
		}
	case 127:
		return &InvocationError{
			Category: CategoryToolNotFound,
			Code:     code,
			Detail:   "cloc command not found",
		}
	default:
		return &InvocationError{
			Category: CategoryUnknown,
			Code:     code,
			Detail:   fmt.Sprintf("unknown cloc error (exit code %d)", code),
		}
	}
}

// NotInstalledError means the tool never ran: it is either not resolvable on
// PATH or fails the version probe. Distinct from an InvocationError, which
// reports a failure of the real scan attempt.
type NotInstalledError struct {
	Reason error
}

func (e *NotInstalledError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("cloc is not installed: %v", e.Reason)
	}
	return "cloc is not installed"
}

func (e *NotInstalledError) Unwrap() error { return e.Reason }

// MalformedResultError means cloc's output could not be parsed into the
// expected shape. Fatal for the current scan, never retried.
type MalformedResultError struct {
	Reason string
}

func (e *MalformedResultError) Error() string {
	return fmt.Sprintf("malformed cloc output: %s", e.Reason)
}

// InvalidTargetError means the supplied path cannot be scanned. Caught
// before any process is spawned.
type InvalidTargetError struct {
	Path   string
	Reason string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("path %q %s", e.Path, e.Reason)
}
