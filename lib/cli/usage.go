// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// UsageError marks an error caused by bad invocation: unknown flags,
// conflicting options, malformed values. The binaries exit with code 2
// for usage errors and code 1 for everything else, so scripts can tell
// "you called me wrong" from "something failed".
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode returns 2, the conventional exit code for usage errors.
func (e *UsageError) ExitCode() int { return 2 }

// Usagef creates a UsageError with a formatted message.
func Usagef(format string, args ...any) *UsageError {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}
