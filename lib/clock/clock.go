// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts time operations for testability. Production code
// injects Real(); tests inject Fake() with deterministic time control.
//
// Capture and replay both depend on wall-clock arithmetic: the trace
// writer timestamps records relative to the capture start, and the
// replayer sleeps between records to reproduce the original pacing.
// Both accept a Clock instead of calling the time package directly so
// tests can drive them without real delays.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time after
	// duration d elapses. Equivalent to time.After. If d <= 0, the
	// channel receives immediately.
	After(d time.Duration) <-chan time.Time

	// Sleep pauses the current goroutine for at least duration d.
	// Equivalent to time.Sleep.
	Sleep(d time.Duration)
}
