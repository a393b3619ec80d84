// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package session

import "github.com/darcyparker/neovide/redraw"

// Source is the stream of event batches a frontend consumes. A live
// Session and a trace replayer both satisfy it, so the frontend
// renders replayed traffic through exactly the code paths it uses for
// live traffic.
type Source interface {
	// Events returns the batch channel. It is closed when the source
	// is exhausted or shut down.
	Events() <-chan []redraw.Event

	// Err reports why the event stream ended. It is nil before the
	// Events channel closes, and stays nil for a clean end.
	Err() error

	// Close shuts the source down. Safe to call more than once.
	Close() error
}
