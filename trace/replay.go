// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/darcyparker/neovide/lib/clock"
	"github.com/darcyparker/neovide/lib/codec"
	"github.com/darcyparker/neovide/redraw"
)

// ReplayOptions configures a Replayer. The zero value replays at the
// original pacing with the real clock and the default logger.
type ReplayOptions struct {
	// Speed is the playback rate multiplier: 2.0 halves every gap
	// between records, 0.5 doubles it. Zero or negative means 1.0.
	Speed float64

	// Clock drives the pacing. Nil means the real clock; tests
	// inject a fake to replay without real delays.
	Clock clock.Clock

	// Logger receives decode diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// Replayer decodes a trace and delivers its event batches on a
// channel, paced by the recorded timestamps. It satisfies the same
// event-source shape as a live session, so the frontend cannot tell
// replayed traffic from live traffic.
type Replayer struct {
	meta   Meta
	events chan []redraw.Event
	done   chan struct{}
	stop   chan struct{}

	stopOnce sync.Once

	mu  sync.Mutex
	err error
}

// NewReplayer validates the trace header and starts replaying in a
// background goroutine. Batches arrive on Events; Done closes after
// the last record (or a read error, reported by Err).
func NewReplayer(in io.Reader, options ReplayOptions) (*Replayer, error) {
	reader, err := NewReader(in)
	if err != nil {
		return nil, err
	}

	speed := options.Speed
	if speed <= 0 {
		speed = 1.0
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Replayer{
		meta:   reader.Meta,
		events: make(chan []redraw.Event),
		done:   make(chan struct{}),
		stop:   make(chan struct{}),
	}
	go r.run(reader, clk, speed, logger)
	return r, nil
}

// Meta returns the capture metadata from the trace header.
func (r *Replayer) Meta() Meta { return r.meta }

// Events returns the channel replayed batches arrive on. The channel
// is closed after the last record.
func (r *Replayer) Events() <-chan []redraw.Event { return r.events }

// Done closes when replay has finished, whether by reaching the end
// of the trace, hitting a read error, or being closed.
func (r *Replayer) Done() <-chan struct{} { return r.done }

// Err returns the read error that ended replay early, if any.
func (r *Replayer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close stops replay. It is safe to call concurrently with reads
// from Events and more than once.
func (r *Replayer) Close() error {
	r.stopOnce.Do(func() { close(r.stop) })
	return nil
}

func (r *Replayer) run(reader *Reader, clk clock.Clock, speed float64, logger *slog.Logger) {
	defer close(r.done)
	defer close(r.events)

	decoder := redraw.NewDecoder(logger)
	start := clk.Now()

	for {
		record, err := reader.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			r.mu.Lock()
			r.err = err
			r.mu.Unlock()
			logger.Error("reading trace", "error", err)
			return
		}

		// Wait until the record's offset, scaled by speed. A replay
		// that falls behind (slow consumer) does not sleep, so it
		// catches up instead of drifting further.
		target := start.Add(time.Duration(float64(record.At)/speed) * time.Microsecond)
		if wait := target.Sub(clk.Now()); wait > 0 {
			select {
			case <-clk.After(wait):
			case <-r.stop:
				return
			}
		}

		var payload []any
		if err := codec.Unmarshal(record.Payload, &payload); err != nil {
			logger.Warn("undecodable trace payload", "method", record.Method, "error", err)
			continue
		}
		events, err := decoder.DecodeNotification(record.Method, payload)
		if err != nil {
			logger.Warn("unparsed trace notification", "method", record.Method, "error", err)
			continue
		}
		if len(events) == 0 {
			continue
		}

		select {
		case r.events <- events:
		case <-r.stop:
			return
		}
	}
}
