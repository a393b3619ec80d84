// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"bytes"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/darcyparker/neovide/lib/clock"
	"github.com/darcyparker/neovide/lib/codec"
	"github.com/darcyparker/neovide/redraw"
	"github.com/darcyparker/neovide/trace"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testSession builds a Session around the notification handler only;
// no editor process is involved.
func testSession(capture *trace.Writer) *Session {
	logger := testLogger()
	return &Session{
		decoder: redraw.NewDecoder(logger),
		capture: capture,
		logger:  logger,
		events:  make(chan []redraw.Event, 4),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func TestHandleRedrawDeliversEvents(t *testing.T) {
	t.Parallel()
	s := testSession(nil)

	s.handleRedraw(
		[]interface{}{"grid_resize", []interface{}{1, 80, 24}},
		[]interface{}{"flush", []interface{}{}},
	)

	want := []redraw.Event{
		redraw.Resize{Grid: 1, Width: 80, Height: 24},
		redraw.Flush{},
	}
	select {
	case got := <-s.events:
		if !reflect.DeepEqual(got, want) {
			t.Errorf("events = %#v, want %#v", got, want)
		}
	default:
		t.Fatal("no events delivered")
	}
}

func TestHandleRedrawMalformedNotificationDropped(t *testing.T) {
	t.Parallel()
	s := testSession(nil)

	// A malformed occurrence of a recognized event aborts the whole
	// notification; nothing reaches the channel.
	s.handleRedraw(
		[]interface{}{"flush", []interface{}{}},
		[]interface{}{"grid_resize", []interface{}{1, "eighty", 24}},
	)

	select {
	case got := <-s.events:
		t.Fatalf("events delivered from malformed notification: %#v", got)
	default:
	}
}

func TestHandleRedrawCapturesUndecodablePayload(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	writer, err := trace.NewWriter(&buffer, trace.CompressionNone, trace.Meta{}, clock.Fake(epoch))
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	s := testSession(writer)
	s.handleRedraw([]interface{}{"grid_resize", []interface{}{1, "eighty", 24}})
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The decoder rejected the notification, but the capture must
	// still hold it byte for byte.
	reader, err := trace.NewReader(bytes.NewReader(buffer.Bytes()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	record, err := reader.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if record.Method != "redraw" {
		t.Errorf("Method = %q, want %q", record.Method, "redraw")
	}

	var payload []any
	if err := codec.Unmarshal(record.Payload, &payload); err != nil {
		t.Fatalf("Unmarshal payload: %v", err)
	}
	want := []any{[]any{"grid_resize", []any{uint64(1), "eighty", uint64(24)}}}
	if !reflect.DeepEqual(payload, want) {
		t.Errorf("captured payload = %#v, want %#v", payload, want)
	}

	if _, err := reader.Next(); err != io.EOF {
		t.Fatalf("Next = %v, want io.EOF", err)
	}
}

func TestHandleRedrawReturnsAfterStop(t *testing.T) {
	t.Parallel()

	logger := testLogger()
	s := &Session{
		decoder: redraw.NewDecoder(logger),
		logger:  logger,
		events:  make(chan []redraw.Event), // unbuffered, nobody reading
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	close(s.stop)

	finished := make(chan struct{})
	go func() {
		s.handleRedraw([]interface{}{"flush", []interface{}{}})
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("handleRedraw blocked after stop")
	}
}

func TestSessionImplementsSource(t *testing.T) {
	t.Parallel()
	var _ Source = (*Session)(nil)
}

func TestReplayerImplementsSource(t *testing.T) {
	t.Parallel()
	var _ Source = (*trace.Replayer)(nil)
}
