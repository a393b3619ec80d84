// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

// Package session owns the connection to the editor process: spawning
// or dialing it, attaching as an external UI, translating its redraw
// notifications into events, and feeding keyboard input back.
//
// The session is the live counterpart of a trace replayer — both
// deliver event batches on a channel, and the frontend consumes them
// through the same Source interface without knowing which one it has.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/neovim/go-client/nvim"

	"github.com/darcyparker/neovide/lib/codec"
	"github.com/darcyparker/neovide/redraw"
	"github.com/darcyparker/neovide/trace"
)

// eventBuffer is the capacity of the event channel. A slow frontend
// fills the buffer first; once it is full the RPC loop blocks, which
// backpressures the editor instead of growing memory without bound.
const eventBuffer = 64

// Config holds configuration for starting a Session.
type Config struct {
	// Command is the editor binary to spawn. Empty means "nvim".
	// Ignored when Server is set.
	Command string

	// Args are passed to Command. "--embed" is appended when absent,
	// since the session speaks RPC over the child's stdio.
	Args []string

	// Server is the address of a running editor instance to attach
	// to instead of spawning one, in the editor's own address syntax
	// (a socket path or host:port).
	Server string

	// Columns and Rows are the initial grid dimensions. Zero values
	// default to 80x24; the frontend resizes to the real terminal
	// size as soon as it knows it.
	Columns int
	Rows    int

	// Capture, if non-nil, records every notification before it is
	// decoded. Payloads the decoder rejects still land in the trace,
	// which is the point: a capture of a decode bug must contain the
	// bytes that triggered it.
	Capture *trace.Writer

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Session is a live connection to an editor, attached as an external
// UI. Event batches arrive on Events in notification order.
type Session struct {
	vim     *nvim.Nvim
	decoder *redraw.Decoder
	capture *trace.Writer
	logger  *slog.Logger

	events chan []redraw.Event
	stop   chan struct{}
	done   chan struct{}

	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

// Start spawns or dials the editor, registers the redraw handler, and
// attaches as an external UI with line-grid events enabled. The
// context bounds the spawn and the child process lifetime.
func Start(ctx context.Context, config Config) (*Session, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	columns, rows := config.Columns, config.Rows
	if columns <= 0 {
		columns = 80
	}
	if rows <= 0 {
		rows = 24
	}

	var (
		vim *nvim.Nvim
		err error
	)
	if config.Server != "" {
		vim, err = nvim.Dial(config.Server,
			nvim.DialContext(ctx),
			nvim.DialServe(false),
		)
		if err != nil {
			return nil, fmt.Errorf("dialing editor at %q: %w", config.Server, err)
		}
	} else {
		command := config.Command
		if command == "" {
			command = "nvim"
		}
		args := slices.Clone(config.Args)
		if !slices.Contains(args, "--embed") {
			args = append(args, "--embed")
		}
		vim, err = nvim.NewChildProcess(
			nvim.ChildProcessCommand(command),
			nvim.ChildProcessArgs(args...),
			nvim.ChildProcessContext(ctx),
			nvim.ChildProcessServe(false),
		)
		if err != nil {
			return nil, fmt.Errorf("spawning editor %q: %w", command, err)
		}
	}

	s := &Session{
		vim:     vim,
		decoder: redraw.NewDecoder(logger),
		capture: config.Capture,
		logger:  logger,
		events:  make(chan []redraw.Event, eventBuffer),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	// The handler must be in place before the RPC loop starts:
	// notifications that arrive with no handler are dropped, and the
	// editor sends the first redraw immediately after attach.
	if err := vim.RegisterHandler("redraw", s.handleRedraw); err != nil {
		_ = vim.Close()
		return nil, fmt.Errorf("registering redraw handler: %w", err)
	}
	go s.serve()

	options := map[string]interface{}{
		"rgb":          true,
		"ext_linegrid": true,
	}
	if err := vim.AttachUI(columns, rows, options); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("attaching to editor: %w", err)
	}
	return s, nil
}

// Events returns the channel event batches arrive on. The channel is
// closed when the session ends.
func (s *Session) Events() <-chan []redraw.Event { return s.events }

// Done closes when the RPC loop has exited, whether by Close or by
// the editor going away.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err returns the error that ended the RPC loop, if any. A clean
// Close reports nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Input forwards keys to the editor in its key notation. It returns
// the number of bytes the editor consumed.
func (s *Session) Input(keys string) (int, error) {
	return s.vim.Input(keys)
}

// Resize asks the editor to resize the global grid. The editor
// answers with grid_resize and a repaint, so the screen state catches
// up through the normal event path.
func (s *Session) Resize(columns, rows int) error {
	return s.vim.TryResizeUI(columns, rows)
}

// Close shuts the session down and waits for the RPC loop to exit.
// Safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stop)
		err = s.vim.Close()
		<-s.done
	})
	return err
}

// serve runs the RPC loop. It owns the events channel: the channel
// closes exactly when the loop exits, so consumers see a closed
// channel instead of a silent stall when the editor dies.
func (s *Session) serve() {
	defer close(s.done)
	defer close(s.events)
	if err := s.vim.Serve(); err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		s.logger.Error("editor session ended", "error", err)
	}
}

// handleRedraw is invoked by the RPC loop with the batches of one
// redraw notification. Capture happens before decoding so that traces
// preserve payloads the decoder rejects.
func (s *Session) handleRedraw(updates ...[]interface{}) {
	payload := make([]any, len(updates))
	for i, update := range updates {
		payload[i] = update
	}

	if s.capture != nil {
		raw, err := codec.Marshal(payload)
		if err != nil {
			s.logger.Error("encoding capture record", "error", err)
		} else if err := s.capture.Record("redraw", raw); err != nil {
			s.logger.Error("recording capture", "error", err)
		}
	}

	events, err := s.decoder.DecodeNotification("redraw", payload)
	if err != nil {
		s.logger.Error("decoding redraw notification", "error", err)
		return
	}
	if len(events) == 0 {
		return
	}

	select {
	case s.events <- events:
	case <-s.stop:
	}
}
