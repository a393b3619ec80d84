// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides shared helpers for the neovide command-line
// binaries: logger construction and exit-code conventions.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates a structured logger for command-line use. When
// stderr is a terminal, it uses slog.TextHandler for human-readable
// output. When stderr is piped or redirected (scripts, CI), it uses
// slog.JSONHandler for machine-parseable output.
//
// This logger writes to stderr and is therefore unusable once a
// full-screen UI owns the terminal; see NewFileHandler for that case.
func NewLogger(level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

// NewFileHandler opens path for appending and returns a JSON slog
// handler writing to it, along with a closer. This is the logging
// path for the full-screen UI, where stderr would corrupt the
// display.
func NewFileHandler(path string, level slog.Level) (slog.Handler, func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return handler, file.Close, nil
}
