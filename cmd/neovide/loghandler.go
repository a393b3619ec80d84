// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a warning or error from the background
// decoding pipeline to the model for display in the HUD.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// uiLogHandler is a slog.Handler that routes records into the
// bubbletea program as messages. While the UI owns the terminal,
// stderr would corrupt the alternate screen, so warnings surface in
// the HUD instead.
//
// Create the handler before the program exists and call SetProgram
// once it does; records arriving in between are dropped. Handlers
// derived via WithAttrs and WithGroup share the program pointer, so
// one SetProgram call covers all of them.
type uiLogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	prefix  string
}

func newUILogHandler(level slog.Level) *uiLogHandler {
	return &uiLogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives log messages. Safe to call
// from any goroutine.
func (h *uiLogHandler) SetProgram(program *tea.Program) {
	h.program.Store(program)
}

func (h *uiLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *uiLogHandler) Handle(_ context.Context, record slog.Record) error {
	program := h.program.Load()
	if program == nil {
		return nil
	}
	program.Send(logRecordMsg{
		Summary: summarizeRecord(record, h.attrs, h.prefix),
		Level:   record.Level,
	})
	return nil
}

func (h *uiLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *h
	derived.attrs = append(slices.Clone(h.attrs), attrs...)
	return &derived
}

func (h *uiLogHandler) WithGroup(name string) slog.Handler {
	derived := *h
	derived.prefix = h.prefix + name + "."
	return &derived
}

// summarizeRecord builds the one-line HUD text:
// "message (key=value, ...)". Handler-level attrs come first, then the
// record's own. Group names turn into dotted key prefixes.
func summarizeRecord(record slog.Record, attrs []slog.Attr, prefix string) string {
	var parts []string
	for _, attr := range attrs {
		parts = append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
		return true
	})
	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// fanoutHandler sends each record to every underlying handler. A
// record is enabled if any sub-handler wants it.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
