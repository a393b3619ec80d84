// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/darcyparker/neovide/lib/version"
)

// HUD bar styles. ANSI 256-color codes for broad terminal
// compatibility.
var (
	hudBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	hudWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("220")) // amber

	hudErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("196")) // red
)

// hudNotice is the most recent warning or error from the decoding
// pipeline, surfaced in the HUD bar until it fades.
type hudNotice struct {
	Summary string
	Level   slog.Level
}

// renderHUD paints the diagnostic bar: version, grid size, stream
// counters, and the latest pipeline notice.
func (m model) renderHUD() string {
	parts := []string{
		"neovide " + version.Short(),
		fmt.Sprintf("%dx%d", m.width, m.height),
		fmt.Sprintf("batches %d", m.batches),
		fmt.Sprintf("events %d", m.events),
	}
	if m.replayLabel != "" {
		parts = append(parts, "replay "+m.replayLabel)
	}

	bar := hudBarStyle.Render(" " + strings.Join(parts, " │ ") + " ")
	if m.notice.Summary != "" {
		style := hudWarnStyle
		if m.notice.Level >= slog.LevelError {
			style = hudErrorStyle
		}
		bar = lipgloss.JoinHorizontal(lipgloss.Top, bar, style.Render(" "+m.notice.Summary+" "))
	}
	if m.width > 0 {
		bar = lipgloss.NewStyle().MaxWidth(m.width).Render(bar)
	}
	return bar
}

// overlayHUD replaces the frame's top row with the HUD bar. The bar is
// a debugging aid, not chrome; hiding one grid row while it is up is
// an acceptable trade for not compositing styled text.
func overlayHUD(frame, bar string) string {
	if frame == "" {
		return bar
	}
	_, rest, found := strings.Cut(frame, "\n")
	if !found {
		return bar
	}
	return bar + "\n" + rest
}
