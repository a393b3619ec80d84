// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

// Package editor defines the shared visual vocabulary of the UI: colors,
// highlight styles, and cursor modes. These are the types the redraw
// decoder produces and the screen and render layers consume. The package
// has no protocol knowledge of its own.
package editor

// Color is a normalized RGBA color. Every channel is in [0, 1].
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

// Colors is a foreground/background/special triple. A nil channel means
// the channel is not set and the consumer falls back to the default
// palette. Special is the accent used for underlines and undercurls.
type Colors struct {
	Foreground *Color
	Background *Color
	Special    *Color
}

// Style is one highlight definition: the colors and text decorations
// shared by every cell that references its highlight id.
type Style struct {
	Colors        Colors
	Reverse       bool
	Italic        bool
	Bold          bool
	Strikethrough bool
	Underline     bool
	Undercurl     bool

	// Blend is the background transparency in percent, 0 (opaque)
	// through 100 (fully transparent).
	Blend uint8
}

// NewStyle returns a style carrying colors and no text decorations.
func NewStyle(colors Colors) Style {
	return Style{Colors: colors}
}
