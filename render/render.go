// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

// Package render paints accumulated screen state as styled terminal
// lines. The renderer walks the global grid cell by cell, carrying a
// pen: style sequences are emitted only where a cell's resolved style
// differs from the pen, so runs of identically-styled cells cost one
// escape sequence, not one per cell.
package render

import (
	"strings"

	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/darcyparker/neovide/editor"
	"github.com/darcyparker/neovide/screen"
)

// Underline styles by their SGR 4:n parameter.
const (
	underlineNone   uv.Underline = 0
	underlineSingle uv.Underline = 1
	underlineCurly  uv.Underline = 3
)

// Options configures a Renderer.
type Options struct {
	// Profile is the terminal's color capability. Every color passes
	// through it, so a 256-color terminal gets its nearest palette
	// entries instead of raw RGB sequences it would ignore.
	Profile colorprofile.Profile
}

// Renderer turns screen state into ANSI-styled text.
type Renderer struct {
	profile colorprofile.Profile
}

// New returns a Renderer for the given options.
func New(options Options) *Renderer {
	return &Renderer{profile: normalizeProfile(options.Profile)}
}

func normalizeProfile(profile colorprofile.Profile) colorprofile.Profile {
	switch profile {
	case colorprofile.TrueColor, colorprofile.ANSI256, colorprofile.ANSI, colorprofile.ASCII, colorprofile.NoTTY:
		return profile
	default:
		return colorprofile.TrueColor
	}
}

// Profile returns the color profile frames are rendered for.
func (r *Renderer) Profile() colorprofile.Profile { return r.profile }

// Frame renders the global grid as newline-separated styled lines.
// Call it on Flush; between flushes the state is torn and must not be
// painted.
func (r *Renderer) Frame(state *screen.State) string {
	grid := state.Grid(screen.GlobalGrid)
	if grid == nil || grid.Width() <= 0 || grid.Height() <= 0 {
		return ""
	}

	cursorRow, cursorColumn := -1, -1
	if state.CursorVisible() && state.Cursor.Grid == screen.GlobalGrid {
		cursorRow = int(state.Cursor.Row)
		cursorColumn = int(state.Cursor.Column)
	}
	mode := state.CurrentCursorMode()

	var b strings.Builder
	b.Grow(grid.Width() * grid.Height())
	for row := 0; row < grid.Height(); row++ {
		column := cursorColumn
		if row != cursorRow {
			column = -1
		}
		r.renderRow(&b, state, grid, row, column, mode)
		if row < grid.Height()-1 {
			_ = b.WriteByte('\n')
		}
	}
	return b.String()
}

func (r *Renderer) renderRow(b *strings.Builder, state *screen.State, grid *screen.Grid, row, cursorColumn int, mode editor.CursorMode) {
	var pen uv.Style
	for column := 0; column < grid.Width(); column++ {
		cell := grid.CellAt(column, row)
		if cell.Text == "" {
			// Continuation half of a double-width character; the
			// glyph in the previous cell already spans it.
			continue
		}
		style := r.cellStyle(state, cell.HighlightID)
		if column == cursorColumn {
			r.overlayCursor(&style, state, mode)
		}
		applyStyle(b, &pen, style)
		b.WriteString(cell.Text)
	}
	if !pen.IsZero() {
		b.WriteString(ansi.ResetStyle)
	}
}

// cellStyle resolves a highlight id against the default palette into
// a concrete terminal style. Reverse swaps the resolved colors rather
// than setting the terminal's reverse attribute, so a reversed cell
// over an unset channel still picks up the right default.
func (r *Renderer) cellStyle(state *screen.State, highlightID uint64) uv.Style {
	style := state.HighlightStyle(highlightID)
	defaults := state.DefaultColors

	foreground := firstColor(style.Colors.Foreground, defaults.Foreground)
	background := firstColor(style.Colors.Background, defaults.Background)
	special := firstColor(style.Colors.Special, defaults.Special)
	if style.Reverse {
		foreground, background = background, foreground
	}

	var out uv.Style
	out.Fg = r.convert(foreground)
	out.Bg = r.convert(background)
	if style.Bold {
		out.Attrs |= uv.AttrBold
	}
	if style.Italic {
		out.Attrs |= uv.AttrItalic
	}
	if style.Strikethrough {
		out.Attrs |= uv.AttrStrikethrough
	}
	switch {
	case style.Undercurl:
		out.Underline = underlineCurly
		out.UnderlineColor = r.convert(special)
	case style.Underline:
		out.Underline = underlineSingle
		out.UnderlineColor = r.convert(special)
	}
	return out
}

// overlayCursor restyles the cell under the cursor. A mode that names
// a cursor highlight paints with it; otherwise the shape is emulated
// with what a character cell can do.
func (r *Renderer) overlayCursor(style *uv.Style, state *screen.State, mode editor.CursorMode) {
	if mode.StyleID != nil && *mode.StyleID != 0 {
		*style = r.cellStyle(state, *mode.StyleID)
		return
	}
	switch mode.Shape {
	case editor.CursorShapeHorizontal:
		if style.Underline == underlineNone {
			style.Underline = underlineSingle
		}
	default:
		// Block and vertical both paint reversed; a cell cannot
		// show a partial-width bar.
		style.Attrs |= uv.AttrReverse
	}
}

func (r *Renderer) convert(c *editor.Color) ansi.Color {
	if c == nil {
		return nil
	}
	return r.profile.Convert(ansi.RGBColor{
		R: channelByte(c.R),
		G: channelByte(c.G),
		B: channelByte(c.B),
	})
}

func firstColor(colors ...*editor.Color) *editor.Color {
	for _, c := range colors {
		if c != nil {
			return c
		}
	}
	return nil
}

func channelByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

func applyStyle(b *strings.Builder, pen *uv.Style, next uv.Style) {
	if next.IsZero() {
		if !pen.IsZero() {
			b.WriteString(ansi.ResetStyle)
			*pen = uv.Style{}
		}
		return
	}
	if next.Equal(pen) {
		return
	}
	b.WriteString(next.Diff(pen))
	*pen = next
}
