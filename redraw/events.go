// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package redraw

import "github.com/darcyparker/neovide/editor"

// Event is one decoded redraw event. The set of variants is closed:
// every implementation lives in this package, so consumers can switch
// over the concrete types exhaustively.
type Event interface {
	isRedrawEvent()
}

// SetTitle carries the window title requested by the editor.
type SetTitle struct {
	Title string
}

// ModeInfoSet replaces the full list of cursor modes. The editor's
// current mode indexes into this list via ModeChange.
type ModeInfoSet struct {
	CursorModes []editor.CursorMode
}

// ModeChange announces the editor's active mode as an index into the
// most recent ModeInfoSet list.
type ModeChange struct {
	ModeIndex uint64
}

// BusyStart marks the editor busy: the cursor should be hidden until
// the matching BusyStop.
type BusyStart struct{}

// BusyStop clears the busy state set by BusyStart.
type BusyStop struct{}

// Flush marks the end of an atomic batch of screen mutations. State
// accumulated since the previous Flush is complete and may be
// presented; painting between flushes shows torn intermediate state.
type Flush struct{}

// Resize sets the dimensions of one grid, in cells.
type Resize struct {
	Grid   uint64
	Width  uint64
	Height uint64
}

// DefaultColorsSet replaces the default palette used by every cell
// whose style does not set its own channels.
type DefaultColorsSet struct {
	Colors editor.Colors
}

// HighlightAttributesDefine binds a highlight id to a style. Later
// definitions for the same id replace earlier ones.
type HighlightAttributesDefine struct {
	ID    uint64
	Style editor.Style
}

// GridLineCell is one run of a grid line in the protocol's compressed
// form: a piece of text, an optional highlight id, and an optional
// repeat count.
type GridLineCell struct {
	// Text is the cell's content. The protocol sends an empty string
	// for the trailing half of a double-width character.
	Text string

	// HighlightID is nil when the run reuses the highlight of the
	// preceding run within the same GridLine event.
	HighlightID *uint64

	// Repeat is nil for an implicit count of one. The decoder keeps
	// the compressed form; expansion is the consumer's concern.
	Repeat *uint64
}

// GridLine replaces part of one grid row, starting at ColumnStart, with
// the expansion of Cells.
type GridLine struct {
	Grid        uint64
	Row         uint64
	ColumnStart uint64
	Cells       []GridLineCell
}

// Clear empties one grid.
type Clear struct {
	Grid uint64
}

// CursorGoto moves the cursor to a cell of one grid.
type CursorGoto struct {
	Grid   uint64
	Row    uint64
	Column uint64
}

// Scroll shifts the contents of a rectangular region of one grid. Rows
// and Columns are deltas: positive values move content toward the
// region's start, negative toward its end. Vacated cells are
// unspecified until the editor repaints them.
type Scroll struct {
	Grid    uint64
	Top     uint64
	Bottom  uint64
	Left    uint64
	Right   uint64
	Rows    int64
	Columns int64
}

func (SetTitle) isRedrawEvent()                  {}
func (ModeInfoSet) isRedrawEvent()               {}
func (ModeChange) isRedrawEvent()                {}
func (BusyStart) isRedrawEvent()                 {}
func (BusyStop) isRedrawEvent()                  {}
func (Flush) isRedrawEvent()                     {}
func (Resize) isRedrawEvent()                    {}
func (DefaultColorsSet) isRedrawEvent()          {}
func (HighlightAttributesDefine) isRedrawEvent() {}
func (GridLine) isRedrawEvent()                  {}
func (Clear) isRedrawEvent()                     {}
func (CursorGoto) isRedrawEvent()                {}
func (Scroll) isRedrawEvent()                    {}
