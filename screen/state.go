// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

// Package screen accumulates decoded redraw events into presentable
// terminal state: grids of styled cells, the highlight table, the
// default palette, and cursor position and appearance. The package is
// the boundary between the protocol's compressed, incremental form and
// the renderer's random-access form; in particular it is where
// compressed cell runs are expanded.
//
// State is not safe for concurrent use. The expected shape is a single
// goroutine applying event batches and rendering on Flush.
package screen

import (
	"github.com/darcyparker/neovide/editor"
	"github.com/darcyparker/neovide/redraw"
)

// GlobalGrid is the id of the whole-screen grid. With only the
// line-grid protocol extension active, it is the only grid the editor
// draws on.
const GlobalGrid uint64 = 1

// CursorPosition locates the cursor on one grid.
type CursorPosition struct {
	Grid   uint64
	Row    uint64
	Column uint64
}

// State is the accumulated screen: everything needed to paint a frame.
type State struct {
	// Title is the window title requested by the editor.
	Title string

	// Busy hides the cursor while the editor is unresponsive to input.
	Busy bool

	// Grids holds every grid the editor has addressed, keyed by grid
	// id. With the line-grid protocol extension alone, grid 1 is the
	// whole screen.
	Grids map[uint64]*Grid

	// Highlights maps highlight ids to their styles. Id 0, the
	// default style, is typically never defined explicitly.
	Highlights map[uint64]editor.Style

	// DefaultColors is the palette for cells whose style leaves a
	// channel unset.
	DefaultColors editor.Colors

	// CursorModes is the mode appearance list; ModeIndex selects the
	// active entry.
	CursorModes []editor.CursorMode
	ModeIndex   uint64

	Cursor CursorPosition
}

// NewState returns an empty screen.
func NewState() *State {
	return &State{
		Grids:      make(map[uint64]*Grid),
		Highlights: make(map[uint64]editor.Style),
	}
}

// grid returns the identified grid, creating a zero-size one if the
// editor addresses a grid before resizing it.
func (s *State) grid(id uint64) *Grid {
	if grid, ok := s.Grids[id]; ok {
		return grid
	}
	grid := NewGrid(0, 0)
	s.Grids[id] = grid
	return grid
}

// Grid returns the identified grid, or nil when the editor has never
// addressed it.
func (s *State) Grid(id uint64) *Grid {
	return s.Grids[id]
}

// HighlightStyle resolves a highlight id to its style. Unknown ids
// resolve to the zero style, which renders with the default palette.
func (s *State) HighlightStyle(id uint64) editor.Style {
	return s.Highlights[id]
}

// CurrentCursorMode returns the appearance of the active mode, or the
// default appearance when the mode list is absent or the index is out
// of range.
func (s *State) CurrentCursorMode() editor.CursorMode {
	if s.ModeIndex < uint64(len(s.CursorModes)) {
		return s.CursorModes[s.ModeIndex]
	}
	return editor.NewCursorMode()
}

// CursorVisible reports whether the cursor should be painted.
func (s *State) CursorVisible() bool {
	return !s.Busy
}

// Apply folds one event into the screen and reports whether the event
// was a Flush, meaning the state is complete and may be presented.
// Events between flushes leave the screen in a torn intermediate state
// that must not be painted.
func (s *State) Apply(event redraw.Event) (flush bool) {
	switch event := event.(type) {
	case redraw.SetTitle:
		s.Title = event.Title
	case redraw.ModeInfoSet:
		s.CursorModes = event.CursorModes
	case redraw.ModeChange:
		s.ModeIndex = event.ModeIndex
	case redraw.BusyStart:
		s.Busy = true
	case redraw.BusyStop:
		s.Busy = false
	case redraw.Flush:
		return true
	case redraw.Resize:
		s.grid(event.Grid).Resize(int(event.Width), int(event.Height))
	case redraw.DefaultColorsSet:
		s.DefaultColors = event.Colors
	case redraw.HighlightAttributesDefine:
		s.Highlights[event.ID] = event.Style
	case redraw.GridLine:
		s.grid(event.Grid).SetLine(int(event.Row), int(event.ColumnStart), event.Cells)
	case redraw.Clear:
		s.grid(event.Grid).Clear()
	case redraw.CursorGoto:
		s.Cursor = CursorPosition{Grid: event.Grid, Row: event.Row, Column: event.Column}
	case redraw.Scroll:
		s.grid(event.Grid).ScrollRegion(
			int(event.Top), int(event.Bottom),
			int(event.Left), int(event.Right),
			int(event.Rows), int(event.Columns),
		)
	}
	return false
}

// ApplyAll folds a batch of events and reports whether any of them was
// a Flush.
func (s *State) ApplyAll(events []redraw.Event) (flush bool) {
	for _, event := range events {
		if s.Apply(event) {
			flush = true
		}
	}
	return flush
}
