// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package screen

import (
	"testing"

	"github.com/darcyparker/neovide/editor"
	"github.com/darcyparker/neovide/redraw"
)

func TestStateApplyStartupSequence(t *testing.T) {
	t.Parallel()
	state := NewState()

	fg := editor.Color{R: 1, G: 1, B: 1, A: 1}
	bg := editor.Color{A: 1}
	events := []redraw.Event{
		redraw.SetTitle{Title: "main.go"},
		redraw.Resize{Grid: 1, Width: 20, Height: 5},
		redraw.DefaultColorsSet{Colors: editor.Colors{Foreground: &fg, Background: &bg}},
		redraw.HighlightAttributesDefine{ID: 3, Style: editor.Style{Bold: true}},
		redraw.ModeInfoSet{CursorModes: []editor.CursorMode{
			{Shape: editor.CursorShapeBlock},
			{Shape: editor.CursorShapeVertical},
		}},
		redraw.ModeChange{ModeIndex: 1},
		redraw.GridLine{Grid: 1, Row: 0, ColumnStart: 0, Cells: []redraw.GridLineCell{
			{Text: "h", HighlightID: ptr(uint64(3))},
			{Text: "i"},
		}},
		redraw.CursorGoto{Grid: 1, Row: 0, Column: 2},
		redraw.Flush{},
	}

	if flush := state.ApplyAll(events); !flush {
		t.Error("ApplyAll: flush not reported")
	}

	if state.Title != "main.go" {
		t.Errorf("title: got %q", state.Title)
	}
	grid := state.Grid(1)
	if grid == nil {
		t.Fatal("grid 1 missing")
	}
	if grid.Width() != 20 || grid.Height() != 5 {
		t.Errorf("grid size: got %dx%d, want 20x5", grid.Width(), grid.Height())
	}
	if got := grid.CellAt(0, 0); got != (Cell{Text: "h", HighlightID: 3}) {
		t.Errorf("cell 0: got %+v", got)
	}
	if got := grid.CellAt(1, 0); got != (Cell{Text: "i", HighlightID: 3}) {
		t.Errorf("cell 1: got %+v", got)
	}
	if !state.HighlightStyle(3).Bold {
		t.Error("highlight 3: bold not recorded")
	}
	if state.DefaultColors.Foreground == nil || *state.DefaultColors.Foreground != fg {
		t.Errorf("default foreground: got %+v", state.DefaultColors.Foreground)
	}
	if state.Cursor != (CursorPosition{Grid: 1, Row: 0, Column: 2}) {
		t.Errorf("cursor: got %+v", state.Cursor)
	}
	if mode := state.CurrentCursorMode(); mode.Shape != editor.CursorShapeVertical {
		t.Errorf("cursor mode shape: got %v, want vertical", mode.Shape)
	}
}

func TestStateApplyReportsFlushOnly(t *testing.T) {
	t.Parallel()
	state := NewState()
	if state.Apply(redraw.BusyStart{}) {
		t.Error("BusyStart reported as flush")
	}
	if !state.Apply(redraw.Flush{}) {
		t.Error("Flush not reported")
	}
}

func TestStateBusyHidesCursor(t *testing.T) {
	t.Parallel()
	state := NewState()
	if !state.CursorVisible() {
		t.Error("cursor hidden on fresh state")
	}
	state.Apply(redraw.BusyStart{})
	if state.CursorVisible() {
		t.Error("cursor visible while busy")
	}
	state.Apply(redraw.BusyStop{})
	if !state.CursorVisible() {
		t.Error("cursor hidden after busy stop")
	}
}

func TestStateCursorModeOutOfRange(t *testing.T) {
	t.Parallel()
	state := NewState()
	state.Apply(redraw.ModeChange{ModeIndex: 9})
	if mode := state.CurrentCursorMode(); mode.Shape != editor.CursorShapeBlock {
		t.Errorf("shape: got %v, want block fallback", mode.Shape)
	}
}

func TestStateScrollEvent(t *testing.T) {
	t.Parallel()
	state := NewState()
	state.Apply(redraw.Resize{Grid: 1, Width: 3, Height: 2})
	state.Apply(redraw.GridLine{Grid: 1, Row: 0, Cells: []redraw.GridLineCell{
		{Text: "x", Repeat: ptr(uint64(3))},
	}})
	state.Apply(redraw.Scroll{Grid: 1, Top: 0, Bottom: 2, Left: 0, Right: 3, Rows: -1})

	grid := state.Grid(1)
	if got := rowText(grid, 1); got != "xxx" {
		t.Errorf("row 1: got %q, want %q", got, "xxx")
	}
	if got := rowText(grid, 0); got != "   " {
		t.Errorf("row 0: got %q, want blanks", got)
	}
}

func TestStateAddressesUnseenGrid(t *testing.T) {
	t.Parallel()
	state := NewState()
	// A write to a grid that was never resized must not panic; the
	// zero-size grid simply swallows it.
	state.Apply(redraw.GridLine{Grid: 4, Row: 0, Cells: []redraw.GridLineCell{{Text: "x"}}})
	if state.Grid(4) == nil {
		t.Error("grid 4 not created")
	}
	state.Apply(redraw.Clear{Grid: 9})
	if state.Grid(9) == nil {
		t.Error("grid 9 not created")
	}
}

func TestStateHighlightRedefinitionReplaces(t *testing.T) {
	t.Parallel()
	state := NewState()
	state.Apply(redraw.HighlightAttributesDefine{ID: 2, Style: editor.Style{Bold: true}})
	state.Apply(redraw.HighlightAttributesDefine{ID: 2, Style: editor.Style{Italic: true}})
	style := state.HighlightStyle(2)
	if style.Bold || !style.Italic {
		t.Errorf("style: got %+v, want italic only", style)
	}
}
