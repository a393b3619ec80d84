// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package editor

// CursorShape selects how the cursor is drawn in a given mode.
type CursorShape uint8

const (
	// CursorShapeBlock fills the entire cell.
	CursorShapeBlock CursorShape = iota
	// CursorShapeHorizontal draws a line along the cell's bottom edge.
	CursorShapeHorizontal
	// CursorShapeVertical draws a bar at the cell's left edge.
	CursorShapeVertical
)

// CursorShapeFromName maps a mode-info shape name to a shape. Names the
// editor may add later fall back to the block shape.
func CursorShapeFromName(name string) CursorShape {
	switch name {
	case "horizontal":
		return CursorShapeHorizontal
	case "vertical":
		return CursorShapeVertical
	default:
		return CursorShapeBlock
	}
}

func (s CursorShape) String() string {
	switch s {
	case CursorShapeHorizontal:
		return "horizontal"
	case CursorShapeVertical:
		return "vertical"
	default:
		return "block"
	}
}

// CursorMode is the per-mode cursor appearance accumulated from the
// editor's mode-info list. Fields keep their zero values for keys the
// mode description does not carry.
type CursorMode struct {
	Shape CursorShape

	// StyleID points into the highlight table. Nil means the cursor
	// uses the default colors in this mode.
	StyleID *uint64
}

// NewCursorMode returns the default appearance: block shape, default
// colors.
func NewCursorMode() CursorMode {
	return CursorMode{}
}
