// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package screen

import "github.com/darcyparker/neovide/redraw"

// Cell is one resolved screen cell: its text and the highlight id that
// styles it. Text is a single space for blank cells and empty for the
// continuation half of a double-width character.
type Cell struct {
	Text        string
	HighlightID uint64
}

var emptyCell = Cell{Text: " "}

// Grid is a dense cell matrix for one editor grid. Rows are stored
// contiguously; all operations clip silently to the grid bounds, since
// the editor occasionally sends writes for a size the UI has already
// negotiated away.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid returns a blank grid of the given dimensions.
func NewGrid(width, height int) *Grid {
	grid := &Grid{}
	grid.Resize(width, height)
	return grid
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// CellAt returns the cell at the given position, or a blank cell when
// the position is out of bounds.
func (g *Grid) CellAt(column, row int) Cell {
	if column < 0 || row < 0 || column >= g.width || row >= g.height {
		return emptyCell
	}
	return g.cells[row*g.width+column]
}

func (g *Grid) setCell(column, row int, cell Cell) {
	if column < 0 || row < 0 || column >= g.width || row >= g.height {
		return
	}
	g.cells[row*g.width+column] = cell
}

// Resize changes the grid dimensions, preserving the overlapping
// top-left region. Newly exposed cells are blank. The editor repaints
// everything after a resize anyway; preservation just avoids a flash
// of empty screen between the resize and the repaint.
func (g *Grid) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == g.width && height == g.height {
		return
	}

	cells := make([]Cell, width*height)
	for index := range cells {
		cells[index] = emptyCell
	}
	minWidth := min(width, g.width)
	minHeight := min(height, g.height)
	for row := 0; row < minHeight; row++ {
		src := g.cells[row*g.width : row*g.width+minWidth]
		dst := cells[row*width : row*width+minWidth]
		copy(dst, src)
	}

	g.width = width
	g.height = height
	g.cells = cells
}

// Clear resets every cell to blank.
func (g *Grid) Clear() {
	for index := range g.cells {
		g.cells[index] = emptyCell
	}
}

// SetLine writes a compressed cell run sequence into one row, starting
// at columnStart. A run without a highlight id inherits the id of the
// preceding run in the same call; a leading run without one styles its
// cells with highlight 0, the default.
func (g *Grid) SetLine(row, columnStart int, cells []redraw.GridLineCell) {
	if row < 0 || row >= g.height {
		return
	}
	column := columnStart
	var highlight uint64
	for _, cell := range cells {
		if cell.HighlightID != nil {
			highlight = *cell.HighlightID
		}
		repeat := 1
		if cell.Repeat != nil {
			repeat = int(*cell.Repeat)
		}
		for range repeat {
			g.setCell(column, row, Cell{Text: cell.Text, HighlightID: highlight})
			column++
		}
	}
}

// ScrollRegion shifts the contents of the half-open region
// [top, bottom) x [left, right) by the given deltas. Positive deltas
// move content toward the region's top-left: the cell at
// (row+rows, column+columns) lands on (row, column). Cells vacated by
// the shift are blanked; the editor repaints them next.
func (g *Grid) ScrollRegion(top, bottom, left, right, rows, columns int) {
	top = max(top, 0)
	left = max(left, 0)
	bottom = min(bottom, g.height)
	right = min(right, g.width)
	if top >= bottom || left >= right {
		return
	}

	// Iterate in the direction that reads each source cell before the
	// shift overwrites it.
	rowStart, rowEnd, rowStep := top, bottom, 1
	if rows < 0 {
		rowStart, rowEnd, rowStep = bottom-1, top-1, -1
	}
	columnStart, columnEnd, columnStep := left, right, 1
	if columns < 0 {
		columnStart, columnEnd, columnStep = right-1, left-1, -1
	}

	for row := rowStart; row != rowEnd; row += rowStep {
		for column := columnStart; column != columnEnd; column += columnStep {
			srcRow := row + rows
			srcColumn := column + columns
			if srcRow >= top && srcRow < bottom && srcColumn >= left && srcColumn < right {
				g.setCell(column, row, g.CellAt(srcColumn, srcRow))
			} else {
				g.setCell(column, row, emptyCell)
			}
		}
	}
}
