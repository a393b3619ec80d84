// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package redraw

import "github.com/darcyparker/neovide/editor"

// unpackColor splits a packed 24-bit RGB integer into normalized float
// channels. Bits above the low 24 are ignored; the result is always
// fully opaque.
func unpackColor(packed uint64) editor.Color {
	rgb := uint32(packed)
	r := float32((rgb & 0xff0000) >> 16)
	g := float32((rgb & 0xff00) >> 8)
	b := float32(rgb & 0xff)
	return editor.Color{
		R: r / 255.0,
		G: g / 255.0,
		B: b / 255.0,
		A: 1.0,
	}
}

// decodeSetTitle decodes a set_title occurrence: [title].
func decodeSetTitle(args []any) (Event, error) {
	if len(args) != 1 {
		return nil, &EventFormatError{Event: "set_title"}
	}
	title, err := valueString(args[0])
	if err != nil {
		return nil, err
	}
	return SetTitle{Title: title}, nil
}

// decodeModeInfoSet decodes a mode_info_set occurrence:
// [cursor_style_enabled, mode_infos]. The first argument is a legacy
// flag that is no longer interpreted. Each mode info is a map; the
// keys cursor_shape and attr_id are applied and every other key is
// skipped without comment, since modes routinely carry keys this
// client does not render.
func decodeModeInfoSet(args []any) (Event, error) {
	if len(args) != 2 {
		return nil, &EventFormatError{Event: "mode_info_set"}
	}
	infos, err := valueArray(args[1])
	if err != nil {
		return nil, err
	}
	cursorModes := make([]editor.CursorMode, 0, len(infos))
	for _, info := range infos {
		attributes, err := valueMap(info)
		if err != nil {
			return nil, err
		}
		mode := editor.NewCursorMode()
		for key, value := range attributes {
			switch key {
			case "cursor_shape":
				shape, err := valueString(value)
				if err != nil {
					return nil, err
				}
				mode.Shape = editor.CursorShapeFromName(shape)
			case "attr_id":
				styleID, err := valueUint(value)
				if err != nil {
					return nil, err
				}
				mode.StyleID = &styleID
			}
		}
		cursorModes = append(cursorModes, mode)
	}
	return ModeInfoSet{CursorModes: cursorModes}, nil
}

// decodeModeChange decodes a mode_change occurrence: [name, index].
// The name is redundant with the index and is ignored.
func decodeModeChange(args []any) (Event, error) {
	if len(args) != 2 {
		return nil, &EventFormatError{Event: "mode_change"}
	}
	index, err := valueUint(args[1])
	if err != nil {
		return nil, err
	}
	return ModeChange{ModeIndex: index}, nil
}

// decodeResize decodes a grid_resize occurrence: [grid, width, height].
func decodeResize(args []any) (Event, error) {
	if len(args) != 3 {
		return nil, &EventFormatError{Event: "grid_resize"}
	}
	grid, err := valueUint(args[0])
	if err != nil {
		return nil, err
	}
	width, err := valueUint(args[1])
	if err != nil {
		return nil, err
	}
	height, err := valueUint(args[2])
	if err != nil {
		return nil, err
	}
	return Resize{Grid: grid, Width: width, Height: height}, nil
}

// decodeDefaultColors decodes a default_colors_set occurrence:
// [fg, bg, special, term_fg, term_bg]. The two terminal colors exist
// for TUI compatibility and are ignored, but they are part of the
// occurrence's fixed arity.
func decodeDefaultColors(args []any) (Event, error) {
	if len(args) != 5 {
		return nil, &EventFormatError{Event: "default_colors_set"}
	}
	foreground, err := valueUint(args[0])
	if err != nil {
		return nil, err
	}
	background, err := valueUint(args[1])
	if err != nil {
		return nil, err
	}
	special, err := valueUint(args[2])
	if err != nil {
		return nil, err
	}
	fg := unpackColor(foreground)
	bg := unpackColor(background)
	sp := unpackColor(special)
	return DefaultColorsSet{
		Colors: editor.Colors{
			Foreground: &fg,
			Background: &bg,
			Special:    &sp,
		},
	}, nil
}

// decodeHighlightAttributes decodes an hl_attr_define occurrence:
// [id, rgb_attributes, cterm_attributes, info]. The rgb attribute map
// is structural: an occurrence whose second element is not a map is
// malformed. The cterm attributes and info array are ignored.
func (d *Decoder) decodeHighlightAttributes(args []any) (Event, error) {
	if len(args) != 4 {
		return nil, &EventFormatError{Event: "hl_attr_define"}
	}
	attributes, ok := args[1].(map[string]any)
	if !ok {
		return nil, &EventFormatError{Event: "hl_attr_define"}
	}
	style := editor.NewStyle(editor.Colors{})
	for name, value := range attributes {
		if err := d.applyStyleAttribute(&style, name, value); err != nil {
			return nil, err
		}
	}
	id, err := valueUint(args[0])
	if err != nil {
		return nil, err
	}
	return HighlightAttributesDefine{ID: id, Style: style}, nil
}

// applyStyleAttribute folds one rgb attribute entry into style. A
// recognized name carrying the expected value kind is applied. Unknown
// names, and recognized names carrying an unexpected kind, are logged
// and skipped so that attribute keys added by newer editors do not
// break decoding. An integer color that is out of range is an error,
// not a skip: the kind matched, the value is simply unrepresentable.
func (d *Decoder) applyStyleAttribute(style *editor.Style, name string, value any) error {
	switch name {
	case "foreground", "background", "special":
		if integerKind(value) {
			packed, err := valueUint(value)
			if err != nil {
				return err
			}
			color := unpackColor(packed)
			switch name {
			case "foreground":
				style.Colors.Foreground = &color
			case "background":
				style.Colors.Background = &color
			case "special":
				style.Colors.Special = &color
			}
			return nil
		}
	case "reverse":
		if enabled, ok := value.(bool); ok {
			style.Reverse = enabled
			return nil
		}
	case "italic":
		if enabled, ok := value.(bool); ok {
			style.Italic = enabled
			return nil
		}
	case "bold":
		if enabled, ok := value.(bool); ok {
			style.Bold = enabled
			return nil
		}
	case "strikethrough":
		if enabled, ok := value.(bool); ok {
			style.Strikethrough = enabled
			return nil
		}
	case "underline":
		if enabled, ok := value.(bool); ok {
			style.Underline = enabled
			return nil
		}
	case "undercurl":
		if enabled, ok := value.(bool); ok {
			style.Undercurl = enabled
			return nil
		}
	case "blend":
		if integerKind(value) {
			blend, err := valueUint(value)
			if err != nil {
				return err
			}
			style.Blend = uint8(blend)
			return nil
		}
	}
	d.logger.Debug("ignored style attribute", "name", name)
	return nil
}

// decodeGridLineCell decodes one compressed cell run: [text],
// [text, hl_id], or [text, hl_id, repeat]. Elements beyond the third
// are tolerated and ignored.
func decodeGridLineCell(cell any) (GridLineCell, error) {
	contents, err := valueArray(cell)
	if err != nil {
		return GridLineCell{}, err
	}
	if len(contents) == 0 {
		return GridLineCell{}, &EventFormatError{Event: "grid_line"}
	}
	text, err := valueString(contents[0])
	if err != nil {
		return GridLineCell{}, err
	}
	decoded := GridLineCell{Text: text}
	if len(contents) > 1 {
		highlightID, err := valueUint(contents[1])
		if err != nil {
			return GridLineCell{}, err
		}
		decoded.HighlightID = &highlightID
	}
	if len(contents) > 2 {
		repeat, err := valueUint(contents[2])
		if err != nil {
			return GridLineCell{}, err
		}
		decoded.Repeat = &repeat
	}
	return decoded, nil
}

// decodeGridLine decodes a grid_line occurrence:
// [grid, row, col_start, cells].
func decodeGridLine(args []any) (Event, error) {
	if len(args) != 4 {
		return nil, &EventFormatError{Event: "grid_line"}
	}
	grid, err := valueUint(args[0])
	if err != nil {
		return nil, err
	}
	row, err := valueUint(args[1])
	if err != nil {
		return nil, err
	}
	columnStart, err := valueUint(args[2])
	if err != nil {
		return nil, err
	}
	cellValues, err := valueArray(args[3])
	if err != nil {
		return nil, err
	}
	cells := make([]GridLineCell, 0, len(cellValues))
	for _, cellValue := range cellValues {
		cell, err := decodeGridLineCell(cellValue)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return GridLine{
		Grid:        grid,
		Row:         row,
		ColumnStart: columnStart,
		Cells:       cells,
	}, nil
}

// decodeClear decodes a grid_clear occurrence: [grid].
func decodeClear(args []any) (Event, error) {
	if len(args) != 1 {
		return nil, &EventFormatError{Event: "grid_clear"}
	}
	grid, err := valueUint(args[0])
	if err != nil {
		return nil, err
	}
	return Clear{Grid: grid}, nil
}

// decodeCursorGoto decodes a grid_cursor_goto occurrence. The wire
// order is [grid, column, row].
func decodeCursorGoto(args []any) (Event, error) {
	if len(args) != 3 {
		return nil, &EventFormatError{Event: "grid_cursor_goto"}
	}
	grid, err := valueUint(args[0])
	if err != nil {
		return nil, err
	}
	column, err := valueUint(args[1])
	if err != nil {
		return nil, err
	}
	row, err := valueUint(args[2])
	if err != nil {
		return nil, err
	}
	return CursorGoto{Grid: grid, Row: row, Column: column}, nil
}

// decodeScroll decodes a grid_scroll occurrence:
// [grid, top, bottom, left, right, rows, cols]. The region bounds are
// unsigned; the two deltas are signed.
func decodeScroll(args []any) (Event, error) {
	if len(args) != 7 {
		return nil, &EventFormatError{Event: "grid_scroll"}
	}
	grid, err := valueUint(args[0])
	if err != nil {
		return nil, err
	}
	top, err := valueUint(args[1])
	if err != nil {
		return nil, err
	}
	bottom, err := valueUint(args[2])
	if err != nil {
		return nil, err
	}
	left, err := valueUint(args[3])
	if err != nil {
		return nil, err
	}
	right, err := valueUint(args[4])
	if err != nil {
		return nil, err
	}
	rows, err := valueInt(args[5])
	if err != nil {
		return nil, err
	}
	columns, err := valueInt(args[6])
	if err != nil {
		return nil, err
	}
	return Scroll{
		Grid:    grid,
		Top:     top,
		Bottom:  bottom,
		Left:    left,
		Right:   right,
		Rows:    rows,
		Columns: columns,
	}, nil
}
