// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package redraw

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/darcyparker/neovide/editor"
)

func testDecoder() *Decoder {
	return NewDecoder(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func ptr[T any](v T) *T {
	return &v
}

// batch assembles a wire batch element: the event name followed by its
// occurrences.
func batch(name string, occurrences ...any) []any {
	contents := []any{name}
	return append(contents, occurrences...)
}

func TestUnpackColor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		packed uint64
		want   editor.Color
	}{
		{
			name:   "dark slate gray",
			packed: 0x2F4F4F,
			want:   editor.Color{R: 47.0 / 255.0, G: 79.0 / 255.0, B: 79.0 / 255.0, A: 1.0},
		},
		{
			name:   "pure red",
			packed: 0xFF0000,
			want:   editor.Color{R: 1.0, A: 1.0},
		},
		{
			name:   "pure green",
			packed: 0x00FF00,
			want:   editor.Color{G: 1.0, A: 1.0},
		},
		{
			name:   "pure blue",
			packed: 0x0000FF,
			want:   editor.Color{B: 1.0, A: 1.0},
		},
		{
			name:   "black",
			packed: 0x000000,
			want:   editor.Color{A: 1.0},
		},
		{
			name:   "white",
			packed: 0xFFFFFF,
			want:   editor.Color{R: 1.0, G: 1.0, B: 1.0, A: 1.0},
		},
		{
			name:   "bits above 24 ignored",
			packed: 0xAA00FF0000,
			want:   editor.Color{R: 1.0, A: 1.0},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := unpackColor(test.packed)
			if got != test.want {
				t.Errorf("got %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestDecodeSetTitle(t *testing.T) {
	t.Parallel()
	events, err := testDecoder().DecodeBatch(batch("set_title", []any{"scratch.go"}))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	want := []Event{SetTitle{Title: "scratch.go"}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events: got %+v, want %+v", events, want)
	}

	_, err = testDecoder().DecodeBatch(batch("set_title", []any{"a", "b"}))
	var formatErr *EventFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("wrong arity: got %T, want *EventFormatError", err)
	}
	if formatErr.Event != "set_title" {
		t.Errorf("event name: got %q, want %q", formatErr.Event, "set_title")
	}

	_, err = testDecoder().DecodeBatch(batch("set_title", []any{uint64(1)}))
	var valueErr *ValueError
	if !errors.As(err, &valueErr) {
		t.Fatalf("wrong kind: got %T, want *ValueError", err)
	}
	if valueErr.Kind != KindString {
		t.Errorf("kind: got %v, want %v", valueErr.Kind, KindString)
	}
}

func TestDecodeModeInfoSet(t *testing.T) {
	t.Parallel()
	events, err := testDecoder().DecodeBatch(batch("mode_info_set", []any{
		true,
		[]any{
			map[string]any{
				"cursor_shape": "block",
				"attr_id":      uint64(7),
				"short_name":   "n",
				"blinkon":      uint64(250),
			},
			map[string]any{
				"cursor_shape": "vertical",
			},
			map[string]any{
				"cursor_shape": "horizontal",
				"attr_id":      int64(0),
			},
			map[string]any{},
		},
	}))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	want := []Event{ModeInfoSet{CursorModes: []editor.CursorMode{
		{Shape: editor.CursorShapeBlock, StyleID: ptr(uint64(7))},
		{Shape: editor.CursorShapeVertical},
		{Shape: editor.CursorShapeHorizontal, StyleID: ptr(uint64(0))},
		{},
	}}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events: got %+v, want %+v", events, want)
	}
}

func TestDecodeModeInfoSetBadShape(t *testing.T) {
	t.Parallel()
	// A recognized mode-info key with the wrong value kind is an error,
	// unlike unrecognized keys which are skipped.
	_, err := testDecoder().DecodeBatch(batch("mode_info_set", []any{
		true,
		[]any{map[string]any{"cursor_shape": uint64(1)}},
	}))
	var valueErr *ValueError
	if !errors.As(err, &valueErr) {
		t.Fatalf("error: got %T, want *ValueError", err)
	}
	if valueErr.Kind != KindString {
		t.Errorf("kind: got %v, want %v", valueErr.Kind, KindString)
	}
}

func TestDecodeModeChange(t *testing.T) {
	t.Parallel()
	events, err := testDecoder().DecodeBatch(batch("mode_change", []any{"insert", uint64(2)}))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	want := []Event{ModeChange{ModeIndex: 2}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events: got %+v, want %+v", events, want)
	}
}

func TestDecodeResize(t *testing.T) {
	t.Parallel()
	events, err := testDecoder().DecodeBatch(batch("grid_resize", []any{int64(1), int64(120), int64(40)}))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	want := []Event{Resize{Grid: 1, Width: 120, Height: 40}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events: got %+v, want %+v", events, want)
	}

	_, err = testDecoder().DecodeBatch(batch("grid_resize", []any{int64(1), int64(120)}))
	var formatErr *EventFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("wrong arity: got %T, want *EventFormatError", err)
	}
}

func TestDecodeDefaultColors(t *testing.T) {
	t.Parallel()
	// The trailing terminal fg/bg pair is ignored but counts toward
	// arity, and may be of any type.
	events, err := testDecoder().DecodeBatch(batch("default_colors_set", []any{
		uint64(0xFFFFFF), uint64(0x000000), uint64(0xFF0000), nil, "ignored",
	}))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	want := []Event{DefaultColorsSet{Colors: editor.Colors{
		Foreground: ptr(editor.Color{R: 1.0, G: 1.0, B: 1.0, A: 1.0}),
		Background: ptr(editor.Color{A: 1.0}),
		Special:    ptr(editor.Color{R: 1.0, A: 1.0}),
	}}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events: got %+v, want %+v", events, want)
	}

	_, err = testDecoder().DecodeBatch(batch("default_colors_set", []any{
		uint64(0xFFFFFF), uint64(0), uint64(0),
	}))
	var formatErr *EventFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("wrong arity: got %T, want *EventFormatError", err)
	}

	_, err = testDecoder().DecodeBatch(batch("default_colors_set", []any{
		int64(-1), uint64(0), uint64(0), uint64(0), uint64(0),
	}))
	var valueErr *ValueError
	if !errors.As(err, &valueErr) {
		t.Fatalf("negative color: got %T, want *ValueError", err)
	}
	if valueErr.Kind != KindU64 {
		t.Errorf("kind: got %v, want %v", valueErr.Kind, KindU64)
	}
}

func TestDecodeHighlightAttributes(t *testing.T) {
	t.Parallel()
	events, err := testDecoder().DecodeBatch(batch("hl_attr_define", []any{
		uint64(109),
		map[string]any{
			"foreground":    uint64(0x2F4F4F),
			"background":    uint64(0xFFFFFF),
			"special":       uint64(0xFF00FF),
			"reverse":       true,
			"italic":        true,
			"bold":          true,
			"strikethrough": true,
			"underline":     true,
			"undercurl":     true,
			"blend":         uint64(30),
		},
		map[string]any{"bold": true},
		[]any{},
	}))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	fg := unpackColor(0x2F4F4F)
	bg := unpackColor(0xFFFFFF)
	sp := unpackColor(0xFF00FF)
	want := []Event{HighlightAttributesDefine{
		ID: 109,
		Style: editor.Style{
			Colors:        editor.Colors{Foreground: &fg, Background: &bg, Special: &sp},
			Reverse:       true,
			Italic:        true,
			Bold:          true,
			Strikethrough: true,
			Underline:     true,
			Undercurl:     true,
			Blend:         30,
		},
	}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events: got %+v, want %+v", events, want)
	}
}

func TestDecodeHighlightAttributesSkipsUnknown(t *testing.T) {
	t.Parallel()
	// altfont and underdouble are unknown names; reverse and foreground
	// are recognized names carrying the wrong kind. All four are
	// skipped.
	events, err := testDecoder().DecodeBatch(batch("hl_attr_define", []any{
		uint64(5),
		map[string]any{
			"bold":        true,
			"altfont":     true,
			"underdouble": true,
			"reverse":     uint64(1),
			"foreground":  "not-rgb",
		},
		map[string]any{},
		[]any{},
	}))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	want := []Event{HighlightAttributesDefine{ID: 5, Style: editor.Style{Bold: true}}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events: got %+v, want %+v", events, want)
	}
}

func TestDecodeHighlightAttributesStructure(t *testing.T) {
	t.Parallel()
	// The attribute map is part of the occurrence's fixed shape.
	_, err := testDecoder().DecodeBatch(batch("hl_attr_define", []any{
		uint64(5), "not a map", map[string]any{}, []any{},
	}))
	var formatErr *EventFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("non-map attributes: got %T, want *EventFormatError", err)
	}
	if formatErr.Event != "hl_attr_define" {
		t.Errorf("event name: got %q, want %q", formatErr.Event, "hl_attr_define")
	}

	// A color whose kind matches but whose value is unrepresentable is
	// an error, not a skip.
	_, err = testDecoder().DecodeBatch(batch("hl_attr_define", []any{
		uint64(5), map[string]any{"foreground": int64(-16)}, map[string]any{}, []any{},
	}))
	var valueErr *ValueError
	if !errors.As(err, &valueErr) {
		t.Fatalf("negative color: got %T, want *ValueError", err)
	}
	if valueErr.Kind != KindU64 {
		t.Errorf("kind: got %v, want %v", valueErr.Kind, KindU64)
	}
}

func TestDecodeGridLine(t *testing.T) {
	t.Parallel()
	events, err := testDecoder().DecodeBatch(batch("grid_line", []any{
		uint64(1), uint64(0), uint64(0), []any{[]any{"a", uint64(5), uint64(3)}},
	}))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	want := []Event{GridLine{
		Grid:        1,
		Row:         0,
		ColumnStart: 0,
		Cells:       []GridLineCell{{Text: "a", HighlightID: ptr(uint64(5)), Repeat: ptr(uint64(3))}},
	}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events: got %+v, want %+v", events, want)
	}
}

func TestDecodeGridLineCellOptionals(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cell []any
		want GridLineCell
	}{
		{
			name: "text only",
			cell: []any{"a"},
			want: GridLineCell{Text: "a"},
		},
		{
			name: "text and highlight",
			cell: []any{"b", uint64(5)},
			want: GridLineCell{Text: "b", HighlightID: ptr(uint64(5))},
		},
		{
			name: "text highlight and repeat",
			cell: []any{"c", uint64(5), uint64(3)},
			want: GridLineCell{Text: "c", HighlightID: ptr(uint64(5)), Repeat: ptr(uint64(3))},
		},
		{
			name: "extra elements tolerated",
			cell: []any{"d", uint64(1), uint64(2), "future"},
			want: GridLineCell{Text: "d", HighlightID: ptr(uint64(1)), Repeat: ptr(uint64(2))},
		},
		{
			name: "wide character continuation",
			cell: []any{""},
			want: GridLineCell{Text: ""},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := decodeGridLineCell(test.cell)
			if err != nil {
				t.Fatalf("decodeGridLineCell: %v", err)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("cell: got %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestDecodeGridLineCellMalformed(t *testing.T) {
	t.Parallel()
	_, err := decodeGridLineCell([]any{})
	var formatErr *EventFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("empty cell: got %T, want *EventFormatError", err)
	}

	_, err = decodeGridLineCell([]any{"a", "not an id"})
	var valueErr *ValueError
	if !errors.As(err, &valueErr) {
		t.Fatalf("bad highlight id: got %T, want *ValueError", err)
	}
	if valueErr.Kind != KindU64 {
		t.Errorf("kind: got %v, want %v", valueErr.Kind, KindU64)
	}
}

func TestDecodeClear(t *testing.T) {
	t.Parallel()
	events, err := testDecoder().DecodeBatch(batch("grid_clear", []any{uint64(1)}))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	want := []Event{Clear{Grid: 1}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events: got %+v, want %+v", events, want)
	}
}

func TestDecodeCursorGoto(t *testing.T) {
	t.Parallel()
	// The wire order is grid, column, row.
	events, err := testDecoder().DecodeBatch(batch("grid_cursor_goto", []any{
		uint64(1), uint64(20), uint64(5),
	}))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	want := []Event{CursorGoto{Grid: 1, Column: 20, Row: 5}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events: got %+v, want %+v", events, want)
	}
}

func TestDecodeScroll(t *testing.T) {
	t.Parallel()
	events, err := testDecoder().DecodeBatch(batch("grid_scroll", []any{
		uint64(1), uint64(0), uint64(40), uint64(0), uint64(120), int64(-3), int64(0),
	}))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	want := []Event{Scroll{
		Grid: 1, Top: 0, Bottom: 40, Left: 0, Right: 120, Rows: -3, Columns: 0,
	}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events: got %+v, want %+v", events, want)
	}
}
