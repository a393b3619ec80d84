// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package redraw

import (
	"errors"
	"math"
	"testing"
)

func TestValueArray(t *testing.T) {
	t.Parallel()
	array, err := valueArray([]any{"a", uint64(1)})
	if err != nil {
		t.Fatalf("valueArray: %v", err)
	}
	if len(array) != 2 {
		t.Errorf("length: got %d, want 2", len(array))
	}

	_, err = valueArray("not an array")
	var valueErr *ValueError
	if !errors.As(err, &valueErr) {
		t.Fatalf("error: got %T, want *ValueError", err)
	}
	if valueErr.Kind != KindArray {
		t.Errorf("kind: got %v, want %v", valueErr.Kind, KindArray)
	}
	if valueErr.Value != "not an array" {
		t.Errorf("value: got %v, want the offending node", valueErr.Value)
	}
}

func TestValueMap(t *testing.T) {
	t.Parallel()
	m, err := valueMap(map[string]any{"bold": true})
	if err != nil {
		t.Fatalf("valueMap: %v", err)
	}
	if m["bold"] != true {
		t.Errorf("entry: got %v, want true", m["bold"])
	}

	// A codec that does not guarantee string keys produces a map type
	// the decoder cannot accept.
	_, err = valueMap(map[any]any{uint64(1): "x"})
	var valueErr *ValueError
	if !errors.As(err, &valueErr) {
		t.Fatalf("error: got %T, want *ValueError", err)
	}
	if valueErr.Kind != KindMap {
		t.Errorf("kind: got %v, want %v", valueErr.Kind, KindMap)
	}
}

func TestValueString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{name: "plain text", input: "title", want: "title"},
		{name: "empty string", input: "", want: ""},
		{name: "multibyte text", input: "héllo", want: "héllo"},
		{name: "invalid utf-8", input: string([]byte{0xff, 0xfe}), wantErr: true},
		{name: "integer", input: uint64(7), wantErr: true},
		{name: "nil", input: nil, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := valueString(test.input)
			if test.wantErr {
				var valueErr *ValueError
				if !errors.As(err, &valueErr) {
					t.Fatalf("error: got %T, want *ValueError", err)
				}
				if valueErr.Kind != KindString {
					t.Errorf("kind: got %v, want %v", valueErr.Kind, KindString)
				}
				return
			}
			if err != nil {
				t.Fatalf("valueString: %v", err)
			}
			if got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestValueUint(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   any
		want    uint64
		wantErr bool
	}{
		{name: "uint64", input: uint64(12), want: 12},
		{name: "uint", input: uint(3), want: 3},
		{name: "positive int64", input: int64(9), want: 9},
		{name: "positive int", input: int(4), want: 4},
		{name: "zero", input: int64(0), want: 0},
		{name: "max uint64", input: uint64(math.MaxUint64), want: math.MaxUint64},
		{name: "negative int64", input: int64(-1), wantErr: true},
		{name: "negative int", input: int(-5), wantErr: true},
		{name: "float", input: float64(2.0), wantErr: true},
		{name: "string", input: "12", wantErr: true},
		{name: "bool", input: true, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := valueUint(test.input)
			if test.wantErr {
				var valueErr *ValueError
				if !errors.As(err, &valueErr) {
					t.Fatalf("error: got %T, want *ValueError", err)
				}
				if valueErr.Kind != KindU64 {
					t.Errorf("kind: got %v, want %v", valueErr.Kind, KindU64)
				}
				return
			}
			if err != nil {
				t.Fatalf("valueUint: %v", err)
			}
			if got != test.want {
				t.Errorf("got %d, want %d", got, test.want)
			}
		})
	}
}

func TestValueInt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   any
		want    int64
		wantErr bool
	}{
		{name: "int64", input: int64(-3), want: -3},
		{name: "int", input: int(17), want: 17},
		{name: "uint64 in range", input: uint64(40), want: 40},
		{name: "uint64 overflow", input: uint64(math.MaxInt64) + 1, wantErr: true},
		{name: "float", input: float64(-1.0), wantErr: true},
		{name: "string", input: "-3", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := valueInt(test.input)
			if test.wantErr {
				var valueErr *ValueError
				if !errors.As(err, &valueErr) {
					t.Fatalf("error: got %T, want *ValueError", err)
				}
				if valueErr.Kind != KindI64 {
					t.Errorf("kind: got %v, want %v", valueErr.Kind, KindI64)
				}
				return
			}
			if err != nil {
				t.Fatalf("valueInt: %v", err)
			}
			if got != test.want {
				t.Errorf("got %d, want %d", got, test.want)
			}
		})
	}
}

func TestValueErrorMessage(t *testing.T) {
	t.Parallel()
	_, err := valueUint("bogus")
	if got, want := err.Error(), `invalid u64 format bogus`; got != want {
		t.Errorf("message: got %q, want %q", got, want)
	}
}
