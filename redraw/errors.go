// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package redraw

import "fmt"

// ValueKind identifies the shape a decoder required of a value node.
type ValueKind uint8

const (
	// KindArray is a sequence of value nodes.
	KindArray ValueKind = iota + 1
	// KindMap is a string-keyed collection of value nodes.
	KindMap
	// KindString is valid UTF-8 text.
	KindString
	// KindU64 is a non-negative integer.
	KindU64
	// KindI64 is a signed integer.
	KindI64
)

func (k ValueKind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindString:
		return "string"
	case KindU64:
		return "u64"
	case KindI64:
		return "i64"
	default:
		return "unknown"
	}
}

// ValueError reports a value node whose runtime shape does not match
// the shape the decoder required at that position. The offending node
// is retained so callers can log exactly what the editor sent.
type ValueError struct {
	// Kind is the shape that was required.
	Kind ValueKind
	// Value is the node that failed to narrow.
	Value any
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s format %v", e.Kind, e.Value)
}

// EventFormatError reports an occurrence whose argument list does not
// match the fixed shape of its event name: wrong argument count, a
// missing required element, or a structural element of the wrong type.
type EventFormatError struct {
	// Event is the wire name of the event whose occurrence was
	// malformed. Empty when the batch element itself was too short to
	// carry a name.
	Event string
}

func (e *EventFormatError) Error() string {
	if e.Event == "" {
		return "invalid event format"
	}
	return fmt.Sprintf("invalid event format for %q", e.Event)
}
