// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

// Package redraw decodes the editor's "redraw" notification stream into
// typed events.
//
// The wire payload arrives as loosely typed value trees: nested arrays,
// string-keyed maps, integers, strings, and booleans, the common shape
// produced by any self-describing codec. A payload is a sequence of
// batch elements, each an array whose first element names an event kind
// and whose remaining elements are occurrences of that kind:
//
//	["grid_line", [1, 0, 0, [["a", 5, 3]]], [1, 1, 0, [["b"]]]]
//
// The decoder narrows each occurrence into one of the Event variants
// defined here, preserving the protocol's compressed cell runs rather
// than expanding them; expansion is the screen layer's concern.
//
// Failure handling is deliberately asymmetric. An occurrence of an
// unrecognized event name decodes to nothing: the stream is produced by
// an editor that may be newer than this client, so unknown kinds must
// not be fatal. An occurrence of a recognized name that does not match
// its documented shape is a hard error that aborts the batch: malformed
// known traffic means the session is not trustworthy, and decoding
// after it would corrupt screen state. Errors retain the offending
// value node for diagnosis.
package redraw
