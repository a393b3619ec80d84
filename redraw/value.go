// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package redraw

import (
	"math"
	"unicode/utf8"
)

// The accessors below narrow dynamically typed value nodes to the
// concrete shapes the event decoders need. Each returns a ValueError
// carrying the offending node when the narrowing fails. They are the
// only place in the package that inspects runtime types; the decoders
// compose them.

// valueArray narrows v to a sequence of value nodes.
func valueArray(v any) ([]any, error) {
	if array, ok := v.([]any); ok {
		return array, nil
	}
	return nil, &ValueError{Kind: KindArray, Value: v}
}

// valueMap narrows v to a string-keyed map. Codecs that decode map keys
// as anything other than strings produce a map type this narrowing
// rejects, which surfaces the non-string key as an invalid-map error.
func valueMap(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	return nil, &ValueError{Kind: KindMap, Value: v}
}

// valueString narrows v to valid UTF-8 text.
func valueString(v any) (string, error) {
	s, ok := v.(string)
	if !ok || !utf8.ValidString(s) {
		return "", &ValueError{Kind: KindString, Value: v}
	}
	return s, nil
}

// valueUint narrows v to a non-negative integer. Integer nodes arrive
// as int, int64, uint, or uint64 depending on the producing codec;
// all four are accepted. Negative values and non-integer kinds fail.
// Floats are not coerced: the protocol carries counts and identifiers
// here, and a float is always a malformed payload.
func valueUint(v any) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint:
		return uint64(n), nil
	case int64:
		if n >= 0 {
			return uint64(n), nil
		}
	case int:
		if n >= 0 {
			return uint64(n), nil
		}
	}
	return 0, &ValueError{Kind: KindU64, Value: v}
}

// valueInt narrows v to a signed integer. Unsigned nodes above the
// int64 range fail rather than wrap.
func valueInt(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n), nil
		}
	case uint:
		if uint64(n) <= math.MaxInt64 {
			return int64(n), nil
		}
	}
	return 0, &ValueError{Kind: KindI64, Value: v}
}

// integerKind reports whether v is an integer node of any sign or
// width. The style-attribute fold uses it to separate "recognized key
// holding the wrong kind", which is skipped for forward compatibility,
// from "integer that cannot represent the field", which is an error.
func integerKind(v any) bool {
	switch v.(type) {
	case int, int64, uint, uint64:
		return true
	}
	return false
}
