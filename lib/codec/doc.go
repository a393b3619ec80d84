// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration for
// trace files.
//
// Captured editor traffic is stored as CBOR: each trace record holds
// the notification method and its raw payload tree. The encoder uses
// Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items. Same logical
// data always produces identical bytes, which keeps trace digests
// stable across rewrites of the same capture.
//
// The decoder maps any-typed targets to map[string]any rather than the
// CBOR default of map[any]any. Replayed payload trees therefore have
// exactly the shapes the redraw decoder's accessors narrow: []any,
// map[string]any, string, and integer kinds.
package codec
