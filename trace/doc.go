// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

// Package trace captures and replays editor notification traffic.
//
// A trace file records every RPC notification a session receives,
// timestamped relative to the capture start, so a rendering bug seen
// once can be reproduced offline without the editor that caused it.
// The replayer feeds the recorded notifications back through the
// redraw decoder at their original pacing (or faster).
//
// # File Format
//
// A trace file is a header followed by a stream of framed records and
// a trailer:
//
//	header:  magic "NVTRACE1" (8 bytes)
//	         preferred compression tag (1 byte)
//	         metadata length (uint32, big-endian)
//	         metadata (CBOR)
//	record:  0x01 marker (1 byte)
//	         compression tag actually used (1 byte)
//	         raw length (uint32, big-endian)
//	         stored length (uint32, big-endian)
//	         record payload (storedLength bytes)
//	trailer: 0x02 marker (1 byte)
//	         BLAKE3 keyed digest (32 bytes)
//
// Records are CBOR-encoded before compression. Each record carries its
// own compression tag: when a record does not shrink under the
// preferred algorithm it is stored uncompressed, so the preferred tag
// in the header is advisory only. The trailer digest covers the raw
// (uncompressed) CBOR of every record in order, letting the reader
// detect truncation and corruption without trusting the transport.
package trace
