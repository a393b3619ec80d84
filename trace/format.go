// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"github.com/zeebo/blake3"

	"github.com/darcyparker/neovide/lib/codec"
)

// traceMagic identifies a trace file. The trailing digit is the
// format version: readers reject files whose magic does not match
// byte for byte.
const traceMagic = "NVTRACE1"

// Frame markers. Every byte following the header is either a record
// frame or the trailer; the marker distinguishes them.
const (
	markerRecord  byte = 0x01
	markerTrailer byte = 0x02
)

// maxRecordLength bounds both the raw and stored size of a single
// record, and the metadata block. Redraw batches top out in the tens
// of kilobytes even for full-screen repaints; the limit exists so a
// corrupt length field cannot drive an allocation.
const maxRecordLength = 16 * 1024 * 1024

// Meta describes the capture session. It is written once in the file
// header so a trace is self-describing: the dump tool and the
// replayer can report where a trace came from without external
// context.
type Meta struct {
	// CreatedAt is the capture start in microseconds since the Unix
	// epoch. Record timestamps are relative to this instant.
	CreatedAt int64 `cbor:"created_at"`

	// Editor is the command line of the editor process, or the
	// address of the remote instance the session attached to.
	Editor string `cbor:"editor"`

	// Version identifies the build that produced the trace.
	Version string `cbor:"version"`

	// Columns and Rows are the grid dimensions the session attached
	// with, recorded for inspection. Replay does not need them: the
	// recorded grid_resize events re-establish the size.
	Columns uint64 `cbor:"columns"`
	Rows    uint64 `cbor:"rows"`
}

// Record is one captured notification. At is microseconds since the
// capture start; Payload holds the notification parameters as raw
// CBOR, deferred so capture never pays for decoding and the dump tool
// can show payloads the decoder does not understand.
type Record struct {
	At      int64            `cbor:"at"`
	Method  string           `cbor:"method"`
	Payload codec.RawMessage `cbor:"payload"`
}

// recordDigestKey is the BLAKE3 key for the trailer digest. Domain
// separation keeps trace digests distinct from any other BLAKE3 use
// of the same bytes. The byte values are the ASCII encoding of the
// domain name, zero-padded to 32 bytes, so the key is inspectable in
// hex dumps without sacrificing any cryptographic property.
var recordDigestKey = [32]byte{
	'n', 'e', 'o', 'v', 'i', 'd', 'e', '.', 't', 'r', 'a', 'c', 'e', '.',
	'r', 'e', 'c', 'o', 'r', 'd', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// newRecordHasher returns a keyed BLAKE3 hasher for the trailer
// digest. Writer and Reader each feed it the raw CBOR of every record
// in file order.
func newRecordHasher() *blake3.Hasher {
	// NewKeyed requires exactly 32 bytes, which the fixed-size key
	// guarantees, so this cannot fail.
	hasher, err := blake3.NewKeyed(recordDigestKey[:])
	if err != nil {
		panic("trace: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}
