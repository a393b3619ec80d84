// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/darcyparker/neovide/lib/codec"
)

// ErrDigestMismatch is returned by Next when the trailer digest does
// not match the records that were read. The records themselves
// decoded cleanly, so a caller that only wants a best-effort replay
// may choose to ignore it; verification tooling must not.
var ErrDigestMismatch = errors.New("trace digest mismatch")

// Reader reads a trace stream record by record. The header is
// consumed by NewReader; Next returns records until the trailer,
// then io.EOF.
//
// Reader is not safe for concurrent use.
type Reader struct {
	// Meta is the capture metadata from the file header.
	Meta Meta

	// Compression is the preferred tag from the header. Individual
	// records carry the tag actually used.
	Compression CompressionTag

	in     *bufio.Reader
	hasher *blake3.Hasher
	done   bool
}

// NewReader reads and validates the trace header from in.
func NewReader(in io.Reader) (*Reader, error) {
	buffered := bufio.NewReader(in)

	magic := make([]byte, len(traceMagic))
	if _, err := io.ReadFull(buffered, magic); err != nil {
		return nil, fmt.Errorf("reading trace magic: %w", err)
	}
	if string(magic) != traceMagic {
		return nil, fmt.Errorf("not a trace file: bad magic %q", magic)
	}

	tagByte, err := buffered.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading trace header: %w", err)
	}

	var lengthBuffer [4]byte
	if _, err := io.ReadFull(buffered, lengthBuffer[:]); err != nil {
		return nil, fmt.Errorf("reading trace header: %w", err)
	}
	metaLength := binary.BigEndian.Uint32(lengthBuffer[:])
	if metaLength > maxRecordLength {
		return nil, fmt.Errorf("trace metadata too large: %d bytes", metaLength)
	}

	metaBytes := make([]byte, metaLength)
	if _, err := io.ReadFull(buffered, metaBytes); err != nil {
		return nil, fmt.Errorf("reading trace metadata: %w", err)
	}
	var meta Meta
	if err := codec.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("decoding trace metadata: %w", err)
	}

	return &Reader{
		Meta:        meta,
		Compression: CompressionTag(tagByte),
		in:          buffered,
		hasher:      newRecordHasher(),
	}, nil
}

// Next returns the next record. After the trailer has been read and
// verified, Next returns io.EOF. A stream that ends without a trailer
// returns an error wrapping io.ErrUnexpectedEOF — the capture was cut
// off, and records past the last full frame are gone.
func (r *Reader) Next() (Record, error) {
	if r.done {
		return Record{}, io.EOF
	}

	marker, err := r.in.ReadByte()
	if err != nil {
		if err == io.EOF {
			return Record{}, fmt.Errorf("trace missing trailer: %w", io.ErrUnexpectedEOF)
		}
		return Record{}, fmt.Errorf("reading trace frame: %w", err)
	}

	switch marker {
	case markerRecord:
		return r.readRecord()

	case markerTrailer:
		var want [32]byte
		if _, err := io.ReadFull(r.in, want[:]); err != nil {
			return Record{}, fmt.Errorf("reading trace trailer: %w", err)
		}
		r.done = true
		if !bytes.Equal(r.hasher.Sum(nil), want[:]) {
			return Record{}, ErrDigestMismatch
		}
		return Record{}, io.EOF

	default:
		return Record{}, fmt.Errorf("unknown trace frame marker 0x%02x", marker)
	}
}

func (r *Reader) readRecord() (Record, error) {
	// Frame head after the marker: tag (1), raw length (4), stored
	// length (4).
	var head [9]byte
	if _, err := io.ReadFull(r.in, head[:]); err != nil {
		return Record{}, fmt.Errorf("reading trace record frame: %w", err)
	}
	tag := CompressionTag(head[0])
	rawLength := binary.BigEndian.Uint32(head[1:5])
	storedLength := binary.BigEndian.Uint32(head[5:9])
	if rawLength > maxRecordLength || storedLength > maxRecordLength {
		return Record{}, fmt.Errorf("trace record too large: raw %d, stored %d", rawLength, storedLength)
	}

	stored := make([]byte, storedLength)
	if _, err := io.ReadFull(r.in, stored); err != nil {
		return Record{}, fmt.Errorf("reading trace record: %w", err)
	}

	raw, err := decompressRecord(stored, tag, int(rawLength))
	if err != nil {
		return Record{}, err
	}
	r.hasher.Write(raw)

	var record Record
	if err := codec.Unmarshal(raw, &record); err != nil {
		return Record{}, fmt.Errorf("decoding trace record: %w", err)
	}
	return record, nil
}
