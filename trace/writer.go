// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/darcyparker/neovide/lib/clock"
	"github.com/darcyparker/neovide/lib/codec"
)

// Writer appends captured notifications to a trace stream. Records
// are timestamped against the clock the Writer was created with, so
// the first Record call lands at (or near) offset zero.
//
// Writer is safe for concurrent use. It does not close the underlying
// stream; Close writes the trailer and the caller closes the file.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	tag    CompressionTag
	clk    clock.Clock
	start  time.Time
	hasher *blake3.Hasher
	closed bool
}

// NewWriter writes the trace header to out and returns a Writer. The
// tag selects the preferred compression for records; individual
// records that do not shrink are stored uncompressed. A nil clk uses
// the real clock. If meta.CreatedAt is zero it is filled in from the
// clock.
func NewWriter(out io.Writer, tag CompressionTag, meta Meta, clk clock.Clock) (*Writer, error) {
	switch tag {
	case CompressionNone, CompressionLZ4, CompressionZstd:
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
	if clk == nil {
		clk = clock.Real()
	}

	start := clk.Now()
	if meta.CreatedAt == 0 {
		meta.CreatedAt = start.UnixMicro()
	}

	metaBytes, err := codec.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encoding trace metadata: %w", err)
	}
	if len(metaBytes) > maxRecordLength {
		return nil, fmt.Errorf("trace metadata too large: %d bytes", len(metaBytes))
	}

	header := make([]byte, 0, len(traceMagic)+5+len(metaBytes))
	header = append(header, traceMagic...)
	header = append(header, byte(tag))
	header = binary.BigEndian.AppendUint32(header, uint32(len(metaBytes)))
	header = append(header, metaBytes...)
	if _, err := out.Write(header); err != nil {
		return nil, fmt.Errorf("writing trace header: %w", err)
	}

	return &Writer{
		out:    out,
		tag:    tag,
		clk:    clk,
		start:  start,
		hasher: newRecordHasher(),
	}, nil
}

// Record appends one notification. The payload is the notification's
// parameters as raw CBOR; the record timestamp is taken from the
// clock at the moment of the call.
func (w *Writer) Record(method string, payload codec.RawMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("trace writer is closed")
	}

	record := Record{
		At:      w.clk.Now().Sub(w.start).Microseconds(),
		Method:  method,
		Payload: payload,
	}
	raw, err := codec.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding trace record: %w", err)
	}
	if len(raw) > maxRecordLength {
		return fmt.Errorf("trace record too large: %d bytes (max %d)", len(raw), maxRecordLength)
	}

	// The digest covers raw bytes so it is independent of the
	// per-record compression outcome.
	w.hasher.Write(raw)

	stored, tag := raw, CompressionNone
	if w.tag != CompressionNone {
		compressed, err := compressRecord(raw, w.tag)
		switch {
		case isIncompressible(err):
			// Fall through with the raw bytes.
		case err != nil:
			return err
		default:
			stored, tag = compressed, w.tag
		}
	}

	// Single Write per record so a crash never leaves a torn frame
	// followed by a valid one.
	frame := make([]byte, 10+len(stored))
	frame[0] = markerRecord
	frame[1] = byte(tag)
	binary.BigEndian.PutUint32(frame[2:6], uint32(len(raw)))
	binary.BigEndian.PutUint32(frame[6:10], uint32(len(stored)))
	copy(frame[10:], stored)
	if _, err := w.out.Write(frame); err != nil {
		return fmt.Errorf("writing trace record: %w", err)
	}
	return nil
}

// Close writes the trailer digest. Records after Close are rejected.
// Close is idempotent; only the first call writes the trailer.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	trailer := make([]byte, 33)
	trailer[0] = markerTrailer
	copy(trailer[1:], w.hasher.Sum(nil))
	if _, err := w.out.Write(trailer); err != nil {
		return fmt.Errorf("writing trace trailer: %w", err)
	}
	return nil
}
