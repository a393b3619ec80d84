// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/darcyparker/neovide/lib/codec"
	"github.com/darcyparker/neovide/redraw"
	"github.com/darcyparker/neovide/trace"
)

// printHeader writes the capture metadata line that precedes the
// listing and raw modes.
func printHeader(out io.Writer, path string, reader *trace.Reader) {
	meta := reader.Meta
	editor := meta.Editor
	if editor == "" {
		editor = "(unknown editor)"
	}
	created := time.UnixMicro(meta.CreatedAt).UTC().Format(time.RFC3339)
	fmt.Fprintf(out, "%s: %s", path, editor)
	if meta.Version != "" {
		fmt.Fprintf(out, " (neovide %s)", meta.Version)
	}
	fmt.Fprintf(out, ", %dx%d, %s, captured %s\n\n",
		meta.Columns, meta.Rows, reader.Compression, created)
}

// dumpListing prints one line per record: offset, method, and the
// decoded event names with repeat counts. A record that no longer
// decodes is reported on its line and the listing continues.
func dumpListing(out io.Writer, reader *trace.Reader, decoder *redraw.Decoder) error {
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		prefix := fmt.Sprintf("%s  %-8s", formatOffset(record.At), record.Method)
		events, err := decodeRecord(decoder, record)
		switch {
		case err != nil:
			fmt.Fprintf(out, "%s  decode error: %v\n", prefix, err)
		case len(events) == 0:
			fmt.Fprintf(out, "%s  (no events)\n", prefix)
		default:
			fmt.Fprintf(out, "%s  %s\n", prefix, summarizeEvents(events))
		}
	}
}

// dumpRaw prints each record's payload in CBOR diagnostic notation,
// undecoded. This shows exactly what the editor sent, including event
// parameters the typed decoder drops.
func dumpRaw(out io.Writer, reader *trace.Reader) error {
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		diagnostic, err := codec.Diagnose(record.Payload)
		if err != nil {
			diagnostic = fmt.Sprintf("(not CBOR: %v)", err)
		}
		fmt.Fprintf(out, "%s  %-8s %s\n", formatOffset(record.At), record.Method, diagnostic)
	}
}

// recordJSON is the shape of one line of --json output.
type recordJSON struct {
	AtMicros int64    `json:"at_us"`
	Method   string   `json:"method"`
	Events   []string `json:"events,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// dumpJSON writes one JSON object per record, newline-delimited, for
// scripted analysis. Event names are listed individually, in wire
// order, without the repeat-count folding the listing mode applies.
func dumpJSON(out io.Writer, reader *trace.Reader, decoder *redraw.Decoder) error {
	encoder := json.NewEncoder(out)
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line := recordJSON{AtMicros: record.At, Method: record.Method}
		events, err := decodeRecord(decoder, record)
		if err != nil {
			line.Error = err.Error()
		} else {
			line.Events = make([]string, len(events))
			for i, event := range events {
				line.Events[i] = eventName(event)
			}
		}
		if err := encoder.Encode(line); err != nil {
			return fmt.Errorf("writing JSON record: %w", err)
		}
	}
}

// dumpStats aggregates the whole trace into per-event counts.
func dumpStats(out io.Writer, reader *trace.Reader, decoder *redraw.Decoder) error {
	var (
		records      int
		totalEvents  int
		decodeErrors int
		lastAt       int64
		counts       = make(map[string]int)
	)
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		records++
		if record.At > lastAt {
			lastAt = record.At
		}
		events, err := decodeRecord(decoder, record)
		if err != nil {
			decodeErrors++
			continue
		}
		totalEvents += len(events)
		for _, event := range events {
			counts[eventName(event)]++
		}
	}

	fmt.Fprintf(out, "records: %d\n", records)
	fmt.Fprintf(out, "events:  %d\n", totalEvents)
	fmt.Fprintf(out, "span:    %s\n", time.Duration(lastAt)*time.Microsecond)
	if decodeErrors > 0 {
		fmt.Fprintf(out, "decode errors: %d\n", decodeErrors)
	}
	if len(counts) == 0 {
		return nil
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if d := counts[b] - counts[a]; d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})

	fmt.Fprintln(out)
	writer := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "EVENT\tCOUNT")
	for _, name := range names {
		fmt.Fprintf(writer, "%s\t%d\n", name, counts[name])
	}
	return writer.Flush()
}

// verifyTrace reads every record and lets the reader check the
// trailer digest. Corruption and truncation surface as errors from
// Next, including trace.ErrDigestMismatch.
func verifyTrace(out io.Writer, reader *trace.Reader) error {
	records := 0
	for {
		if _, err := reader.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		records++
	}
	fmt.Fprintf(out, "ok: %d records, digest verified\n", records)
	return nil
}

// decodeRecord runs one captured notification through the redraw
// decoder.
func decodeRecord(decoder *redraw.Decoder, record trace.Record) ([]redraw.Event, error) {
	var payload []any
	if err := codec.Unmarshal(record.Payload, &payload); err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	return decoder.DecodeNotification(record.Method, payload)
}

// formatOffset renders a record timestamp (microseconds since capture
// start) as a fixed-width millisecond column.
func formatOffset(at int64) string {
	return fmt.Sprintf("%12.3fms", float64(at)/1000.0)
}

// summarizeEvents folds a record's events into "name xN" terms,
// keeping first-appearance order so the summary reads in wire order.
func summarizeEvents(events []redraw.Event) string {
	counts := make(map[string]int)
	var order []string
	for _, event := range events {
		name := eventName(event)
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	parts := make([]string, 0, len(order))
	for _, name := range order {
		if counts[name] == 1 {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("%s x%d", name, counts[name]))
		}
	}
	return strings.Join(parts, ", ")
}

// eventName maps a decoded event back to its wire name.
func eventName(event redraw.Event) string {
	switch event.(type) {
	case redraw.SetTitle:
		return "set_title"
	case redraw.ModeInfoSet:
		return "mode_info_set"
	case redraw.ModeChange:
		return "mode_change"
	case redraw.BusyStart:
		return "busy_start"
	case redraw.BusyStop:
		return "busy_stop"
	case redraw.Flush:
		return "flush"
	case redraw.Resize:
		return "grid_resize"
	case redraw.DefaultColorsSet:
		return "default_colors_set"
	case redraw.HighlightAttributesDefine:
		return "hl_attr_define"
	case redraw.GridLine:
		return "grid_line"
	case redraw.Clear:
		return "grid_clear"
	case redraw.CursorGoto:
		return "grid_cursor_goto"
	case redraw.Scroll:
		return "grid_scroll"
	default:
		return fmt.Sprintf("%T", event)
	}
}
