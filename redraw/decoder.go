// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package redraw

import "log/slog"

// Decoder translates redraw notification payloads into Events. Apart
// from its logger it is stateless: every call is a pure function of
// its input, and a single Decoder is safe for concurrent use.
type Decoder struct {
	logger *slog.Logger
}

// NewDecoder returns a Decoder that reports skipped event names and
// style attributes to logger. A nil logger falls back to slog.Default.
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{logger: logger}
}

// skipReason classifies occurrences that decode to no event and no
// error.
type skipReason uint8

const (
	skipNone skipReason = iota

	// skipIgnored marks names the protocol defines but this client
	// deliberately does not act on.
	skipIgnored

	// skipUnknown marks names this client does not recognize,
	// typically events introduced by a newer editor.
	skipUnknown
)

// decodeOccurrence decodes a single occurrence of the named event.
// Exactly one of the three results is meaningful: an event, a non-zero
// skip reason, or an error.
func (d *Decoder) decodeOccurrence(name string, args []any) (Event, skipReason, error) {
	var (
		event Event
		err   error
	)
	switch name {
	case "set_title":
		event, err = decodeSetTitle(args)
	case "mode_info_set":
		event, err = decodeModeInfoSet(args)
	case "mode_change":
		event, err = decodeModeChange(args)
	case "busy_start":
		// The busy events carry no payload worth validating.
		event = BusyStart{}
	case "busy_stop":
		event = BusyStop{}
	case "flush":
		event = Flush{}
	case "grid_resize":
		event, err = decodeResize(args)
	case "default_colors_set":
		event, err = decodeDefaultColors(args)
	case "hl_attr_define":
		event, err = d.decodeHighlightAttributes(args)
	case "grid_line":
		event, err = decodeGridLine(args)
	case "grid_clear":
		event, err = decodeClear(args)
	case "grid_cursor_goto":
		event, err = decodeCursorGoto(args)
	case "grid_scroll":
		event, err = decodeScroll(args)
	case "set_icon", "option_set":
		// Recognized, deliberately unhandled: the icon has no terminal
		// counterpart, and UI options are applied at attach time.
		return nil, skipIgnored, nil
	default:
		return nil, skipUnknown, nil
	}
	if err != nil {
		return nil, skipNone, err
	}
	return event, skipNone, nil
}

// DecodeBatch decodes one batch element of a redraw payload:
// an array [name, occurrence, occurrence, ...] in which every
// occurrence is an argument list for the named event. Occurrences of
// ignored and unknown names decode to nothing; a malformed occurrence
// of a recognized name aborts the batch, and any events decoded from
// earlier occurrences are discarded.
func (d *Decoder) DecodeBatch(batch any) ([]Event, error) {
	contents, err := valueArray(batch)
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, &EventFormatError{}
	}
	name, err := valueString(contents[0])
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, occurrence := range contents[1:] {
		args, err := valueArray(occurrence)
		if err != nil {
			return nil, err
		}
		event, skip, err := d.decodeOccurrence(name, args)
		if err != nil {
			return nil, err
		}
		switch skip {
		case skipIgnored:
			d.logger.Debug("ignored redraw event", "name", name)
		case skipUnknown:
			d.logger.Warn("unparsed redraw event", "name", name)
		default:
			events = append(events, event)
		}
	}
	return events, nil
}

// DecodeNotification decodes one editor notification. Only "redraw"
// notifications carry redraw events; any other method yields no events
// and no error. Each element of a redraw payload is one batch, decoded
// in order, and the resulting events are concatenated so that their
// order matches the wire order exactly.
func (d *Decoder) DecodeNotification(method string, payload []any) ([]Event, error) {
	if method != "redraw" {
		d.logger.Warn("unknown editor notification", "method", method)
		return nil, nil
	}
	var events []Event
	for _, batch := range payload {
		decoded, err := d.DecodeBatch(batch)
		if err != nil {
			return nil, err
		}
		events = append(events, decoded...)
	}
	return events, nil
}
