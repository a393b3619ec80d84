// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// specialNotation maps the terminal names of special keys to the
// editor's notation names.
var specialNotation = map[string]string{
	"enter":     "CR",
	"tab":       "Tab",
	"esc":       "Esc",
	"backspace": "BS",
	"delete":    "Del",
	"insert":    "Insert",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PageUp",
	"pgdown":    "PageDown",
}

// Notation converts a key press into the editor's angle-bracket key
// notation: "a" stays "a", "<" becomes "<lt>", enter becomes "<CR>",
// ctrl+a becomes "<C-a>", and alt wraps as "<M-...>". Pasted text
// arrives as a rune sequence and is escaped rune by rune. Keys the
// editor has no notation for return "".
func Notation(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyRunes:
		return runesNotation(msg.Runes, msg.Alt)
	case tea.KeySpace:
		if msg.Alt {
			return "<M-Space>"
		}
		return "<Space>"
	}

	// Everything else carries its modifiers in the key name, in any
	// of the forms "ctrl+a", "shift+tab", "alt+ctrl+left".
	name := msg.String()
	var alt, ctrl, shift bool
	for {
		switch {
		case strings.HasPrefix(name, "alt+"):
			alt, name = true, name[len("alt+"):]
		case strings.HasPrefix(name, "ctrl+"):
			ctrl, name = true, name[len("ctrl+"):]
		case strings.HasPrefix(name, "shift+"):
			shift, name = true, name[len("shift+"):]
		default:
			return wrapNotation(name, alt, ctrl, shift)
		}
	}
}

func runesNotation(runes []rune, alt bool) string {
	var b strings.Builder
	for _, r := range runes {
		switch {
		case alt && r == '<':
			b.WriteString("<M-lt>")
		case alt:
			b.WriteString("<M-")
			b.WriteRune(r)
			b.WriteByte('>')
		case r == '<':
			b.WriteString("<lt>")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// wrapNotation resolves a bare key name and applies modifiers in the
// editor's M-, C-, S- order.
func wrapNotation(name string, alt, ctrl, shift bool) string {
	base, ok := specialNotation[name]
	if !ok {
		if len(name) == 1 {
			base = name
		} else {
			digits, found := strings.CutPrefix(name, "f")
			if !found || !isDigits(digits) {
				return ""
			}
			base = "F" + digits
		}
	}

	var b strings.Builder
	b.WriteByte('<')
	if alt {
		b.WriteString("M-")
	}
	if ctrl {
		b.WriteString("C-")
	}
	if shift {
		b.WriteString("S-")
	}
	b.WriteString(base)
	b.WriteByte('>')
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
