// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

// Package theme provides parsing for palette files. A palette supplies
// the default colors shown between the first frame and the editor's
// own default_colors_set event; without one the UI starts on the
// terminal's idea of white-on-black.
//
// Palettes are authored as JSONC (JSON extended with comments and
// trailing commas):
//
//	{
//	  // gruvbox dark
//	  "foreground": "#ebdbb2",
//	  "background": "#282828",
//	  "special":    "#fe8019",
//	}
package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/darcyparker/neovide/editor"
)

// Palette is the raw palette file content. Channels are hex colors of
// the form "#rrggbb"; absent channels stay on the terminal defaults.
type Palette struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	Special    string `json:"special"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a Palette.
func Parse(data []byte) (*Palette, error) {
	stripped := jsonc.ToJSON(data)

	var palette Palette
	if err := json.Unmarshal(stripped, &palette); err != nil {
		return nil, fmt.Errorf("parsing palette: %w", err)
	}
	return &palette, nil
}

// ReadFile reads a JSONC palette file from disk and parses it.
func ReadFile(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	palette, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return palette, nil
}

// Colors converts the palette's hex channels into editor colors. A
// channel left empty in the file yields a nil channel.
func (p *Palette) Colors() (editor.Colors, error) {
	var colors editor.Colors
	for _, channel := range []struct {
		name  string
		hex   string
		field **editor.Color
	}{
		{"foreground", p.Foreground, &colors.Foreground},
		{"background", p.Background, &colors.Background},
		{"special", p.Special, &colors.Special},
	} {
		if channel.hex == "" {
			continue
		}
		color, err := parseHexColor(channel.hex)
		if err != nil {
			return editor.Colors{}, fmt.Errorf("%s: %w", channel.name, err)
		}
		*channel.field = &color
	}
	return colors, nil
}

// parseHexColor parses a "#rrggbb" string into a normalized color.
func parseHexColor(hex string) (editor.Color, error) {
	digits, ok := strings.CutPrefix(hex, "#")
	if !ok || len(digits) != 6 {
		return editor.Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	packed, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return editor.Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	return editor.Color{
		R: float32((packed&0xff0000)>>16) / 255.0,
		G: float32((packed&0xff00)>>8) / 255.0,
		B: float32(packed&0xff) / 255.0,
		A: 1.0,
	}, nil
}
