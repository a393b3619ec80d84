// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/darcyparker/neovide/editor"
)

func TestParseWithCommentsAndTrailingCommas(t *testing.T) {
	t.Parallel()
	palette, err := Parse([]byte(`{
		// gruvbox dark
		"foreground": "#ebdbb2",
		"background": "#282828",
		/* accent */
		"special": "#fe8019",
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	colors, err := palette.Colors()
	if err != nil {
		t.Fatalf("Colors: %v", err)
	}
	if colors.Foreground == nil || colors.Background == nil || colors.Special == nil {
		t.Fatalf("channels missing: %+v", colors)
	}
	want := editor.Color{R: 0xeb / 255.0, G: 0xdb / 255.0, B: 0xb2 / 255.0, A: 1.0}
	if *colors.Foreground != want {
		t.Errorf("foreground: got %+v, want %+v", *colors.Foreground, want)
	}
}

func TestColorsAbsentChannels(t *testing.T) {
	t.Parallel()
	palette, err := Parse([]byte(`{"background": "#000000"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	colors, err := palette.Colors()
	if err != nil {
		t.Fatalf("Colors: %v", err)
	}
	if colors.Foreground != nil || colors.Special != nil {
		t.Errorf("absent channels should stay nil: %+v", colors)
	}
	if colors.Background == nil {
		t.Error("background missing")
	}
}

func TestColorsRejectsBadHex(t *testing.T) {
	t.Parallel()
	for _, hex := range []string{"ebdbb2", "#ebd", "#zzzzzz", "#ebdbb2ff"} {
		palette := &Palette{Foreground: hex}
		if _, err := palette.Colors(); err == nil {
			t.Errorf("hex %q: want error, got nil", hex)
		}
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "palette.jsonc")
	if err := os.WriteFile(path, []byte(`{"foreground": "#ffffff"}`), 0o644); err != nil {
		t.Fatalf("writing palette: %v", err)
	}

	palette, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if palette.Foreground != "#ffffff" {
		t.Errorf("foreground: got %q", palette.Foreground)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.jsonc")); err == nil {
		t.Error("missing file: want error, got nil")
	}
}
