// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"crypto/rand"
	"testing"
)

func TestCompressionTagString(t *testing.T) {
	tests := []struct {
		tag  CompressionTag
		want string
	}{
		{CompressionNone, "none"},
		{CompressionLZ4, "lz4"},
		{CompressionZstd, "zstd"},
		{CompressionTag(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.tag.String()
			if got != tt.want {
				t.Errorf("CompressionTag(%d).String() = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestParseCompressionTag(t *testing.T) {
	for _, name := range []string{"none", "lz4", "zstd"} {
		t.Run(name, func(t *testing.T) {
			tag, err := ParseCompressionTag(name)
			if err != nil {
				t.Fatalf("ParseCompressionTag(%q) failed: %v", name, err)
			}
			if tag.String() != name {
				t.Errorf("roundtrip: ParseCompressionTag(%q).String() = %q", name, tag.String())
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseCompressionTag("gzip")
		if err == nil {
			t.Error("ParseCompressionTag(\"gzip\") should fail")
		}
	})
}

func TestCompressDecompressNone(t *testing.T) {
	data := []byte("uncompressed data should pass through unchanged")

	compressed, err := compressRecord(data, CompressionNone)
	if err != nil {
		t.Fatalf("compressRecord(none) failed: %v", err)
	}

	// For CompressionNone, the compressed output should be the same slice.
	if &compressed[0] != &data[0] {
		t.Error("CompressionNone should return the same slice, not a copy")
	}

	decompressed, err := decompressRecord(compressed, CompressionNone, len(data))
	if err != nil {
		t.Fatalf("decompressRecord(none) failed: %v", err)
	}

	if string(decompressed) != string(data) {
		t.Error("none compression roundtrip failed")
	}
}

func TestCompressDecompressNoneSizeMismatch(t *testing.T) {
	data := []byte("five bytes extra")

	_, err := decompressRecord(data, CompressionNone, len(data)+5)
	if err == nil {
		t.Error("decompressRecord(none) should fail when size does not match")
	}
}

func TestCompressDecompressLZ4(t *testing.T) {
	// Compressible data: repeated pattern.
	data := make([]byte, 64*1024)
	for i := range data {
		data[i] = byte(i % 17)
	}

	compressed, err := compressRecord(data, CompressionLZ4)
	if err != nil {
		t.Fatalf("compressRecord(lz4) failed: %v", err)
	}

	if len(compressed) >= len(data) {
		t.Errorf("LZ4 did not compress: %d bytes → %d bytes", len(data), len(compressed))
	}

	decompressed, err := decompressRecord(compressed, CompressionLZ4, len(data))
	if err != nil {
		t.Fatalf("decompressRecord(lz4) failed: %v", err)
	}

	for i := range data {
		if decompressed[i] != data[i] {
			t.Fatalf("LZ4 roundtrip mismatch at byte %d", i)
		}
	}
}

func TestCompressDecompressZstd(t *testing.T) {
	// Redraw-shaped data: the same event names and attribute keys
	// repeated many times, which is what a real capture looks like.
	fragment := []byte(`["grid_line",[2,0,0,[["n",47],[" "],["e"],["o"]]]]["hl_attr_define"]`)
	data := make([]byte, 0, 64*1024)
	for len(data) < 64*1024 {
		data = append(data, fragment...)
	}

	compressed, err := compressRecord(data, CompressionZstd)
	if err != nil {
		t.Fatalf("compressRecord(zstd) failed: %v", err)
	}

	if len(compressed) >= len(data) {
		t.Errorf("Zstd did not compress: %d bytes → %d bytes", len(data), len(compressed))
	}

	ratio := float64(len(data)) / float64(len(compressed))
	if ratio < 2.0 {
		t.Errorf("Zstd compression ratio %.2fx is unexpectedly low for repetitive event data", ratio)
	}

	decompressed, err := decompressRecord(compressed, CompressionZstd, len(data))
	if err != nil {
		t.Fatalf("decompressRecord(zstd) failed: %v", err)
	}

	for i := range data {
		if decompressed[i] != data[i] {
			t.Fatalf("Zstd roundtrip mismatch at byte %d", i)
		}
	}
}

func TestCompressIncompressibleLZ4(t *testing.T) {
	// Random data is incompressible.
	data := make([]byte, 64*1024)
	rand.Read(data)

	_, err := compressRecord(data, CompressionLZ4)
	if err == nil {
		t.Fatal("LZ4 should return incompressible error for random data")
	}
	if !isIncompressible(err) {
		t.Errorf("expected incompressible error, got: %v", err)
	}
}

func TestCompressIncompressibleZstd(t *testing.T) {
	data := make([]byte, 64*1024)
	rand.Read(data)

	_, err := compressRecord(data, CompressionZstd)
	if err == nil {
		t.Fatal("Zstd should return incompressible error for random data")
	}
	if !isIncompressible(err) {
		t.Errorf("expected incompressible error, got: %v", err)
	}
}

func TestCompressUnsupportedTag(t *testing.T) {
	_, err := compressRecord([]byte("data"), CompressionTag(99))
	if err == nil {
		t.Error("compressRecord with unknown tag should fail")
	}
}

func TestDecompressUnsupportedTag(t *testing.T) {
	_, err := decompressRecord([]byte("data"), CompressionTag(99), 4)
	if err == nil {
		t.Error("decompressRecord with unknown tag should fail")
	}
}

func BenchmarkCompressZstd(b *testing.B) {
	data := make([]byte, 64*1024)
	for i := range data {
		data[i] = byte(i % 17)
	}

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		compressRecord(data, CompressionZstd)
	}
}

func BenchmarkDecompressZstd(b *testing.B) {
	data := make([]byte, 64*1024)
	for i := range data {
		data[i] = byte(i % 17)
	}
	compressed, err := compressRecord(data, CompressionZstd)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		decompressRecord(compressed, CompressionZstd, len(data))
	}
}
