// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog_test

import (
	"testing"
	"unsafe"

	"code.hybscloud.com/dlog"
)

// =============================================================================
// Format Analyzer - Sizing
// =============================================================================

func TestSizeOf(t *testing.T) {
	const word = int(unsafe.Sizeof(uintptr(0)))
	tests := []struct {
		name   string
		format string
		want   int
	}{
		{"empty", "", 0},
		{"no conversions", "hello world\n", 0},
		{"escaped percent", "100%%", 0},
		{"int", "%d", word},
		{"two ints", "%d %i", 2 * word},
		{"unsigned", "%u", word},
		{"hex with flags", "%#08x", word},
		{"char", "%c", word},
		{"short promoted", "%hd", word},
		{"char promoted", "%hhu", word},
		{"long", "%ld", word},
		{"long long", "%lld", word},
		{"size type", "%zu", word},
		{"ptrdiff type", "%td", word},
		{"intmax type", "%jd", word},
		{"float", "%f", word},
		{"exp with precision", "%.3e", word},
		{"string", "%s", 2 * word},
		{"pointer", "%p", word},
		{"write back", "%n", word},
		{"mixed", "x=%d y=%s", 3 * word},
		{"unknown verb", "%q", 0},
		{"trailing percent", "abc%", 0},
		{"width precision", "%-12.4f", word},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dlog.SizeOf(tt.format); got != tt.want {
				t.Fatalf("SizeOf(%q): got %d, want %d", tt.format, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Format Analyzer - Capture / Size Agreement
// =============================================================================

// TestCaptureSizeAgreement checks that SizeOf(f) equals the bytes a
// matching Capture writes, for every conversion class.
func TestCaptureSizeAgreement(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
	}{
		{"none", "plain", nil},
		{"int", "%d", []any{42}},
		{"many ints", "%d%u%x%c", []any{1, uint(2), uint32(3), 65}},
		{"long long", "%lld", []any{int64(1) << 40}},
		{"float", "%f %e", []any{1.5, 2.5}},
		{"string", "%s", []any{"ok"}},
		{"mixed", "x=%d y=%s z=%f", []any{7, "s", 1.0}},
		{"pointer", "%p", []any{uintptr(0x1000)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := dlog.SizeOf(tt.format)
			dst := make([]byte, n+16)
			got := dlog.Capture(dst, tt.format, tt.args...)
			if got != n {
				t.Fatalf("Capture wrote %d bytes, SizeOf predicted %d", got, n)
			}
		})
	}
}

func TestCaptureBounds(t *testing.T) {
	// Empty destination writes nothing.
	if got := dlog.Capture(nil, "%d", 1); got != 0 {
		t.Fatalf("Capture(nil dst): got %d, want 0", got)
	}
	// Packing stops at the last argument that fits.
	word := dlog.SizeOf("%d")
	dst := make([]byte, word)
	if got := dlog.Capture(dst, "%d %d", 1, 2); got != word {
		t.Fatalf("Capture into one-word dst: got %d, want %d", got, word)
	}
}
