// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog_test

import (
	"strings"
	"testing"

	"code.hybscloud.com/dlog"
)

// =============================================================================
// Front-End Logger - Augmentation
// =============================================================================

func TestLoggerAugmentation(t *testing.T) {
	core, sink := newTestCore(t, dlog.New().
		PoolBytes(4096).
		TickSource(func() uint64 { return 42 }))
	if err := core.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer core.Close()

	log := core.Logger("app")
	if err := log.Infof("hello %s", "world"); err != nil {
		t.Fatalf("Infof: %v", err)
	}
	core.Flush()

	lines := sink.snapshot()
	if len(lines) != 1 {
		t.Fatalf("sink lines: got %d, want 1", len(lines))
	}
	want := "\x1b[37m[42] <INF> app::TestLoggerAugmentation: hello world\x1b[0m\r\n"
	if lines[0] != want {
		t.Fatalf("augmented line:\n got %q\nwant %q", lines[0], want)
	}
}

func TestLoggerSeverities(t *testing.T) {
	core, sink := newTestCore(t, dlog.New().
		PoolBytes(8192).
		TickSource(func() uint64 { return 0 }))
	if err := core.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer core.Close()

	log := core.Logger("m")
	log.Errorf("e")
	log.Warnf("w")
	log.Infof("i")
	log.Debugf("d")
	core.Flush()

	lines := sink.snapshot()
	if len(lines) != 4 {
		t.Fatalf("sink lines: got %d, want 4", len(lines))
	}
	wantTags := []string{"<ERR>", "<WRN>", "<INF>", "<DBG>"}
	wantColors := []string{"\x1b[31m", "\x1b[33m", "\x1b[37m", "\x1b[34m"}
	for i, line := range lines {
		if !strings.Contains(line, wantTags[i]) ||
			!strings.Contains(line, wantColors[i]) ||
			!strings.Contains(line, "m::TestLoggerSeverities:") {
			t.Fatalf("line %d missing markers: %q", i, line)
		}
	}
}

// =============================================================================
// Front-End Logger - Threshold
// =============================================================================

func TestLoggerThreshold(t *testing.T) {
	core, sink := newTestCore(t, dlog.New().TickSource(func() uint64 { return 0 }))
	if err := core.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer core.Close()

	log := core.Logger("m")
	log.SetLevel(dlog.SeverityWarning)
	if err := log.Infof("filtered"); err != nil {
		t.Fatalf("filtered Infof must return nil, got %v", err)
	}
	log.Errorf("kept")
	core.Flush()

	lines := sink.snapshot()
	if len(lines) != 1 {
		t.Fatalf("sink lines: got %d, want 1", len(lines))
	}

	log.SetLevel(dlog.SeverityNone)
	log.Errorf("silenced")
	core.Flush()
	if got := len(sink.snapshot()); got != 1 {
		t.Fatalf("silenced logger emitted: got %d lines, want 1", got)
	}
}
