// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog_test

import (
	"testing"

	"code.hybscloud.com/dlog"
)

func BenchmarkSizeOf(b *testing.B) {
	for i := 0; i < b.N; i++ {
		dlog.SizeOf("x=%d y=%s z=%f")
	}
}

func BenchmarkCapture(b *testing.B) {
	const format = "x=%d y=%s z=%f"
	dst := make([]byte, dlog.SizeOf(format))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dlog.Capture(dst, format, 42, "ok", 1.5)
	}
}

func BenchmarkReconstruct(b *testing.B) {
	const format = "x=%d y=%s z=%f"
	capture := make([]byte, dlog.SizeOf(format))
	dlog.Capture(capture, format, 42, "ok", 1.5)
	var out [128]byte
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dlog.Reconstruct(out[:], format, capture)
	}
}

func BenchmarkPoolAllocFree(b *testing.B) {
	p := dlog.NewPool(4096, 64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		msg, err := p.Alloc(16)
		if err != nil {
			b.Fatal(err)
		}
		p.Free(msg)
	}
}

func BenchmarkSubmit(b *testing.B) {
	core := dlog.New().
		PoolBytes(1 << 16).
		MaxArgBytes(64).
		QueueDepth(1 << 12).
		Build()
	core.RegisterSink(dlog.FuncSink(func(*dlog.Message) {}))
	if err := core.Start(); err != nil {
		b.Fatal(err)
	}
	defer core.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Drops under benchmark pressure are the designed behavior.
		_ = core.Submit("bench", "f", dlog.SeverityDebug, "i=%d", i)
	}
	b.StopTimer()
	core.Flush()
}
