// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dlog provides a deferred logging core with bounded, statically
// reserved storage and a non-suspending submission path.
//
// Call sites capture their printf-style arguments into a packed byte buffer
// at the site of invocation, hand a pool-resident message to a background
// worker over a bounded MPSC queue, and return immediately. The worker
// renders each message and fans it out to registered sinks. Nothing on the
// submission path allocates, takes a lock, or parks the calling goroutine,
// which makes it safe to invoke from signal handlers, interrupt-style
// callbacks, and other contexts that must never yield.
//
// # Quick Start
//
//	core := dlog.New().
//		PoolBytes(4096).
//		QueueDepth(64).
//		Build()
//
//	core.RegisterSink(dlog.NewWriterSink(os.Stderr))
//	core.Start()
//
//	core.Submit("net", "handleFrame", dlog.SeverityInfo, "rx %d bytes from %s", n, peer)
//
// Or through the per-module front-end, which stamps ticks, severity tags and
// ANSI colors the way a call-site macro layer would:
//
//	log := core.Logger("net")
//	log.Infof("rx %d bytes from %s", n, peer)
//	log.Errorf("crc mismatch: %#x", crc)
//
// # Message Lifecycle
//
// A message moves through exactly one owner at a time:
//
//	Submit → pool slot (capture) → queue → worker (render + fan-out) → pool
//
// [SizeOf] computes the capture footprint of a format string, [Capture]
// packs the live arguments into the slot's buffer, and the worker's sinks
// call [Message.Render] to walk the same format string and decode the
// buffer with the identical type table. The format string passed to Submit
// must therefore be the exact string the arguments were captured against,
// and must outlive the message; string literals satisfy both by
// construction.
//
// # Capture Convention
//
// %s captures the argument's data pointer and length only. The pointed-to
// bytes are not copied and not retained for the garbage collector: callers
// must pass string literals or strings that remain live until the worker
// has rendered the message. The same applies to []byte arguments.
//
// Integer conversions accept any Go integer type and capture at 8 bytes
// regardless of length modifier. Mismatched or missing arguments capture as
// zero values rather than faulting.
//
// # Backpressure
//
// Storage is fixed at construction: a slab arena of equal-capacity message
// slots and a bounded queue of slot indices. When either is exhausted the
// submit drops the message and returns [ErrNoSpace] immediately; nothing
// retries or waits inside the core. [Core.Dropped] counts the drops.
//
//	if err := core.Submit(mod, fn, dlog.SeverityDebug, f, args...); dlog.IsNoSpace(err) {
//	    // burst overload - message dropped by design
//	}
//
// # Sinks
//
// A sink is a single capability: consume one message.
//
//	type Sink interface {
//	    Emit(msg *Message)
//	}
//
// Sinks are registered before Start and walked in registration order for
// every message, exactly once each. [WriterSink] renders into a pooled
// scratch buffer and writes to an io.Writer; [FuncSink] adapts a function.
// Registration is not synchronized with active logging: populate the
// registry during startup.
//
// # Architecture Requirements
//
// The capture layout packs every argument at 8-byte granularity and assumes
// 64-bit words. The package compiles only on 64-bit architectures (amd64,
// arm64, riscv64, loong64, ppc64, ppc64le, s390x, mips64, mips64le, sparc64);
// unsupported targets fail at build time via the internal guard package.
//
// # Race Detection
//
// The pool's free ring establishes happens-before edges through atomic
// sequence numbers, which Go's race detector cannot observe. Stress tests
// that exercise it concurrently are excluded via //go:build !race, the same
// discipline the rest of the ecosystem uses for lock-free structures.
//
// # Dependencies
//
// dlog uses [code.hybscloud.com/lfq] for the bounded MPSC message queue,
// [code.hybscloud.com/iobuf] for pooled render scratch buffers,
// [code.hybscloud.com/atomix] for atomics with explicit memory ordering,
// [code.hybscloud.com/spin] for CPU pause on CAS contention, and
// [code.hybscloud.com/iox] for semantic errors and adaptive waiting.
package dlog
