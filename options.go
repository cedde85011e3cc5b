// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog

import (
	"time"

	"code.hybscloud.com/lfq"
)

// Build-time style defaults, sized for a small constrained deployment.
const (
	// DefaultPoolBytes is the total argument arena size.
	DefaultPoolBytes = 1024
	// DefaultQueueDepth is the bounded queue capacity in message handles.
	DefaultQueueDepth = 32
	// DefaultMaxArgBytes is the per-message argument capture capacity.
	DefaultMaxArgBytes = 128
)

// Options configures core construction.
type Options struct {
	poolBytes   int
	queueDepth  int
	maxArgBytes int
	ticks       func() uint64
}

// Builder creates cores with fluent configuration.
//
// Example:
//
//	core := dlog.New().
//		PoolBytes(4096).
//		QueueDepth(64).
//		MaxArgBytes(256).
//		Build()
type Builder struct {
	opts Options
}

// New creates a core builder with the default configuration: a 1024-byte
// argument arena split into 128-byte-capture slots and a queue depth of 32.
func New() *Builder {
	return &Builder{opts: Options{
		poolBytes:   DefaultPoolBytes,
		queueDepth:  DefaultQueueDepth,
		maxArgBytes: DefaultMaxArgBytes,
	}}
}

// PoolBytes sets the total argument arena size. The slot count is
// poolBytes / maxArgBytes.
func (b *Builder) PoolBytes(n int) *Builder {
	b.opts.poolBytes = n
	return b
}

// QueueDepth sets the bounded queue capacity in message handles.
// Rounds up to the next power of 2; minimum 2.
func (b *Builder) QueueDepth(n int) *Builder {
	b.opts.queueDepth = n
	return b
}

// MaxArgBytes sets the per-message argument capture capacity. Captures the
// analyzer sizes above it fail the submit with ErrNoSpace.
func (b *Builder) MaxArgBytes(n int) *Builder {
	b.opts.maxArgBytes = n
	return b
}

// TickSource sets the tick counter stamped by the front-end loggers.
// The default counts milliseconds since Build.
func (b *Builder) TickSource(fn func() uint64) *Builder {
	b.opts.ticks = fn
	return b
}

// Build creates the core: slab pool, bounded MPSC handle queue and an
// empty sink registry. The worker is not started; register sinks, then
// call [Core.Start].
//
// Panics on a configuration that yields no pool slots or a queue depth
// below 2, mirroring the constructor discipline of the queue layer.
func (b *Builder) Build() *Core {
	if b.opts.queueDepth < 2 {
		panic("dlog: queue depth must be >= 2")
	}
	ticks := b.opts.ticks
	if ticks == nil {
		epoch := time.Now()
		ticks = func() uint64 {
			return uint64(time.Since(epoch).Milliseconds())
		}
	}
	return &Core{
		pool:  NewPool(b.opts.poolBytes, b.opts.maxArgBytes),
		queue: lfq.New(b.opts.queueDepth).SingleConsumer().BuildIndirectMPSC(),
		ticks: ticks,
		done:  make(chan struct{}),
	}
}
