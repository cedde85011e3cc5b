// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// Core state machine: constructed → started → closed.
const (
	stateNew uint64 = iota
	stateStarted
	stateClosed
)

// Core owns the deferred logging pipeline: the slab pool, the bounded MPSC
// handle queue, the sink registry and the worker. Collecting the singletons
// into one owner record keeps the init-once/never-teardown lifecycle
// explicit and lets tests run isolated cores side by side.
type Core struct {
	pool  *Pool
	queue lfq.QueueIndirect
	sinks []Sink
	ticks func() uint64

	state    atomix.Uint64
	inflight atomix.Int64
	dropped  atomix.Uint64
	done     chan struct{}
}

// Start launches the worker. The queue accepts submissions before Start;
// they are drained once the worker runs. Returns ErrIO if the core was
// already started or closed.
func (c *Core) Start() error {
	if !c.state.CompareAndSwapAcqRel(stateNew, stateStarted) {
		return ErrIO
	}
	go c.worker()
	return nil
}

// Submit captures the arguments described by format, fills a pool-resident
// message and hands it to the worker. The call never suspends: exhaustion
// of the pool or the queue drops the message and returns ErrNoSpace
// immediately.
//
// format must be the exact string the arguments match and must outlive the
// message; pass literals. module and function are borrowed, not copied.
func (c *Core) Submit(module, function string, level Severity, format string, args ...any) error {
	return c.submit(module, function, level, format, args)
}

// SubmitFromISR is the submission entry point for interrupt-style contexts
// that must never yield the processor. The whole submission path is
// lock-free, so it shares Submit's implementation; the separate entry
// point lets call sites that track their execution context say so.
func (c *Core) SubmitFromISR(module, function string, level Severity, format string, args ...any) error {
	return c.submit(module, function, level, format, args)
}

func (c *Core) submit(module, function string, level Severity, format string, args []any) error {
	if c == nil {
		return ErrNotInitialized
	}
	if level == SeverityNone || !level.Valid() {
		return ErrInvalidArgument
	}
	if c.state.LoadAcquire() == stateClosed {
		return ErrNotInitialized
	}

	n := SizeOf(format)
	msg, err := c.pool.Alloc(n)
	if err != nil {
		c.dropped.AddAcqRel(1)
		return err
	}

	msg.module = module
	msg.function = function
	msg.level = level
	msg.format = format

	if n > 0 {
		if Capture(msg.args[:n], format, args...) == 0 {
			c.pool.Free(msg)
			return ErrIO
		}
	}

	c.inflight.Add(1)
	if err := c.queue.Enqueue(uintptr(msg.slot)); err != nil {
		c.inflight.Add(-1)
		c.pool.Free(msg)
		c.dropped.AddAcqRel(1)
		return ErrNoSpace
	}
	return nil
}

// RegisterSink appends a sink to the registry tail. Returns
// ErrInvalidArgument for nil. The registry is meant to be populated during
// startup, before the worker runs; registration is not synchronized with
// active fan-out.
func (c *Core) RegisterSink(s Sink) error {
	if s == nil {
		return ErrInvalidArgument
	}
	c.sinks = append(c.sinks, s)
	return nil
}

// Sinks returns the registered sinks in registration order, the list the
// worker walks for every message.
func (c *Core) Sinks() []Sink {
	return c.sinks
}

// Dropped returns the number of messages dropped for lack of pool or queue
// space since construction.
func (c *Core) Dropped() uint64 {
	return c.dropped.LoadAcquire()
}

// Flush waits until every successfully submitted message has been fanned
// out and returned to the pool. Only meaningful while the worker runs.
func (c *Core) Flush() {
	backoff := iox.Backoff{}
	for c.inflight.Load() != 0 {
		backoff.Wait()
	}
}

// Close drains outstanding messages and stops the worker. The embedded
// deployment never calls it; it exists for tests and orderly shutdown.
// Like a queue drain, Close is a hint that production has stopped: the
// caller ensures no submission races it. Returns ErrNotInitialized if the
// worker is not running.
func (c *Core) Close() error {
	if !c.state.CompareAndSwapAcqRel(stateStarted, stateClosed) {
		return ErrNotInitialized
	}
	c.Flush()
	<-c.done
	return nil
}

// worker drains the queue for the life of the core: resolve the slot
// handle, fan out to every registered sink in order, return the slot.
// An empty queue is an external-event wait, so it backs off adaptively
// rather than spinning hot.
func (c *Core) worker() {
	backoff := iox.Backoff{}
	for {
		idx, err := c.queue.Dequeue()
		if err != nil {
			if c.state.LoadAcquire() == stateClosed {
				close(c.done)
				return
			}
			backoff.Wait()
			continue
		}
		backoff.Reset()

		msg := c.pool.message(uint32(idx))
		for _, s := range c.sinks {
			if s == nil {
				continue
			}
			s.Emit(msg)
		}
		c.pool.Free(msg)
		c.inflight.Add(-1)
	}
}

// now returns the current tick count for front-end augmentation.
func (c *Core) now() uint64 {
	return c.ticks()
}
