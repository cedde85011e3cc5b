// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog

import (
	"io"

	"code.hybscloud.com/iobuf"
)

// renderScratchSlots bounds the WriterSink scratch pool. The worker is a
// single consumer, so one buffer is in flight at a time; the headroom
// covers multiple WriterSinks sharing a pool in the future.
const renderScratchSlots = 4

// Sink consumes formatted log messages. The worker passes every dequeued
// message to every registered sink, in registration order, exactly once.
//
// Emit borrows the message for the duration of the call; implementations
// render what they need (typically via [Message.Render]) and must not
// retain the message or its argument view.
type Sink interface {
	Emit(msg *Message)
}

// FuncSink adapts a function to the Sink capability.
type FuncSink func(msg *Message)

// Emit invokes the function.
func (f FuncSink) Emit(msg *Message) { f(msg) }

// WriterSink renders messages into a pooled scratch buffer and writes the
// bytes to an io.Writer — the serial/RTT style backend. Output longer than
// the scratch buffer truncates.
type WriterSink struct {
	w       io.Writer
	scratch *iobuf.MicroBufferBoundedPool
}

// NewWriterSink creates a sink emitting to w. Panics on a nil writer.
func NewWriterSink(w io.Writer) *WriterSink {
	if w == nil {
		panic("dlog: nil writer")
	}
	scratch := iobuf.NewMicroBufferPool(renderScratchSlots)
	scratch.Fill(iobuf.NewMicroBuffer)
	scratch.SetNonblock(true)
	return &WriterSink{w: w, scratch: scratch}
}

// Emit renders the message and pushes the bytes to the writer. Write
// errors are the medium's concern and are dropped; the worker cannot fail.
func (s *WriterSink) Emit(msg *Message) {
	indirect, err := s.scratch.Get()
	if err != nil {
		// Scratch exhausted: render through a transient stack buffer
		// rather than waiting. Cannot occur with the single worker.
		var local [256]byte
		n := msg.Render(local[:])
		_, _ = s.w.Write(local[:n])
		return
	}
	buf := s.scratch.Value(indirect)
	n := msg.Render(buf[:])
	_, _ = s.w.Write(buf[:n])
	_ = s.scratch.Put(indirect)
}
