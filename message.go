// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog

// Message is the unit of deferred work: call-site metadata plus the packed
// argument capture, resident in one pool slot.
//
// A message is exclusively owned by one component at a time — producer,
// queue, worker, then pool again. Sinks receive a borrowed message during
// fan-out and must not retain it past Emit.
type Message struct {
	module   string
	function string
	format   string
	argsLen  int
	slot     uint32
	level    Severity
	args     []byte // full-capacity view into the pool arena
}

// Module returns the call site's module name.
func (m *Message) Module() string { return m.module }

// Function returns the call site's function name.
func (m *Message) Function() string { return m.function }

// Level returns the message severity.
func (m *Message) Level() Severity { return m.level }

// Format returns the format string the arguments were captured against.
func (m *Message) Format() string { return m.format }

// Args returns the packed argument capture. The layout is private to the
// analyzer and the renderer.
func (m *Message) Args() []byte { return m.args[:m.argsLen] }

// Render formats the message into out, truncating at its length, and
// returns the number of bytes written.
func (m *Message) Render(out []byte) int {
	return Reconstruct(out, m.format, m.args[:m.argsLen])
}

func (m *Message) reset() {
	m.module = ""
	m.function = ""
	m.format = ""
	m.argsLen = 0
	m.level = SeverityNone
}
