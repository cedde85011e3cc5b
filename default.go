// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog

// defaultCore is the process-wide instance behind the package-level
// functions. Init installs it during startup, before any logging; there is
// no teardown.
var defaultCore *Core

// Init builds and starts the process-wide default core from b (nil means
// the default configuration). Register sinks with [RegisterSink] before
// the first submission. Call once during startup.
func Init(b *Builder) error {
	if b == nil {
		b = New()
	}
	core := b.Build()
	if err := core.Start(); err != nil {
		return err
	}
	defaultCore = core
	return nil
}

// Default returns the process-wide core, or nil before Init.
func Default() *Core {
	return defaultCore
}

// Submit submits through the default core.
// Returns ErrNotInitialized before Init.
func Submit(module, function string, level Severity, format string, args ...any) error {
	return defaultCore.submit(module, function, level, format, args)
}

// SubmitFromISR submits through the default core from interrupt-style
// contexts. Returns ErrNotInitialized before Init.
func SubmitFromISR(module, function string, level Severity, format string, args ...any) error {
	return defaultCore.submit(module, function, level, format, args)
}

// RegisterSink registers a sink with the default core.
func RegisterSink(s Sink) error {
	if defaultCore == nil {
		return ErrNotInitialized
	}
	return defaultCore.RegisterSink(s)
}

// Module returns a front-end logger on the default core.
// Returns nil before Init.
func Module(name string) *Logger {
	if defaultCore == nil {
		return nil
	}
	return defaultCore.Logger(name)
}

// Flush drains the default core.
func Flush() {
	if defaultCore != nil {
		defaultCore.Flush()
	}
}
