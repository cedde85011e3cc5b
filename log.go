// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog

import (
	"runtime"
	"strings"
	"sync"
)

// Logger is the per-module front-end over a core. It stamps what a
// call-site macro layer would: ANSI color, tick count, severity tag,
// module and function, all captured as leading arguments of an augmented
// format string:
//
//	<color>[<ticks>] <TAG> <module>::<function>: <format><reset>\r\n
//
// The augmented string is interned so the core always receives a stable,
// long-lived format; the five prefix values ride in the capture buffer
// like any other argument. Severities above the logger's threshold are
// dropped at the surface; the core itself fans out everything it accepts.
type Logger struct {
	core   *Core
	module string
	level  Severity
}

// Logger returns a front-end bound to this core for the given module name.
// The threshold starts at SeverityDebug (everything passes).
func (c *Core) Logger(module string) *Logger {
	return &Logger{core: c, module: module, level: SeverityDebug}
}

// SetLevel sets the surface threshold: calls with a severity ordinal above
// it return nil without touching the core. SeverityNone silences the
// logger entirely.
func (l *Logger) SetLevel(level Severity) {
	l.level = level
}

// Errorf submits an error-severity message.
func (l *Logger) Errorf(format string, args ...any) error {
	return l.logf(SeverityError, format, args)
}

// Warnf submits a warning-severity message.
func (l *Logger) Warnf(format string, args ...any) error {
	return l.logf(SeverityWarning, format, args)
}

// Infof submits an info-severity message.
func (l *Logger) Infof(format string, args ...any) error {
	return l.logf(SeverityInfo, format, args)
}

// Debugf submits a debug-severity message.
func (l *Logger) Debugf(format string, args ...any) error {
	return l.logf(SeverityDebug, format, args)
}

func (l *Logger) logf(level Severity, format string, args []any) error {
	if level > l.level {
		return nil
	}
	function := callerFunction(3)
	full := make([]any, 0, 5+len(args))
	full = append(full, level.color(), l.core.now(), level.Tag(), l.module, function)
	full = append(full, args...)
	return l.core.submit(l.module, function, level, augmentedFormat(format), full)
}

// augmented format prefix: color, ticks, tag, module, function.
const augmentPrefix = "%s[%u] <%s> %s::%s: "

// augmentCache interns augmented format strings per user format. The core
// requires the format passed to submit to outlive the message; interning
// gives runtime-concatenated strings the same effective lifetime macro
// string pasting gives literals.
var augmentCache sync.Map // string → string

func augmentedFormat(format string) string {
	if cached, ok := augmentCache.Load(format); ok {
		return cached.(string)
	}
	aug := augmentPrefix + format + colorReset + "\r\n"
	if prev, loaded := augmentCache.LoadOrStore(format, aug); loaded {
		return prev.(string)
	}
	return aug
}

// callerCache interns resolved function names per program counter.
var callerCache sync.Map // uintptr → string

// callerFunction resolves the bare function name of the caller skip frames
// up, the front-end analog of a __FUNCTION__ stamp.
func callerFunction(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "?"
	}
	if cached, ok := callerCache.Load(pc); ok {
		return cached.(string)
	}
	name := "?"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
	}
	callerCache.Store(pc, name)
	return name
}
