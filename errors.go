// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrNoSpace indicates the message was dropped because a bounded resource
// was exhausted: the slab pool had no free slot, the capture exceeded the
// per-message argument capacity, or the queue was full.
//
// ErrNoSpace is the expected operating condition under burst load, not a
// failure. The core never retries or waits; producers that care inspect the
// status and the message is gone.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency: the
// semantic is "this operation would have had to wait".
var ErrNoSpace = iox.ErrWouldBlock

// ErrInvalidArgument indicates a precondition violation at the API
// boundary: an unknown severity, a nil sink, or similar caller bug.
var ErrInvalidArgument = errors.New("dlog: invalid argument")

// ErrIO indicates an internal invariant broke, e.g. the capture wrote zero
// bytes for a format the analyzer sized as non-empty. On init paths the
// caller is expected to abort startup.
var ErrIO = errors.New("dlog: io error")

// ErrNotInitialized indicates a call to a core that is not running: a
// package-level call before [Init], a submission after [Core.Close], or a
// Close of a core that was never started or is already closed.
var ErrNotInitialized = errors.New("dlog: not initialized")

// IsNoSpace reports whether err indicates a dropped message due to
// exhausted pool or queue space.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsNoSpace(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil and ErrNoSpace.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
