// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package dlog

// RaceEnabled is true when the race detector is active. The pool free
// ring's happens-before edges ride on atomic sequence numbers the detector
// cannot observe; the concurrent stress tests are kept out of race runs by
// their //go:build !race constraint.
const RaceEnabled = true
