// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package internal holds the build-time architecture guard.
//
// The capture buffer layout packs every argument at 8-byte granularity and
// assumes 64-bit machine words. WordSize is declared only for supported
// architectures; building dlog for anything else fails with an undefined
// reference instead of producing a silently wrong layout.
package internal
