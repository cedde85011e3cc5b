// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"
)

// Reconstruct renders format against a capture buffer produced by [Capture]
// for the same format string, writing into out and truncating at its
// length. It walks the format with the analyzer's scanner, decodes each
// argument from argBuf with the identical type table, translates the C
// conversion to its Go fmt equivalent, and renders through the fmt package.
//
// Returns the number of bytes written, at most len(out).
//
// Conversions past the end of argBuf render as zero values, mirroring the
// point where Capture stopped packing. %n is carried for layout parity but
// has no rendering; fmt reports it as a bad verb.
func Reconstruct(out []byte, format string, argBuf []byte) int {
	if len(out) == 0 {
		return 0
	}
	base := unsafe.SliceData(out)
	dst := out[:0:len(out)]
	off, i := 0, 0
	for i < len(format) {
		c := format[i]
		if c != '%' {
			dst = append(dst, c)
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			dst = append(dst, '%')
			i += 2
			continue
		}
		fwp, conv, class, next := scanConv(format, i+1)
		i = next
		n := classSize(class)
		if n == 0 {
			// Unrecognized conversion: no argument was captured for it,
			// pass the specification through verbatim.
			dst = append(dst, '%')
			dst = append(dst, fwp...)
			if conv != 0 {
				dst = append(dst, conv)
			}
			continue
		}
		var word, word2 uint64
		if off+n <= len(argBuf) {
			word = binary.NativeEndian.Uint64(argBuf[off:])
			if n == stringBytes {
				word2 = binary.NativeEndian.Uint64(argBuf[off+wordBytes:])
			}
		}
		off += n
		spec := goSpec(fwp, conv)
		switch class {
		case argInt:
			dst = fmt.Appendf(dst, spec, int64(word))
		case argUint:
			dst = fmt.Appendf(dst, spec, word)
		case argFloat:
			dst = fmt.Appendf(dst, spec, math.Float64frombits(word))
		case argString:
			dst = fmt.Appendf(dst, spec, decodeString(word, word2))
		case argPtr:
			dst = fmt.Appendf(dst, spec, unsafe.Pointer(uintptr(word)))
		}
	}
	if unsafe.SliceData(dst) != base {
		// Appends outgrew the caller's buffer: keep the prefix that fits.
		return copy(out, dst)
	}
	return len(dst)
}

// goSpec translates one C conversion specification into the Go fmt verb
// that renders the same text: i and u become d, F becomes f, flags, width
// and precision carry over unchanged. Length modifiers were consumed by the
// scanner; width information survives in the decoded word itself.
func goSpec(fwp string, conv byte) string {
	g := conv
	switch conv {
	case 'i', 'u':
		g = 'd'
	case 'F':
		g = 'f'
	}
	if len(fwp) == 0 {
		switch g {
		case 'd':
			return "%d"
		case 'o':
			return "%o"
		case 'x':
			return "%x"
		case 'X':
			return "%X"
		case 'c':
			return "%c"
		case 'f':
			return "%f"
		case 'e':
			return "%e"
		case 'E':
			return "%E"
		case 'g':
			return "%g"
		case 'G':
			return "%G"
		case 's':
			return "%s"
		case 'p':
			return "%p"
		}
	}
	return "%" + fwp + string(rune(g))
}

// decodeString rebuilds the string view a capture stored as data pointer
// plus length. The bytes were owned by the caller and are still live by
// convention.
func decodeString(ptr, length uint64) string {
	if ptr == 0 || length == 0 {
		return ""
	}
	return unsafe.String((*byte)(unsafe.Pointer(uintptr(ptr))), int(length))
}
