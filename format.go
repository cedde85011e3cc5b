// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dlog

import (
	"encoding/binary"
	"math"
	"unsafe"

	"code.hybscloud.com/dlog/internal"
)

// Capture footprints. Every integer, float and pointer argument packs into
// one machine word after promotion; a string argument packs into two
// (data pointer + length). All running offsets therefore stay word-aligned.
const (
	wordBytes   = internal.WordSize
	stringBytes = 2 * internal.WordSize
)

// argClass classifies the argument consumed by one conversion.
type argClass uint8

const (
	argNone   argClass = iota // no argument (%%,  unknown conversion)
	argInt                    // d i c, any length-modified conversion except o u x X
	argUint                   // o u x X
	argFloat                  // f F e E g G
	argString                 // s: data pointer + length
	argPtr                    // p n: address word
)

// classSize returns the capture footprint of one argument class.
func classSize(c argClass) int {
	switch c {
	case argInt, argUint, argFloat, argPtr:
		return wordBytes
	case argString:
		return stringBytes
	}
	return 0
}

// scanConv parses the conversion specification beginning at format[i], the
// byte index immediately after an introducing '%' whose successor is known
// not to be another '%'. It returns the flags/width/precision region, the
// conversion byte (0 when the string ends inside the specification), the
// argument class, and the index of the first byte after the specification.
//
// A length modifier decides the class on its own, matching the one-pass
// scanner this layout descends from: "%ld" and "%lf" both capture one
// integer word.
func scanConv(format string, i int) (fwp string, conv byte, class argClass, next int) {
	start := i
	for i < len(format) {
		c := format[i]
		if c == '-' || c == '+' || c == ' ' || c == '#' || c == '0' {
			i++
			continue
		}
		break
	}
	for i < len(format) && format[i] >= '0' && format[i] <= '9' {
		i++
	}
	if i < len(format) && format[i] == '.' {
		i++
		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			i++
		}
	}
	fwp = format[start:i]

	mod := false
	if i < len(format) {
		switch format[i] {
		case 'h':
			mod = true
			i++
			if i < len(format) && format[i] == 'h' {
				i++
			}
		case 'l':
			mod = true
			i++
			if i < len(format) && format[i] == 'l' {
				i++
			}
		case 'z', 't', 'j':
			mod = true
			i++
		}
	}
	if i >= len(format) {
		if mod {
			return fwp, 0, argInt, i
		}
		return fwp, 0, argNone, i
	}

	conv = format[i]
	next = i + 1
	if mod {
		if conv == 'o' || conv == 'u' || conv == 'x' || conv == 'X' {
			return fwp, conv, argUint, next
		}
		return fwp, conv, argInt, next
	}
	switch conv {
	case 'd', 'i', 'c':
		class = argInt
	case 'o', 'u', 'x', 'X':
		class = argUint
	case 'f', 'F', 'e', 'E', 'g', 'G':
		class = argFloat
	case 's':
		class = argString
	case 'p', 'n':
		class = argPtr
	default:
		class = argNone
	}
	return fwp, conv, class, next
}

// SizeOf scans a printf-style format string once and returns the number of
// bytes a matching [Capture] writes: one word per integer, float or pointer
// conversion, two words per %s, nothing for %% and unrecognized
// conversions.
func SizeOf(format string) int {
	size, i := 0, 0
	for i < len(format) {
		if format[i] != '%' {
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			i += 2
			continue
		}
		_, _, class, next := scanConv(format, i+1)
		size += classSize(class)
		i = next
	}
	return size
}

// Capture re-scans format with the same rules as [SizeOf] and packs one
// argument per conversion into dst at the running offset. Integer
// conversions accept any Go integer type; %s accepts string or []byte and
// stores the data pointer and length without retaining a GC reference;
// mismatched or missing arguments pack as zero values. Packing stops when
// the next argument does not fit in dst.
//
// Returns the total bytes written; 0 when dst is empty, format describes
// no arguments, or the first argument does not fit in dst.
func Capture(dst []byte, format string, args ...any) int {
	if len(dst) == 0 {
		return 0
	}
	off, ai, i := 0, 0, 0
	for i < len(format) {
		if format[i] != '%' {
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			i += 2
			continue
		}
		_, _, class, next := scanConv(format, i+1)
		i = next
		n := classSize(class)
		if n == 0 {
			continue
		}
		if off+n > len(dst) {
			break
		}
		var arg any
		if ai < len(args) {
			arg = args[ai]
		}
		ai++
		switch class {
		case argInt, argUint:
			binary.NativeEndian.PutUint64(dst[off:], intWord(arg))
		case argFloat:
			binary.NativeEndian.PutUint64(dst[off:], math.Float64bits(floatVal(arg)))
		case argString:
			p, l := stringHeader(arg)
			binary.NativeEndian.PutUint64(dst[off:], uint64(p))
			binary.NativeEndian.PutUint64(dst[off+wordBytes:], uint64(l))
		case argPtr:
			binary.NativeEndian.PutUint64(dst[off:], uint64(ptrWord(arg)))
		}
		off += n
	}
	return off
}

// intWord promotes any Go integer argument to one capture word.
// Signed values sign-extend so the renderer recovers them exactly.
func intWord(v any) uint64 {
	switch x := v.(type) {
	case int:
		return uint64(x)
	case int8:
		return uint64(x)
	case int16:
		return uint64(x)
	case int32:
		return uint64(x)
	case int64:
		return uint64(x)
	case uint:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	case uintptr:
		return uint64(x)
	}
	return 0
}

// floatVal promotes a float argument to double precision.
func floatVal(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	}
	return 0
}

// stringHeader returns the data pointer and length of a string or []byte
// argument. The bytes are neither copied nor retained for the collector;
// the caller keeps them live until the message is rendered.
func stringHeader(v any) (uintptr, int) {
	switch x := v.(type) {
	case string:
		if len(x) == 0 {
			return 0, 0
		}
		return uintptr(unsafe.Pointer(unsafe.StringData(x))), len(x)
	case []byte:
		if len(x) == 0 {
			return 0, 0
		}
		return uintptr(unsafe.Pointer(unsafe.SliceData(x))), len(x)
	}
	return 0, 0
}

// ptrWord returns the address word of a pointer-class argument.
func ptrWord(v any) uintptr {
	switch x := v.(type) {
	case unsafe.Pointer:
		return uintptr(x)
	case uintptr:
		return x
	}
	return 0
}
