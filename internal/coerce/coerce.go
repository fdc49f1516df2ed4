// Package coerce converts raw configuration strings into typed values.
//
// There are two families of conversions. The document family (Bool, Int,
// Enum, String) is used when reading a section from disk: a missing or
// unparsable value falls back to the caller's default and never fails. The
// edit family (EditInt, EditHex) is used for text typed into a form field:
// an empty field means zero, and garbage leaves the current value alone.
package coerce

import (
	"fmt"
	"strconv"
	"strings"
)

// Integer is any builtin integer type, including named enum types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Ordinal is an enum stored on disk as its ordinal.
// Valid reports whether the value names one of the declared variants.
type Ordinal interface {
	Integer
	Valid() bool
}

// Bool reads a boolean flag. Only "1" and "true" are true; every other
// present value is false, so this never falls back to def unless the key is
// absent.
func Bool(raw string, ok bool, def bool) bool {
	if !ok {
		return def
	}
	return raw == "1" || raw == "true"
}

// Int reads a decimal integer. Absent, empty, unparsable and out-of-width
// values all yield def.
func Int[T Integer](raw string, ok bool, def T) T {
	if !ok || raw == "" {
		return def
	}
	v, err := parse[T](raw, 10)
	if err != nil {
		return def
	}
	return v
}

// Enum reads an enum ordinal. Absent or unparsable values yield def; a
// number outside the declared variants yields the zero variant.
func Enum[E Ordinal](raw string, ok bool, def E) E {
	if !ok || raw == "" {
		return def
	}
	v, err := parse[E](raw, 10)
	if err != nil {
		return def
	}
	if !v.Valid() {
		var zero E
		return zero
	}
	return v
}

// String reads a raw string value verbatim.
func String(raw string, ok bool, def string) string {
	if !ok {
		return def
	}
	return raw
}

// EditInt applies text typed into an integer field. An empty field is zero;
// text that does not parse keeps current.
func EditInt[T Integer](text string, current T) T {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	v, err := parse[T](text, 10)
	if err != nil {
		return current
	}
	return v
}

// EditHex applies text typed into a hexadecimal field. A leading 0x/0X is
// optional. An empty field is zero; text that does not parse keeps current.
func EditHex[T Integer](text string, current T) T {
	text = strings.TrimSpace(text)
	neg := strings.HasPrefix(text, "-")
	text = strings.TrimPrefix(text, "-")
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	if text == "" {
		return 0
	}
	if neg {
		text = "-" + text
	}
	v, err := parse[T](text, 16)
	if err != nil {
		return current
	}
	return v
}

// FormatHex renders v as 0x-prefixed upper case hex, zero padded to digits.
// Negative values are shown with a leading minus sign.
func FormatHex[T Integer](v T, digits int) string {
	if isSigned[T]() && int64(v) < 0 {
		return fmt.Sprintf("-0x%0*X", digits, uint64(-int64(v)))
	}
	return fmt.Sprintf("0x%0*X", digits, uint64(v))
}

func parse[T Integer](s string, base int) (T, error) {
	var zero T
	bits := bitSize[T]()
	if isSigned[T]() {
		n, err := strconv.ParseInt(s, base, bits)
		if err != nil {
			return zero, err
		}
		return T(n), nil
	}
	n, err := strconv.ParseUint(s, base, bits)
	if err != nil {
		return zero, err
	}
	return T(n), nil
}

func isSigned[T Integer]() bool {
	var zero T
	return zero-1 < zero
}

func bitSize[T Integer]() int {
	var v T = 1
	bits := 0
	for v != 0 {
		v <<= 1
		bits++
	}
	return bits
}
