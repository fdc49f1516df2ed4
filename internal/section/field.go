package section

import (
	"strconv"

	"github.com/ossyrian/mintylaunch/internal/coerce"
)

// BoolStyle is how a record type spells booleans on disk. It is fixed per
// section because the engine reads each file with its own conventions.
type BoolStyle int

const (
	// Numeric writes "0" and "1".
	Numeric BoolStyle = iota
	// Textual writes "false" and "true".
	Textual
)

// Format spells b in this style.
func (s BoolStyle) Format(b bool) string {
	if s == Textual {
		return strconv.FormatBool(b)
	}
	if b {
		return "1"
	}
	return "0"
}

// Field binds one key to one struct field.
type Field struct {
	Key    string
	read   func(raw string, ok bool)
	format func() string
}

// Bool binds key to *p, written in the given style.
func Bool(key string, p *bool, def bool, style BoolStyle) Field {
	return Field{
		Key:    key,
		read:   func(raw string, ok bool) { *p = coerce.Bool(raw, ok, def) },
		format: func() string { return style.Format(*p) },
	}
}

// Int binds key to an integer field written in decimal.
func Int[T coerce.Integer](key string, p *T, def T) Field {
	return Field{
		Key:    key,
		read:   func(raw string, ok bool) { *p = coerce.Int(raw, ok, def) },
		format: func() string { return formatInt(*p) },
	}
}

// Enum binds key to an enum field written as its ordinal.
func Enum[E coerce.Ordinal](key string, p *E, def E) Field {
	return Field{
		Key:    key,
		read:   func(raw string, ok bool) { *p = coerce.Enum(raw, ok, def) },
		format: func() string { return formatInt(*p) },
	}
}

// String binds key to a string field written verbatim.
func String(key string, p *string, def string) Field {
	return Field{
		Key:    key,
		read:   func(raw string, ok bool) { *p = coerce.String(raw, ok, def) },
		format: func() string { return *p },
	}
}

// ReadFields reads every field from s.
func ReadFields(s Section, fields []Field) {
	for _, f := range fields {
		raw, ok := s.Get(f.Key)
		f.read(raw, ok)
	}
}

// WriteFields writes every field to w in slice order.
func WriteFields(w Writer, fields []Field) {
	for _, f := range fields {
		w.Set(f.Key, f.format())
	}
}

func formatInt[T coerce.Integer](v T) string {
	var zero T
	if zero-1 < zero {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}
