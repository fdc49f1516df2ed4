package coerce_test

import (
	"testing"

	"github.com/ossyrian/mintylaunch/internal/coerce"
)

type mode uint8

const (
	modeA mode = iota
	modeB
	modeC
)

func (m mode) Valid() bool { return m <= modeC }

func TestBool(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
		def  bool
		want bool
	}{
		{name: "one", raw: "1", ok: true, want: true},
		{name: "true", raw: "true", ok: true, want: true},
		{name: "zero", raw: "0", ok: true, def: true, want: false},
		{name: "false", raw: "false", ok: true, def: true, want: false},
		{name: "empty", raw: "", ok: true, def: true, want: false},
		{name: "capitalised true is not true", raw: "True", ok: true, want: false},
		{name: "garbage", raw: "yes please", ok: true, def: true, want: false},
		{name: "absent uses default true", ok: false, def: true, want: true},
		{name: "absent uses default false", ok: false, def: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerce.Bool(tt.raw, tt.ok, tt.def); got != tt.want {
				t.Errorf("Bool(%q, %v, %v) = %v, want %v", tt.raw, tt.ok, tt.def, got, tt.want)
			}
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
		def  int32
		want int32
	}{
		{name: "decimal", raw: "30", ok: true, def: 60, want: 30},
		{name: "negative", raw: "-1", ok: true, def: 60, want: -1},
		{name: "garbage", raw: "sixty", ok: true, def: 60, want: 60},
		{name: "float", raw: "29.97", ok: true, def: 60, want: 60},
		{name: "empty is absent", raw: "", ok: true, def: 39, want: 39},
		{name: "absent", ok: false, def: 39, want: 39},
		{name: "overflow", raw: "4294967296", ok: true, def: 7, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerce.Int(tt.raw, tt.ok, tt.def); got != tt.want {
				t.Errorf("Int(%q, %v, %d) = %d, want %d", tt.raw, tt.ok, tt.def, got, tt.want)
			}
		})
	}
}

func TestIntUnsignedRejectsNegative(t *testing.T) {
	if got := coerce.Int[uint8]("-3", true, 9); got != 9 {
		t.Errorf("Int[uint8](-3) = %d, want default 9", got)
	}
	if got := coerce.Int[uint8]("255", true, 9); got != 255 {
		t.Errorf("Int[uint8](255) = %d, want 255", got)
	}
	if got := coerce.Int[uint8]("256", true, 9); got != 9 {
		t.Errorf("Int[uint8](256) = %d, want default 9", got)
	}
}

func TestEnum(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
		def  mode
		want mode
	}{
		{name: "in range", raw: "2", ok: true, def: modeB, want: modeC},
		{name: "zero", raw: "0", ok: true, def: modeB, want: modeA},
		{name: "out of range falls to zero variant", raw: "7", ok: true, def: modeB, want: modeA},
		{name: "garbage uses default", raw: "borderless", ok: true, def: modeB, want: modeB},
		{name: "negative does not parse", raw: "-1", ok: true, def: modeB, want: modeB},
		{name: "absent uses default", ok: false, def: modeC, want: modeC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerce.Enum(tt.raw, tt.ok, tt.def); got != tt.want {
				t.Errorf("Enum(%q, %v, %d) = %d, want %d", tt.raw, tt.ok, tt.def, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := coerce.String("", true, "x"); got != "" {
		t.Errorf("String(present empty) = %q, want empty", got)
	}
	if got := coerce.String("", false, "x"); got != "x" {
		t.Errorf("String(absent) = %q, want default", got)
	}
}

func TestEditInt(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		current int32
		want    int32
	}{
		{name: "empty is zero", text: "", current: 1920, want: 0},
		{name: "whitespace is zero", text: "  ", current: 1920, want: 0},
		{name: "number", text: "1280", current: 1920, want: 1280},
		{name: "negative", text: "-1", current: 1920, want: -1},
		{name: "garbage keeps current", text: "12a", current: 1920, want: 1920},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerce.EditInt(tt.text, tt.current); got != tt.want {
				t.Errorf("EditInt(%q, %d) = %d, want %d", tt.text, tt.current, got, tt.want)
			}
		})
	}
}

func TestEditHex(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		current int64
		want    int64
	}{
		{name: "prefixed", text: "0x140194D90", want: 0x140194D90},
		{name: "bare lower case", text: "ff", want: 0xFF},
		{name: "upper prefix", text: "0X10", want: 0x10},
		{name: "negative", text: "-0x10", want: -0x10},
		{name: "empty is zero", text: "", current: 5, want: 0},
		{name: "garbage keeps current", text: "0xZZ", current: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerce.EditHex(tt.text, tt.current); got != tt.want {
				t.Errorf("EditHex(%q, %d) = %#x, want %#x", tt.text, tt.current, got, tt.want)
			}
		})
	}
}

func TestFormatHex(t *testing.T) {
	tests := []struct {
		v      int64
		digits int
		want   string
	}{
		{v: 0x5, digits: 2, want: "0x05"},
		{v: 0xAB, digits: 4, want: "0x00AB"},
		{v: 0x140194D90, digits: 0, want: "0x140194D90"},
		{v: 0x1, digits: 16, want: "0x0000000000000001"},
		{v: -0x10, digits: 2, want: "-0x10"},
	}

	for _, tt := range tests {
		if got := coerce.FormatHex(tt.v, tt.digits); got != tt.want {
			t.Errorf("FormatHex(%d, %d) = %q, want %q", tt.v, tt.digits, got, tt.want)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, 0x7F, 0x140194D90, -42} {
		if got := coerce.EditHex(coerce.FormatHex(v, 8), int64(99)); got != v {
			t.Errorf("EditHex(FormatHex(%d)) = %d", v, got)
		}
	}
}
