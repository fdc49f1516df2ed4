package ui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ossyrian/mintylaunch/internal/coerce"
	"github.com/ossyrian/mintylaunch/internal/tomlconf"
)

// Row is one line of a tab. Rows point at record fields and mutate them in
// place; what a row can do is given by the optional interfaces below.
type Row interface {
	Label() string
	Value() string
}

type toggler interface{ Toggle() }

type adjuster interface{ Adjust(delta int) }

type remover interface{ Remove() }

// editor rows take typed text. Text seeds the edit buffer and Commit applies
// it when the edit is confirmed.
type editor interface {
	Text() string
	Commit(text string)
}

// Heading is a non-selectable group title.
type Heading string

func (h Heading) Label() string { return string(h) }
func (h Heading) Value() string { return "" }

func selectable(r Row) bool {
	_, ok := r.(Heading)
	return !ok
}

// Checkbox toggles a boolean field.
type Checkbox struct {
	Name string
	V    *bool
}

func (c Checkbox) Label() string { return c.Name }

func (c Checkbox) Value() string {
	if *c.V {
		return "[x]"
	}
	return "[ ]"
}

func (c Checkbox) Toggle() { *c.V = !*c.V }

// IntField is a decimal integer typed in by the user.
type IntField[T coerce.Integer] struct {
	Name string
	V    *T
}

func (f IntField[T]) Label() string      { return f.Name }
func (f IntField[T]) Value() string      { return f.Text() }
func (f IntField[T]) Text() string       { return strconv.FormatInt(int64(*f.V), 10) }
func (f IntField[T]) Commit(text string) { *f.V = coerce.EditInt(text, *f.V) }

// HexField is an integer shown and typed as hex.
type HexField[T coerce.Integer] struct {
	Name   string
	V      *T
	Digits int
}

func (f HexField[T]) Label() string      { return f.Name }
func (f HexField[T]) Value() string      { return f.Text() }
func (f HexField[T]) Text() string       { return coerce.FormatHex(*f.V, f.Digits) }
func (f HexField[T]) Commit(text string) { *f.V = coerce.EditHex(text, *f.V) }

// Slider is a bounded integer adjusted with left and right. It can also be
// typed in; typed values are clamped.
type Slider[T coerce.Integer] struct {
	Name     string
	V        *T
	Min, Max T
	Step     T
}

const sliderWidth = 20

func (s Slider[T]) Label() string { return s.Name }

func (s Slider[T]) Value() string {
	filled := 0
	if s.Max > s.Min {
		filled = int(int64(*s.V-s.Min) * sliderWidth / int64(s.Max-s.Min))
	}
	filled = max(0, min(sliderWidth, filled))
	return fmt.Sprintf("[%s%s] %d",
		strings.Repeat("=", filled),
		strings.Repeat("-", sliderWidth-filled),
		int64(*s.V),
	)
}

func (s Slider[T]) Adjust(delta int) {
	step := int64(s.Step)
	if step == 0 {
		step = 1
	}
	v := int64(*s.V) + int64(delta)*step
	*s.V = T(max(int64(s.Min), min(int64(s.Max), v)))
}

func (s Slider[T]) Text() string       { return strconv.FormatInt(int64(*s.V), 10) }
func (s Slider[T]) Commit(text string) { s.set(coerce.EditInt(text, *s.V)) }

func (s Slider[T]) set(v T) {
	*s.V = max(s.Min, min(s.Max, v))
}

// Choice cycles an enum through a fixed list of options.
type Choice[E interface {
	comparable
	fmt.Stringer
}] struct {
	Name    string
	V       *E
	Options []E
}

func (c Choice[E]) Label() string { return c.Name }
func (c Choice[E]) Value() string { return "< " + (*c.V).String() + " >" }
func (c Choice[E]) Toggle()       { c.Adjust(1) }

func (c Choice[E]) Adjust(delta int) {
	if len(c.Options) == 0 {
		return
	}
	i := 0
	for j, o := range c.Options {
		if o == *c.V {
			i = j
			break
		}
	}
	n := len(c.Options)
	*c.V = c.Options[((i+delta)%n+n)%n]
}

// Binding is one button bound to an action. Left and right cycle the
// button and remove unbinds it, keeping the others in order.
type Binding struct {
	Name     string
	Action   string
	Index    int
	Bindings map[string][]tomlconf.Button
}

func (b Binding) Label() string { return b.Name }

func (b Binding) Value() string {
	buttons := b.Bindings[b.Action]
	if b.Index >= len(buttons) {
		return ""
	}
	return "< " + buttons[b.Index].String() + " >"
}

func (b Binding) Toggle() { b.Adjust(1) }

func (b Binding) Adjust(delta int) {
	buttons := b.Bindings[b.Action]
	if b.Index >= len(buttons) {
		return
	}
	btn := &buttons[b.Index]
	for range abs(delta) {
		if delta > 0 {
			*btn = btn.Next()
		} else {
			*btn = btn.Prev()
		}
	}
}

func (b Binding) Remove() {
	buttons := b.Bindings[b.Action]
	if b.Index < len(buttons) {
		b.Bindings[b.Action] = slices.Delete(buttons, b.Index, b.Index+1)
	}
}

// Command runs Do when toggled.
type Command struct {
	Name string
	Hint string
	Do   func()
}

func (c Command) Label() string { return c.Name }
func (c Command) Value() string { return c.Hint }
func (c Command) Toggle()       { c.Do() }

// TextField is a free-form string.
type TextField struct {
	Name string
	V    *string
}

func (f TextField) Label() string      { return f.Name }
func (f TextField) Value() string      { return strconv.Quote(*f.V) }
func (f TextField) Text() string       { return *f.V }
func (f TextField) Commit(text string) { *f.V = text }

// Length sets how many elements an array patch carries. New elements are
// zero.
type Length struct {
	Name string
	V    *[]int64
}

const maxPatchLength = 256

func (l Length) Label() string      { return l.Name }
func (l Length) Value() string      { return l.Text() }
func (l Length) Text() string       { return strconv.Itoa(len(*l.V)) }
func (l Length) Adjust(delta int)   { l.resize(len(*l.V) + delta) }
func (l Length) Commit(text string) { l.resize(coerce.EditInt(text, len(*l.V))) }

func (l Length) resize(n int) {
	n = max(0, min(maxPatchLength, n))
	cur := *l.V
	if n <= len(cur) {
		*l.V = cur[:n]
		return
	}
	*l.V = append(cur, make([]int64, n-len(cur))...)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
