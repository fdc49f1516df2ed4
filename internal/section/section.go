// Package section maps strongly typed records onto named sections of a
// key/value configuration document.
//
// A record declares its fields once, as an ordered table of Field values.
// The same table drives reading (every key coerced with its own default)
// and writing (every key emitted in declaration order), so the two
// directions cannot drift apart.
package section

// Section is a read-only view of one named section.
type Section interface {
	// Get returns the raw value stored under key and whether it was present.
	Get(key string) (string, bool)
}

// Writer accepts key/value pairs for one named section. Setting a key that
// already exists replaces its value.
type Writer interface {
	Set(key, value string)
}

// Document is a collection of named sections.
type Document interface {
	// Section returns the named section, or false if the document has none.
	Section(name string) (Section, bool)
	// WithSection returns a writer for the named section, creating it if needed.
	WithSection(name string) Writer
}

// Record is a struct that owns exactly one section.
type Record interface {
	SectionName() string
	// ReadBody overwrites every field from s.
	ReadBody(s Section)
	// WriteBody emits every field to w in declaration order.
	WriteBody(w Writer)
}

// ContextRecord is a record whose section also carries keys derived from a
// second record of type C.
type ContextRecord[C any] interface {
	Record
	WriteAdditional(ctx C, w Writer)
}

// Read fills r from its section in doc. It reports false, leaving r
// untouched, when doc has no such section.
func Read(doc Document, r Record) bool {
	s, ok := doc.Section(r.SectionName())
	if !ok {
		return false
	}
	r.ReadBody(s)
	return true
}

// Write emits r into its section of doc.
func Write(doc Document, r Record) {
	r.WriteBody(doc.WithSection(r.SectionName()))
}

// WriteWithContext emits r into its section of doc, followed by the keys r
// derives from ctx.
func WriteWithContext[C any](doc Document, r ContextRecord[C], ctx C) {
	w := doc.WithSection(r.SectionName())
	r.WriteBody(w)
	r.WriteAdditional(ctx, w)
}

// KV is one written key/value pair.
type KV struct {
	Key   string
	Value string
}

// Map is an in-memory ordered section. It implements both Section and
// Writer and is what Pairs uses to capture a record's output.
type Map struct {
	index map[string]int
	pairs []KV
}

// NewMap returns a Map holding pairs; later duplicates replace earlier ones.
func NewMap(pairs ...KV) *Map {
	m := &Map{index: make(map[string]int)}
	for _, kv := range pairs {
		m.Set(kv.Key, kv.Value)
	}
	return m
}

func (m *Map) Get(key string) (string, bool) {
	i, ok := m.index[key]
	if !ok {
		return "", false
	}
	return m.pairs[i].Value, true
}

func (m *Map) Set(key, value string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.pairs[i].Value = value
		return
	}
	m.index[key] = len(m.pairs)
	m.pairs = append(m.pairs, KV{Key: key, Value: value})
}

// Pairs returns the pairs in insertion order.
func (m *Map) Pairs() []KV {
	out := make([]KV, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// Pairs returns what r.WriteBody emits, in order.
func Pairs(r Record) []KV {
	m := NewMap()
	r.WriteBody(m)
	return m.Pairs()
}
