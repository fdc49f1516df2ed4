package tomlconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/ossyrian/mintylaunch/internal/section"
)

// Root names the document's top-level table when used as a section.
const Root = ""

// Document is a TOML file held as a generic table so keys the launcher does
// not know about survive a save. Marshal edits the original text in place,
// so comments and key order are kept and only changed values are rewritten.
type Document struct {
	path   string
	src    []byte
	root   map[string]any
	loaded map[string]any
	blocks map[blockID]*block
	// added lists, per table, keys set since load in the order they were set.
	added map[blockID][]string
}

func newDocument(path string) *Document {
	return &Document{
		path:   path,
		root:   map[string]any{},
		loaded: map[string]any{},
		blocks: map[blockID]*block{rootID: {}},
		added:  map[blockID][]string{},
	}
}

// Open reads the TOML document at path. A missing file yields an empty
// document.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return newDocument(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Parse(path, data)
}

// Parse decodes data as the document saved to path.
func Parse(path string, data []byte) (*Document, error) {
	d := newDocument(path)
	if err := toml.Unmarshal(data, &d.root); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &d.loaded); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	blocks, err := scanLayout(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	d.src = data
	d.blocks = blocks

	return d, nil
}

// Path returns the file the document is saved to.
func (d *Document) Path() string {
	return d.path
}

func (d *Document) rootTable() table {
	return table{doc: d, id: rootID, m: d.root}
}

// Section implements section.Document. Root is the top-level table; any
// other name is a table directly under it.
func (d *Document) Section(name string) (section.Section, bool) {
	if name == Root {
		return d.rootTable(), true
	}
	t, ok := d.root[name].(map[string]any)
	if !ok {
		return nil, false
	}
	return table{doc: d, id: pathID([]string{name}, -1), m: t}, true
}

// WithSection implements section.Document.
func (d *Document) WithSection(name string) section.Writer {
	if name == Root {
		return d.rootTable()
	}
	t, ok := d.root[name].(map[string]any)
	if !ok {
		t = map[string]any{}
		d.rootTable().put(name, t)
	}
	return table{doc: d, id: pathID([]string{name}, -1), m: t}
}

// element returns the i-th table of the array of tables under key. When i
// is one past the end a new table is appended.
func (d *Document) element(key string, i int) (table, bool) {
	arr, _ := d.root[key].([]any)
	switch {
	case i == len(arr):
		m := map[string]any{}
		d.rootTable().put(key, append(arr, m))
		return table{doc: d, id: pathID([]string{key}, i), m: m}, true
	case i < 0 || i > len(arr):
		return table{}, false
	}

	m, ok := arr[i].(map[string]any)
	if !ok {
		return table{}, false
	}
	return table{doc: d, id: pathID([]string{key}, i), m: m}, true
}

// Strings returns the top-level array stored under key. Elements that are
// not strings are skipped.
func (d *Document) Strings(key string) ([]string, bool) {
	arr, ok := d.root[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// SetStrings stores a top-level string array under key. A key the document
// did not have is added after the existing ones.
func (d *Document) SetStrings(key string, values []string) {
	arr := make([]any, len(values))
	for i, v := range values {
		arr[i] = v
	}
	d.rootTable().put(key, arr)
}

// Marshal encodes the document. Unchanged values keep their original text;
// keys set since load follow the existing keys of their table, and new
// tables are appended at the end.
func (d *Document) Marshal() ([]byte, error) {
	e := editor{doc: d}
	if err := e.walk(nil, -1, d.root, d.loaded); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", d.path, err)
	}
	return e.render(d.src), nil
}

// keyOrder lists m's keys: those set since load first, in order, then the
// rest sorted.
func (d *Document) keyOrder(id blockID, m map[string]any) []string {
	seen := make(map[string]bool, len(m))
	keys := make([]string, 0, len(m))
	for _, k := range d.added[id] {
		if _, ok := m[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	rest := make([]string, 0, len(m)-len(keys))
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}

// Save writes the document to its path.
func (d *Document) Save() error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	return writeFile(d.path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// table adapts one decoded TOML table to section.Section and
// section.Writer. Scalars are exchanged as strings; Set stores them back
// with the type the string spells, keeping strings as strings when the key
// already held one.
type table struct {
	doc *Document
	id  blockID
	m   map[string]any
}

func (t table) Get(key string) (string, bool) {
	switch v := t.m[key].(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func (t table) Set(key, value string) {
	if _, ok := t.m[key].(string); ok {
		t.put(key, value)
		return
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		t.put(key, n)
		return
	}
	if value == "true" || value == "false" {
		t.put(key, value == "true")
		return
	}
	t.put(key, value)
}

func (t table) put(key string, v any) {
	if _, ok := t.m[key]; !ok {
		t.doc.added[t.id] = append(t.doc.added[t.id], key)
	}
	t.m[key] = v
}

func (t table) remove(key string) {
	delete(t.m, key)
}
