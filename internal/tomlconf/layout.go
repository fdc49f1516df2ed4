package tomlconf

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// blockID names one table of a document by its dotted path. index is the
// element number for arrays of tables and -1 otherwise.
type blockID struct {
	path  string
	index int
}

var rootID = blockID{index: -1}

func pathID(path []string, index int) blockID {
	return blockID{path: strings.Join(path, "\x1f"), index: index}
}

// block is where one table sits in the source text.
type block struct {
	keys []keySpan
	// insertAt is just past the table's last key line; new keys go there.
	insertAt int
}

// keySpan locates one key/value line.
type keySpan struct {
	path  []string // more than one element for dotted keys
	line  int      // start of the line
	start int      // value bytes are src[start:end]
	end   int
	next  int // just past the line's newline
}

// scanLayout records where every table and key of data sits. data must
// already be known to parse.
func scanLayout(data []byte) (map[blockID]*block, error) {
	p := unstable.Parser{}
	p.Reset(data)

	cur := &block{}
	blocks := map[blockID]*block{rootID: cur}
	arrays := map[string]int{}

	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			path, _, end := keyParts(e.Key())
			id := pathID(path, -1)
			if e.Kind == unstable.ArrayTable {
				id.index = arrays[id.path]
				arrays[id.path]++
			}
			cur = &block{insertAt: lineEnd(data, end)}
			blocks[id] = cur

		case unstable.KeyValue:
			path, first, end := keyParts(e.Key())
			start := valueStart(data, end)
			stop := valueEnd(&p, data, e.Value(), start)
			next := lineEnd(data, stop)
			cur.keys = append(cur.keys, keySpan{
				path:  path,
				line:  lineStart(data, first),
				start: start,
				end:   stop,
				next:  next,
			})
			cur.insertAt = next
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}

	return blocks, nil
}

// keyParts returns the parts of a dotted key and the byte range it covers.
func keyParts(it unstable.Iterator) (parts []string, start, end int) {
	start = -1
	for it.Next() {
		n := it.Node()
		parts = append(parts, string(n.Data))
		if start < 0 {
			start = int(n.Raw.Offset)
		}
		end = int(n.Raw.Offset + n.Raw.Length)
	}
	return parts, start, end
}

func valueStart(data []byte, keyEnd int) int {
	i := keyEnd
	for i < len(data) && data[i] != '=' {
		i++
	}
	i++
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}
	return i
}

func valueEnd(p *unstable.Parser, data []byte, v *unstable.Node, start int) int {
	switch v.Kind {
	case unstable.Array, unstable.InlineTable:
		return closeBracket(data, start)
	case unstable.Bool, unstable.LocalDate, unstable.LocalTime, unstable.LocalDateTime, unstable.DateTime:
		r := p.Range(v.Data)
		return int(r.Offset + r.Length)
	default:
		return int(v.Raw.Offset + v.Raw.Length)
	}
}

// closeBracket returns the offset just past the bracket that closes the one
// at data[i].
func closeBracket(data []byte, i int) int {
	depth := 0
	for i < len(data) {
		switch data[i] {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		case '#':
			for i < len(data) && data[i] != '\n' {
				i++
			}
			continue
		case '"', '\'':
			i = stringEnd(data, i)
			continue
		}
		i++
	}
	return i
}

// stringEnd returns the offset just past the string starting at data[i].
func stringEnd(data []byte, i int) int {
	q := data[i]
	delim := data[i : i+1]
	if bytes.HasPrefix(data[i:], []byte{q, q, q}) {
		delim = data[i : i+3]
	}

	j := i + len(delim)
	for j < len(data) {
		if q == '"' && data[j] == '\\' {
			j += 2
			continue
		}
		if bytes.HasPrefix(data[j:], delim) {
			j += len(delim)
			// A multi-line string may end with up to two quotes of its own.
			for extra := 0; len(delim) == 3 && extra < 2 && j < len(data) && data[j] == q; extra++ {
				j++
			}
			return j
		}
		j++
	}
	return j
}

func lineStart(data []byte, i int) int {
	for i > 0 && data[i-1] != '\n' {
		i--
	}
	return i
}

func lineEnd(data []byte, i int) int {
	for i < len(data) {
		if data[i] == '\n' {
			return i + 1
		}
		i++
	}
	return i
}

// edit replaces src[at:end] with text. at == end is an insertion.
type edit struct {
	at, end int
	text    []byte
}

// editor turns the difference between a document's loaded and current
// trees into edits of the source text, plus new tables for the end.
type editor struct {
	doc   *Document
	edits []edit
	tail  [][]byte
}

func (e *editor) walk(path []string, index int, cur, old map[string]any) error {
	id := pathID(path, index)
	b := e.doc.blocks[id]

	covered := map[string]bool{}
	if b != nil {
		for _, k := range b.keys {
			covered[k.path[0]] = true
			v, ok := dig(cur, k.path)
			if !ok {
				e.edits = append(e.edits, edit{at: k.line, end: k.next})
				continue
			}
			if was, _ := dig(old, k.path); reflect.DeepEqual(v, was) {
				continue
			}
			text, err := encodeValue(v)
			if err != nil {
				return err
			}
			e.edits = append(e.edits, edit{at: k.start, end: k.end, text: text})
		}
	}

	var lines bytes.Buffer
	var tables []string
	for _, key := range e.doc.keyOrder(id, cur) {
		if covered[key] {
			continue
		}
		if isTable(cur[key]) {
			tables = append(tables, key)
			continue
		}
		text, err := encodeValue(cur[key])
		if err != nil {
			return err
		}
		fmt.Fprintf(&lines, "%s = %s\n", quoteKey(key), text)
	}

	switch {
	case b != nil:
		if lines.Len() > 0 {
			e.edits = append(e.edits, edit{at: b.insertAt, end: b.insertAt, text: lines.Bytes()})
		}
	case index >= 0 || lines.Len() > 0:
		e.tail = append(e.tail, append(header(path, index), lines.Bytes()...))
	}

	for _, key := range tables {
		child := append(path[:len(path):len(path)], key)
		switch v := cur[key].(type) {
		case map[string]any:
			was, _ := old[key].(map[string]any)
			if err := e.walk(child, -1, v, was); err != nil {
				return err
			}
		case []any:
			wasArr, _ := old[key].([]any)
			for i, el := range v {
				var was map[string]any
				if i < len(wasArr) {
					was, _ = wasArr[i].(map[string]any)
				}
				if err := e.walk(child, i, el.(map[string]any), was); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (e *editor) render(src []byte) []byte {
	sort.SliceStable(e.edits, func(i, j int) bool { return e.edits[i].at < e.edits[j].at })

	var out bytes.Buffer
	pos := 0
	for _, ed := range e.edits {
		out.Write(src[pos:ed.at])
		if ed.at == ed.end && ed.at > 0 && src[ed.at-1] != '\n' {
			out.WriteByte('\n')
		}
		out.Write(ed.text)
		pos = ed.end
	}
	out.Write(src[pos:])

	for _, t := range e.tail {
		if out.Len() > 0 {
			if !bytes.HasSuffix(out.Bytes(), []byte("\n")) {
				out.WriteByte('\n')
			}
			out.WriteByte('\n')
		}
		out.Write(t)
	}

	return out.Bytes()
}

// isTable reports whether v is written as a [table] or [[array]] rather
// than as a value.
func isTable(v any) bool {
	switch v := v.(type) {
	case map[string]any:
		return true
	case []any:
		if len(v) == 0 {
			return false
		}
		for _, el := range v {
			if _, ok := el.(map[string]any); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func dig(m map[string]any, path []string) (any, bool) {
	var v any = m
	for _, k := range path {
		t, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		if v, ok = t[k]; !ok {
			return nil, false
		}
	}
	return v, true
}

func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetTablesInline(true)
	if err := enc.Encode(map[string]any{"v": v}); err != nil {
		return nil, err
	}
	out := bytes.TrimPrefix(buf.Bytes(), []byte("v = "))
	return bytes.TrimRight(out, "\n"), nil
}

func quoteKey(key string) string {
	bare := key != ""
	for _, c := range key {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-') {
			bare = false
			break
		}
	}
	if bare {
		return key
	}
	quoted, _ := encodeValue(key)
	return string(quoted)
}

func header(path []string, index int) []byte {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = quoteKey(p)
	}
	name := strings.Join(parts, ".")
	if index >= 0 {
		return []byte("[[" + name + "]]\n")
	}
	return []byte("[" + name + "]\n")
}
