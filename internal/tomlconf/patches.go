package tomlconf

import (
	"fmt"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/ossyrian/mintylaunch/internal/coerce"
)

// DataType is how a memory patch's data is laid out at its address.
type DataType uint8

const (
	I8 DataType = iota
	I8Arr
	U8
	U8Arr
	I16
	I16Arr
	U16
	U16Arr
	I32
	I32Arr
	U32
	U32Arr
	I64
	I64Arr
	StringData
)

var dataTypeNames = []string{
	"i8", "i8_arr", "u8", "u8_arr",
	"i16", "i16_arr", "u16", "u16_arr",
	"i32", "i32_arr", "u32", "u32_arr",
	"i64", "i64_arr", "string",
}

// DefaultDataType is used when a patch names no known data type.
const DefaultDataType = U8Arr

// DataTypes lists every data type in declaration order.
var DataTypes = func() []DataType {
	out := make([]DataType, len(dataTypeNames))
	for i := range out {
		out[i] = DataType(i)
	}
	return out
}()

// ParseDataType looks a data type up by its file name.
func ParseDataType(name string) (DataType, bool) {
	for i, n := range dataTypeNames {
		if n == name {
			return DataType(i), true
		}
	}
	return DefaultDataType, false
}

func (t DataType) String() string {
	if int(t) < len(dataTypeNames) {
		return dataTypeNames[t]
	}
	return "unknown"
}

func (t DataType) IsArray() bool {
	return t != StringData && t%2 == 1
}

func (t DataType) IsString() bool {
	return t == StringData
}

// HexDigits is how many hex digits one element of t occupies.
func (t DataType) HexDigits() int {
	switch t {
	case I8, I8Arr, U8, U8Arr:
		return 2
	case I16, I16Arr, U16, U16Arr:
		return 4
	case I32, I32Arr, U32, U32Arr:
		return 8
	case I64, I64Arr:
		return 16
	default:
		return 0
	}
}

// MemoryPatch is one write the engine applies at startup. Which of Int,
// Ints and Text carries the data depends on DataType.
type MemoryPatch struct {
	Address  int64
	DataType DataType
	Int      int64
	Ints     []int64
	Text     string
}

// Label is the patch's address in hex.
func (p *MemoryPatch) Label() string {
	return coerce.FormatHex(p.Address, 0)
}

// PatchFile is one file under patches/.
type PatchFile struct {
	Path    string
	Name    string
	Author  string
	Enabled bool
	Patches []MemoryPatch

	// doc and loaded are the parsed file and what was read from it.
	doc    *Document
	loaded *PatchFile
}

type patchFileTOML struct {
	Name    string      `toml:"name"`
	Author  string      `toml:"author"`
	Enabled bool        `toml:"enabled"`
	Patch   []patchTOML `toml:"patch"`
}

type patchTOML struct {
	Address  int64  `toml:"address"`
	DataType string `toml:"data_type"`
	Data     any    `toml:"data"`
}

// ParsePatchFile decodes a patch file. Unknown data types fall back to
// DefaultDataType and data of the wrong shape reads as zero.
func ParsePatchFile(path string, data []byte) (*PatchFile, error) {
	doc, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	var raw patchFileTOML
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	f := &PatchFile{
		Path:    path,
		Name:    raw.Name,
		Author:  raw.Author,
		Enabled: raw.Enabled,
		Patches: make([]MemoryPatch, 0, len(raw.Patch)),
		doc:     doc,
	}

	for _, rp := range raw.Patch {
		dt, _ := ParseDataType(rp.DataType)
		p := MemoryPatch{Address: rp.Address, DataType: dt}
		switch {
		case dt.IsString():
			p.Text, _ = rp.Data.(string)
		case dt.IsArray():
			arr, _ := rp.Data.([]any)
			p.Ints = make([]int64, 0, len(arr))
			for _, v := range arr {
				n, _ := v.(int64)
				p.Ints = append(p.Ints, n)
			}
		default:
			p.Int, _ = rp.Data.(int64)
		}
		f.Patches = append(f.Patches, p)
	}

	loaded := *f
	loaded.Patches = make([]MemoryPatch, len(f.Patches))
	for i, p := range f.Patches {
		p.Ints = slices.Clone(p.Ints)
		loaded.Patches[i] = p
	}
	f.loaded = &loaded

	return f, nil
}

// data is the patch's payload as it is stored in the file.
func (p *MemoryPatch) data() any {
	switch {
	case p.DataType.IsString():
		return p.Text
	case p.DataType.IsArray():
		arr := make([]any, len(p.Ints))
		for i, n := range p.Ints {
			arr[i] = n
		}
		return arr
	default:
		return p.Int
	}
}

func (p *MemoryPatch) sameData(o *MemoryPatch) bool {
	return p.Int == o.Int && p.Text == o.Text && slices.Equal(p.Ints, o.Ints)
}

// Marshal encodes the patch file. Only values that changed since the file
// was parsed are rewritten; the rest of the text is kept as it was.
func (f *PatchFile) Marshal() ([]byte, error) {
	doc, base := f.doc, f.loaded
	fresh := doc == nil || base == nil
	if fresh {
		doc, base = newDocument(f.Path), &PatchFile{}
	}

	root := doc.rootTable()
	if fresh || f.Name != base.Name {
		root.put("name", f.Name)
	}
	if fresh || f.Author != base.Author {
		root.put("author", f.Author)
	}
	if fresh || f.Enabled != base.Enabled {
		root.put("enabled", f.Enabled)
	}

	for i := range f.Patches {
		p := &f.Patches[i]
		added := fresh || i >= len(base.Patches)
		was := &MemoryPatch{}
		if !added {
			was = &base.Patches[i]
		}

		el, ok := doc.element("patch", i)
		if !ok {
			return nil, fmt.Errorf("failed to encode %s: patch %d is not a table", f.Path, i)
		}
		if added || p.Address != was.Address {
			el.put("address", p.Address)
		}
		if added || p.DataType != was.DataType {
			el.put("data_type", p.DataType.String())
		}
		if added || p.DataType != was.DataType || !p.sameData(was) {
			el.put("data", p.data())
		}
	}

	return doc.Marshal()
}
