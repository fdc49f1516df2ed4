package tomlconf

import (
	"fmt"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// SubGameState is the engine state a translation is limited to.
// SubMax means the translation applies in every state.
type SubGameState uint8

var subGameStateNames = []string{
	"SUB_DATA_INITIALIZE",
	"SUB_SYSTEM_STARTUP",
	"SUB_SYSTEM_STARTUP_ERROR",
	"SUB_WARNING",
	"SUB_LOGO",
	"SUB_RATING",
	"SUB_DEMO",
	"SUB_TITLE",
	"SUB_RANKING",
	"SUB_SCORE_RANKING",
	"SUB_CM",
	"SUB_PHOTO_MODE_DEMO",
	"SUB_SELECTOR",
	"SUB_GAME_MAIN",
	"SUB_GAME_SEL",
	"SUB_STAGE_RESULT",
	"SUB_SCREEN_SHOT_SEL",
	"SUB_SCREEN_SHOT_RESULT",
	"SUB_GAME_OVER",
	"SUB_DATA_TEST_MAIN",
	"SUB_DATA_TEST_MISC",
	"SUB_DATA_TEST_OBJ",
	"SUB_DATA_TEST_STG",
	"SUB_DATA_TEST_MOT",
	"SUB_DATA_TEST_COLLISION",
	"SUB_DATA_TEST_SPR",
	"SUB_DATA_TEST_AET",
	"SUB_DATA_TEST_AUTH_3D",
	"SUB_DATA_TEST_CHR",
	"SUB_DATA_TEST_ITEM",
	"SUB_DATA_TEST_PERF",
	"SUB_DATA_TEST_PVSCRIPT",
	"SUB_DATA_TEST_PRINT",
	"SUB_DATA_TEST_CARD",
	"SUB_DATA_TEST_OPD",
	"SUB_DATA_TEST_SLIDER",
	"SUB_DATA_TEST_GLITTER",
	"SUB_DATA_TEST_GRAPHICS",
	"SUB_DATA_TEST_COLLECTION_CARD",
	"SUB_TEST_MODE_MAIN",
	"SUB_APP_ERROR",
	"SUB_MAX",
}

// SubMax is the "any state" marker.
var SubMax = SubGameState(len(subGameStateNames) - 1)

// SubGameStates lists every state, SubMax last.
var SubGameStates = func() []SubGameState {
	out := make([]SubGameState, len(subGameStateNames))
	for i := range out {
		out[i] = SubGameState(i)
	}
	return out
}()

// ParseSubGameState looks a state up by name. Unknown names yield SubMax.
func ParseSubGameState(name string) (SubGameState, bool) {
	for i, n := range subGameStateNames {
		if n == name {
			return SubGameState(i), true
		}
	}
	return SubMax, false
}

func (s SubGameState) String() string {
	if int(s) < len(subGameStateNames) {
		return subGameStateNames[s]
	}
	return "SUB_MAX"
}

// Translation replaces one on-screen string.
type Translation struct {
	Old   string
	New   string
	State SubGameState
}

// TranslationFile is one file under translations/.
type TranslationFile struct {
	Path         string
	Language     string
	Author       string
	Enabled      bool
	Translations []Translation

	// doc and loaded are the parsed file and what was read from it.
	doc    *Document
	loaded *TranslationFile
}

type translationFileTOML struct {
	Language    string            `toml:"language"`
	Author      string            `toml:"author"`
	Enabled     bool              `toml:"enabled"`
	Translation []translationTOML `toml:"translation"`
}

type translationTOML struct {
	Old   string `toml:"old"`
	New   string `toml:"new"`
	State string `toml:"state"`
}

// ParseTranslationFile decodes a translation file.
func ParseTranslationFile(path string, data []byte) (*TranslationFile, error) {
	doc, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	var raw translationFileTOML
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	f := &TranslationFile{
		Path:         path,
		Language:     raw.Language,
		Author:       raw.Author,
		Enabled:      raw.Enabled,
		Translations: make([]Translation, 0, len(raw.Translation)),
		doc:          doc,
	}

	for _, rt := range raw.Translation {
		state := SubMax
		if rt.State != "" {
			state, _ = ParseSubGameState(rt.State)
		}
		f.Translations = append(f.Translations, Translation{Old: rt.Old, New: rt.New, State: state})
	}

	loaded := *f
	loaded.Translations = slices.Clone(f.Translations)
	f.loaded = &loaded

	return f, nil
}

// Add appends an empty translation that applies in every state.
func (f *TranslationFile) Add() {
	f.Translations = append(f.Translations, Translation{State: SubMax})
}

// Marshal encodes the translation file. A state of SubMax is left out, and
// values that did not change since the file was parsed keep their text.
func (f *TranslationFile) Marshal() ([]byte, error) {
	doc, base := f.doc, f.loaded
	fresh := doc == nil || base == nil
	if fresh {
		doc, base = newDocument(f.Path), &TranslationFile{}
	}

	root := doc.rootTable()
	if fresh || f.Language != base.Language {
		root.put("language", f.Language)
	}
	if fresh || f.Author != base.Author {
		root.put("author", f.Author)
	}
	if fresh || f.Enabled != base.Enabled {
		root.put("enabled", f.Enabled)
	}

	for i, t := range f.Translations {
		added := fresh || i >= len(base.Translations)
		was := Translation{State: SubMax}
		if !added {
			was = base.Translations[i]
		}

		el, ok := doc.element("translation", i)
		if !ok {
			return nil, fmt.Errorf("failed to encode %s: translation %d is not a table", f.Path, i)
		}
		if added || t.Old != was.Old {
			el.put("old", t.Old)
		}
		if added || t.New != was.New {
			el.put("new", t.New)
		}
		switch {
		case t.State == was.State && !added:
		case t.State == SubMax:
			el.remove("state")
		default:
			el.put("state", t.State.String())
		}
	}

	return doc.Marshal()
}
