package tomlconf

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ossyrian/mintylaunch/internal/section"
	"github.com/ossyrian/mintylaunch/internal/store"
)

const (
	ConfigFile      = "config.toml"
	KeyconfigFile   = "keyconfig.toml"
	PatchesDir      = "patches"
	TranslationsDir = "translations"

	// TranslationMarker is the engine file whose presence enables translations.
	TranslationMarker = "lang.dll"
)

// State owns everything the launcher edits in the TOML layout.
type State struct {
	Engine       EngineConfig
	Resolution   InternalResolution
	Keys         Keyconfig
	Patches      []*PatchFile
	Translations []*TranslationFile

	// HaveTranslation is set by Load when the engine ships lang.dll.
	HaveTranslation bool

	logger *slog.Logger
}

// NewState returns a State holding built-in defaults.
func NewState(logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		Engine:     DefaultEngineConfig(),
		Resolution: DefaultInternalResolution(),
		Keys:       NewKeyconfig(),
		logger:     logger,
	}
}

// Load reads config.toml, keyconfig.toml and the patch and translation
// directories under dir. Missing files leave defaults in place and patch or
// translation files that fail to parse are skipped.
func (s *State) Load(dir string) error {
	config, err := Open(filepath.Join(dir, ConfigFile))
	if err != nil {
		return err
	}
	for _, r := range []section.Record{&s.Engine, &s.Resolution} {
		if !section.Read(config, r) {
			s.logger.Debug("table missing, using defaults",
				"file", config.Path(),
				"table", r.SectionName(),
			)
		}
	}

	keys, err := Open(filepath.Join(dir, KeyconfigFile))
	if err != nil {
		return err
	}
	s.Keys.Read(keys)

	s.Patches = nil
	err = s.eachFile(filepath.Join(dir, PatchesDir), func(path string, data []byte) error {
		f, err := ParsePatchFile(path, data)
		if err != nil {
			return err
		}
		s.Patches = append(s.Patches, f)
		return nil
	})
	if err != nil {
		return err
	}

	s.Translations = nil
	s.HaveTranslation = store.Exists(filepath.Join(dir, TranslationMarker))
	if !s.HaveTranslation {
		return nil
	}
	return s.eachFile(filepath.Join(dir, TranslationsDir), func(path string, data []byte) error {
		f, err := ParseTranslationFile(path, data)
		if err != nil {
			return err
		}
		s.Translations = append(s.Translations, f)
		return nil
	})
}

// eachFile calls parse for every .toml file in dir, in name order. A parse
// failure is logged and the file skipped; a missing dir is not an error.
func (s *State) eachFile(dir string, parse func(path string, data []byte) error) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".toml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := parse(path, data); err != nil {
			s.logger.Warn("skipping file", "file", path, "error", err)
			continue
		}
		s.logger.Debug("read file", "file", path)
	}

	return nil
}

type output struct {
	path string
	data []byte
}

// render produces every file Save would write.
func (s *State) render(dir string) ([]output, error) {
	config, err := Open(filepath.Join(dir, ConfigFile))
	if err != nil {
		return nil, err
	}
	section.Write(config, &s.Engine)
	section.Write(config, &s.Resolution)

	keys, err := Open(filepath.Join(dir, KeyconfigFile))
	if err != nil {
		return nil, err
	}
	s.Keys.Write(keys)

	var out []output
	for _, doc := range []*Document{config, keys} {
		data, err := doc.Marshal()
		if err != nil {
			return nil, err
		}
		out = append(out, output{path: doc.Path(), data: data})
	}

	for _, f := range s.Patches {
		data, err := f.Marshal()
		if err != nil {
			return nil, err
		}
		out = append(out, output{path: f.Path, data: data})
	}
	for _, f := range s.Translations {
		data, err := f.Marshal()
		if err != nil {
			return nil, err
		}
		out = append(out, output{path: f.Path, data: data})
	}

	return out, nil
}

// Save writes every document and patch or translation file back to disk.
func (s *State) Save(dir string) error {
	files, err := s.render(dir)
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := writeFile(f.path, f.data); err != nil {
			return err
		}
		s.logger.Info("saved settings", "file", f.path)
	}

	return nil
}

// Dump writes what Save would persist to w, each file preceded by a comment
// naming its path.
func (s *State) Dump(dir string, w io.Writer) error {
	files, err := s.render(dir)
	if err != nil {
		return err
	}

	for _, f := range files {
		if _, err := fmt.Fprintf(w, "# %s\n", f.path); err != nil {
			return err
		}
		if _, err := w.Write(f.data); err != nil {
			return err
		}
		if len(f.data) > 0 && f.data[len(f.data)-1] != '\n' {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}

	return nil
}
