// Package settings holds the launcher's view of the engine's PD Loader
// INI configuration: plugins/config.ini and plugins/components.ini.
package settings

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/ossyrian/mintylaunch/internal/section"
	"github.com/ossyrian/mintylaunch/internal/store"
)

const (
	PluginsDir     = "plugins"
	ConfigFile     = "config.ini"
	ComponentsFile = "components.ini"
)

// State owns every record for the lifetime of the launcher.
type State struct {
	Video      Video
	Graphics   Graphics
	Patches    Patches
	Components Components

	logger *slog.Logger
}

// NewState returns a State holding built-in defaults.
func NewState(logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		Video:      DefaultVideo(),
		Graphics:   DefaultGraphics(),
		Patches:    DefaultPatches(),
		Components: DefaultComponents(),
		logger:     logger,
	}
}

// ConfigPath returns the path of config.ini under the engine directory.
func ConfigPath(dir string) string {
	return filepath.Join(dir, PluginsDir, ConfigFile)
}

// ComponentsPath returns the path of components.ini under the engine directory.
func ComponentsPath(dir string) string {
	return filepath.Join(dir, PluginsDir, ComponentsFile)
}

// Load overwrites the records from the documents under dir. Missing
// documents and sections leave defaults in place.
func (s *State) Load(dir string) error {
	config, err := store.Open(ConfigPath(dir))
	if err != nil {
		return err
	}
	for _, r := range []section.Record{&s.Video, &s.Graphics, &s.Patches} {
		s.read(config, r)
	}

	components, err := store.Open(ComponentsPath(dir))
	if err != nil {
		return err
	}
	s.read(components, &s.Components)

	return nil
}

func (s *State) read(doc *store.INI, r section.Record) {
	if !section.Read(doc, r) {
		s.logger.Debug("section missing, using defaults",
			"file", doc.Path(),
			"section", r.SectionName(),
		)
		return
	}
	s.logger.Debug("read section",
		"file", doc.Path(),
		"section", r.SectionName(),
	)
}

// documents opens both documents (or starts empty ones) and writes every
// record into them.
func (s *State) documents(dir string) ([]*store.INI, error) {
	config, err := store.Open(ConfigPath(dir))
	if err != nil {
		return nil, err
	}
	section.WriteWithContext(config, &s.Video, &s.Graphics)
	section.Write(config, &s.Graphics)
	section.Write(config, &s.Patches)

	components, err := store.Open(ComponentsPath(dir))
	if err != nil {
		return nil, err
	}
	section.WriteWithContext(components, &s.Components, &s.Patches)

	return []*store.INI{config, components}, nil
}

// Save writes every record back to the documents under dir.
func (s *State) Save(dir string) error {
	docs, err := s.documents(dir)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if err := doc.Save(); err != nil {
			return err
		}
		s.logger.Info("saved settings", "file", doc.Path())
	}

	return nil
}

// Dump writes what Save would persist to w, each document preceded by a
// comment naming its path.
func (s *State) Dump(dir string, w io.Writer) error {
	docs, err := s.documents(dir)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if _, err := fmt.Fprintf(w, "; %s\n", doc.Path()); err != nil {
			return err
		}
		if _, err := doc.WriteTo(w); err != nil {
			return fmt.Errorf("failed to render %s: %w", doc.Path(), err)
		}
	}

	return nil
}
