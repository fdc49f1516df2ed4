// Package store loads and saves section-based configuration documents.
package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/ossyrian/mintylaunch/internal/section"
)

func init() {
	// The engine's own writer emits key=value with no alignment padding.
	ini.PrettyFormat = false
	ini.PrettyEqual = false
}

var loadOptions = ini.LoadOptions{
	SkipUnrecognizableLines: true,
	IgnoreInlineComment:     true,
}

// INI is an INI document bound to the path it is saved to.
type INI struct {
	path string
	file *ini.File
}

// Open reads the INI document at path. A missing file yields an empty
// document that will be created on Save.
func Open(path string) (*INI, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &INI{path: path, file: f}, nil
}

// New returns an empty document that will be saved to path.
func New(path string) *INI {
	return &INI{path: path, file: ini.Empty(loadOptions)}
}

// Exists reports whether a regular file exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Path returns the file the document is saved to.
func (d *INI) Path() string {
	return d.path
}

// Section implements section.Document.
func (d *INI) Section(name string) (section.Section, bool) {
	s, err := d.file.GetSection(name)
	if err != nil {
		return nil, false
	}
	return iniSection{s}, true
}

// WithSection implements section.Document.
func (d *INI) WithSection(name string) section.Writer {
	return iniSection{d.file.Section(name)}
}

// WriteTo serializes the document. Keys keep their insertion order.
func (d *INI) WriteTo(w io.Writer) (int64, error) {
	return d.file.WriteTo(w)
}

// Save writes the document to its path, creating parent directories.
func (d *INI) Save() error {
	if dir := filepath.Dir(d.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	f, err := os.Create(d.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", d.path, err)
	}

	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}

	return nil
}

type iniSection struct {
	s *ini.Section
}

func (s iniSection) Get(key string) (string, bool) {
	if !s.s.HasKey(key) {
		return "", false
	}
	return s.s.Key(key).String(), true
}

func (s iniSection) Set(key, value string) {
	s.s.Key(key).SetValue(value)
}
