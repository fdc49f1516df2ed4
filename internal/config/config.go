package config

import (
	"fmt"
	"path/filepath"
)

const (
	LayoutINI  = "ini"
	LayoutTOML = "toml"
)

// Config holds app configuration
type Config struct {
	// GameDir is the engine's install directory, the one holding the
	// executable and plugins/
	GameDir string `mapstructure:"game_dir"`

	// Layout picks which settings files the launcher edits: the PD Loader
	// INI files or the engine's own TOML files
	Layout string `mapstructure:"layout"`

	// Engine is the executable started by launch, relative to GameDir
	Engine string `mapstructure:"engine"`

	// Launch skips the UI and starts the engine directly
	Launch bool `mapstructure:"launch"`

	LogLevel     string `mapstructure:"log_level"`
	LogOutputDir string `mapstructure:"log_output_dir"`
}

// Validate checks the values a command cannot run without and fills in
// defaults for the rest.
func (c *Config) Validate() error {
	switch c.Layout {
	case "":
		c.Layout = LayoutINI
	case LayoutINI, LayoutTOML:
	default:
		return fmt.Errorf("unknown layout %q (want %s or %s)", c.Layout, LayoutINI, LayoutTOML)
	}

	if c.GameDir == "" {
		c.GameDir = "."
	}
	dir, err := filepath.Abs(c.GameDir)
	if err != nil {
		return fmt.Errorf("invalid game dir %q: %w", c.GameDir, err)
	}
	c.GameDir = dir

	if c.Engine == "" {
		c.Engine = "diva.exe"
	}
	if filepath.Base(c.Engine) != c.Engine {
		return fmt.Errorf("engine %q must be a file name inside the game dir", c.Engine)
	}

	return nil
}
