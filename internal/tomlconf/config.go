// Package tomlconf holds the launcher's view of the engine's TOML
// configuration: config.toml, keyconfig.toml, and the patches/ and
// translations/ directories.
package tomlconf

import "github.com/ossyrian/mintylaunch/internal/section"

// EngineConfig is the top-level table of config.toml.
type EngineConfig struct {
	FPS             int32
	Fullscreen      bool
	RumbleIntensity int32
}

const (
	RumbleMin = 0
	RumbleMax = 100
)

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		FPS:             60,
		Fullscreen:      false,
		RumbleIntensity: 100,
	}
}

func (c *EngineConfig) SectionName() string { return Root }

func (c *EngineConfig) fields() []section.Field {
	d := DefaultEngineConfig()
	return []section.Field{
		section.Int("fps", &c.FPS, d.FPS),
		section.Bool("fullscreen", &c.Fullscreen, d.Fullscreen, section.Textual),
		section.Int("rumbleIntensity", &c.RumbleIntensity, d.RumbleIntensity),
	}
}

func (c *EngineConfig) ReadBody(s section.Section) { section.ReadFields(s, c.fields()) }
func (c *EngineConfig) WriteBody(w section.Writer)  { section.WriteFields(w, c.fields()) }

// InternalResolution is the [internalRes] table of config.toml.
type InternalResolution struct {
	X int32
	Y int32
}

func DefaultInternalResolution() InternalResolution {
	return InternalResolution{X: 1280, Y: 720}
}

func (r *InternalResolution) SectionName() string { return "internalRes" }

func (r *InternalResolution) fields() []section.Field {
	d := DefaultInternalResolution()
	return []section.Field{
		section.Int("x", &r.X, d.X),
		section.Int("y", &r.Y, d.Y),
	}
}

func (r *InternalResolution) ReadBody(s section.Section) { section.ReadFields(s, r.fields()) }
func (r *InternalResolution) WriteBody(w section.Writer)  { section.WriteFields(w, r.fields()) }
