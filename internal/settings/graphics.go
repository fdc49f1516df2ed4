package settings

import "github.com/ossyrian/mintylaunch/internal/section"

// Graphics holds render toggles, section [Graphics] of config.ini.
type Graphics struct {
	TAA          bool
	MLAA         bool
	Glare        bool
	DepthOfField bool
	// -1 unlocks the frame rate
	FrameRate    int32
	Gamma        int32
	Reflections  bool
	Shadows      bool
	Transparency bool
	Disable3D    bool
}

const (
	GammaMin = 0
	GammaMax = 200
)

func DefaultGraphics() Graphics {
	return Graphics{
		MLAA:         true,
		DepthOfField: true,
		FrameRate:    60,
		Gamma:        100,
		Reflections:  true,
		Shadows:      true,
		Transparency: true,
	}
}

func (g *Graphics) SectionName() string { return "Graphics" }

func (g *Graphics) fields() []section.Field {
	d := DefaultGraphics()
	return []section.Field{
		section.Bool("TAA", &g.TAA, d.TAA, section.Numeric),
		section.Bool("MLAA", &g.MLAA, d.MLAA, section.Numeric),
		section.Bool("Glare", &g.Glare, d.Glare, section.Numeric),
		section.Bool("DOF", &g.DepthOfField, d.DepthOfField, section.Numeric),
		section.Int("FPS.Limit", &g.FrameRate, d.FrameRate),
		section.Int("Gamma", &g.Gamma, d.Gamma),
		section.Bool("Reflections", &g.Reflections, d.Reflections, section.Numeric),
		section.Bool("Shadows", &g.Shadows, d.Shadows, section.Numeric),
		section.Bool("Punchthrough", &g.Transparency, d.Transparency, section.Numeric),
		section.Bool("2D", &g.Disable3D, d.Disable3D, section.Numeric),
	}
}

func (g *Graphics) ReadBody(s section.Section) { section.ReadFields(s, g.fields()) }
func (g *Graphics) WriteBody(w section.Writer)  { section.WriteFields(w, g.fields()) }
