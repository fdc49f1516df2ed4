package settings

import (
	"strconv"

	"github.com/ossyrian/mintylaunch/internal/section"
)

// Video holds the window and render resolution, section [Resolution] of
// config.ini.
type Video struct {
	DisplayFormat DisplayFormat
	// -1 in both means match the screen
	WindowWidth  int32
	WindowHeight int32
	// -1 in both means match the window
	InternalResolution bool
	InternalWidth      int32
	InternalHeight     int32
}

func DefaultVideo() Video {
	return Video{
		DisplayFormat:      Windowed,
		WindowWidth:        -1,
		WindowHeight:       -1,
		InternalResolution: true,
		InternalWidth:      1920,
		InternalHeight:     1080,
	}
}

func (v *Video) SectionName() string { return "Resolution" }

func (v *Video) fields() []section.Field {
	d := DefaultVideo()
	return []section.Field{
		section.Enum("Display", &v.DisplayFormat, d.DisplayFormat),
		section.Int("Width", &v.WindowWidth, d.WindowWidth),
		section.Int("Height", &v.WindowHeight, d.WindowHeight),
		section.Bool("r.Enable", &v.InternalResolution, d.InternalResolution, section.Numeric),
		section.Int("r.Width", &v.InternalWidth, d.InternalWidth),
		section.Int("r.Height", &v.InternalHeight, d.InternalHeight),
	}
}

func (v *Video) ReadBody(s section.Section) { section.ReadFields(s, v.fields()) }
func (v *Video) WriteBody(w section.Writer)  { section.WriteFields(w, v.fields()) }

// WriteAdditional mirrors the frame rate limit into RefreshRate.
func (v *Video) WriteAdditional(g *Graphics, w section.Writer) {
	if g == nil {
		d := DefaultGraphics()
		g = &d
	}
	w.Set("RefreshRate", strconv.FormatInt(int64(g.FrameRate), 10))
}
