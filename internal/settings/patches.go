package settings

import "github.com/ossyrian/mintylaunch/internal/section"

// Patches holds the engine patch toggles, section [Patches] of config.ini.
type Patches struct {
	DisableMovies    bool
	ShowCursor       bool
	DisableSliderEmu bool // must be set when a hardware slider is attached
	// 0 when playing online
	StageCount            int32
	DisableVolumeButtons  bool
	DisablePhotoUI        bool
	DisableWatermark      bool
	StatusIcons           StatusIcons
	DisableLyrics         bool
	DisableErrorBanner    bool
	DisableCreditsText    bool
	ShowPDLoaderText      bool
	DisableCredits        bool
	DisableSelectionTimer bool
	DisableTimerSprite    bool
}

func DefaultPatches() Patches {
	return Patches{
		StatusIcons:           StatusDefault,
		DisableVolumeButtons:  true,
		DisablePhotoUI:        true,
		DisableWatermark:      true,
		DisableErrorBanner:    true,
		DisableCreditsText:    true,
		ShowPDLoaderText:      true,
		DisableCredits:        true,
		DisableSelectionTimer: true,
		DisableTimerSprite:    true,
	}
}

func (p *Patches) SectionName() string { return "Patches" }

func (p *Patches) fields() []section.Field {
	d := DefaultPatches()
	return []section.Field{
		section.Bool("No_Movies", &p.DisableMovies, d.DisableMovies, section.Numeric),
		section.Bool("Cursor", &p.ShowCursor, d.ShowCursor, section.Numeric),
		section.Bool("Hardware_Slider", &p.DisableSliderEmu, d.DisableSliderEmu, section.Numeric),
		section.Int("Enhanced_Stage_Manager", &p.StageCount, d.StageCount),
		section.Bool("Hide_Volume", &p.DisableVolumeButtons, d.DisableVolumeButtons, section.Numeric),
		section.Bool("No_PV_UI", &p.DisablePhotoUI, d.DisablePhotoUI, section.Numeric),
		section.Bool("Hide_PV_Watermark", &p.DisableWatermark, d.DisableWatermark, section.Numeric),
		section.Enum("Status_Icons", &p.StatusIcons, d.StatusIcons),
		section.Bool("No_Lyrics", &p.DisableLyrics, d.DisableLyrics, section.Numeric),
		section.Bool("No_Error", &p.DisableErrorBanner, d.DisableErrorBanner, section.Numeric),
		section.Bool("Hide_Freeplay", &p.DisableCreditsText, d.DisableCreditsText, section.Numeric),
		section.Bool("PDLoaderText", &p.ShowPDLoaderText, d.ShowPDLoaderText, section.Numeric),
		section.Bool("Freeplay", &p.DisableCredits, d.DisableCredits, section.Numeric),
		section.Bool("No_Timer", &p.DisableSelectionTimer, d.DisableSelectionTimer, section.Numeric),
		section.Bool("No_Timer_Sprite", &p.DisableTimerSprite, d.DisableTimerSprite, section.Numeric),
	}
}

func (p *Patches) ReadBody(s section.Section) { section.ReadFields(s, p.fields()) }
func (p *Patches) WriteBody(w section.Writer)  { section.WriteFields(w, p.fields()) }
