package settings

import "github.com/ossyrian/mintylaunch/internal/section"

// Components enables the engine's optional components, section
// [components] of components.ini. Unlike config.ini this file spells
// booleans as true/false.
type Components struct {
	InputEmulator     bool
	TouchEmulator     bool
	PlayerDataManager bool
	// speeds up animations to match the frame rate
	FrameRateManager bool
	FastLoader       bool
	// 3 or lower when playing online
	FastLoaderSpeed  int32
	CameraController bool
	Scaling          bool
	DebugUI          bool
	HoldTransfer     bool
	ScoreSaving      bool
	Pausing          bool
}

const (
	FastLoaderSpeedMin = 0
	FastLoaderSpeedMax = 100
)

func DefaultComponents() Components {
	return Components{
		InputEmulator:     true,
		TouchEmulator:     true,
		PlayerDataManager: true,
		FrameRateManager:  true,
		FastLoader:        true,
		FastLoaderSpeed:   39,
		CameraController:  true,
		Scaling:           true,
		DebugUI:           true,
		HoldTransfer:      true,
		ScoreSaving:       true,
		Pausing:           true,
	}
}

func (c *Components) SectionName() string { return "components" }

func (c *Components) fields() []section.Field {
	d := DefaultComponents()
	return []section.Field{
		section.Bool("input_emulator", &c.InputEmulator, d.InputEmulator, section.Textual),
		section.Bool("touch_panel_emulator", &c.TouchEmulator, d.TouchEmulator, section.Textual),
		section.Bool("player_data_manager", &c.PlayerDataManager, d.PlayerDataManager, section.Textual),
		section.Bool("frame_rate_manager", &c.FrameRateManager, d.FrameRateManager, section.Textual),
		section.Bool("fast_loader", &c.FastLoader, d.FastLoader, section.Textual),
		section.Int("fast_loader_speed", &c.FastLoaderSpeed, d.FastLoaderSpeed),
		section.Bool("camera_controller", &c.CameraController, d.CameraController, section.Textual),
		section.Bool("scale_component", &c.Scaling, d.Scaling, section.Textual),
		section.Bool("debug_component", &c.DebugUI, d.DebugUI, section.Textual),
		section.Bool("target_inspector", &c.HoldTransfer, d.HoldTransfer, section.Textual),
		section.Bool("score_saver", &c.ScoreSaving, d.ScoreSaving, section.Textual),
		section.Bool("pause", &c.Pausing, d.Pausing, section.Textual),
	}
}

func (c *Components) ReadBody(s section.Section) { section.ReadFields(s, c.fields()) }
func (c *Components) WriteBody(w section.Writer)  { section.WriteFields(w, c.fields()) }

// WriteAdditional derives the slider and selection timer components from
// the patch toggles that control the same engine features.
func (c *Components) WriteAdditional(p *Patches, w section.Writer) {
	if p == nil {
		d := DefaultPatches()
		p = &d
	}
	w.Set("touch_slider_emulator", section.Textual.Format(!p.DisableSliderEmu))
	w.Set("sys_timer", section.Textual.Format(p.DisableSelectionTimer))
}
