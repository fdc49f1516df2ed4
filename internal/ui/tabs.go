package ui

import (
	"fmt"
	"path/filepath"

	"github.com/ossyrian/mintylaunch/internal/settings"
	"github.com/ossyrian/mintylaunch/internal/tomlconf"
)

// Tab is one page of the form. Rows is called again after every change, so
// rows that depend on other values (patch data after a type change, a
// growing binding list) stay current.
type Tab struct {
	Title string
	Rows  func() []Row
}

// INITabs builds the form over the PD Loader INI records.
func INITabs(s *settings.State) []Tab {
	return []Tab{
		{Title: "Video Options", Rows: func() []Row { return videoRows(s) }},
		{Title: "Patches", Rows: func() []Row { return iniPatchRows(s) }},
		{Title: "UI Options", Rows: func() []Row { return uiRows(s) }},
	}
}

func videoRows(s *settings.State) []Row {
	v, g, c := &s.Video, &s.Graphics, &s.Components
	return []Row{
		Choice[settings.DisplayFormat]{Name: "Display type", V: &v.DisplayFormat, Options: settings.DisplayFormats},
		IntField[int32]{Name: "Window width", V: &v.WindowWidth},
		IntField[int32]{Name: "Window height", V: &v.WindowHeight},
		Checkbox{Name: "Internal resolution", V: &v.InternalResolution},
		IntField[int32]{Name: "Internal width", V: &v.InternalWidth},
		IntField[int32]{Name: "Internal height", V: &v.InternalHeight},
		IntField[int32]{Name: "Frame rate limit", V: &g.FrameRate},
		Checkbox{Name: "Motion Blur", V: &g.TAA},
		Checkbox{Name: "MLAA", V: &g.MLAA},
		Checkbox{Name: "Glare", V: &g.Glare},
		Checkbox{Name: "Depth of Field", V: &g.DepthOfField},
		Checkbox{Name: "Reflections", V: &g.Reflections},
		Checkbox{Name: "Shadows", V: &g.Shadows},
		Checkbox{Name: "Transparency", V: &g.Transparency},
		Checkbox{Name: "Disable 3D", V: &g.Disable3D},
		Checkbox{Name: "Window scaling", V: &c.Scaling},
		Slider[int32]{Name: "Gamma", V: &g.Gamma, Min: settings.GammaMin, Max: settings.GammaMax, Step: 5},
	}
}

func iniPatchRows(s *settings.State) []Row {
	p, c := &s.Patches, &s.Components
	return []Row{
		Checkbox{Name: "Disable Movies", V: &p.DisableMovies},
		Checkbox{Name: "Show Cursor", V: &p.ShowCursor},
		Checkbox{Name: "Disable Slider Emulation", V: &p.DisableSliderEmu},
		Checkbox{Name: "Input Emulation", V: &c.InputEmulator},
		Checkbox{Name: "Touch Emulation", V: &c.TouchEmulator},
		Checkbox{Name: "Disable credits check", V: &p.DisableCredits},
		Checkbox{Name: "Disable selection timer", V: &p.DisableSelectionTimer},
		IntField[int32]{Name: "Number of stages", V: &p.StageCount},
		Checkbox{Name: "Fast Loader", V: &c.FastLoader},
		Slider[int32]{Name: "Fast Loader speed", V: &c.FastLoaderSpeed, Min: settings.FastLoaderSpeedMin, Max: settings.FastLoaderSpeedMax, Step: 1},
		Checkbox{Name: "Custom player data", V: &c.PlayerDataManager},
		Checkbox{Name: "Frame Rate Manager", V: &c.FrameRateManager},
		Checkbox{Name: "Camera Controller", V: &c.CameraController},
		Checkbox{Name: "Enable debug menus", V: &c.DebugUI},
		Checkbox{Name: "Hold transfers", V: &c.HoldTransfer},
		Checkbox{Name: "Score saving", V: &c.ScoreSaving},
		Checkbox{Name: "Pause menu", V: &c.Pausing},
	}
}

func uiRows(s *settings.State) []Row {
	p := &s.Patches
	return []Row{
		Choice[settings.StatusIcons]{Name: "Status icons", V: &p.StatusIcons, Options: settings.AllStatusIcons},
		Checkbox{Name: "Hide Volume Buttons", V: &p.DisableVolumeButtons},
		Checkbox{Name: "Hide PV Photo UI", V: &p.DisablePhotoUI},
		Checkbox{Name: "Hide PV Watermark", V: &p.DisableWatermark},
		Checkbox{Name: "Hide Lyrics", V: &p.DisableLyrics},
		Checkbox{Name: "Hide Error banner", V: &p.DisableErrorBanner},
		Checkbox{Name: "Hide CREDITS text", V: &p.DisableCreditsText},
		Checkbox{Name: "Swap CREDITS text with PD LOADER", V: &p.ShowPDLoaderText},
		Checkbox{Name: "Hide Selection timer", V: &p.DisableTimerSprite},
	}
}

// TOMLTabs builds the form over the engine's TOML configuration. The
// Translations tab only exists when the engine ships lang.dll.
func TOMLTabs(s *tomlconf.State) []Tab {
	tabs := []Tab{
		{Title: "Config", Rows: func() []Row { return configRows(s) }},
		{Title: "Keyconfig", Rows: func() []Row { return keyconfigRows(s) }},
		{Title: "Patches", Rows: func() []Row { return patchRows(s) }},
	}
	if s.HaveTranslation {
		tabs = append(tabs, Tab{Title: "Translations", Rows: func() []Row { return translationRows(s) }})
	}
	return tabs
}

func configRows(s *tomlconf.State) []Row {
	e, r := &s.Engine, &s.Resolution
	return []Row{
		IntField[int32]{Name: "FPS limit", V: &e.FPS},
		IntField[int32]{Name: "Internal width", V: &r.X},
		IntField[int32]{Name: "Internal height", V: &r.Y},
		Checkbox{Name: "Fullscreen", V: &e.Fullscreen},
		Slider[int32]{Name: "Rumble Intensity", V: &e.RumbleIntensity, Min: tomlconf.RumbleMin, Max: tomlconf.RumbleMax, Step: 5},
	}
}

func keyconfigRows(s *tomlconf.State) []Row {
	if s.Keys.Bindings == nil {
		s.Keys = tomlconf.NewKeyconfig()
	}

	bindings := s.Keys.Bindings
	var rows []Row
	for _, g := range tomlconf.ActionGroups {
		rows = append(rows, Heading(g.Title))
		for _, action := range g.Actions {
			hint := "[+]"
			if len(bindings[action]) == 0 {
				hint = "(unbound) [+]"
			}
			rows = append(rows, Command{
				Name: action,
				Hint: hint,
				Do:   func() { bindings[action] = append(bindings[action], tomlconf.Button(0)) },
			})
			for i := range bindings[action] {
				rows = append(rows, Binding{
					Name:     fmt.Sprintf("  #%d", i+1),
					Action:   action,
					Index:    i,
					Bindings: bindings,
				})
			}
		}
	}
	return rows
}

func patchRows(s *tomlconf.State) []Row {
	if len(s.Patches) == 0 {
		return []Row{Heading("No patch files in " + tomlconf.PatchesDir)}
	}

	var rows []Row
	for _, f := range s.Patches {
		rows = append(rows,
			Heading(fileTitle(f.Name, f.Path)),
			Heading("Author: "+f.Author),
			Checkbox{Name: "Enable", V: &f.Enabled},
		)
		for i := range f.Patches {
			p := &f.Patches[i]
			rows = append(rows, Heading(fmt.Sprintf("#%d at %s", i+1, p.Label())))
			rows = append(rows, memoryPatchRows(p)...)
		}
	}
	return rows
}

func memoryPatchRows(p *tomlconf.MemoryPatch) []Row {
	const prefix = "  "
	rows := []Row{
		HexField[int64]{Name: prefix + "address", V: &p.Address},
		Choice[tomlconf.DataType]{Name: prefix + "data type", V: &p.DataType, Options: tomlconf.DataTypes},
	}

	switch {
	case p.DataType.IsString():
		rows = append(rows, TextField{Name: prefix + "data", V: &p.Text})
	case p.DataType.IsArray():
		rows = append(rows, Length{Name: prefix + "length", V: &p.Ints})
		for j := range p.Ints {
			rows = append(rows, HexField[int64]{
				Name:   fmt.Sprintf("%sdata[%d]", prefix, j),
				V:      &p.Ints[j],
				Digits: p.DataType.HexDigits(),
			})
		}
	default:
		rows = append(rows, HexField[int64]{Name: prefix + "data", V: &p.Int, Digits: p.DataType.HexDigits()})
	}

	return rows
}

func translationRows(s *tomlconf.State) []Row {
	if len(s.Translations) == 0 {
		return []Row{Heading("No translation files in " + tomlconf.TranslationsDir)}
	}

	var rows []Row
	for _, f := range s.Translations {
		rows = append(rows,
			Heading(fileTitle(f.Language, f.Path)),
			Heading("Author: "+f.Author),
			Checkbox{Name: "Enable", V: &f.Enabled},
		)
		for i := range f.Translations {
			t := &f.Translations[i]
			prefix := fmt.Sprintf("  #%d ", i+1)
			rows = append(rows,
				TextField{Name: prefix + "old", V: &t.Old},
				TextField{Name: prefix + "new", V: &t.New},
				Choice[tomlconf.SubGameState]{Name: prefix + "state", V: &t.State, Options: tomlconf.SubGameStates},
			)
		}
		rows = append(rows, Command{Name: "Add translation", Hint: "[+]", Do: f.Add})
	}
	return rows
}

func fileTitle(name, path string) string {
	if name != "" {
		return name
	}
	return filepath.Base(path)
}
