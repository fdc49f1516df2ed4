package settings_test

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ossyrian/mintylaunch/internal/section"
	"github.com/ossyrian/mintylaunch/internal/settings"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	video := settings.Video{
		DisplayFormat:      settings.Borderless,
		WindowWidth:        2560,
		WindowHeight:       1440,
		InternalResolution: false,
		InternalWidth:      -1,
		InternalHeight:     -1,
	}
	graphics := settings.Graphics{
		TAA:          true,
		MLAA:         false,
		Glare:        true,
		DepthOfField: false,
		FrameRate:    -1,
		Gamma:        200,
		Reflections:  false,
		Shadows:      false,
		Transparency: false,
		Disable3D:    true,
	}
	patches := settings.Patches{
		DisableMovies:    true,
		ShowCursor:       true,
		DisableSliderEmu: true,
		StageCount:       5,
		StatusIcons:      settings.StatusPartialOk,
		DisableLyrics:    true,
	}
	components := settings.Components{
		FastLoaderSpeed: 3,
		HoldTransfer:    true,
		Pausing:         true,
	}

	tests := []struct {
		name  string
		rec   section.Record
		fresh func() section.Record
	}{
		{name: "video", rec: &video, fresh: func() section.Record { v := settings.DefaultVideo(); return &v }},
		{name: "graphics", rec: &graphics, fresh: func() section.Record { g := settings.DefaultGraphics(); return &g }},
		{name: "patches", rec: &patches, fresh: func() section.Record { p := settings.DefaultPatches(); return &p }},
		{name: "components", rec: &components, fresh: func() section.Record { c := settings.DefaultComponents(); return &c }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fresh()
			got.ReadBody(section.NewMap(section.Pairs(tt.rec)...))
			if !reflect.DeepEqual(got, tt.rec) {
				t.Errorf("round trip = %+v, want %+v", got, tt.rec)
			}
		})
	}
}

func TestBooleanStylePerSection(t *testing.T) {
	g := settings.DefaultGraphics()
	for _, kv := range section.Pairs(&g) {
		if kv.Value == "true" || kv.Value == "false" {
			t.Errorf("Graphics wrote textual boolean %s=%s", kv.Key, kv.Value)
		}
	}

	c := settings.DefaultComponents()
	for _, kv := range section.Pairs(&c) {
		if kv.Key == "fast_loader_speed" {
			continue
		}
		if kv.Value != "true" && kv.Value != "false" {
			t.Errorf("Components wrote non-textual boolean %s=%s", kv.Key, kv.Value)
		}
	}
}

func TestWriteOrderMatchesDeclaration(t *testing.T) {
	v := settings.DefaultVideo()
	var keys []string
	for _, kv := range section.Pairs(&v) {
		keys = append(keys, kv.Key)
	}
	want := []string{"Display", "Width", "Height", "r.Enable", "r.Width", "r.Height"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Video keys = %v, want %v", keys, want)
	}
}

func TestComponentsDerivedKeys(t *testing.T) {
	tests := []struct {
		name            string
		disableSlider   bool
		disableTimer    bool
		wantSliderEmu   string
		wantSystemTimer string
	}{
		{name: "hardware slider", disableSlider: true, disableTimer: false, wantSliderEmu: "false", wantSystemTimer: "false"},
		{name: "emulated slider", disableSlider: false, disableTimer: true, wantSliderEmu: "true", wantSystemTimer: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := settings.DefaultComponents()
			p := settings.DefaultPatches()
			p.DisableSliderEmu = tt.disableSlider
			p.DisableSelectionTimer = tt.disableTimer

			m := section.NewMap()
			c.WriteAdditional(&p, m)

			if got, _ := m.Get("touch_slider_emulator"); got != tt.wantSliderEmu {
				t.Errorf("touch_slider_emulator = %q, want %q", got, tt.wantSliderEmu)
			}
			if got, _ := m.Get("sys_timer"); got != tt.wantSystemTimer {
				t.Errorf("sys_timer = %q, want %q", got, tt.wantSystemTimer)
			}
		})
	}
}

func TestDerivedKeysWithoutContext(t *testing.T) {
	c := settings.DefaultComponents()
	m := section.NewMap()
	c.WriteAdditional(nil, m)
	if got, _ := m.Get("touch_slider_emulator"); got != "true" {
		t.Errorf("touch_slider_emulator = %q, want default-derived true", got)
	}

	v := settings.DefaultVideo()
	v.WriteAdditional(nil, m)
	if got, _ := m.Get("RefreshRate"); got != "60" {
		t.Errorf("RefreshRate = %q, want 60", got)
	}
}

func TestLoadScenarios(t *testing.T) {
	tests := []struct {
		name       string
		config     string
		components string
		check      func(t *testing.T, s *settings.State)
	}{
		{
			name:   "frame rate present, components missing",
			config: "[Graphics]\nFPS.Limit=30\n",
			check: func(t *testing.T, s *settings.State) {
				if s.Graphics.FrameRate != 30 {
					t.Errorf("FrameRate = %d, want 30", s.Graphics.FrameRate)
				}
				if !reflect.DeepEqual(s.Components, settings.DefaultComponents()) {
					t.Errorf("Components = %+v, want defaults", s.Components)
				}
				if !s.Components.InputEmulator || s.Components.FastLoaderSpeed != 39 {
					t.Errorf("Components defaults not applied: %+v", s.Components)
				}
			},
		},
		{
			name:   "status icons out of range",
			config: "[Patches]\nStatus_Icons=7\nNo_Movies=1\n",
			check: func(t *testing.T, s *settings.State) {
				if s.Patches.StatusIcons != settings.StatusDefault {
					t.Errorf("StatusIcons = %v, want Default", s.Patches.StatusIcons)
				}
				if !s.Patches.DisableMovies {
					t.Error("DisableMovies = false, want true")
				}
			},
		},
		{
			name:   "garbage values fall back to defaults",
			config: "[Resolution]\nDisplay=fullscreen\nWidth=wide\nr.Enable=yes\n",
			check: func(t *testing.T, s *settings.State) {
				if s.Video.DisplayFormat != settings.Windowed {
					t.Errorf("DisplayFormat = %v, want Windowed", s.Video.DisplayFormat)
				}
				if s.Video.WindowWidth != -1 {
					t.Errorf("WindowWidth = %d, want -1", s.Video.WindowWidth)
				}
				// present but not "1"/"true"
				if s.Video.InternalResolution {
					t.Error("InternalResolution = true, want false")
				}
			},
		},
		{
			name:       "textual and numeric booleans both accepted",
			config:     "[Graphics]\nTAA=true\n",
			components: "[components]\npause=0\ndebug_component=1\n",
			check: func(t *testing.T, s *settings.State) {
				if !s.Graphics.TAA {
					t.Error("TAA = false, want true")
				}
				if s.Components.Pausing {
					t.Error("Pausing = true, want false")
				}
				if !s.Components.DebugUI {
					t.Error("DebugUI = false, want true")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.config != "" {
				writeFile(t, settings.ConfigPath(dir), tt.config)
			}
			if tt.components != "" {
				writeFile(t, settings.ComponentsPath(dir), tt.components)
			}

			s := settings.NewState(quietLogger())
			if err := s.Load(dir); err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			tt.check(t, s)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, settings.ConfigPath(dir), "[Extra]\nkeep=1\n")

	s := settings.NewState(quietLogger())
	s.Video.DisplayFormat = settings.Exclusive
	s.Graphics.FrameRate = 144
	s.Patches.DisableSliderEmu = true
	s.Components.FastLoaderSpeed = 3

	if err := s.Save(dir); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded := settings.NewState(quietLogger())
	if err := loaded.Load(dir); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if loaded.Video != s.Video || loaded.Graphics != s.Graphics ||
		loaded.Patches != s.Patches || loaded.Components != s.Components {
		t.Errorf("loaded state differs from saved state")
	}

	config, _ := os.ReadFile(settings.ConfigPath(dir))
	for _, want := range []string{"keep=1", "RefreshRate=144", "Display=2", "FPS.Limit=144", "Hardware_Slider=1"} {
		if !strings.Contains(string(config), want) {
			t.Errorf("config.ini missing %q:\n%s", want, config)
		}
	}

	components, _ := os.ReadFile(settings.ComponentsPath(dir))
	for _, want := range []string{"touch_slider_emulator=false", "fast_loader_speed=3", "sys_timer=true"} {
		if !strings.Contains(string(components), want) {
			t.Errorf("components.ini missing %q:\n%s", want, components)
		}
	}
}

func TestDumpDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	s := settings.NewState(quietLogger())

	var buf bytes.Buffer
	if err := s.Dump(dir, &buf); err != nil {
		t.Fatalf("Dump() failed: %v", err)
	}

	if _, err := os.Stat(settings.ConfigPath(dir)); err == nil {
		t.Error("Dump() created config.ini")
	}
	out := buf.String()
	for _, want := range []string{"[Resolution]", "[Graphics]", "[Patches]", "[components]", "input_emulator=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() output missing %q", want)
		}
	}
}
