package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/ossyrian/mintylaunch/internal/settings"
	"github.com/ossyrian/mintylaunch/internal/tomlconf"
)

type keyPress string

func (k keyPress) String() string { return string(k) }

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = m.handleKey(keyPress(k))
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func newINIModel() (*Model, *settings.State) {
	s := settings.NewState(nil)
	return New("test", INITabs(s)), s
}

func TestCheckboxToggle(t *testing.T) {
	m, s := newINIModel()

	before := s.Video.InternalResolution

	// Display type, window width, window height, internal resolution
	press(m, "down", "down", "down", "space")
	if s.Video.InternalResolution == before {
		t.Fatal("space should toggle the focused checkbox")
	}
	press(m, "enter")
	if s.Video.InternalResolution != before {
		t.Fatal("enter should toggle the checkbox back")
	}
}

func TestIntFieldEdit(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		start int32
		want  int32
	}{
		{name: "typed value", keys: []string{"backspace", "backspace", "backspace", "backspace", "1", "9", "2", "0", "enter"}, start: 1280, want: 1920},
		{name: "cleared is zero", keys: []string{"backspace", "backspace", "backspace", "backspace", "enter"}, start: 1280, want: 0},
		{name: "garbage keeps value", keys: []string{"a", "b", "enter"}, start: 1280, want: 1280},
		{name: "esc cancels", keys: []string{"backspace", "7", "esc"}, start: 1280, want: 1280},
		{name: "negative", keys: []string{"backspace", "backspace", "backspace", "backspace", "-", "1", "enter"}, start: 1280, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, s := newINIModel()
			s.Video.WindowWidth = tt.start

			press(m, "down", "enter")
			if !m.editing {
				t.Fatal("enter on an int field should start editing")
			}
			press(m, tt.keys...)

			if m.editing {
				t.Error("still editing after confirm or cancel")
			}
			if s.Video.WindowWidth != tt.want {
				t.Errorf("WindowWidth = %d, want %d", s.Video.WindowWidth, tt.want)
			}
		})
	}
}

func TestEditingSwallowsShortcuts(t *testing.T) {
	m, _ := newINIModel()
	press(m, "down", "enter")

	if cmd := press(m, "q"); cmd != nil {
		t.Error("q while editing should not quit")
	}
	if cmd := press(m, "l"); cmd != nil {
		t.Error("l while editing should not launch")
	}
	if !strings.HasSuffix(m.buffer, "ql") {
		t.Errorf("buffer = %q, want typed keys appended", m.buffer)
	}
	if !isQuit(press(m, "ctrl+c")) {
		t.Error("ctrl+c should always quit")
	}
}

func TestChoiceCycle(t *testing.T) {
	m, s := newINIModel()

	press(m, "right")
	if s.Video.DisplayFormat != settings.Popup {
		t.Errorf("right: got %v, want Popup", s.Video.DisplayFormat)
	}
	press(m, "left", "left")
	if s.Video.DisplayFormat != settings.Borderless {
		t.Errorf("left wraps: got %v, want Borderless", s.Video.DisplayFormat)
	}
	press(m, "enter")
	if s.Video.DisplayFormat != settings.Windowed {
		t.Errorf("enter: got %v, want Windowed", s.Video.DisplayFormat)
	}
}

func TestSliderClamps(t *testing.T) {
	var v int32 = 195
	s := Slider[int32]{Name: "Gamma", V: &v, Min: 0, Max: 200, Step: 5}

	s.Adjust(1)
	s.Adjust(1)
	if v != 200 {
		t.Errorf("v = %d, want clamped to 200", v)
	}

	s.Commit("-50")
	if v != 0 {
		t.Errorf("typed -50 = %d, want clamped to 0", v)
	}

	s.Commit("oops")
	if v != 0 {
		t.Errorf("garbage changed value to %d", v)
	}

	if got := s.Value(); !strings.HasSuffix(got, " 0") || !strings.HasPrefix(got, "[-") {
		t.Errorf("Value() = %q", got)
	}
}

func TestTabsWrap(t *testing.T) {
	m, _ := newINIModel()

	press(m, "shift+tab")
	if m.tab != 2 {
		t.Errorf("shift+tab from first = %d, want 2", m.tab)
	}
	press(m, "tab")
	if m.tab != 0 {
		t.Errorf("tab from last = %d, want 0", m.tab)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d after tab switch, want 0", m.cursor)
	}
}

func TestQuitAndLaunch(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		wantLaunch bool
	}{
		{name: "quit", key: "q", wantLaunch: false},
		{name: "ctrl+c", key: "ctrl+c", wantLaunch: false},
		{name: "launch", key: "l", wantLaunch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newINIModel()
			if !isQuit(press(m, tt.key)) {
				t.Fatalf("%s should end the program", tt.key)
			}
			if m.Launch() != tt.wantLaunch {
				t.Errorf("Launch() = %v, want %v", m.Launch(), tt.wantLaunch)
			}
		})
	}
}

func TestKeyconfigBindings(t *testing.T) {
	s := tomlconf.NewState(nil)
	m := New("test", TOMLTabs(s))

	press(m, "tab")
	if _, ok := m.focused().(Command); !ok {
		t.Fatalf("focused %T, want the first action", m.focused())
	}
	if m.focused().Label() != "TEST" {
		t.Errorf("focused %s, want TEST", m.focused().Label())
	}

	press(m, "up")
	if m.focused().Label() != "TEST" {
		t.Errorf("up from the first action moved to %s", m.focused().Label())
	}

	// three bindings, then set the second one to F3
	press(m, "enter", "enter", "enter", "down", "down", "right", "right")
	if got := buttonNames(s.Keys.Bindings["TEST"]); got != "F1 F3 F1" {
		t.Fatalf("TEST = %s, want F1 F3 F1", got)
	}

	press(m, "x")
	if got := buttonNames(s.Keys.Bindings["TEST"]); got != "F1 F1" {
		t.Errorf("remove second = %s, want F1 F1", got)
	}
	if got := m.focused().Value(); got != "< F1 >" {
		t.Errorf("after remove focused %s, want the next binding", got)
	}

	press(m, "up", "right")
	if got := buttonNames(s.Keys.Bindings["TEST"]); got != "F2 F1" {
		t.Errorf("first binding = %s, want F2 F1", got)
	}
}

func TestKeyconfigSkipsHeadings(t *testing.T) {
	s := tomlconf.NewState(nil)
	m := New("test", TOMLTabs(s))
	press(m, "tab")

	for range len(tomlconf.ActionGroups[0].Actions) {
		press(m, "down")
	}
	if m.focused().Label() != "START" {
		t.Errorf("down past a group focused %s, want START", m.focused().Label())
	}
}

func buttonNames(buttons []tomlconf.Button) string {
	names := make([]string, len(buttons))
	for i, b := range buttons {
		names[i] = b.String()
	}
	return strings.Join(names, " ")
}

func TestAddTranslation(t *testing.T) {
	s := tomlconf.NewState(nil)
	s.HaveTranslation = true
	s.Translations = []*tomlconf.TranslationFile{{Path: "translations/en.toml", Language: "English"}}
	m := New("test", TOMLTabs(s))
	press(m, "tab", "tab", "tab")

	press(m, "down")
	if m.focused().Label() != "Add translation" {
		t.Fatalf("focused %s, want Add translation", m.focused().Label())
	}

	press(m, "enter")
	f := s.Translations[0]
	if len(f.Translations) != 1 || f.Translations[0].State != tomlconf.SubMax {
		t.Fatalf("translations = %+v, want one for every state", f.Translations)
	}

	if got := m.focused().Label(); !strings.HasSuffix(got, "old") {
		t.Fatalf("focused %q, want the new entry", got)
	}
	press(m, "enter", "h", "i", "enter")
	if f.Translations[0].Old != "hi" {
		t.Errorf("old = %q, want hi", f.Translations[0].Old)
	}
}

func TestTranslationTabNeedsMarker(t *testing.T) {
	s := tomlconf.NewState(nil)
	if n := len(TOMLTabs(s)); n != 3 {
		t.Errorf("got %d tabs without lang.dll, want 3", n)
	}
	s.HaveTranslation = true
	if n := len(TOMLTabs(s)); n != 4 {
		t.Errorf("got %d tabs with lang.dll, want 4", n)
	}
}

func TestPatchRowsFollowDataType(t *testing.T) {
	s := tomlconf.NewState(nil)
	s.Patches = []*tomlconf.PatchFile{{
		Path: "patches/p.toml",
		Name: "P",
		Patches: []tomlconf.MemoryPatch{
			{Address: 0x140000, DataType: tomlconf.U8Arr, Ints: []int64{0xAB}},
		},
	}}
	m := New("test", TOMLTabs(s))
	press(m, "tab", "tab")

	if m.focused().Label() != "Enable" {
		t.Fatalf("focused %s, want Enable", m.focused().Label())
	}

	press(m, "down")
	if got := m.focused().Value(); got != "0x140000" {
		t.Errorf("address = %s", got)
	}

	// data type, length, data[0]
	press(m, "down", "down", "right")
	p := &s.Patches[0].Patches[0]
	if len(p.Ints) != 2 {
		t.Fatalf("length = %d, want 2", len(p.Ints))
	}

	press(m, "down")
	if got := m.focused().Value(); got != "0xAB" {
		t.Errorf("data[0] = %s, want 0xAB", got)
	}
	press(m, "enter", "backspace", "backspace", "backspace", "backspace", "0", "x", "1", "f", "enter")
	if p.Ints[0] != 0x1F {
		t.Errorf("data[0] = %#x, want 0x1f", p.Ints[0])
	}

	// back to data type, switch to u16 scalar
	press(m, "up", "up", "right")
	if p.DataType != tomlconf.I16 {
		t.Fatalf("data type = %v, want i16", p.DataType)
	}
	press(m, "down")
	if got := m.focused().Label(); !strings.HasSuffix(got, "data") {
		t.Errorf("after type change focused %q, want the scalar data row", got)
	}
	if got := m.focused().Value(); got != "0x0000" {
		t.Errorf("scalar data = %s, want 0x0000", got)
	}
}

func TestViewRendersTabs(t *testing.T) {
	m, _ := newINIModel()

	out := m.render()
	for _, want := range []string{"Video", "Patches", "UI Options", "Display type", "Gamma"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
