package tomlconf

// Button is a keyboard key or SDL controller input the engine can bind.
type Button uint8

var buttonNames = []string{
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"NUM0", "NUM1", "NUM2", "NUM3", "NUM4", "NUM5", "NUM6", "NUM7", "NUM8", "NUM9",
	"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P",
	"A", "S", "D", "F", "G", "H", "J", "K", "L",
	"Z", "X", "C", "V", "B", "N", "M",
	"UPARROW", "LEFTARROW", "DOWNARROW", "RIGHTARROW",
	"ENTER", "SPACE", "CONTROL", "SHIFT", "TAB",
	"SDL_A", "SDL_B", "SDL_X", "SDL_Y",
	"SDL_BACK", "SDL_GUIDE", "SDL_START",
	"SDL_LSHOULDER", "SDL_LTRIGGER", "SDL_RSHOULDER", "SDL_RTRIGGER",
	"SDL_DPAD_UP", "SDL_DPAD_LEFT", "SDL_DPAD_DOWN", "SDL_DPAD_RIGHT",
	"SDL_MISC", "SDL_PADDLE1", "SDL_PADDLE2", "SDL_PADDLE3", "SDL_PADDLE4", "SDL_TOUCHPAD",
	"SDL_LSTICK_UP", "SDL_LSTICK_LEFT", "SDL_LSTICK_RIGHT", "SDL_LSTICK_DOWN", "SDL_LSTICK_PRESS",
	"SDL_RSTICK_UP", "SDL_RSTICK_LEFT", "SDL_RSTICK_RIGHT", "SDL_RSTICK_DOWN", "SDL_RSTICK_PRESS",
}

var buttonsByName = func() map[string]Button {
	m := make(map[string]Button, len(buttonNames))
	for i, name := range buttonNames {
		m[name] = Button(i)
	}
	return m
}()

// ButtonCount is the number of bindable buttons.
var ButtonCount = len(buttonNames)

// ParseButton looks a button up by its engine name.
func ParseButton(name string) (Button, bool) {
	b, ok := buttonsByName[name]
	return b, ok
}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "UNKNOWN"
}

// Next returns the button after b, wrapping around.
func (b Button) Next() Button {
	return Button((int(b) + 1) % len(buttonNames))
}

// Prev returns the button before b, wrapping around.
func (b Button) Prev() Button {
	return Button((int(b) + len(buttonNames) - 1) % len(buttonNames))
}

// ActionGroup is a set of actions shown together.
type ActionGroup struct {
	Title   string
	Actions []string
}

// ActionGroups lists every keyconfig.toml action in file order.
var ActionGroups = []ActionGroup{
	{
		Title:   "Change Game State",
		Actions: []string{"TEST", "SERVICE", "ADVERTISE", "GAME", "DATA_TEST", "TEST_MODE", "APP_ERROR"},
	},
	{
		Title: "Gameplay",
		Actions: []string{
			"START", "TRIANGLE", "SQUARE", "CROSS", "CIRCLE",
			"LEFT_LEFT", "LEFT_RIGHT", "RIGHT_LEFT", "RIGHT_RIGHT",
		},
	},
	{
		Title: "Unlocked camera",
		Actions: []string{
			"CAMERA_UNLOCK_TOGGLE",
			"CAMERA_MOVE_FORWARD", "CAMERA_MOVE_BACKWARD",
			"CAMERA_MOVE_LEFT", "CAMERA_MOVE_RIGHT",
			"CAMERA_MOVE_UP", "CAMERA_MOVE_DOWN",
			"CAMERA_ROTATE_CW", "CAMERA_ROTATE_CCW",
			"CAMERA_ZOOM_IN", "CAMERA_ZOOM_OUT",
			"CAMERA_MOVE_FAST", "CAMERA_MOVE_SLOW",
		},
	},
}

// Actions returns every action name in file order.
func Actions() []string {
	var out []string
	for _, g := range ActionGroups {
		out = append(out, g.Actions...)
	}
	return out
}

// Keyconfig maps each action to the buttons bound to it.
type Keyconfig struct {
	Bindings map[string][]Button
}

// NewKeyconfig returns a Keyconfig with no bindings.
func NewKeyconfig() Keyconfig {
	return Keyconfig{Bindings: make(map[string][]Button)}
}

// Read replaces the bindings with those in doc. Unknown button names are
// dropped; actions missing from doc end up unbound.
func (k *Keyconfig) Read(doc *Document) {
	k.Bindings = make(map[string][]Button)
	for _, action := range Actions() {
		names, ok := doc.Strings(action)
		if !ok {
			continue
		}
		buttons := make([]Button, 0, len(names))
		for _, name := range names {
			if b, ok := ParseButton(name); ok {
				buttons = append(buttons, b)
			}
		}
		k.Bindings[action] = buttons
	}
}

// Write stores the bindings in doc, in action order. Actions that were never
// bound are left out so the engine keeps its own defaults for them.
func (k *Keyconfig) Write(doc *Document) {
	for _, action := range Actions() {
		buttons, ok := k.Bindings[action]
		if !ok {
			continue
		}
		names := make([]string, len(buttons))
		for i, b := range buttons {
			names[i] = b.String()
		}
		doc.SetStrings(action, names)
	}
}
