package settings

// DisplayFormat is the engine's window mode, stored as its ordinal.
type DisplayFormat uint8

const (
	Windowed DisplayFormat = iota
	Popup
	Exclusive
	Borderless
)

// DisplayFormats lists every variant in ordinal order.
var DisplayFormats = []DisplayFormat{Windowed, Popup, Exclusive, Borderless}

func (d DisplayFormat) Valid() bool {
	return d <= Borderless
}

func (d DisplayFormat) String() string {
	switch d {
	case Windowed:
		return "Windowed"
	case Popup:
		return "Popup"
	case Exclusive:
		return "Exclusive Fullscreen"
	case Borderless:
		return "Borderless"
	default:
		return "Unknown"
	}
}

// StatusIcons selects how the card reader and network icons are drawn.
type StatusIcons uint8

const (
	StatusDefault StatusIcons = iota
	StatusHidden
	StatusError
	StatusOk
	StatusPartialOk
)

// AllStatusIcons lists every variant in ordinal order.
var AllStatusIcons = []StatusIcons{StatusDefault, StatusHidden, StatusError, StatusOk, StatusPartialOk}

func (s StatusIcons) Valid() bool {
	return s <= StatusPartialOk
}

func (s StatusIcons) String() string {
	switch s {
	case StatusDefault:
		return "Default"
	case StatusHidden:
		return "Hidden"
	case StatusError:
		return "Error"
	case StatusOk:
		return "Ok"
	case StatusPartialOk:
		return "Partial Ok"
	default:
		return "Unknown"
	}
}
