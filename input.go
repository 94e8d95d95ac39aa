package germinal

// Modifier is a bit mask of held modifier keys
type Modifier uint

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Has reports whether every modifier in m is held
func (mods Modifier) Has(m Modifier) bool {
	return mods&m == m
}

// Keyval is a key symbol. Values are X11 keysyms, which GDK uses unchanged.
type Keyval uint

const (
	KeyTab        Keyval = 0xff09
	KeyISOLeftTab Keyval = 0xfe20
	KeyPlus       Keyval = 0x002b
	KeyMinus      Keyval = 0x002d
	Key0          Keyval = 0x0030
	KeyC          Keyval = 0x0043
	KeyE          Keyval = 0x0045
	KeyN          Keyval = 0x004e
	KeyO          Keyval = 0x004f
	KeyP          Keyval = 0x0050
	KeyQ          Keyval = 0x0051
	KeyT          Keyval = 0x0054
	KeyV          Keyval = 0x0056
	KeyW          Keyval = 0x0057
	KeyX          Keyval = 0x0058
	KeyKPAdd      Keyval = 0xffab
	KeyKPSubtract Keyval = 0xffad
	KeyKP0        Keyval = 0xffb0
)

// Mouse buttons
const (
	ButtonPrimary   = 1
	ButtonMiddle    = 2
	ButtonSecondary = 3
)

// ScrollDirection is the discrete direction of a scroll event
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
	ScrollLeft
	ScrollRight
	ScrollSmooth // use DeltaY
)

// DeviceKind selects which natural-scrolling preference applies
type DeviceKind int

const (
	DeviceMouse DeviceKind = iota
	DeviceTouchpad
)

// KeyEvent is a key press
type KeyEvent struct {
	Keyval  Keyval
	Keycode uint16 // hardware keycode
	Mods    Modifier
}

// ButtonEvent is a mouse button press over a terminal cell
type ButtonEvent struct {
	Button int
	Col    int
	Row    int
	Mods   Modifier
	Clicks int // 1 for a single press, 2 for a double click
	Time   uint32
}

// ScrollEvent is a wheel or touchpad scroll
type ScrollEvent struct {
	Direction ScrollDirection
	DeltaY    float64
	Device    DeviceKind
	Mods      Modifier
}

// Action is what an input event resolves to
type Action int

const (
	ActionNone Action = iota
	ActionCopy
	ActionPaste
	ActionZoomIn
	ActionZoomOut
	ActionZoomReset
	ActionQuit
	ActionMultiplexer
	ActionOpenURL
	ActionCopyURL
	ActionContextMenu
	ActionSelectWord
)

var actionNames = map[Action]string{
	ActionNone:        "none",
	ActionCopy:        "copy",
	ActionPaste:       "paste",
	ActionZoomIn:      "zoom",
	ActionZoomOut:     "dezoom",
	ActionZoomReset:   "reset-zoom",
	ActionQuit:        "quit",
	ActionMultiplexer: "multiplexer",
	ActionOpenURL:     "open-url",
	ActionCopyURL:     "copy-url",
	ActionContextMenu: "context-menu",
	ActionSelectWord:  "select-word",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Multiplexer commands, inspired by terminator's bindings
const (
	TmuxSplitVertical   = "tmux split-window -v"
	TmuxSplitHorizontal = "tmux split-window -h"
	TmuxNextWindow      = "tmux next-window"
	TmuxPreviousWindow  = "tmux previous-window"
	TmuxNewWindow       = "tmux new-window"
	TmuxNextPane        = "tmux select-pane -t :.+"
	TmuxPreviousPane    = "tmux select-pane -t :.-"
	TmuxKillPane        = "tmux kill-pane"
	TmuxZoomPane        = "tmux resize-pane -Z"
)

var multiplexerKeys = map[Keyval]string{
	KeyO:          TmuxSplitVertical,
	KeyE:          TmuxSplitHorizontal,
	KeyTab:        TmuxNextWindow,
	KeyISOLeftTab: TmuxPreviousWindow,
	KeyT:          TmuxNewWindow,
	KeyN:          TmuxNextPane,
	KeyP:          TmuxPreviousPane,
	KeyW:          TmuxKillPane,
	KeyX:          TmuxZoomPane,
}

// KeyClassifier maps key presses to actions.
// ZeroKeycodes holds the hardware keycodes that produce "0" on the current
// layout, so ctrl+0 resets the zoom on layouts where 0 needs a modifier.
type KeyClassifier struct {
	ZeroKeycodes []uint16
}

func (c *KeyClassifier) isZero(ev KeyEvent) bool {
	if ev.Keyval == Key0 || ev.Keyval == KeyKP0 {
		return true
	}
	for _, code := range c.ZeroKeycodes {
		if code == ev.Keycode {
			return true
		}
	}
	return false
}

// Classify returns the action for a key press and, for multiplexer
// actions, the command to run. Unbound keys yield ActionNone.
func (c *KeyClassifier) Classify(ev KeyEvent) (Action, string) {
	if !ev.Mods.Has(ModControl) {
		return ActionNone, ""
	}

	switch ev.Keyval {
	// Clipboard (upper case: shift is held)
	case KeyC:
		return ActionCopy, ""
	case KeyV:
		return ActionPaste, ""
	// Zoom
	case KeyPlus, KeyKPAdd:
		return ActionZoomIn, ""
	case KeyMinus, KeyKPSubtract:
		return ActionZoomOut, ""
	case KeyQ:
		return ActionQuit, ""
	}

	if cmd, ok := multiplexerKeys[ev.Keyval]; ok {
		return ActionMultiplexer, cmd
	}
	if c.isZero(ev) {
		return ActionZoomReset, ""
	}
	return ActionNone, ""
}

// ClassifyButton returns the action for a button press. hasURL tells
// whether a URL sits under the pointer; openMods are the modifiers that
// turn a primary click into an open-url request.
func ClassifyButton(ev ButtonEvent, hasURL bool, openMods Modifier) Action {
	switch ev.Button {
	case ButtonPrimary:
		if ev.Clicks == 2 {
			return ActionSelectWord
		}
		if openMods != 0 && ev.Mods.Has(openMods) && hasURL {
			return ActionOpenURL
		}
	case ButtonSecondary:
		if ev.Clicks == 1 {
			return ActionContextMenu
		}
	}
	return ActionNone
}

// ClassifyScroll returns the zoom action for a control+scroll, honouring
// the natural-scrolling preference for the event's device.
func ClassifyScroll(ev ScrollEvent, natural bool) Action {
	if !ev.Mods.Has(ModControl) {
		return ActionNone
	}

	var up bool
	switch ev.Direction {
	case ScrollUp:
		up = true
	case ScrollDown:
		up = false
	case ScrollSmooth:
		if ev.DeltaY == 0 {
			return ActionNone
		}
		up = ev.DeltaY < 0
	default:
		return ActionNone
	}

	if natural {
		up = !up
	}
	if up {
		return ActionZoomIn
	}
	return ActionZoomOut
}
