package germinal

import (
	"log/slog"
)

// TerminalView is the terminal widget as the dispatcher drives it
type TerminalView interface {
	// LineAt returns the visible text of a screen row, one rune per column
	LineAt(row int) []rune
	Copy()
	Paste()
	// Select selects columns [start, end) of a screen row
	Select(row, start, end int)
	// SetClipboards puts text on both the clipboard and the primary selection
	SetClipboards(text string)
}

// ContextMenu is the right-click menu
type ContextMenu interface {
	// ShowURLItems shows or hides the URL entries and their separator
	ShowURLItems(show bool)
	Popup(ev ButtonEvent)
}

// URLOpener opens a URL in a browser
type URLOpener interface {
	OpenURL(url string) error
}

// ScrollPrefs reports the natural-scrolling preference of a device kind
type ScrollPrefs interface {
	NaturalScroll(kind DeviceKind) bool
}

// DispatcherOptions configures a dispatcher
type DispatcherOptions struct {
	View    TerminalView
	Menu    ContextMenu
	Browser URLOpener
	Spawner Spawner
	Zoom    *FontZoom
	Prefs   ScrollPrefs // nil: natural scrolling off
	Keys    KeyClassifier
	Quit    func()
	Logger  *slog.Logger

	// OpenURLMods are the modifiers of a primary click that opens the URL
	// under the pointer (default: Shift)
	OpenURLMods Modifier

	WordCharExceptions string
}

// Dispatcher turns input events into terminal actions. Events it does not
// handle are left to the widget. It is used from the UI thread only.
type Dispatcher struct {
	view    TerminalView
	menu    ContextMenu
	browser URLOpener
	spawner Spawner
	zoom    *FontZoom
	prefs   ScrollPrefs
	keys    KeyClassifier
	quit    func()
	log     *slog.Logger

	OpenURLMods        Modifier
	WordCharExceptions string

	// URL under the pointer at the last button press
	url string
}

// NewDispatcher creates a dispatcher
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	if opts.OpenURLMods == 0 {
		opts.OpenURLMods = ModShift
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Spawner == nil {
		opts.Spawner = &ProcessSpawner{Logger: opts.Logger}
	}
	if opts.Browser == nil {
		opts.Browser = NewLauncher(opts.Spawner, opts.Logger)
	}
	if opts.Zoom == nil {
		opts.Zoom = NewFontZoom(nil)
	}
	return &Dispatcher{
		view:               opts.View,
		menu:               opts.Menu,
		browser:            opts.Browser,
		spawner:            opts.Spawner,
		zoom:               opts.Zoom,
		prefs:              opts.Prefs,
		keys:               opts.Keys,
		quit:               opts.Quit,
		log:                opts.Logger,
		OpenURLMods:        opts.OpenURLMods,
		WordCharExceptions: opts.WordCharExceptions,
	}
}

// SetZeroKeycodes updates the hardware keycodes that produce "0"
func (d *Dispatcher) SetZeroKeycodes(codes []uint16) {
	d.keys.ZeroKeycodes = codes
}

// URL returns the URL found at the last button press, if any
func (d *Dispatcher) URL() string {
	return d.url
}

// HandleKey runs the action bound to a key press. It returns false when the
// key should go to the terminal.
func (d *Dispatcher) HandleKey(ev KeyEvent) bool {
	action, cmd := d.keys.Classify(ev)
	return d.Perform(action, cmd)
}

// HandleButton resolves the URL under the pointer, then runs the action
// for the press. It returns false when the widget should handle the press.
func (d *Dispatcher) HandleButton(ev ButtonEvent) bool {
	d.url = ""
	if d.view != nil {
		d.url, _ = URLAt(string(d.view.LineAt(ev.Row)), ev.Col)
	}

	switch ClassifyButton(ev, d.url != "", d.OpenURLMods) {
	case ActionOpenURL:
		return d.OpenURL()
	case ActionContextMenu:
		if d.menu == nil {
			return false
		}
		d.menu.ShowURLItems(d.url != "")
		d.menu.Popup(ev)
		return true
	case ActionSelectWord:
		return d.selectWord(ev.Row, ev.Col)
	}
	return false
}

// HandleScroll zooms on control+scroll. It returns false for scrolls the
// widget should handle.
func (d *Dispatcher) HandleScroll(ev ScrollEvent) bool {
	natural := d.prefs != nil && d.prefs.NaturalScroll(ev.Device)
	return d.Perform(ClassifyScroll(ev, natural), "")
}

// Perform runs an action. cmd is the command line of a multiplexer action.
// It returns false for ActionNone.
func (d *Dispatcher) Perform(action Action, cmd string) bool {
	switch action {
	case ActionCopy, ActionPaste:
		if d.view == nil {
			return false
		}
		if action == ActionCopy {
			d.view.Copy()
		} else {
			d.view.Paste()
		}
	case ActionZoomIn:
		d.zoom.Zoom()
	case ActionZoomOut:
		d.zoom.Dezoom()
	case ActionZoomReset:
		d.zoom.Reset()
	case ActionQuit:
		if d.quit != nil {
			d.quit()
		}
	case ActionMultiplexer:
		RunCommandLine(d.spawner, d.log, cmd)
	case ActionOpenURL:
		return d.OpenURL()
	case ActionCopyURL:
		return d.CopyURL()
	default:
		return false
	}
	return true
}

// OpenURL opens the cached URL. It returns false when there is none.
func (d *Dispatcher) OpenURL() bool {
	if d.url == "" {
		return false
	}
	d.log.Debug("opening url", "url", d.url)
	if err := d.browser.OpenURL(d.url); err != nil {
		d.log.Debug("open url failed", "url", d.url, "err", err)
	}
	return true
}

// CopyURL copies the cached URL to the clipboard and primary selection.
// It returns false when there is none.
func (d *Dispatcher) CopyURL() bool {
	if d.url == "" || d.view == nil {
		return false
	}
	d.view.SetClipboards(d.url)
	return true
}

func (d *Dispatcher) selectWord(row, col int) bool {
	if d.view == nil {
		return false
	}
	start, end, ok := WordBounds(d.view.LineAt(row), col, d.WordCharExceptions)
	if !ok {
		return false
	}
	d.view.Select(row, start, end)
	return true
}
