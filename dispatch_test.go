package germinal

import (
	"errors"
	"reflect"
	"testing"
)

type fakeView struct {
	lines     []string
	copies    int
	pastes    int
	selected  [3]int
	clipboard string
}

func (v *fakeView) LineAt(row int) []rune {
	if row < 0 || row >= len(v.lines) {
		return nil
	}
	return []rune(v.lines[row])
}

func (v *fakeView) Copy()                      { v.copies++ }
func (v *fakeView) Paste()                     { v.pastes++ }
func (v *fakeView) Select(row, start, end int) { v.selected = [3]int{row, start, end} }
func (v *fakeView) SetClipboards(text string)  { v.clipboard = text }

type fakeMenu struct {
	shown   bool
	popups  int
	withURL bool
}

func (m *fakeMenu) ShowURLItems(show bool) { m.withURL = show }

func (m *fakeMenu) Popup(ButtonEvent) {
	m.shown = true
	m.popups++
}

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) OpenURL(url string) error {
	o.opened = append(o.opened, url)
	return o.err
}

type fakePrefs map[DeviceKind]bool

func (p fakePrefs) NaturalScroll(kind DeviceKind) bool { return p[kind] }

type dispatchFixture struct {
	d       *Dispatcher
	view    *fakeView
	menu    *fakeMenu
	opener  *fakeOpener
	spawner *fakeSpawner
	sink    *recordingSink
	quits   int
}

func newDispatchFixture(lines ...string) *dispatchFixture {
	f := &dispatchFixture{
		view:    &fakeView{lines: lines},
		menu:    &fakeMenu{},
		opener:  &fakeOpener{},
		spawner: &fakeSpawner{},
		sink:    &recordingSink{},
	}
	zoom := NewFontZoom(f.sink)
	zoom.UpdateFont("Monospace 10")
	f.d = NewDispatcher(DispatcherOptions{
		View:               f.view,
		Menu:               f.menu,
		Browser:            f.opener,
		Spawner:            f.spawner,
		Zoom:               zoom,
		Prefs:              fakePrefs{DeviceTouchpad: true},
		Quit:               func() { f.quits++ },
		Logger:             quietLogger(),
		WordCharExceptions: "-",
	})
	return f
}

func TestDispatchKeys(t *testing.T) {
	f := newDispatchFixture()

	if !f.d.HandleKey(KeyEvent{Keyval: KeyC, Mods: ModControl | ModShift}) || f.view.copies != 1 {
		t.Error("ctrl+shift+c did not copy")
	}
	if !f.d.HandleKey(KeyEvent{Keyval: KeyV, Mods: ModControl | ModShift}) || f.view.pastes != 1 {
		t.Error("ctrl+shift+v did not paste")
	}
	f.d.HandleKey(KeyEvent{Keyval: KeyPlus, Mods: ModControl})
	f.d.HandleKey(KeyEvent{Keyval: KeyPlus, Mods: ModControl})
	if f.sink.last().Size != 12 {
		t.Errorf("size after two zooms = %v", f.sink.last().Size)
	}
	f.d.HandleKey(KeyEvent{Keyval: Key0, Mods: ModControl})
	if f.sink.last().Size != 10 {
		t.Errorf("size after reset = %v", f.sink.last().Size)
	}
	if !f.d.HandleKey(KeyEvent{Keyval: KeyQ, Mods: ModControl | ModShift}) || f.quits != 1 {
		t.Error("ctrl+shift+q did not quit")
	}
	if !f.d.HandleKey(KeyEvent{Keyval: KeyO, Mods: ModControl | ModShift}) {
		t.Fatal("ctrl+shift+o not handled")
	}
	if want := [][]string{{"tmux", "split-window", "-v"}}; !reflect.DeepEqual(f.spawner.calls, want) {
		t.Errorf("spawned %v, want %v", f.spawner.calls, want)
	}
	if f.d.HandleKey(KeyEvent{Keyval: 'a'}) {
		t.Error("plain key should go to the terminal")
	}
}

func TestDispatchZeroKeycode(t *testing.T) {
	f := newDispatchFixture()
	f.d.HandleKey(KeyEvent{Keyval: KeyPlus, Mods: ModControl})

	ev := KeyEvent{Keyval: 0xe0, Keycode: 19, Mods: ModControl}
	if f.d.HandleKey(ev) {
		t.Fatal("unknown keycode handled before it was registered")
	}
	f.d.SetZeroKeycodes([]uint16{19})
	if !f.d.HandleKey(ev) || f.sink.last().Size != 10 {
		t.Errorf("layout zero did not reset zoom, size %v", f.sink.last().Size)
	}
}

func TestDispatchOpenURL(t *testing.T) {
	f := newDispatchFixture("see https://example.org/a for details", "nothing here")

	click := ButtonEvent{Button: ButtonPrimary, Row: 0, Col: 10, Mods: ModShift, Clicks: 1}
	if !f.d.HandleButton(click) {
		t.Fatal("shift+click on url not handled")
	}
	if want := []string{"https://example.org/a"}; !reflect.DeepEqual(f.opener.opened, want) {
		t.Errorf("opened %v, want %v", f.opener.opened, want)
	}

	click.Row = 1
	if f.d.HandleButton(click) {
		t.Error("shift+click without url should fall through")
	}
	if f.d.URL() != "" {
		t.Errorf("cached url = %q after click on plain text", f.d.URL())
	}

	click.Row, click.Mods = 0, 0
	if f.d.HandleButton(click) {
		t.Error("plain click on url should fall through")
	}
	if f.d.URL() != "https://example.org/a" {
		t.Errorf("cached url = %q", f.d.URL())
	}
}

func TestDispatchOpenURLMods(t *testing.T) {
	f := newDispatchFixture("https://example.org/")
	f.d.OpenURLMods = ModControl | ModShift

	if f.d.HandleButton(ButtonEvent{Button: ButtonPrimary, Col: 3, Mods: ModShift, Clicks: 1}) {
		t.Error("shift alone should not open with ctrl+shift configured")
	}
	if !f.d.HandleButton(ButtonEvent{Button: ButtonPrimary, Col: 3, Mods: ModShift | ModControl, Clicks: 1}) {
		t.Error("ctrl+shift click not handled")
	}
}

func TestDispatchContextMenu(t *testing.T) {
	f := newDispatchFixture("go to http://example.org now", "plain")

	if !f.d.HandleButton(ButtonEvent{Button: ButtonSecondary, Row: 0, Col: 8, Clicks: 1}) {
		t.Fatal("right click not handled")
	}
	if !f.menu.shown || !f.menu.withURL {
		t.Errorf("menu shown=%v withURL=%v", f.menu.shown, f.menu.withURL)
	}

	if !f.d.Perform(ActionCopyURL, "") || f.view.clipboard != "http://example.org" {
		t.Errorf("copy url put %q on the clipboard", f.view.clipboard)
	}
	if !f.d.Perform(ActionOpenURL, "") || len(f.opener.opened) != 1 {
		t.Errorf("open url from menu opened %v", f.opener.opened)
	}

	f.d.HandleButton(ButtonEvent{Button: ButtonSecondary, Row: 1, Col: 1, Clicks: 1})
	if f.menu.withURL || f.menu.popups != 2 {
		t.Errorf("menu on plain text: withURL=%v popups=%d", f.menu.withURL, f.menu.popups)
	}
	if f.d.CopyURL() || f.d.OpenURL() {
		t.Error("url actions without a url should do nothing")
	}
}

func TestDispatchSelectWord(t *testing.T) {
	f := newDispatchFixture("foo bar-baz qux")

	if !f.d.HandleButton(ButtonEvent{Button: ButtonPrimary, Col: 6, Clicks: 2}) {
		t.Fatal("double click not handled")
	}
	if want := [3]int{0, 4, 11}; f.view.selected != want {
		t.Errorf("selected %v, want %v", f.view.selected, want)
	}
	if f.d.HandleButton(ButtonEvent{Button: ButtonPrimary, Col: 3, Clicks: 2}) {
		t.Error("double click on a space should fall through")
	}
}

func TestDispatchScroll(t *testing.T) {
	f := newDispatchFixture()

	f.d.HandleScroll(ScrollEvent{Direction: ScrollUp, Device: DeviceMouse, Mods: ModControl})
	if f.sink.last().Size != 11 {
		t.Errorf("mouse scroll up: size %v, want 11", f.sink.last().Size)
	}
	f.d.HandleScroll(ScrollEvent{Direction: ScrollUp, Device: DeviceTouchpad, Mods: ModControl})
	if f.sink.last().Size != 10 {
		t.Errorf("natural touchpad scroll up: size %v, want 10", f.sink.last().Size)
	}
	if f.d.HandleScroll(ScrollEvent{Direction: ScrollUp, Device: DeviceMouse}) {
		t.Error("scroll without control should go to the terminal")
	}
}

func TestDispatchWithoutView(t *testing.T) {
	d := NewDispatcher(DispatcherOptions{Logger: quietLogger()})

	tests := []struct {
		name string
		ev   KeyEvent
	}{
		{"copy", KeyEvent{Keyval: KeyC, Mods: ModControl | ModShift}},
		{"paste", KeyEvent{Keyval: KeyV, Mods: ModControl | ModShift}},
	}
	for _, tt := range tests {
		if d.HandleKey(tt.ev) {
			t.Errorf("%s handled without a view", tt.name)
		}
	}
	if d.Perform(ActionCopyURL, "") {
		t.Error("copy url handled without a view")
	}
	if d.HandleButton(ButtonEvent{Button: ButtonPrimary, Clicks: 2}) {
		t.Error("double click handled without a view")
	}
}

func TestDispatchMultiplexerSpawnFailure(t *testing.T) {
	f := newDispatchFixture()
	f.spawner.err = errors.New("no tmux")

	if !f.d.HandleKey(KeyEvent{Keyval: KeyW, Mods: ModControl | ModShift}) {
		t.Fatal("ctrl+shift+w not handled when the spawn fails")
	}
	if want := [][]string{{"tmux", "kill-pane"}}; !reflect.DeepEqual(f.spawner.calls, want) {
		t.Errorf("spawned %v, want %v", f.spawner.calls, want)
	}
}

func TestDispatchOpenURLFailure(t *testing.T) {
	f := newDispatchFixture("go to http://example.com now")
	f.opener.err = ErrNoBrowser

	click := ButtonEvent{Button: ButtonPrimary, Row: 0, Col: 8, Mods: ModShift, Clicks: 1}
	if !f.d.HandleButton(click) {
		t.Fatal("shift+click on url not handled when the browser fails")
	}
	if len(f.opener.opened) != 1 || f.opener.opened[0] != "http://example.com" {
		t.Errorf("opened %v", f.opener.opened)
	}
}
