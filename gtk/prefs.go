package germinalgtk

import (
	"github.com/gotk3/gotk3/glib"
	"github.com/phroun/germinal"
)

const (
	mouseSchema      = "org.gnome.desktop.peripherals.mouse"
	touchpadSchema   = "org.gnome.desktop.peripherals.touchpad"
	naturalScrollKey = "natural-scroll"
)

// ScrollPrefs reads the desktop natural-scrolling preferences. Schemas
// that are not installed read as disabled.
type ScrollPrefs struct {
	mouse    *glib.Settings
	touchpad *glib.Settings
}

func lookupSettings(id string) *glib.Settings {
	source := glib.SettingsSchemaSourceGetDefault()
	if source == nil || source.Lookup(id, true) == nil {
		return nil
	}
	return glib.SettingsNew(id)
}

// NewScrollPrefs looks up the mouse and touchpad schemas
func NewScrollPrefs() *ScrollPrefs {
	return &ScrollPrefs{
		mouse:    lookupSettings(mouseSchema),
		touchpad: lookupSettings(touchpadSchema),
	}
}

// NaturalScroll reports whether natural scrolling is on for kind
func (p *ScrollPrefs) NaturalScroll(kind germinal.DeviceKind) bool {
	s := p.mouse
	if kind == germinal.DeviceTouchpad {
		s = p.touchpad
	}
	return s != nil && s.GetBoolean(naturalScrollKey)
}
