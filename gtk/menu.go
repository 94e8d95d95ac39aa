package germinalgtk

import (
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
	"github.com/phroun/germinal"
)

// Menu is the right-click menu of the terminal
type Menu struct {
	menu     *gtk.Menu
	urlItems []*gtk.Widget

	// event that opened the menu, needed to place it
	trigger *gdk.Event
}

type menuEntry struct {
	label  string
	action germinal.Action
	url    bool
}

var menuEntries = []menuEntry{
	{label: "Copy url", action: germinal.ActionCopyURL, url: true},
	{label: "Open url", action: germinal.ActionOpenURL, url: true},
	{url: true},
	{label: "Copy", action: germinal.ActionCopy},
	{label: "Paste", action: germinal.ActionPaste},
	{},
	{label: "Zoom", action: germinal.ActionZoomIn},
	{label: "Dezoom", action: germinal.ActionZoomOut},
	{label: "Reset zoom", action: germinal.ActionZoomReset},
	{},
	{label: "Quit", action: germinal.ActionQuit},
}

// NewMenu builds the menu. perform runs the action of an activated entry.
func NewMenu(perform func(germinal.Action)) (*Menu, error) {
	menu, err := gtk.MenuNew()
	if err != nil {
		return nil, err
	}
	m := &Menu{menu: menu}

	for _, entry := range menuEntries {
		var (
			item   gtk.IMenuItem
			widget *gtk.Widget
		)
		if entry.label == "" {
			sep, err := gtk.SeparatorMenuItemNew()
			if err != nil {
				return nil, err
			}
			item, widget = sep, &sep.Widget
		} else {
			mi, err := gtk.MenuItemNewWithLabel(entry.label)
			if err != nil {
				return nil, err
			}
			action := entry.action
			mi.Connect("activate", func() {
				perform(action)
			})
			item, widget = mi, &mi.Widget
		}
		menu.Append(item)
		if entry.url {
			m.urlItems = append(m.urlItems, widget)
		}
	}
	menu.ShowAll()
	return m, nil
}

// ShowURLItems shows or hides the url entries and their separator
func (m *Menu) ShowURLItems(show bool) {
	for _, w := range m.urlItems {
		if show {
			w.Show()
		} else {
			w.Hide()
		}
	}
}

// Popup shows the menu at the pointer
func (m *Menu) Popup(germinal.ButtonEvent) {
	if m.trigger != nil {
		m.menu.PopupAtPointer(m.trigger)
	}
}
