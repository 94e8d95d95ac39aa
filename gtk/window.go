package germinalgtk

import (
	"github.com/phroun/germinal"
)

// binding applies one or more settings keys to the running window
type binding struct {
	keys  []string
	apply func()
}

// bindSettings applies every setting once and again whenever it changes
func (a *App) bindSettings() {
	s := a.store
	bindings := []binding{
		{[]string{germinal.FontKey}, func() {
			a.zoom.UpdateFont(s.String(germinal.FontKey))
		}},
		{[]string{germinal.ForecolorKey, germinal.BackcolorKey, germinal.PaletteKey}, a.updateColors},
		{[]string{germinal.ScrollbackKey}, func() {
			a.term.SetScrollback(int(s.Int(germinal.ScrollbackKey)))
		}},
		{[]string{germinal.WordCharExceptionsKey}, func() {
			a.dispatcher.WordCharExceptions = s.String(germinal.WordCharExceptionsKey)
		}},
		{[]string{germinal.BoldKey}, func() {
			a.term.SetBold(s.Bool(germinal.BoldKey))
		}},
		{[]string{germinal.AudibleBellKey}, func() {
			a.term.SetAudibleBell(s.Bool(germinal.AudibleBellKey))
		}},
		{[]string{germinal.OpacityKey}, a.updateOpacity},
		{[]string{germinal.DecoratedKey}, a.updateDecorations},
		{[]string{germinal.BackgroundImageKey}, a.updateBackgroundImage},
	}

	for _, b := range bindings {
		b.apply()
		apply := b.apply
		for _, key := range b.keys {
			s.OnChanged(key, func(string) { apply() })
		}
	}
}

func (a *App) updateColors() {
	s := a.store
	palette, err := germinal.LoadPalette(s)
	if err != nil {
		a.log.Warn("using the default palette", "err", err)
	}
	scheme, err := germinal.ColorScheme(s.String(germinal.ForecolorKey), s.String(germinal.BackcolorKey), palette)
	if err != nil {
		a.log.Warn("bad terminal colors", "err", err)
	}
	a.term.SetColorScheme(scheme)
}

func (a *App) updateOpacity() {
	opacity := a.store.Float(germinal.OpacityKey)
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	a.window.SetOpacity(opacity)
}

func (a *App) updateDecorations() {
	decorated := a.store.Bool(germinal.DecoratedKey)
	a.window.SetDecorated(decorated)
	a.window.SetHideTitlebarWhenMaximized(!decorated)
}

// updateBackgroundImage shows the background-image file as a watermark, or
// hides it when the setting is empty.
func (a *App) updateBackgroundImage() {
	path := a.store.String(germinal.BackgroundImageKey)
	if path == "" {
		a.background.Clear()
		a.background.Hide()
		return
	}
	a.background.SetFromFile(path)
	a.background.Show()
}
