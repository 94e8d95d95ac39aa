// Package germinalgtk is the GTK 3 frontend of Germinal: an application
// with one maximized window holding a purfecterm terminal widget that runs
// the startup command.
package germinalgtk

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/phroun/germinal"
)

// AppID is the application identifier
const AppID = "org.gnome.Germinal"

// AppOptions configures the application
type AppOptions struct {
	Store   *germinal.Store
	Command []string // overrides the startup-command setting when set
	Logger  *slog.Logger
}

// App is the Germinal GTK application
type App struct {
	app     *gtk.Application
	store   *germinal.Store
	command []string
	log     *slog.Logger

	window     *gtk.ApplicationWindow
	background *gtk.Image
	term       *Terminal
	menu       *Menu
	zoom       *germinal.FontZoom
	dispatcher *germinal.Dispatcher

	stopWatch context.CancelFunc
	exitCode  int
	closing   bool // window destroyed, the child is being killed
}

// NewApp creates the application. Nothing is shown until Run.
func NewApp(opts AppOptions) (*App, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("germinalgtk: settings store is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	gtkApp, err := gtk.ApplicationNew(AppID, glib.APPLICATION_NON_UNIQUE)
	if err != nil {
		return nil, fmt.Errorf("creating application: %w", err)
	}

	a := &App{
		app:     gtkApp,
		store:   opts.Store,
		command: opts.Command,
		log:     opts.Logger,
	}
	gtkApp.Connect("startup", a.onStartup)
	gtkApp.Connect("activate", a.onActivate)
	return a, nil
}

// Run runs the GTK main loop and returns the process exit status
func (a *App) Run(args []string) int {
	// GTK must stay on the main thread
	runtime.LockOSThread()

	status := a.app.Run(args)
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if status != 0 {
		return status
	}
	return a.exitCode
}

func (a *App) onStartup() {
	settings, err := gtk.SettingsGetDefault()
	if err != nil {
		a.log.Warn("no gtk settings", "err", err)
		return
	}
	settings.SetProperty("gtk-application-prefer-dark-theme", true)
}

func (a *App) onActivate() {
	if a.window != nil {
		a.window.Present()
		return
	}
	if err := a.buildWindow(); err != nil {
		a.fail("couldn't create the window", err)
		return
	}
	a.bindSettings()

	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatch = cancel
	if err := a.store.Watch(ctx, onMainLoop); err != nil {
		a.log.Warn("settings will not reload", "err", err)
	}

	a.window.ShowAll()
	a.updateBackgroundImage()
	a.window.Maximize()
	a.term.DrawingArea().GrabFocus()

	// Start the child once the widget has its real size
	glib.IdleAdd(func() bool {
		a.dispatcher.SetZeroKeycodes(zeroKeycodes())
		a.spawn()
		return false
	})
}

// onMainLoop schedules fn on the GTK main loop
func onMainLoop(fn func()) {
	glib.IdleAdd(func() bool {
		fn()
		return false
	})
}

func (a *App) fail(msg string, err error) {
	a.log.Error(msg, "err", err)
	a.exitCode = 1
	a.app.Quit()
}

func (a *App) buildWindow() error {
	win, err := gtk.ApplicationWindowNew(a.app)
	if err != nil {
		return err
	}
	win.SetTitle("Germinal")
	a.window = win

	scrollback := a.store.Int(germinal.ScrollbackKey)
	term, err := New(Options{
		ScrollbackSize: int(scrollback),
		Logger:         a.log,
	})
	if err != nil {
		return err
	}
	a.term = term
	term.SetOnExit(a.onChildExit)

	a.zoom = germinal.NewFontZoom(term)
	a.menu, err = NewMenu(func(action germinal.Action) {
		a.dispatcher.Perform(action, "")
	})
	if err != nil {
		return err
	}
	a.dispatcher = germinal.NewDispatcher(germinal.DispatcherOptions{
		View:    term,
		Menu:    a.menu,
		Spawner: &germinal.ProcessSpawner{Logger: a.log},
		Zoom:    a.zoom,
		Prefs:   NewScrollPrefs(),
		Quit:    a.app.Quit,
		Logger:  a.log,
	})

	// Background image above the text, letting input through
	overlay, err := gtk.OverlayNew()
	if err != nil {
		return err
	}
	overlay.Add(term.Widget())
	a.background, err = gtk.ImageNew()
	if err != nil {
		return err
	}
	a.background.SetOpacity(0.15)
	overlay.AddOverlay(a.background)
	overlay.SetOverlayPassThrough(a.background, true)
	win.Add(overlay)

	win.Connect("key-press-event", func(_ *gtk.ApplicationWindow, ev *gdk.Event) bool {
		return a.dispatcher.HandleKey(keyEvent(ev))
	})
	// "event" runs before the widget's own button and scroll handlers
	term.DrawingArea().Connect("event", func(_ *gtk.DrawingArea, ev *gdk.Event) bool {
		switch {
		case isButtonPress(ev):
			return a.onButtonPress(ev)
		case isScroll(ev):
			return a.dispatcher.HandleScroll(scrollEvent(ev))
		}
		return false
	})
	win.Connect("destroy", func() {
		a.closing = true
		term.Close()
	})
	return nil
}

func (a *App) onButtonPress(ev *gdk.Event) bool {
	btn := gdk.EventButtonNewFromEvent(ev)
	col, row := a.term.CellAt(btn.X(), btn.Y())
	clicks := 1
	if isDoubleClick(ev) {
		clicks = 2
	}

	a.menu.trigger = ev
	defer func() { a.menu.trigger = nil }()

	return a.dispatcher.HandleButton(germinal.ButtonEvent{
		Button: int(btn.Button()),
		Col:    col,
		Row:    row,
		Mods:   modifiers(gdk.ModifierType(btn.State())),
		Clicks: clicks,
		Time:   btn.Time(),
	})
}

func (a *App) spawn() {
	argv := germinal.StartupCommand(a.command, a.store.String(germinal.StartupCommandKey), os.Getenv)
	env := germinal.ChildEnv(os.Environ(), a.store.String(germinal.TermKey))

	a.log.Debug("spawning", "argv", argv)
	if err := a.term.Spawn(argv, env); err != nil {
		a.fail("couldn't start the terminal command", err)
	}
}

func (a *App) onChildExit(code int) {
	if code != 0 && !a.closing {
		a.log.Error("child exited", "code", code)
	}
	a.app.Quit()
}
