// Package germinaltty runs Germinal inside an existing text terminal, using
// purfecterm's CLI renderer instead of a window. It is meant for consoles
// and ssh sessions where no display is available.
//
// Only the color, scrollback and startup-command settings apply here: the
// child always sees TERM=xterm-256color and bold and bell output is passed
// through unchanged.
package germinaltty

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/phroun/germinal"
	"github.com/phroun/purfecterm"
	"github.com/phroun/purfecterm/cli"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal
var ErrNotTerminal = errors.New("standard input and output must be a terminal")

// Options configures a TTY session
type Options struct {
	Store   *germinal.Store
	Command []string // overrides the startup-command setting when set
	Logger  *slog.Logger
}

// session is the part of the CLI terminal a run drives
type session interface {
	Start() error
	RunCommand(name string, args ...string) error
	SetOnExit(fn func(code int))
	SetColorScheme(scheme purfecterm.ColorScheme)
	Wait()
	Stop() error
}

// Run runs the startup command until it exits. The status is 0 once the
// command has run, whatever its exit code; a failing command is logged.
func Run(ctx context.Context, opts Options) (int, error) {
	if opts.Store == nil {
		return 1, fmt.Errorf("germinaltty: settings store is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return 1, ErrNotTerminal
	}

	s := opts.Store
	t, err := cli.New(cli.Options{
		ScrollbackSize: scrollbackSize(s.Int(germinal.ScrollbackKey)),
		Scheme:         scheme(s, opts.Logger),
		Title:          "Germinal",
		AutoSize:       true,
	})
	if err != nil {
		return 1, fmt.Errorf("creating terminal: %w", err)
	}
	return run(ctx, t, opts)
}

func run(ctx context.Context, t session, opts Options) (int, error) {
	s := opts.Store
	reloadColors := func(string) { t.SetColorScheme(scheme(s, opts.Logger)) }
	for _, key := range []string{germinal.ForecolorKey, germinal.BackcolorKey, germinal.PaletteKey} {
		s.OnChanged(key, reloadColors)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := s.Watch(ctx, func(fn func()) { fn() }); err != nil {
		opts.Logger.Warn("settings will not reload", "err", err)
	}

	exitCode := 0
	t.SetOnExit(func(code int) {
		exitCode = code
	})

	if err := t.Start(); err != nil {
		return 1, fmt.Errorf("starting terminal: %w", err)
	}
	// Stop may only run once
	var once sync.Once
	stop := func() { once.Do(func() { t.Stop() }) }
	defer stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case <-sigs:
			stop()
		case <-ctx.Done():
		}
	}()

	argv := germinal.StartupCommand(opts.Command, s.String(germinal.StartupCommandKey), os.Getenv)
	if err := t.RunCommand(argv[0], argv[1:]...); err != nil {
		stop()
		return 1, fmt.Errorf("couldn't exec %q: %w", argv[0], err)
	}

	t.Wait()
	stop()
	if exitCode != 0 {
		opts.Logger.Error("child exited", "code", exitCode)
	}
	return 0, nil
}

// scrollbackSize maps the scrollback-lines setting onto the CLI buffer,
// which always keeps at least one line of history.
func scrollbackSize(lines int64) int {
	switch {
	case lines < 0:
		return 1 << 20
	case lines == 0:
		return 1
	}
	return int(lines)
}

func scheme(s *germinal.Store, log *slog.Logger) purfecterm.ColorScheme {
	palette, err := germinal.LoadPalette(s)
	if err != nil {
		log.Warn("using the default palette", "err", err)
	}
	sc, err := germinal.ColorScheme(s.String(germinal.ForecolorKey), s.String(germinal.BackcolorKey), palette)
	if err != nil {
		log.Warn("bad terminal colors", "err", err)
	}
	return sc
}
