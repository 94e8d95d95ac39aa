package germinal

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
)

// ErrNoBrowser is returned when no program to open URLs can be found
var ErrNoBrowser = errors.New("no browser found")

// ResolveBrowser picks the program used to open URLs: $BROWSER, then
// xdg-open, then firefox, the latter two only when found on PATH.
func ResolveBrowser(getenv func(string) string, lookPath func(string) (string, error)) (string, error) {
	if b := getenv("BROWSER"); b != "" {
		return b, nil
	}
	for _, name := range []string{"xdg-open", "firefox"} {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoBrowser
}

// Launcher opens URLs in the user's browser
type Launcher struct {
	Spawner  Spawner
	Logger   *slog.Logger
	Getenv   func(string) string
	LookPath func(string) (string, error)
	HomeDir  string
}

// NewLauncher creates a launcher using the process environment
func NewLauncher(sp Spawner, log *slog.Logger) *Launcher {
	if log == nil {
		log = slog.Default()
	}
	home, _ := os.UserHomeDir()
	return &Launcher{
		Spawner:  sp,
		Logger:   log,
		Getenv:   os.Getenv,
		LookPath: exec.LookPath,
		HomeDir:  home,
	}
}

// OpenURL starts the browser on url from the home directory with the
// inherited environment. Failures are logged as warnings and returned.
func (l *Launcher) OpenURL(url string) error {
	browser, err := ResolveBrowser(l.Getenv, l.LookPath)
	if err != nil {
		l.Logger.Warn("couldn't open url", "url", url, "err", err)
		return err
	}
	if err := l.Spawner.Start([]string{browser, url}, l.HomeDir, nil); err != nil {
		l.Logger.Warn("couldn't exec", "cmd", browser+" "+url, "err", err)
		return err
	}
	return nil
}
