package germinal

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrEmptyCommand is returned when there is nothing to run
var ErrEmptyCommand = errors.New("empty command")

// Spawner starts helper processes without waiting for them
type Spawner interface {
	Start(argv []string, dir string, env []string) error
}

// ProcessSpawner starts processes with os/exec and reaps them in the
// background. A nil env inherits the current environment.
type ProcessSpawner struct {
	Logger *slog.Logger
}

func (p *ProcessSpawner) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// Start runs argv asynchronously
func (p *ProcessSpawner) Start(argv []string, dir string, env []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", argv[0], err)
	}

	log := p.logger()
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debug("helper exited", "cmd", strings.Join(argv, " "), "err", err)
		}
	}()
	return nil
}

// RunCommandLine splits line on whitespace and starts it with sp. Failures
// are logged and returned.
func RunCommandLine(sp Spawner, log *slog.Logger, line string) error {
	if log == nil {
		log = slog.Default()
	}
	argv := strings.Fields(line)
	if err := sp.Start(argv, "", nil); err != nil {
		log.Warn("couldn't exec", "cmd", line, "err", err)
		return err
	}
	return nil
}
