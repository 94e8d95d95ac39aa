// Command germinal is a minimalist terminal emulator: one maximized window
// running tmux, with clickable URLs and tmux bindings on control+shift keys.
//
// Usage:
//
//	germinal [flags] [-e] [command [args...]]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/phroun/germinal"
	germinalgtk "github.com/phroun/germinal/gtk"
	germinaltty "github.com/phroun/germinal/tty"
	"github.com/spf13/cobra"
)

var version = "dev"

func init() {
	// GTK must stay on the main thread
	runtime.LockOSThread()
}

type options struct {
	tty      bool
	config   string
	logLevel string
}

func newRootCmd(status *int) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "germinal [flags] [-e] [command [args...]]",
		Short:         "A minimalist terminal emulator",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			store := germinal.OpenStore(germinal.StoreOptions{
				UserPath: opts.config,
				Logger:   logger,
			})

			if opts.tty {
				code, err := runTTY(cmd.Context(), store, args, logger)
				*status = code
				return err
			}

			app, err := germinalgtk.NewApp(germinalgtk.AppOptions{
				Store:   store,
				Command: args,
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			// GTK sees only the program name; the rest is ours
			*status = app.Run(os.Args[:1])
			return nil
		},
	}

	// Everything after the first positional argument belongs to the command
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&opts.tty, "tty", false, "run inside the current text terminal instead of a window")
	cmd.Flags().StringVar(&opts.config, "config", "", "user settings file (default: $XDG_CONFIG_HOME/germinal/settings.toml)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	// xterm-style -e marker; the command is the remaining arguments either way
	cmd.Flags().BoolP("execute", "e", false, "run the command given as the remaining arguments")
	return cmd
}

func runTTY(ctx context.Context, store *germinal.Store, args []string, logger *slog.Logger) (int, error) {
	return germinaltty.Run(ctx, germinaltty.Options{
		Store:   store,
		Command: args,
		Logger:  logger,
	})
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func main() {
	status := 0
	cmd := newRootCmd(&status)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "germinal: %v\n", err)
		os.Exit(1)
	}
	os.Exit(status)
}
