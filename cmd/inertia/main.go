// Package main is the entry point for the inertia scroll viewer.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/inertia/internal/config"
	"github.com/dshills/inertia/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var configPath string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "inertia",
		Short: "inertia - inertial scrolling for the terminal",
		Long: `inertia scrolls text with momentum: drag with the left mouse button,
release with speed to flick, and overscroll past an edge to watch it snap back.

Scroll physics can be tuned from a TOML or YAML config file, INERTIA_*
environment variables or the flags below. Scenarios replay recorded
gestures deterministically and print every scroll notification.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(viewCmd(), replayCmd(), versionCmd())
	return root
}

// loadConfig loads the layered configuration with cmd's flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, []config.Option, error) {
	opts := []config.Option{config.WithFlags(cmd.Flags())}
	if configPath != "" {
		opts = append(opts, config.WithFile(configPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return config.Config{}, nil, errors.Wrap(err, "load config")
	}
	return cfg, opts, nil
}

// newLogger builds the logger described by cfg. Without a log file,
// entries go to fallback; a nil fallback discards them.
func newLogger(cfg config.Log, fallback io.Writer) (*logging.Logger, func(), error) {
	out := fallback
	closeFn := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open log file %s", cfg.File)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	if out == nil {
		return logging.Null(), closeFn, nil
	}

	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.Level)
	lc.Output = out
	return logging.New(lc), closeFn, nil
}
