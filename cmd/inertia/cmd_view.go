package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/inertia/internal/app"
	"github.com/dshills/inertia/internal/renderer/backend"
)

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "inertia view [file]",
		Long: `Open a file (or generated sample text) in the full-screen viewer.

Drag with the left button to scroll, release while moving to flick.
The wheel, arrow keys, h/j/k/l, PageUp/PageDown, space/b and Home/End (g/G)
scroll too; s stops a flick; q, Esc or Ctrl-C quit.

The config file and the document are reloaded when they change on disk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgOpts, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// The screen owns stderr, so only a log file receives entries.
			log, closeLog, err := newLogger(cfg.Log, nil)
			if err != nil {
				return err
			}
			defer closeLog()

			opts := app.Options{
				Config:        cfg,
				ConfigPath:    configPath,
				ConfigOptions: cfgOpts,
				Logger:        log,
			}
			if len(args) == 1 {
				opts.File = args[0]
			}

			application, err := app.New(opts)
			if err != nil {
				return errors.Wrap(err, "failed to initialize")
			}

			term, err := backend.NewTerminal()
			if err != nil {
				return errors.Wrap(err, "failed to create terminal")
			}
			if err := application.SetBackend(term); err != nil {
				return errors.Wrap(err, "failed to set backend")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := application.Run(ctx); err != nil && !app.IsQuit(err) {
				return err
			}
			return nil
		},
	}
}
