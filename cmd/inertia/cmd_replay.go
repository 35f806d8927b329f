package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/inertia/internal/scenario"
)

var (
	replayJSON       bool
	replayTimerLimit int
)

func replayCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "replay <scenario>",
		Short: "inertia replay [--json] <scenario.yaml|scenario.lua>",
		Long: `Replay a gesture scenario on a simulated clock and print the scroll
notifications it produces.

YAML scenarios list timed steps:

` + "```" + `
name: snap-back
viewport: {width: 300, height: 300}
content: {width: 300, height: 900}
steps:
  - {at: 0, op: dragStart, x: 0, y: 100}
  - {at: 10, op: dragMove, x: 0, y: 120}
  - {at: 10, op: dragEnd, x: 0, y: 120}
` + "```" + `

Lua scenarios call drag_start, drag_move, drag_end, flick, scroll_to, stop
and wait(ms) directly. Use --json for one JSON record per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg.Log, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			runner := scenario.NewRunner(
				scenario.WithLogger(log.WithComponent("replay")),
				scenario.WithTimerLimit(replayTimerLimit),
				scenario.WithBaseConfig(cfg.Scroll),
			)
			res, err := runner.RunFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if replayJSON {
				return scenario.WriteJSON(cmd.OutOrStdout(), res)
			}
			return scenario.WriteTable(cmd.OutOrStdout(), res)
		},
	}
	c.Flags().BoolVar(&replayJSON, "json", false, "print records as JSON lines")
	c.Flags().IntVar(&replayTimerLimit, "timer-limit", scenario.DefaultTimerLimit, "maximum timers fired while settling")
	return c
}
