// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/acolinisi/hypre/grid"
)

// app carries what every subcommand shares.
type app struct {
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "sstructctl",
		Short:         "Inspect and export semi-structured grids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every grid call")

	cmd.AddCommand(
		newInspectCmd(a),
		newGLVisCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
	)

	return cmd
}

// load reads and assembles the grid at path, recording its calls.
func (a *app) load(path string) (*Config, *grid.Grid, *grid.Recorder, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, nil, nil, err
	}
	rec := grid.NewRecorder(a.logger)
	g, err := cfg.build(grid.WithEngine(rec), grid.WithLogger(a.logger))
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, g, rec, nil
}
