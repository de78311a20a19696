package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"qtermsim/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	var (
		qubits int
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "tui [file.qasm]",
		Short: "Edit and step through a circuit interactively",
		Long: `Opens a full-screen editor with the circuit diagram, the QASM source and
the live state vector. The file is loaded when it exists and written on
ctrl+s. With --watch, edits made to the file by other programs are picked
up automatically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.tuiOptions()
			if len(args) == 1 {
				opts.File = args[0]
			}
			if cmd.Flags().Changed("qubits") {
				opts.Qubits = qubits
			}
			if cmd.Flags().Changed("watch") {
				opts.Watch = watch
			}
			if err := a.checkWidth(opts.Qubits); err != nil {
				return err
			}
			a.logger.Info("starting tui", slog.String("file", opts.File), slog.Bool("watch", opts.Watch))
			return tui.Run(opts)
		},
	}
	cmd.Flags().IntVar(&qubits, "qubits", 0, "register width for a new file")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the file when it changes on disk")
	return cmd
}

func (a *app) tuiOptions() tui.Options {
	return tui.Options{
		File:      a.cfg.TUI.File,
		Qubits:    a.cfg.TUI.Qubits,
		MaxQubits: a.cfg.MaxQubits,
		Seed:      a.seedValue(),
		Precision: a.cfg.Precision,
		Watch:     a.cfg.TUI.Watch,
		Logger:    a.logger,
	}
}
