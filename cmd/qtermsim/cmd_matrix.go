package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"qtermsim/circuit"
	"qtermsim/gate"
	"qtermsim/internal/tui"
)

func newMatrixCmd(a *app) *cobra.Command {
	var embed int

	cmd := &cobra.Command{
		Use:   "matrix <gate> <qubit> [qubit]",
		Short: "Print a gate's unitary, local or embedded in an n-qubit register",
		Long: `Prints the matrix of a single gate. Without --embed the matrix spans
only the block of qubits the gate touches; with --embed N it is the full
2^N x 2^N register operator.

Examples:
  qtermsim matrix h 0
  qtermsim matrix cx 0 2
  qtermsim matrix swap 1 0 --embed 3`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := gate.ParseKind(args[0])
			if err != nil {
				return err
			}
			qubits := make([]int, 0, len(args)-1)
			for _, s := range args[1:] {
				q, err := strconv.Atoi(s)
				if err != nil {
					return fmt.Errorf("qubit %q: %w", s, err)
				}
				qubits = append(qubits, q)
			}
			g, err := gate.New(kind, qubits...)
			if err != nil {
				return err
			}

			m, err := gate.MatrixOf(g)
			if err != nil {
				return err
			}
			width := g.Span()
			if cmd.Flags().Changed("embed") {
				if err := a.checkWidth(embed); err != nil {
					return err
				}
				if m, err = circuit.Operator(g, embed); err != nil {
					return err
				}
				width = embed
			}
			a.logger.Debug("matrix", slog.String("gate", g.String()), slog.Int("qubits", width))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s on %d qubit(s), %dx%d\n", g, width, m.Rows(), m.Cols())
			fmt.Fprintln(out, tui.MatrixTable(m, width, a.cfg.Precision, a.styled()))
			return nil
		},
	}
	cmd.Flags().IntVar(&embed, "embed", 0, "embed into a register of this many qubits")
	return cmd
}
