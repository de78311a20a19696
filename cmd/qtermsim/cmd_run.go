package main

import (
	"fmt"
	"log/slog"
	"math/bits"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"qtermsim/circuit"
	"qtermsim/internal/numfmt"
	"qtermsim/internal/tui"
	"qtermsim/qasm"
)

type runFlags struct {
	init       int
	basis      string
	amplitudes string
	shots      int
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run <file.qasm>",
		Short: "Execute an OpenQASM program and print the final state",
		Long: `Parses an OpenQASM 2.0 subset, evolves the initial state through every
operation and prints the resulting amplitudes. With --shots the program runs
repeatedly on fresh copies of the initial state and the measurement counts
are printed instead.

The initial state defaults to |0...0>. Use --init for another basis state,
--basis for an equal superposition of basis states, or --amplitudes for an
explicit vector (normalized for you).

Examples:
  qtermsim run bell.qasm
  qtermsim run bell.qasm --shots 1000 --seed 7
  qtermsim run ghz.qasm --basis 0b000,0b111
  qtermsim run teleport.qasm --amplitudes "1/sqrt(2), i/sqrt(2)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], f)
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.init, "init", 0, "initial basis index")
	fl.StringVar(&f.basis, "basis", "", "comma-separated basis indices for an equal superposition")
	fl.StringVar(&f.amplitudes, "amplitudes", "", "comma-separated amplitudes, e.g. \"1, -i, 0.5+0.5i\"")
	fl.IntVar(&f.shots, "shots", 0, "sample the program this many times and print counts")
	cmd.MarkFlagsMutuallyExclusive("init", "basis", "amplitudes")
	return cmd
}

func (a *app) run(cmd *cobra.Command, path string, f runFlags) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p, err := qasm.Parse(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := a.checkWidth(p.NumQubits); err != nil {
		return err
	}

	start, err := a.initialState(p.NumQubits, f)
	if err != nil {
		return err
	}
	if err := a.checkWidth(start.NumQubits()); err != nil {
		return err
	}
	a.logger.Info("running program",
		slog.String("file", path),
		slog.Int("qubits", start.NumQubits()),
		slog.Int("ops", len(p.Ops)),
		slog.Int("depth", p.Depth()),
	)

	out := cmd.OutOrStdout()
	styled := a.styled()
	if f.shots != 0 {
		counts, err := qasm.Sample(p, start, f.shots)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d shots on %d qubit(s)\n", f.shots, start.NumQubits())
		fmt.Fprintln(out, tui.CountsTable(counts, counts.Outcomes(), start.NumQubits(), f.shots, styled))
		return nil
	}

	res, err := qasm.Run(p, start)
	if err != nil {
		return err
	}
	for i, outcome := range res.Outcomes {
		fmt.Fprintf(out, "measurement %d: |%s⟩\n", i+1, start.Bits(outcome))
	}
	fmt.Fprintln(out, tui.StateTable(start, a.cfg.Precision, styled))
	return nil
}

// initialState builds the register from the run flags and widens it to at
// least n qubits, keeping basis indices as given.
func (a *app) initialState(n int, f runFlags) (*circuit.QuantumCircuit, error) {
	opts := a.circuitOptions()
	switch {
	case f.basis != "":
		indices, err := numfmt.ParseIndices(f.basis)
		if err != nil {
			return nil, fmt.Errorf("--basis: %w", err)
		}
		if len(indices) > 0 {
			if err := a.checkWidth(bits.Len(uint(max(slices.Max(indices), 0)))); err != nil {
				return nil, fmt.Errorf("--basis: %w", err)
			}
		}
		c, err := circuit.FromBasisSet(indices, opts...)
		if err != nil {
			return nil, fmt.Errorf("--basis: %w", err)
		}
		return widen(c, n, opts)
	case f.amplitudes != "":
		amps, err := numfmt.ParseAmplitudes(f.amplitudes)
		if err != nil {
			return nil, fmt.Errorf("--amplitudes: %w", err)
		}
		if err := a.checkWidth(bits.Len(uint(max(len(amps)-1, 0)))); err != nil {
			return nil, fmt.Errorf("--amplitudes: %w", err)
		}
		c, err := circuit.FromAmplitudes(amps, opts...)
		if err != nil {
			return nil, fmt.Errorf("--amplitudes: %w", err)
		}
		return widen(c, n, opts)
	default:
		return circuit.New(n, f.init, opts...)
	}
}

// widen pads c with leading |0⟩ qubits until it has n of them, so an index
// names the same basis state in both registers.
func widen(c *circuit.QuantumCircuit, n int, opts []circuit.Option) (*circuit.QuantumCircuit, error) {
	if c.NumQubits() >= n {
		return c, nil
	}
	amps := make([]complex128, 1<<n)
	copy(amps, c.State())
	return circuit.FromAmplitudes(amps, opts...)
}
