package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"qtermsim/circuit"
	"qtermsim/internal/config"
)

// app is the state shared by every subcommand once the root has loaded its
// configuration.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string
	seed       int64
	maxQubits  int
	precision  int
	plain      bool

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:   "qtermsim",
		Short: "Dense state-vector quantum circuit simulator",
		Long: `qtermsim builds gate unitaries, embeds them into the full register
operator and evolves a state vector, with measurement and collapse.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "qtermsim.yaml", "path to YAML config (missing file uses defaults)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	pf.Int64Var(&a.seed, "seed", 0, "measurement seed (0 seeds from the clock)")
	pf.IntVar(&a.maxQubits, "max-qubits", 0, "largest register to build")
	pf.IntVar(&a.precision, "precision", 0, "decimals printed for amplitudes")
	pf.BoolVar(&a.plain, "plain", false, "disable styled output even on a terminal")

	root.AddCommand(newMatrixCmd(a), newRunCmd(a), newTUICmd(a))
	return root
}

// load merges defaults, the config file, the environment and explicit flags,
// in rising priority, and installs the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("max-qubits") {
		cfg.MaxQubits = a.maxQubits
	}
	if flags.Changed("precision") {
		cfg.Precision = a.precision
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	lvl, _ := cfg.Level()
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: lvl}))
	a.logger.Debug("configuration loaded",
		slog.String("path", a.configPath),
		slog.Int64("seed", cfg.Seed),
		slog.Int("max_qubits", cfg.MaxQubits),
	)
	return nil
}

// styled reports whether output goes to a terminal that can take colors.
func (a *app) styled() bool {
	if a.plain {
		return false
	}
	f, ok := a.out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// seedValue returns the configured seed, or a clock-derived one when unset.
func (a *app) seedValue() uint64 {
	if a.cfg.Seed != 0 {
		return uint64(a.cfg.Seed)
	}
	return uint64(time.Now().UnixNano())
}

// circuitOptions wires the sampler and logger into a new register.
func (a *app) circuitOptions() []circuit.Option {
	return []circuit.Option{
		circuit.WithSampler(circuit.NewSeededSampler(a.seedValue())),
		circuit.WithLogger(a.logger),
	}
}

func (a *app) checkWidth(n int) error {
	if n > a.cfg.MaxQubits {
		return fmt.Errorf("%d qubits exceeds max_qubits %d (raise it with --max-qubits)", n, a.cfg.MaxQubits)
	}
	return nil
}
