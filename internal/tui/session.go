package tui

import (
	"fmt"
	"log/slog"

	"qtermsim/circuit"
	"qtermsim/qasm"
)

// Session steps a program through a register one op at a time. Stepping
// back replays from the start with the same seed, so earlier measurement
// outcomes are reproduced.
type Session struct {
	program  *qasm.Program
	seed     uint64
	logger   *slog.Logger
	pos      int // ops applied so far
	state    *circuit.QuantumCircuit
	outcomes []int
}

// NewSession starts at |0…0⟩ with nothing applied.
func NewSession(p *qasm.Program, seed uint64, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{program: p, seed: seed, logger: logger}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset returns to the initial register.
func (s *Session) Reset() error {
	c, err := circuit.New(s.program.NumQubits, 0,
		circuit.WithSampler(circuit.NewSeededSampler(s.seed)),
		circuit.WithLogger(s.logger),
	)
	if err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	s.state, s.pos, s.outcomes = c, 0, nil
	return nil
}

// SetProgram swaps the program and replays up to the current position, or
// as far as the new program goes.
func (s *Session) SetProgram(p *qasm.Program) error {
	target := min(s.pos, len(p.Ops))
	s.program = p
	return s.Seek(target)
}

// Forward applies the next op. It reports false at the end of the program.
func (s *Session) Forward() (bool, error) {
	if s.pos >= len(s.program.Ops) {
		return false, nil
	}
	op := s.program.Ops[s.pos]
	outcome, err := op.Apply(s.state)
	if err != nil {
		return false, fmt.Errorf("step %d: %w", s.pos, err)
	}
	if op.Measure {
		s.outcomes = append(s.outcomes, outcome)
	}
	s.pos++
	return true, nil
}

// Back undoes the last op by replaying everything before it.
func (s *Session) Back() (bool, error) {
	if s.pos == 0 {
		return false, nil
	}
	return true, s.Seek(s.pos - 1)
}

// Seek replays the first n ops from a fresh register.
func (s *Session) Seek(n int) error {
	if err := s.Reset(); err != nil {
		return err
	}
	for range min(n, len(s.program.Ops)) {
		if _, err := s.Forward(); err != nil {
			return err
		}
	}
	return nil
}

// Program returns the program being stepped.
func (s *Session) Program() *qasm.Program { return s.program }

// Position is the number of ops applied.
func (s *Session) Position() int { return s.pos }

// State is the live register. Callers must not mutate it.
func (s *Session) State() *circuit.QuantumCircuit { return s.state }

// Outcomes lists measurement results so far.
func (s *Session) Outcomes() []int { return s.outcomes }

// Next returns the op that Forward would apply.
func (s *Session) Next() (qasm.Op, bool) {
	if s.pos >= len(s.program.Ops) {
		return qasm.Op{}, false
	}
	return s.program.Ops[s.pos], true
}
