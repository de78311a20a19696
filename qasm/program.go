// Package qasm reads and writes a small OpenQASM 2.0 subset and drives a
// circuit.QuantumCircuit through the resulting program.
package qasm

import (
	"errors"
	"fmt"
	"slices"

	"qtermsim/gate"
)

var (
	// ErrUnsupported marks a statement outside the accepted subset.
	ErrUnsupported = errors.New("unsupported statement")
	// ErrNoRegister is returned when a gate appears before any qreg, or the
	// program never declares one.
	ErrNoRegister = errors.New("no quantum register declared")
)

// ParseError locates a rejected statement.
type ParseError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Op is one program statement: a gate, or a measurement of the whole register.
type Op struct {
	Gate    gate.Gate
	Measure bool
	Step    int // column in the scheduled grid, set by Schedule
}

// MeasureOp returns a whole-register measurement.
func MeasureOp() Op { return Op{Measure: true} }

// GateOp wraps a gate.
func GateOp(g gate.Gate) Op { return Op{Gate: g} }

func (o Op) String() string {
	if o.Measure {
		return "measure"
	}
	return o.Gate.String()
}

// Range is the half-open qubit interval [lo, hi) the op occupies in the grid.
// A measurement occupies every qubit.
func (o Op) Range(numQubits int) (lo, hi int) {
	if o.Measure {
		return 0, numQubits
	}
	return o.Gate.Position(), o.Gate.Position() + o.Gate.Span()
}

// Program is a parsed circuit over a single register of NumQubits qubits.
type Program struct {
	Register  string
	NumQubits int
	Ops       []Op
}

// NewProgram returns an empty program over a register named "q".
func NewProgram(numQubits int) *Program {
	return &Program{Register: "q", NumQubits: numQubits}
}

// Add appends a gate after checking it fits the register, then reschedules.
func (p *Program) Add(g gate.Gate) error {
	if err := p.check(g); err != nil {
		return err
	}
	p.Ops = append(p.Ops, GateOp(g))
	Schedule(p)
	return nil
}

// AddMeasure appends a whole-register measurement.
func (p *Program) AddMeasure() {
	p.Ops = append(p.Ops, MeasureOp())
	Schedule(p)
}

// RemoveLast drops the final op. It reports false on an empty program.
func (p *Program) RemoveLast() bool {
	if len(p.Ops) == 0 {
		return false
	}
	p.Ops = p.Ops[:len(p.Ops)-1]
	Schedule(p)
	return true
}

// Resize changes the register width. Gates touching a qubit that no longer
// exists are removed.
func (p *Program) Resize(numQubits int) {
	if numQubits < 1 {
		numQubits = 1
	}
	p.NumQubits = numQubits
	p.Ops = slices.DeleteFunc(p.Ops, func(o Op) bool {
		if o.Measure {
			return false
		}
		return slices.ContainsFunc(o.Gate.Qubits(), func(q int) bool { return q >= numQubits })
	})
	Schedule(p)
}

// HasMeasure reports whether any op measures the register.
func (p *Program) HasMeasure() bool {
	return slices.ContainsFunc(p.Ops, func(o Op) bool { return o.Measure })
}

// Depth is the number of scheduled steps.
func (p *Program) Depth() int {
	depth := 0
	for _, o := range p.Ops {
		depth = max(depth, o.Step+1)
	}
	return depth
}

func (p *Program) check(g gate.Gate) error {
	if err := g.Validate(); err != nil {
		return err
	}
	for _, q := range g.Qubits() {
		if q >= p.NumQubits {
			return fmt.Errorf("%s: %w: qubit %d outside %s[%d]",
				g, gate.ErrPreconditionViolation, q, p.Register, p.NumQubits)
		}
	}
	return nil
}
