// Package gate describes the supported quantum gates and builds their unitary
// matrices over the smallest contiguous block of qubits each gate touches.
package gate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPreconditionViolation reports a gate or register index that breaks a
// construction-time precondition.
var ErrPreconditionViolation = errors.New("precondition violation")

// Kind identifies a gate variant.
type Kind int

const (
	Identity Kind = iota
	PauliX
	PauliY
	PauliZ
	Hadamard
	PhaseS
	PhaseT
	ControlledX
	ControlledY
	ControlledZ
	Swap
)

var kindNames = map[Kind]string{
	Identity:    "id",
	PauliX:      "x",
	PauliY:      "y",
	PauliZ:      "z",
	Hadamard:    "h",
	PhaseS:      "s",
	PhaseT:      "t",
	ControlledX: "cx",
	ControlledY: "cy",
	ControlledZ: "cz",
	Swap:        "swap",
}

// Kinds returns every catalog kind in display order.
func Kinds() []Kind {
	return []Kind{Hadamard, PauliX, PauliY, PauliZ, Identity, PhaseS, PhaseT,
		ControlledX, ControlledY, ControlledZ, Swap}
}

// String returns the lower-case QASM mnemonic.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Arity is the number of qubit indices the kind carries.
func (k Kind) Arity() int {
	switch k {
	case ControlledX, ControlledY, ControlledZ, Swap:
		return 2
	default:
		return 1
	}
}

// ParseKind maps a QASM-style gate name to its kind. Matching is case-insensitive.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "id", "i":
		return Identity, nil
	case "x":
		return PauliX, nil
	case "y":
		return PauliY, nil
	case "z":
		return PauliZ, nil
	case "h":
		return Hadamard, nil
	case "s":
		return PhaseS, nil
	case "t":
		return PhaseT, nil
	case "cx", "cnot":
		return ControlledX, nil
	case "cy":
		return ControlledY, nil
	case "cz":
		return ControlledZ, nil
	case "swap":
		return Swap, nil
	}
	return 0, fmt.Errorf("unknown gate %q", name)
}

// Gate is an immutable description of which gate acts where.
// For single-qubit kinds only Target is meaningful.
type Gate struct {
	kind    Kind
	control int
	target  int
}

// New builds a gate of the given kind and rejects malformed operands.
// Two-qubit kinds take (control, target).
func New(kind Kind, qubits ...int) (Gate, error) {
	if _, ok := kindNames[kind]; !ok {
		return Gate{}, fmt.Errorf("new gate: %w: unknown kind %d", ErrPreconditionViolation, int(kind))
	}
	if len(qubits) != kind.Arity() {
		return Gate{}, fmt.Errorf("new %s: %w: want %d qubit(s), got %d",
			kind, ErrPreconditionViolation, kind.Arity(), len(qubits))
	}
	g := Gate{kind: kind, control: -1, target: qubits[len(qubits)-1]}
	if kind.Arity() == 2 {
		g.control = qubits[0]
	}
	if err := g.Validate(); err != nil {
		return Gate{}, err
	}
	return g, nil
}

func single(kind Kind, q int) Gate { return Gate{kind: kind, control: -1, target: q} }

func pair(kind Kind, c, t int) Gate { return Gate{kind: kind, control: c, target: t} }

// I is the identity on qubit q.
func I(q int) Gate { return single(Identity, q) }

// X is a Pauli-X (bit flip) on qubit q.
func X(q int) Gate { return single(PauliX, q) }

// Y is a Pauli-Y on qubit q.
func Y(q int) Gate { return single(PauliY, q) }

// Z is a Pauli-Z (phase flip) on qubit q.
func Z(q int) Gate { return single(PauliZ, q) }

// H is a Hadamard on qubit q.
func H(q int) Gate { return single(Hadamard, q) }

// S is the S phase gate, diag(1, i) on qubit q.
func S(q int) Gate { return single(PhaseS, q) }

// T is the T phase gate, diag(1, e^{iπ/4}) on qubit q.
func T(q int) Gate { return single(PhaseT, q) }

// CX is a controlled Pauli-X (CNOT). Control and target need not be adjacent.
func CX(control, target int) Gate { return pair(ControlledX, control, target) }

// CY is a controlled Pauli-Y.
func CY(control, target int) Gate { return pair(ControlledY, control, target) }

// CZ is a controlled Pauli-Z.
func CZ(control, target int) Gate { return pair(ControlledZ, control, target) }

// SwapGate exchanges qubits a and b.
func SwapGate(a, b int) Gate { return pair(Swap, a, b) }

// Kind returns the gate variant.
func (g Gate) Kind() Kind { return g.kind }

// Target returns the target qubit (the only qubit for single-qubit kinds).
func (g Gate) Target() int { return g.target }

// Control returns the control qubit, or -1 for single-qubit kinds.
func (g Gate) Control() int { return g.control }

// Qubits returns the touched qubit indices, control first.
func (g Gate) Qubits() []int {
	if g.kind.Arity() == 2 {
		return []int{g.control, g.target}
	}
	return []int{g.target}
}

// Span is the number of contiguous qubits the gate's matrix acts on. A
// two-qubit gate covers every qubit between its operands.
func (g Gate) Span() int {
	if g.kind.Arity() == 1 {
		return 1
	}
	d := g.control - g.target
	if d < 0 {
		d = -d
	}
	return d + 1
}

// Position is the first qubit of the block the gate acts on.
func (g Gate) Position() int {
	if g.kind.Arity() == 1 {
		return g.target
	}
	return min(g.control, g.target)
}

// Validate checks the operand preconditions.
func (g Gate) Validate() error {
	if g.target < 0 {
		return fmt.Errorf("%s: %w: negative target %d", g, ErrPreconditionViolation, g.target)
	}
	if g.kind.Arity() == 2 {
		if g.control < 0 {
			return fmt.Errorf("%s: %w: negative control %d", g, ErrPreconditionViolation, g.control)
		}
		if g.control == g.target {
			return fmt.Errorf("%s: %w: control equals target", g, ErrPreconditionViolation)
		}
	}
	return nil
}

// String renders the gate as e.g. "h(0)" or "cx(0,2)".
func (g Gate) String() string {
	if g.kind.Arity() == 2 {
		return fmt.Sprintf("%s(%d,%d)", g.kind, g.control, g.target)
	}
	return fmt.Sprintf("%s(%d)", g.kind, g.target)
}
