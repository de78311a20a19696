package circuit

import (
	"fmt"
	"log/slog"

	"qtermsim/gate"
)

// Operator embeds g into the full operator of a numQubits register:
// an identity for every qubit below g.Position(), then g's own matrix, then an
// identity for every qubit from g.Position()+g.Span() up to numQubits.
// Factor order matters: the leftmost factor drives qubit 0, the
// most-significant bit of a basis index.
func Operator(g gate.Gate, numQubits int) (gate.Matrix, error) {
	if err := checkFits(g, numQubits); err != nil {
		return gate.Matrix{}, err
	}
	local, err := gate.MatrixOf(g)
	if err != nil {
		return gate.Matrix{}, err
	}

	id, _ := gate.Unitary(gate.Identity)
	op := gate.Eye(1)
	for range g.Position() {
		op = op.Kron(id)
	}
	op = op.Kron(local)
	for range numQubits - (g.Position() + g.Span()) {
		op = op.Kron(id)
	}
	return op, nil
}

// ApplyGate left-multiplies the embedded operator of g onto the state and
// renormalizes. The state is untouched when g does not fit the register.
func (c *QuantumCircuit) ApplyGate(g gate.Gate) error {
	op, err := Operator(g, c.numQubits)
	if err != nil {
		return fmt.Errorf("apply %s: %w", g, err)
	}
	c.amplitudes = op.MulVec(c.amplitudes)
	c.normalize()
	c.logger.Debug("applied gate", slog.String("gate", g.String()), slog.Int("qubits", c.numQubits))
	return nil
}

// ApplyGates applies gates in order, stopping at the first failure.
func (c *QuantumCircuit) ApplyGates(gates ...gate.Gate) error {
	for _, g := range gates {
		if err := c.ApplyGate(g); err != nil {
			return err
		}
	}
	return nil
}

func checkFits(g gate.Gate, numQubits int) error {
	if err := g.Validate(); err != nil {
		return err
	}
	for _, q := range g.Qubits() {
		if q >= numQubits {
			return fmt.Errorf("%s: %w: qubit %d outside a %d-qubit register",
				g, ErrPreconditionViolation, q, numQubits)
		}
	}
	return nil
}
