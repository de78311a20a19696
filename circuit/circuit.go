// Package circuit holds the state vector of a quantum register and evolves it
// by dense gate operators and probabilistic measurement.
//
// A QuantumCircuit is not safe for concurrent mutation; independent circuits
// share nothing and may be used from different goroutines.
package circuit

import (
	"fmt"
	"log/slog"
	"math"
	"math/bits"
	"math/cmplx"
	"strings"
)

// QuantumCircuit is a register of NumQubits qubits described by 2^NumQubits
// complex amplitudes. Qubit 0 is the most-significant bit of a basis index.
type QuantumCircuit struct {
	amplitudes []complex128
	numQubits  int
	numStates  int

	sampler Sampler
	logger  *slog.Logger
}

// Option configures a QuantumCircuit at construction.
type Option func(*QuantumCircuit)

// WithSampler injects the randomness used by Measure.
func WithSampler(s Sampler) Option {
	return func(c *QuantumCircuit) {
		if s != nil {
			c.sampler = s
		}
	}
}

// WithLogger sets the logger used for debug traces of gates and measurements.
func WithLogger(l *slog.Logger) Option {
	return func(c *QuantumCircuit) {
		if l != nil {
			c.logger = l
		}
	}
}

func newCircuit(amplitudes []complex128, numQubits int, opts []Option) *QuantumCircuit {
	c := &QuantumCircuit{
		amplitudes: amplitudes,
		numQubits:  numQubits,
		numStates:  len(amplitudes),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sampler == nil {
		c.sampler = defaultSampler()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// New returns a numQubits register in the basis state initialIndex.
func New(numQubits, initialIndex int, opts ...Option) (*QuantumCircuit, error) {
	if numQubits < 0 || numQubits >= bits.UintSize-1 {
		return nil, fmt.Errorf("new circuit: %w: %d qubits", ErrPreconditionViolation, numQubits)
	}
	numStates := 1 << numQubits
	if initialIndex < 0 || initialIndex >= numStates {
		return nil, fmt.Errorf("new circuit: %w: basis index %d outside [0, %d)",
			ErrPreconditionViolation, initialIndex, numStates)
	}
	amps := make([]complex128, numStates)
	amps[initialIndex] = 1
	c := newCircuit(amps, numQubits, opts)
	c.normalize()
	return c, nil
}

// FromBasisSet returns an equal-weight superposition of the listed basis
// states. The register is just wide enough to hold the largest index.
func FromBasisSet(indices []int, opts ...Option) (*QuantumCircuit, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("from basis set: %w", ErrEmptyInput)
	}
	seen := make(map[int]struct{}, len(indices))
	maxIndex := 0
	for _, idx := range indices {
		if idx < 0 {
			return nil, fmt.Errorf("from basis set: %w: negative index %d", ErrPreconditionViolation, idx)
		}
		if _, dup := seen[idx]; dup {
			return nil, fmt.Errorf("from basis set: %w: %d", ErrDuplicateState, idx)
		}
		seen[idx] = struct{}{}
		maxIndex = max(maxIndex, idx)
	}

	// floor(log2(max))+1, with index 0 still needing one qubit
	numQubits := max(bits.Len(uint(maxIndex)), 1)
	if numQubits >= bits.UintSize-1 {
		return nil, fmt.Errorf("from basis set: %w: index %d needs %d qubits",
			ErrPreconditionViolation, maxIndex, numQubits)
	}
	amps := make([]complex128, 1<<numQubits)
	for _, idx := range indices {
		amps[idx] = 1
	}
	c := newCircuit(amps, numQubits, opts)
	c.normalize()
	return c, nil
}

// FromAmplitudes adopts a copy of vec, normalized. len(vec) must be a
// non-zero power of two.
func FromAmplitudes(vec []complex128, opts ...Option) (*QuantumCircuit, error) {
	n := len(vec)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("from amplitudes: %w: %d", ErrInvalidLength, n)
	}
	amps := make([]complex128, n)
	copy(amps, vec)
	if l2(amps) == 0 {
		return nil, fmt.Errorf("from amplitudes: %w", ErrZeroNorm)
	}
	c := newCircuit(amps, bits.TrailingZeros(uint(n)), opts)
	c.normalize()
	return c, nil
}

// NumQubits is the register width.
func (c *QuantumCircuit) NumQubits() int { return c.numQubits }

// NumStates is 2^NumQubits.
func (c *QuantumCircuit) NumStates() int { return c.numStates }

// State returns a copy of the amplitude vector.
func (c *QuantumCircuit) State() []complex128 {
	out := make([]complex128, len(c.amplitudes))
	copy(out, c.amplitudes)
	return out
}

// Probabilities returns |amplitude|² for every basis state.
func (c *QuantumCircuit) Probabilities() []float64 {
	probs := make([]float64, len(c.amplitudes))
	for i, a := range c.amplitudes {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

// Norm is the Euclidean norm of the state; 1 up to rounding.
func (c *QuantumCircuit) Norm() float64 { return l2(c.amplitudes) }

// Clone returns an independent copy that shares the sampler and logger.
func (c *QuantumCircuit) Clone() *QuantumCircuit {
	out := *c
	out.amplitudes = c.State()
	return &out
}

// Bits renders a basis index as a bitstring, qubit 0 first.
func (c *QuantumCircuit) Bits(index int) string {
	return BasisLabel(index, c.numQubits)
}

// BasisLabel renders index as a numQubits-wide bitstring, most-significant
// (qubit 0) first.
func BasisLabel(index, numQubits int) string {
	var sb strings.Builder
	for q := range numQubits {
		if index>>(numQubits-1-q)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (c *QuantumCircuit) normalize() {
	norm := l2(c.amplitudes)
	if norm == 0 || norm == 1 {
		return
	}
	inv := complex(1/norm, 0)
	for i := range c.amplitudes {
		c.amplitudes[i] *= inv
	}
}

func l2(v []complex128) float64 {
	var sum float64
	for _, a := range v {
		abs := cmplx.Abs(a)
		sum += abs * abs
	}
	return math.Sqrt(sum)
}
