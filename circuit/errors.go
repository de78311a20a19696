package circuit

import (
	"errors"

	"qtermsim/gate"
)

var (
	// ErrEmptyInput is returned by FromBasisSet when no indices are given.
	ErrEmptyInput = errors.New("empty input")
	// ErrDuplicateState is returned by FromBasisSet when an index repeats.
	ErrDuplicateState = errors.New("duplicate basis state")
	// ErrInvalidLength is returned by FromAmplitudes when the vector length is
	// zero or not a power of two.
	ErrInvalidLength = errors.New("invalid state vector length")
	// ErrZeroNorm is returned when an amplitude vector has no weight to normalize.
	ErrZeroNorm = errors.New("state vector has zero norm")
	// ErrPreconditionViolation is gate.ErrPreconditionViolation, for callers
	// that only import circuit.
	ErrPreconditionViolation = gate.ErrPreconditionViolation
)
