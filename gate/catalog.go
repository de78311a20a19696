package gate

import (
	"math"
	"math/cmplx"
)

var (
	matI = Eye(2)
	matX = FromRows(
		[]complex128{0, 1},
		[]complex128{1, 0},
	)
	matY = FromRows(
		[]complex128{0, -1i},
		[]complex128{1i, 0},
	)
	matZ = FromRows(
		[]complex128{1, 0},
		[]complex128{0, -1},
	)
	matH = FromRows(
		[]complex128{1, 1},
		[]complex128{1, -1},
	).Scale(complex(1/math.Sqrt2, 0))
	matS = FromRows(
		[]complex128{1, 0},
		[]complex128{0, 1i},
	)
	matT = FromRows(
		[]complex128{1, 0},
		[]complex128{0, cmplx.Rect(1, math.Pi/4)},
	)
)

// Unitary returns the 2×2 matrix of a single-qubit kind, or false for
// multi-qubit kinds.
func Unitary(k Kind) (Matrix, bool) {
	switch k {
	case Identity:
		return matI.Clone(), true
	case PauliX:
		return matX.Clone(), true
	case PauliY:
		return matY.Clone(), true
	case PauliZ:
		return matZ.Clone(), true
	case Hadamard:
		return matH.Clone(), true
	case PhaseS:
		return matS.Clone(), true
	case PhaseT:
		return matT.Clone(), true
	}
	return Matrix{}, false
}

// MatrixOf returns the unitary of g over its span: 2×2 for single-qubit gates
// and 2^Span()×2^Span() for controlled and swap gates.
func MatrixOf(g Gate) (Matrix, error) {
	if err := g.Validate(); err != nil {
		return Matrix{}, err
	}
	switch g.kind {
	case ControlledX:
		return controlled(g.control, g.target, matX), nil
	case ControlledY:
		return controlled(g.control, g.target, matY), nil
	case ControlledZ:
		return controlled(g.control, g.target, matZ), nil
	case Swap:
		a, b := g.control, g.target
		return controlled(a, b, matX).Mul(controlled(b, a, matX)).Mul(controlled(a, b, matX)), nil
	}
	u, _ := Unitary(g.kind)
	return u, nil
}

// term is one outer-product contribution amp·e_row·e_colᵀ.
type term struct {
	row int
	amp complex128
}

// fromRule builds an n×n matrix as Σ_i Σ_{t ∈ rule(i)} t.amp·e_{t.row}·e_iᵀ.
// Each basis column i is filled directly instead of materializing the outer
// products.
func fromRule(n int, rule func(i int) []term) Matrix {
	m := Zeros(n, n)
	for i := range n {
		for _, t := range rule(i) {
			m.data[t.row*n+i] += t.amp
		}
	}
	return m
}

// controlled builds the single-target controlled-u gate over the contiguous
// block spanning control and target. Within the block qubit 0 is the
// most-significant bit, so a qubit at relative offset r has mask 2^span >> (r+1).
// Qubits strictly between control and target keep their bits in both branches.
func controlled(control, target int, u Matrix) Matrix {
	lo := min(control, target)
	span := max(control, target) - lo + 1
	n := 1 << span
	controlMask := n >> (control - lo + 1)
	targetMask := n >> (target - lo + 1)

	return fromRule(n, func(i int) []term {
		if i&controlMask == 0 {
			return []term{{row: i, amp: 1}}
		}
		in := 0
		if i&targetMask != 0 {
			in = 1
		}
		cleared := i &^ targetMask
		terms := make([]term, 0, 2)
		for out, row := range []int{cleared, cleared | targetMask} {
			if amp := u.At(out, in); amp != 0 {
				terms = append(terms, term{row: row, amp: amp})
			}
		}
		return terms
	})
}
