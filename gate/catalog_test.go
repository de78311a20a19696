package gate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-10

// permutation builds the matrix that sends basis column i to row perm(i).
func permutation(n int, perm func(int) int) Matrix {
	m := Zeros(n, n)
	for i := range n {
		m.Set(perm(i), i, 1)
	}
	return m
}

func TestSingleQubitMatricesAreUnitary(t *testing.T) {
	for _, k := range Kinds() {
		if k.Arity() != 1 {
			continue
		}
		m, err := MatrixOf(single(k, 3))
		require.NoError(t, err)
		assert.Equal(t, 2, m.Rows(), "%s rows", k)
		assert.True(t, m.IsUnitary(tol), "%s is not unitary:\n%s", k, m)
	}
}

func TestHadamardEntries(t *testing.T) {
	m, err := MatrixOf(H(0))
	require.NoError(t, err)
	r := 1 / math.Sqrt2
	want := FromRows(
		[]complex128{complex(r, 0), complex(r, 0)},
		[]complex128{complex(r, 0), complex(-r, 0)},
	)
	assert.True(t, m.Equal(want, tol), "got:\n%s", m)
}

func TestTGateSquaredIsS(t *testing.T) {
	tm, _ := MatrixOf(T(0))
	sm, _ := MatrixOf(S(0))
	assert.True(t, tm.Mul(tm).Equal(sm, tol))
}

func TestAdjacentCXIsTextbookCNOT(t *testing.T) {
	m, err := MatrixOf(CX(0, 1))
	require.NoError(t, err)
	want := FromRows(
		[]complex128{1, 0, 0, 0},
		[]complex128{0, 1, 0, 0},
		[]complex128{0, 0, 0, 1},
		[]complex128{0, 0, 1, 0},
	)
	assert.True(t, m.Equal(want, tol), "got:\n%s", m)

	// reversed roles: control is the low-order qubit
	m, err = MatrixOf(CX(1, 0))
	require.NoError(t, err)
	want = FromRows(
		[]complex128{1, 0, 0, 0},
		[]complex128{0, 0, 0, 1},
		[]complex128{0, 0, 1, 0},
		[]complex128{0, 1, 0, 0},
	)
	assert.True(t, m.Equal(want, tol), "got:\n%s", m)
}

func TestNonAdjacentCXLeavesMiddleQubitAlone(t *testing.T) {
	// CX(2,0) over span 3: bit0 (mask 1) controls, bit2 (mask 4) flips.
	m, err := MatrixOf(CX(2, 0))
	require.NoError(t, err)
	require.Equal(t, 8, m.Rows())
	want := permutation(8, func(i int) int {
		if i&1 != 0 {
			return i ^ 4
		}
		return i
	})
	assert.True(t, m.Equal(want, tol), "got:\n%s", m)
}

func TestControlledGatesOnlyDependOnDistance(t *testing.T) {
	a, _ := MatrixOf(CX(1, 4))
	b, _ := MatrixOf(CX(0, 3))
	assert.True(t, a.Equal(b, tol))
}

func TestControlledGatesAreUnitary(t *testing.T) {
	for _, g := range []Gate{CX(0, 3), CX(3, 0), CY(1, 2), CY(4, 1), CZ(0, 2), SwapGate(0, 3)} {
		m, err := MatrixOf(g)
		require.NoError(t, err)
		assert.Equal(t, 1<<g.Span(), m.Rows(), "%s dimension", g)
		assert.True(t, m.IsUnitary(tol), "%s is not unitary", g)
	}
}

func TestControlledZIsDiagonal(t *testing.T) {
	m, err := MatrixOf(CZ(0, 2))
	require.NoError(t, err)
	for i := range 8 {
		want := complex(1, 0)
		if i&4 != 0 && i&1 != 0 {
			want = -1
		}
		assert.Equal(t, want, m.At(i, i), "diag %d", i)
	}
}

func TestSwapExchangesBits(t *testing.T) {
	m, err := MatrixOf(SwapGate(0, 2))
	require.NoError(t, err)
	want := permutation(8, func(i int) int {
		hi, lo := (i>>2)&1, i&1
		return (i & 2) | lo<<2 | hi
	})
	assert.True(t, m.Equal(want, tol), "got:\n%s", m)

	rev, _ := MatrixOf(SwapGate(2, 0))
	assert.True(t, rev.Equal(m, tol), "swap should be symmetric")
}

func TestSpanAndPosition(t *testing.T) {
	tests := []struct {
		g        Gate
		span     int
		position int
	}{
		{H(3), 1, 3},
		{CX(0, 1), 2, 0},
		{CX(4, 1), 4, 1},
		{SwapGate(2, 5), 4, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.span, tt.g.Span(), "%s span", tt.g)
		assert.Equal(t, tt.position, tt.g.Position(), "%s position", tt.g)
	}
}

func TestNewRejectsPreconditionViolations(t *testing.T) {
	_, err := New(ControlledX, 2, 2)
	assert.True(t, errors.Is(err, ErrPreconditionViolation), "control == target: %v", err)

	_, err = New(Hadamard, -1)
	assert.ErrorIs(t, err, ErrPreconditionViolation)

	_, err = New(Swap, 1)
	assert.ErrorIs(t, err, ErrPreconditionViolation)

	g, err := New(ControlledZ, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Control())
	assert.Equal(t, 1, g.Target())
}

func TestMatrixOfRejectsInvalidGate(t *testing.T) {
	_, err := MatrixOf(CX(1, 1))
	assert.ErrorIs(t, err, ErrPreconditionViolation)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind("CNOT")
	require.NoError(t, err)
	assert.Equal(t, ControlledX, got)

	_, err = ParseKind("rx")
	assert.Error(t, err)
}
