package circuit

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qtermsim/gate"
)

const tol = 1e-10

func assertNormalized(t *testing.T, c *QuantumCircuit) {
	t.Helper()
	assert.InDelta(t, 1.0, c.Norm(), tol, "state is not normalized")
}

func assertStateEqual(t *testing.T, want, got []complex128) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if cmplx.Abs(want[i]-got[i]) > 1e-9 {
			t.Fatalf("amplitude %d: got %v, want %v\nfull state: %v", i, got[i], want[i], got)
		}
	}
}

func TestNewIsOneHot(t *testing.T) {
	c, err := New(3, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, c.NumQubits())
	assert.Equal(t, 8, c.NumStates())
	assertStateEqual(t, []complex128{0, 0, 0, 0, 0, 1, 0, 0}, c.State())
	assertNormalized(t, c)
}

func TestNewRejectsOutOfRangeIndex(t *testing.T) {
	_, err := New(2, 4)
	assert.ErrorIs(t, err, ErrPreconditionViolation)
	_, err = New(-1, 0)
	assert.ErrorIs(t, err, ErrPreconditionViolation)
}

func TestFromBasisSet(t *testing.T) {
	c, err := FromBasisSet([]int{0, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, c.NumQubits())
	r := complex(1/math.Sqrt2, 0)
	assertStateEqual(t, []complex128{r, 0, 0, r}, c.State())
	assertNormalized(t, c)
}

func TestFromBasisSetQubitCount(t *testing.T) {
	tests := []struct {
		indices []int
		qubits  int
	}{
		{[]int{0}, 1},
		{[]int{1}, 1},
		{[]int{2}, 2},
		{[]int{4, 1}, 3},
		{[]int{7}, 3},
		{[]int{8}, 4},
	}
	for _, tt := range tests {
		c, err := FromBasisSet(tt.indices)
		require.NoError(t, err)
		assert.Equal(t, tt.qubits, c.NumQubits(), "indices %v", tt.indices)
	}
}

func TestFromBasisSetErrors(t *testing.T) {
	_, err := FromBasisSet(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = FromBasisSet([]int{1, 2, 1})
	assert.ErrorIs(t, err, ErrDuplicateState)

	_, err = FromBasisSet([]int{-3})
	assert.ErrorIs(t, err, ErrPreconditionViolation)

	_, err = FromBasisSet([]int{0, math.MaxInt})
	assert.ErrorIs(t, err, ErrPreconditionViolation, "register too wide to allocate")
}

func TestFromAmplitudesNormalizes(t *testing.T) {
	c, err := FromAmplitudes([]complex128{3, 4i})
	require.NoError(t, err)
	assert.Equal(t, 1, c.NumQubits())
	assertStateEqual(t, []complex128{0.6, 0.8i}, c.State())
	assertNormalized(t, c)
}

func TestFromAmplitudesCopiesInput(t *testing.T) {
	in := []complex128{1, 0, 0, 0}
	c, err := FromAmplitudes(in)
	require.NoError(t, err)
	in[0] = 0
	in[1] = 1
	assertStateEqual(t, []complex128{1, 0, 0, 0}, c.State())
}

func TestFromAmplitudesErrors(t *testing.T) {
	_, err := FromAmplitudes(nil)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = FromAmplitudes(make([]complex128, 6))
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = FromAmplitudes(make([]complex128, 4))
	assert.ErrorIs(t, err, ErrZeroNorm)
}

func TestStateIsASnapshot(t *testing.T) {
	c, _ := New(1, 0)
	s := c.State()
	s[0] = 0
	assertStateEqual(t, []complex128{1, 0}, c.State())
}

func TestBits(t *testing.T) {
	c, _ := New(3, 0)
	assert.Equal(t, "101", c.Bits(5))
	assert.Equal(t, "001", c.Bits(1))
	assert.Equal(t, "", BasisLabel(0, 0))
}

func TestCloneIsIndependent(t *testing.T) {
	c, _ := New(2, 0)
	d := c.Clone()
	require.NoError(t, d.ApplyGate(gate.X(0)))
	assertStateEqual(t, []complex128{1, 0, 0, 0}, c.State())
	assertStateEqual(t, []complex128{0, 0, 1, 0}, d.State())
}
