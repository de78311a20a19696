package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKronPlacesLeftFactorInHighBits(t *testing.T) {
	// X⊗I flips the high bit: |00⟩→|10⟩.
	m := matX.Kron(Eye(2))
	got := m.MulVec([]complex128{1, 0, 0, 0})
	assert.Equal(t, []complex128{0, 0, 1, 0}, got)

	// I⊗X flips the low bit: |00⟩→|01⟩.
	m = Eye(2).Kron(matX)
	got = m.MulVec([]complex128{1, 0, 0, 0})
	assert.Equal(t, []complex128{0, 1, 0, 0}, got)
}

func TestKronDimensions(t *testing.T) {
	m := Eye(2).Kron(Eye(4)).Kron(matH)
	assert.Equal(t, 16, m.Rows())
	assert.Equal(t, 16, m.Cols())
	assert.True(t, m.IsUnitary(tol))
}

func TestMulMatchesHandComputation(t *testing.T) {
	a := FromRows([]complex128{1, 2}, []complex128{3, 4})
	b := FromRows([]complex128{0, 1i}, []complex128{1, 0})
	want := FromRows([]complex128{2, 1i}, []complex128{4, 3i})
	assert.True(t, a.Mul(b).Equal(want, 0))
}

func TestAddAndScale(t *testing.T) {
	a := Eye(2)
	sum := a.Add(matX).Scale(2)
	want := FromRows([]complex128{2, 2}, []complex128{2, 2})
	assert.True(t, sum.Equal(want, 0))
	assert.True(t, a.Equal(Eye(2), 0), "Add must not mutate its receiver")
}

func TestFormatComplex(t *testing.T) {
	assert.Equal(t, "0.707", FormatComplex(complex(0.70710678, 0), 3))
	assert.Equal(t, "-1.000i", FormatComplex(-1i, 3))
	assert.Equal(t, "0.500-0.500i", FormatComplex(complex(0.5, -0.5), 3))
	assert.Equal(t, "0.000", FormatComplex(complex(-1e-12, 1e-12), 3))
}

func TestEyeMatchesIdentityGate(t *testing.T) {
	u, ok := Unitary(Identity)
	assert.True(t, ok)
	assert.True(t, Eye(2).Equal(u, 0))
	assert.Equal(t, 1, Eye(1).Rows())
}
