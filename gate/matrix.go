package gate

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Matrix is a dense row-major complex matrix.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// Zeros returns an r×c zero matrix.
func Zeros(r, c int) Matrix {
	return Matrix{rows: r, cols: c, data: make([]complex128, r*c)}
}

// Eye returns the n×n identity matrix.
func Eye(n int) Matrix {
	m := Zeros(n, n)
	for i := range n {
		m.data[i*n+i] = 1
	}
	return m
}

// FromRows builds a matrix from row slices. All rows must share one length.
func FromRows(rows ...[]complex128) Matrix {
	if len(rows) == 0 {
		return Matrix{}
	}
	m := Zeros(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			panic(fmt.Sprintf("gate.FromRows: row %d has %d columns, want %d", i, len(row), m.cols))
		}
		copy(m.data[i*m.cols:], row)
	}
	return m
}

func (m Matrix) Rows() int { return m.rows }
func (m Matrix) Cols() int { return m.cols }

// At returns the element at (i, j).
func (m Matrix) At(i, j int) complex128 { return m.data[i*m.cols+j] }

// Set stores v at (i, j).
func (m Matrix) Set(i, j int, v complex128) { m.data[i*m.cols+j] = v }

// Clone returns an independent copy.
func (m Matrix) Clone() Matrix {
	out := Matrix{rows: m.rows, cols: m.cols, data: make([]complex128, len(m.data))}
	copy(out.data, m.data)
	return out
}

// Add returns m + o.
func (m Matrix) Add(o Matrix) Matrix {
	m.mustSameShape("Add", o)
	out := m.Clone()
	for i, v := range o.data {
		out.data[i] += v
	}
	return out
}

// Scale returns s·m.
func (m Matrix) Scale(s complex128) Matrix {
	out := m.Clone()
	for i := range out.data {
		out.data[i] *= s
	}
	return out
}

// Mul returns the matrix product m·o.
func (m Matrix) Mul(o Matrix) Matrix {
	if m.cols != o.rows {
		panic(fmt.Sprintf("gate.Matrix.Mul: %dx%d by %dx%d", m.rows, m.cols, o.rows, o.cols))
	}
	out := Zeros(m.rows, o.cols)
	for i := range m.rows {
		for k := range m.cols {
			a := m.data[i*m.cols+k]
			if a == 0 {
				continue
			}
			row := o.data[k*o.cols : (k+1)*o.cols]
			dst := out.data[i*o.cols : (i+1)*o.cols]
			for j, b := range row {
				dst[j] += a * b
			}
		}
	}
	return out
}

// MulVec returns m·v for a column vector v.
func (m Matrix) MulVec(v []complex128) []complex128 {
	if m.cols != len(v) {
		panic(fmt.Sprintf("gate.Matrix.MulVec: %dx%d by vector of %d", m.rows, m.cols, len(v)))
	}
	out := make([]complex128, m.rows)
	for i := range m.rows {
		var sum complex128
		for j, a := range m.data[i*m.cols : (i+1)*m.cols] {
			sum += a * v[j]
		}
		out[i] = sum
	}
	return out
}

// Kron returns the Kronecker (tensor) product m⊗o. The factor on the left
// occupies the most-significant bits of the combined index.
func (m Matrix) Kron(o Matrix) Matrix {
	out := Zeros(m.rows*o.rows, m.cols*o.cols)
	for i := range m.rows {
		for j := range m.cols {
			a := m.data[i*m.cols+j]
			if a == 0 {
				continue
			}
			for k := range o.rows {
				for l := range o.cols {
					out.data[(i*o.rows+k)*out.cols+j*o.cols+l] = a * o.data[k*o.cols+l]
				}
			}
		}
	}
	return out
}

// ConjTranspose returns the Hermitian adjoint.
func (m Matrix) ConjTranspose() Matrix {
	out := Zeros(m.cols, m.rows)
	for i := range m.rows {
		for j := range m.cols {
			out.data[j*m.rows+i] = cmplx.Conj(m.data[i*m.cols+j])
		}
	}
	return out
}

// Equal reports whether both matrices have the same shape and every element
// differs by at most tol.
func (m Matrix) Equal(o Matrix, tol float64) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, v := range m.data {
		if cmplx.Abs(v-o.data[i]) > tol {
			return false
		}
	}
	return true
}

// IsUnitary reports whether m†m is the identity within tol.
func (m Matrix) IsUnitary(tol float64) bool {
	if m.rows != m.cols {
		return false
	}
	return m.ConjTranspose().Mul(m).Equal(Eye(m.rows), tol)
}

// String formats the matrix one row per line.
func (m Matrix) String() string {
	var sb strings.Builder
	for i := range m.rows {
		sb.WriteString("[")
		for j := range m.cols {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(FormatComplex(m.At(i, j), 3))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// FormatComplex renders z with the given number of decimals, dropping a zero
// imaginary or real part.
func FormatComplex(z complex128, prec int) string {
	re, im := roundTo(real(z), prec), roundTo(imag(z), prec)
	switch {
	case im == 0:
		return fmt.Sprintf("%.*f", prec, re)
	case re == 0:
		return fmt.Sprintf("%.*fi", prec, im)
	case im < 0:
		return fmt.Sprintf("%.*f-%.*fi", prec, re, prec, -im)
	default:
		return fmt.Sprintf("%.*f+%.*fi", prec, re, prec, im)
	}
}

// roundTo also folds -0 into 0 so it never prints as "-0.000".
func roundTo(x float64, prec int) float64 {
	p := math.Pow(10, float64(prec))
	r := math.Round(x*p) / p
	if r == 0 {
		return 0
	}
	return r
}

func (m Matrix) mustSameShape(op string, o Matrix) {
	if m.rows != o.rows || m.cols != o.cols {
		panic(fmt.Sprintf("gate.Matrix.%s: %dx%d vs %dx%d", op, m.rows, m.cols, o.rows, o.cols))
	}
}
