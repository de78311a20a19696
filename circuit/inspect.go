package circuit

import (
	"math/bits"
	"math/cmplx"
)

// QubitProbability is the marginal distribution of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal |0⟩/|1⟩ probabilities of every
// qubit, indexed by qubit number.
func (c *QuantumCircuit) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, c.numQubits)
	for i, p := range c.Probabilities() {
		for q := range c.numQubits {
			if i>>(c.numQubits-1-q)&1 == 1 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// BasisTerm is one basis state with non-negligible weight.
type BasisTerm struct {
	Index     int
	Amplitude complex128
	Prob      float64
	Phase     float64 // radians, in (-π, π]
	Hamming   int     // number of qubits in |1⟩
}

// Support lists the basis states whose probability exceeds tol, in index
// order.
func (c *QuantumCircuit) Support(tol float64) []BasisTerm {
	var terms []BasisTerm
	for i, amp := range c.amplitudes {
		prob := real(amp)*real(amp) + imag(amp)*imag(amp)
		if prob <= tol {
			continue
		}
		terms = append(terms, BasisTerm{
			Index:     i,
			Amplitude: amp,
			Prob:      prob,
			Phase:     cmplx.Phase(amp),
			Hamming:   bits.OnesCount(uint(i)),
		})
	}
	return terms
}
