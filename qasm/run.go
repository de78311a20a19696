package qasm

import (
	"fmt"
	"slices"

	"qtermsim/circuit"
	"qtermsim/gate"
)

// Result records what a single execution observed.
type Result struct {
	// Outcomes holds one basis index per measurement, in program order.
	Outcomes []int
}

// Last returns the final measurement outcome, if any.
func (r Result) Last() (int, bool) {
	if len(r.Outcomes) == 0 {
		return 0, false
	}
	return r.Outcomes[len(r.Outcomes)-1], true
}

// Apply executes one op against c. It returns the measured index, or -1 for
// a gate.
func (o Op) Apply(c *circuit.QuantumCircuit) (int, error) {
	if o.Measure {
		return c.Measure(), nil
	}
	if err := c.ApplyGate(o.Gate); err != nil {
		return -1, err
	}
	return -1, nil
}

// Run executes every op of p on c in program order. The register of c must
// be at least as wide as the program's.
func Run(p *Program, c *circuit.QuantumCircuit) (Result, error) {
	if err := fits(p, c); err != nil {
		return Result{}, err
	}
	var res Result
	for i, o := range p.Ops {
		outcome, err := o.Apply(c)
		if err != nil {
			return res, fmt.Errorf("op %d: %w", i, err)
		}
		if o.Measure {
			res.Outcomes = append(res.Outcomes, outcome)
		}
	}
	return res, nil
}

// Counts maps a measured basis index to how often it occurred.
type Counts map[int]int

// Outcomes returns the observed indices in ascending order.
func (c Counts) Outcomes() []int {
	keys := make([]int, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Total is the number of recorded shots.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Sample runs p shots times, each on an independent clone of init, and counts
// the final measurement of each run. A program without a measurement gets one
// appended implicitly. Randomness comes from init's sampler.
func Sample(p *Program, init *circuit.QuantumCircuit, shots int) (Counts, error) {
	if shots < 1 {
		return nil, fmt.Errorf("sample: %w: %d shots", gate.ErrPreconditionViolation, shots)
	}
	if err := fits(p, init); err != nil {
		return nil, err
	}

	counts := make(Counts)
	for range shots {
		c := init.Clone()
		res, err := Run(p, c)
		if err != nil {
			return nil, err
		}
		outcome, ok := res.Last()
		if !ok {
			outcome = c.Measure()
		}
		counts[outcome]++
	}
	return counts, nil
}

func fits(p *Program, c *circuit.QuantumCircuit) error {
	if c.NumQubits() < p.NumQubits {
		return fmt.Errorf("run: %w: program needs %d qubits, register has %d",
			gate.ErrPreconditionViolation, p.NumQubits, c.NumQubits())
	}
	return nil
}
