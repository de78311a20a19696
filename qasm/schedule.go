package qasm

// Schedule packs the program into grid steps. Each op lands on the earliest
// step after every earlier op whose qubit range overlaps its own, so
// independent gates share a column and a two-qubit gate also blocks the
// qubits its connector crosses. It returns the resulting depth.
func Schedule(p *Program) int {
	// next free step per qubit
	frontier := make([]int, p.NumQubits)
	depth := 0
	for i := range p.Ops {
		lo, hi := p.Ops[i].Range(p.NumQubits)
		lo, hi = max(lo, 0), min(hi, p.NumQubits)

		step := 0
		for q := lo; q < hi; q++ {
			step = max(step, frontier[q])
		}
		p.Ops[i].Step = step
		for q := lo; q < hi; q++ {
			frontier[q] = step + 1
		}
		depth = max(depth, step+1)
	}
	return depth
}

// Layers groups op indices by step, in program order within a step.
func Layers(p *Program) [][]int {
	layers := make([][]int, p.Depth())
	for i, o := range p.Ops {
		layers[o.Step] = append(layers[o.Step], i)
	}
	return layers
}

// OpAt returns the index of the op occupying (step, qubit), or -1.
func (p *Program) OpAt(step, qubit int) int {
	for i, o := range p.Ops {
		if o.Step != step {
			continue
		}
		if lo, hi := o.Range(p.NumQubits); qubit >= lo && qubit < hi {
			return i
		}
	}
	return -1
}
