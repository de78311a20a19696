package circuit

import "log/slog"

// Measure samples a basis index with probability |amplitude|², collapses the
// register onto it and returns it. The raw squared magnitudes go to the
// sampler without rescaling, so rounding drift in their sum is tolerated.
func (c *QuantumCircuit) Measure() int {
	probs := c.Probabilities()
	outcome := c.sampler.Sample(probs)

	collapsed := make([]complex128, c.numStates)
	collapsed[outcome] = 1
	c.amplitudes = collapsed
	c.normalize()

	c.logger.Debug("measured register",
		slog.Int("outcome", outcome),
		slog.String("bits", c.Bits(outcome)),
		slog.Float64("probability", probs[outcome]),
	)
	return outcome
}
