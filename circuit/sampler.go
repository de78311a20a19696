package circuit

import (
	"math/rand/v2"
	"time"
)

// Sampler picks an index from a list of non-negative weights. The weights do
// not have to sum to one.
type Sampler interface {
	Sample(weights []float64) int
}

// WeightedSampler draws r uniformly from [0, Σw) and walks the cumulative sum.
type WeightedSampler struct {
	rng *rand.Rand
}

// NewWeightedSampler returns a sampler driven by src.
func NewWeightedSampler(src rand.Source) *WeightedSampler {
	return &WeightedSampler{rng: rand.New(src)}
}

// NewSeededSampler returns a PCG-backed sampler. Equal seeds give equal draws.
func NewSeededSampler(seed uint64) *WeightedSampler {
	return NewWeightedSampler(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func defaultSampler() Sampler {
	return NewSeededSampler(uint64(time.Now().UnixNano()))
}

// Sample returns an index with probability weights[i]/Σw. Zero-weight entries
// are never returned unless every weight is zero, in which case it returns 0.
func (s *WeightedSampler) Sample(weights []float64) int {
	var total float64
	last := -1
	for i, w := range weights {
		if w > 0 {
			total += w
			last = i
		}
	}
	if last < 0 {
		return 0
	}

	r := s.rng.Float64() * total
	var cumulative float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if r < cumulative {
			return i
		}
	}
	// r landed past the running sum through rounding
	return last
}
