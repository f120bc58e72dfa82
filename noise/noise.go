// Package noise provides reference noise generators satisfying the
// glotsynth NoiseGenerator contract. The synthesis core consumes only the
// contract; these implementations exist so the harmonic-plus-noise
// composition is exercisable end to end.
package noise

import (
	"math/rand"

	"github.com/glotsynth/glotsynth/types"
)

// Gaussian generates white Gaussian noise shaped to the conditioning
// signal's batch and length, scaled by Std.
type Gaussian struct {
	Std float64

	rng *rand.Rand
}

// NewGaussian returns a Gaussian noise generator with the given standard
// deviation and seed.
func NewGaussian(std float64, seed int64) *Gaussian {
	return &Gaussian{Std: std, rng: rand.New(rand.NewSource(seed))}
}

// Generate returns noise with one sample per conditioning sample.
func (g *Gaussian) Generate(conditioning [][]float64, _ types.TimeContext) ([][]float64, error) {
	out := make([][]float64, len(conditioning))
	for b := range conditioning {
		row := make([]float64, len(conditioning[b]))
		for i := range row {
			row[i] = g.rng.NormFloat64() * g.Std
		}
		out[b] = row
	}
	return out, nil
}

// Zero generates all-zero noise, useful for isolating the harmonic path in
// tests.
type Zero struct{}

// Generate returns zeros with one sample per conditioning sample.
func (Zero) Generate(conditioning [][]float64, _ types.TimeContext) ([][]float64, error) {
	out := make([][]float64, len(conditioning))
	for b := range conditioning {
		out[b] = make([]float64, len(conditioning[b]))
	}
	return out, nil
}
