package filter

import (
	"math"
	"math/rand"

	"github.com/glotsynth/glotsynth/dsp"
)

// xavierBound is the uniform initialization bound for a logit vector of n
// entries, with the usual tanh gain of 5/3.
func xavierBound(n int) float64 {
	return 5.0 / 3.0 * math.Sqrt(6.0/float64(2*n))
}

// ComplexConjAllpass is a trainable cascade of second-order allpass
// sections, one per learnable complex-conjugate pole pair. Each pole's
// magnitude is sigmoid(logit)*maxAbs, bounded strictly below the unit
// circle, and its angle is reparameterized through tanh into
// cos(angle) in (-1, 1).
type ComplexConjAllpass struct {
	maxAbs          float64
	magnitudeLogits []float64
	cosLogits       []float64
}

// NewComplexConjAllpass builds the cascade with numRoots pole pairs and the
// given pole-magnitude bound, logits initialized Xavier-uniform.
func NewComplexConjAllpass(numRoots int, maxAbs float64) (*ComplexConjAllpass, error) {
	if numRoots < 1 {
		return nil, ErrInvalidRoots
	}
	if maxAbs <= 0 || maxAbs >= 1 {
		return nil, ErrInvalidMaxAbs
	}
	bound := xavierBound(numRoots)
	return &ComplexConjAllpass{
		maxAbs:          maxAbs,
		magnitudeLogits: randomLogits(numRoots, bound),
		cosLogits:       randomLogits(numRoots, bound),
	}, nil
}

// Logits returns the filter's two logit arrays (magnitude, cosine) for the
// external optimizer; mutations take effect on the next evaluation.
func (f *ComplexConjAllpass) Logits() (magnitude, cosine []float64) {
	return f.magnitudeLogits, f.cosLogits
}

// Poles returns the current pole positions derived from the logits. Every
// magnitude is strictly below maxAbs.
func (f *ComplexConjAllpass) Poles() []complex128 {
	poles := make([]complex128, len(f.magnitudeLogits))
	for i := range poles {
		mag := sigmoidScalar(f.magnitudeLogits[i]) * f.maxAbs
		cos := math.Tanh(f.cosLogits[i])
		sin := math.Sqrt(1 - cos*cos)
		poles[i] = complex(mag*cos, mag*sin)
	}
	return poles
}

// Apply filters the excitation through the cascade, realized as one
// direct-form IIR recursion whose numerator is the reversed denominator.
func (f *ComplexConjAllpass) Apply(ex [][]float64) ([][]float64, error) {
	biquads := make([][]float64, len(f.magnitudeLogits))
	for i, root := range f.Poles() {
		biquads[i] = conjugateBiquad(root)
	}
	return applyAllpassCascade(ex, biquads), nil
}

// RealCoeffAllpass is the same allpass model reparameterized to two
// independent bounded real coefficients per section, avoiding complex
// arithmetic. The coefficients map into the biquad stability triangle, so
// pole magnitudes stay below 1 by construction.
type RealCoeffAllpass struct {
	maxAbs  float64
	logits1 []float64
	logits2 []float64
}

// NewRealCoeffAllpass builds the real-coefficient cascade with numRoots
// sections and the given coefficient bound, logits initialized
// Xavier-uniform.
func NewRealCoeffAllpass(numRoots int, maxAbs float64) (*RealCoeffAllpass, error) {
	if numRoots < 1 {
		return nil, ErrInvalidRoots
	}
	if maxAbs <= 0 || maxAbs >= 1 {
		return nil, ErrInvalidMaxAbs
	}
	bound := xavierBound(numRoots)
	return &RealCoeffAllpass{
		maxAbs:  maxAbs,
		logits1: randomLogits(numRoots, bound),
		logits2: randomLogits(numRoots, bound),
	}, nil
}

// Logits returns the filter's two logit arrays for the external optimizer.
func (f *RealCoeffAllpass) Logits() (first, second []float64) {
	return f.logits1, f.logits2
}

// Biquads returns the current second-order sections derived from the
// logits.
func (f *RealCoeffAllpass) Biquads() [][]float64 {
	biquads := make([][]float64, len(f.logits1))
	for i := range biquads {
		p1 := math.Tanh(f.logits1[i]) * f.maxAbs
		p2 := math.Tanh(f.logits2[i]) * f.maxAbs
		biquads[i] = triangleBiquad(p1, p2)
	}
	return biquads
}

// Apply filters the excitation through the cascade.
func (f *RealCoeffAllpass) Apply(ex [][]float64) ([][]float64, error) {
	return applyAllpassCascade(ex, f.Biquads()), nil
}

// conjugateBiquad expands a complex-conjugate pole pair into its real
// second-order denominator [1, -2 Re(r), |r|^2].
func conjugateBiquad(root complex128) []float64 {
	re, im := real(root), imag(root)
	return []float64{1, -2 * re, re*re + im*im}
}

// triangleBiquad maps two bounded coefficients into the biquad stability
// triangle: a2 = p2 and a1 = p1*(1+a2), so |a2| < 1 and |a1| < 1+a2 for
// |p1|, |p2| < 1.
func triangleBiquad(p1, p2 float64) []float64 {
	a2 := p2
	a1 := p1 * (1 + a2)
	return []float64{1, a1, a2}
}

// cascadeBiquads convolves the section denominators into one polynomial.
func cascadeBiquads(biquads [][]float64) []float64 {
	acc := []float64{1}
	for _, bq := range biquads {
		acc = dsp.PolyMul(acc, bq)
	}
	return acc
}

// applyAllpassCascade evaluates the cascade as a direct-form recursion with
// numerator = reversed denominator, the defining property of an allpass.
func applyAllpassCascade(ex [][]float64, biquads [][]float64) [][]float64 {
	a := cascadeBiquads(biquads)
	b := make([]float64, len(a))
	for i := range a {
		b[i] = a[len(a)-1-i]
	}
	out := make([][]float64, len(ex))
	for r := range ex {
		out[r] = iirDirectForm(ex[r], b, a)
	}
	return out
}

// iirDirectForm runs y[n] = sum b[k] x[n-k] - sum_{k>=1} a[k] y[n-k] with
// a[0] assumed 1 and zero initial state.
func iirDirectForm(x, b, a []float64) []float64 {
	y := make([]float64, len(x))
	for n := range x {
		var acc float64
		for k, bv := range b {
			if n-k < 0 {
				break
			}
			acc += bv * x[n-k]
		}
		for k := 1; k < len(a); k++ {
			if n-k < 0 {
				break
			}
			acc -= a[k] * y[n-k]
		}
		y[n] = acc
	}
	return y
}

func sigmoidScalar(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func randomLogits(n int, bound float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = (2*rand.Float64() - 1) * bound
	}
	return v
}
