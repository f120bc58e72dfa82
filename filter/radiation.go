package filter

import (
	"math"

	"github.com/glotsynth/glotsynth/dsp"
)

// Radiation is the fixed lip-radiation FIR filter: a windowed ideal
// differentiator applied once by ordinary convolution with symmetric
// padding, so the output length matches the input.
type Radiation struct {
	kernel []float64
}

// NewRadiation builds the radiation filter with numZeros zeros on each side
// of the center tap and the named window. The analytic kernel is the ideal
// discrete differentiator h[n] = cos(pi n)/n, h[0] = 0.
func NewRadiation(numZeros int, windowName string) (*Radiation, error) {
	if numZeros < 1 {
		return nil, ErrInvalidZeros
	}
	length := 2*numZeros + 1
	window, err := dsp.Window(windowName, length)
	if err != nil {
		return nil, err
	}
	kernel := make([]float64, length)
	for i := range kernel {
		n := i - numZeros
		if n == 0 {
			continue
		}
		kernel[i] = math.Cos(math.Pi*float64(n)) / float64(n) * window[i]
	}
	return &Radiation{kernel: kernel}, nil
}

// Kernel returns a copy of the time-domain kernel.
func (f *Radiation) Kernel() []float64 {
	out := make([]float64, len(f.kernel))
	copy(out, f.kernel)
	return out
}

// Apply convolves each batch row with the radiation kernel.
func (f *Radiation) Apply(ex [][]float64) ([][]float64, error) {
	center := len(f.kernel) / 2
	out := make([][]float64, len(ex))
	for b := range ex {
		x := ex[b]
		y := make([]float64, len(x))
		for t := range y {
			var acc float64
			for i, kv := range f.kernel {
				src := t - (i - center)
				if src < 0 || src >= len(x) {
					continue
				}
				acc += kv * x[src]
			}
			y[t] = acc
		}
		out[b] = y
	}
	return out, nil
}
