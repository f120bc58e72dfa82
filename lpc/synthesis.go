// Package lpc implements the all-pole (linear-predictive) synthesis
// recursion consumed by the time-varying filter bank. Each row of the input
// is filtered independently with its own gain and coefficient set.
package lpc

import "errors"

var (
	// ErrShapeMismatch indicates that the excitation, gain, and
	// coefficient row counts disagree.
	ErrShapeMismatch = errors.New("lpc: excitation, gain, and coefficient row counts must match")

	// ErrOrderMismatch indicates a coefficient row whose order differs
	// from the first row's. The order is fixed within a call.
	ErrOrderMismatch = errors.New("lpc: coefficient order must not vary across rows")
)

// Synthesize runs one all-pole recursion per row:
//
//	y[n] = gain*x[n] - sum_{i=1..order} a[i-1]*y[n-i]
//
// with zero initial filter state. A coefficient row of all zeros is the
// identity filter scaled by the gain.
func Synthesize(ex [][]float64, gain []float64, coeffs [][]float64) ([][]float64, error) {
	if len(ex) != len(gain) || len(ex) != len(coeffs) {
		return nil, ErrShapeMismatch
	}
	order := 0
	if len(coeffs) > 0 {
		order = len(coeffs[0])
	}
	out := make([][]float64, len(ex))
	for r := range ex {
		if len(coeffs[r]) != order {
			return nil, ErrOrderMismatch
		}
		out[r] = synthesizeRow(ex[r], gain[r], coeffs[r])
	}
	return out, nil
}

func synthesizeRow(x []float64, gain float64, a []float64) []float64 {
	y := make([]float64, len(x))
	order := len(a)
	for n := range x {
		acc := gain * x[n]
		// Feedback taps, clipped at the start of the row.
		taps := order
		if n < taps {
			taps = n
		}
		for i := 1; i <= taps; i++ {
			acc -= a[i-1] * y[n-i]
		}
		y[n] = acc
	}
	return y
}
