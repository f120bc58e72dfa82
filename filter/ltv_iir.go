package filter

import (
	"github.com/glotsynth/glotsynth/dsp"
	"github.com/glotsynth/glotsynth/lpc"
	"github.com/glotsynth/glotsynth/types"
)

// LTVMinimumPhase applies a per-frame all-pole filter to an excitation with
// window-based smooth blending across frame boundaries: overlapping analysis
// windows are filtered independently with the all-pole recursion, windowed,
// and reconstructed by overlap-add with a matching normalization pass so a
// constant unity filter reproduces its input exactly.
type LTVMinimumPhase struct {
	window []float64
}

// NewLTVMinimumPhase builds the filter with the named analysis window of the
// given length. The window length must be at least twice the hop length of
// every context the filter is applied under; that is checked per call.
func NewLTVMinimumPhase(windowName string, windowLength int) (*LTVMinimumPhase, error) {
	w, err := dsp.Window(windowName, windowLength)
	if err != nil {
		return nil, err
	}
	return &LTVMinimumPhase{window: w}, nil
}

// Apply filters the excitation. ctrl.Gain is the per-frame gain
// (batch, frames) and ctrl.Coefficients the per-frame all-pole coefficients
// (batch, frames, order); both are required and must agree on frame count.
//
// The overlap-add denominator can reach zero outside the window's support
// for degenerate window choices; that division is a documented numerical
// hazard, not defended here.
func (f *LTVMinimumPhase) Apply(ex [][]float64, ctrl types.FilterControls, ctx types.TimeContext) ([][]float64, error) {
	if ctrl.Gain == nil || ctrl.Coefficients == nil {
		return nil, ErrMissingControl
	}
	if len(ctrl.Gain) != len(ex) || len(ctrl.Coefficients) != len(ex) {
		return nil, ErrControlShape
	}

	hop := ctx.HopLength
	windowSize := len(f.window)
	if windowSize < 2*hop {
		return nil, ErrWindowTooShort
	}
	padding := (windowSize - hop) / 2

	out := make([][]float64, len(ex))
	for b := range ex {
		gain := ctrl.Gain[b]
		coeffs := ctrl.Coefficients[b]
		if len(coeffs) != len(gain) {
			return nil, ErrControlShape
		}

		// Apply the linearly upsampled gain to the excitation.
		upGain := dsp.LinearUpsample(gain, hop)
		n := dsp.Min(len(ex[b]), len(upGain))
		sig := make([]float64, n)
		for i := 0; i < n; i++ {
			sig[i] = ex[b][i] * upGain[i]
		}

		// Symmetric zero padding, then overlapping analysis windows at
		// hop stride.
		padded := make([]float64, padding+n+padding)
		copy(padded[padding:], sig)
		numWindows := (len(padded)-windowSize)/hop + 1
		if numWindows < 0 {
			numWindows = 0
		}
		if numWindows > len(coeffs) {
			return nil, ErrControlShape
		}

		windows := make([][]float64, numWindows)
		ones := make([]float64, numWindows)
		frameCoeffs := make([][]float64, numWindows)
		for w := 0; w < numWindows; w++ {
			windows[w] = padded[w*hop : w*hop+windowSize]
			ones[w] = 1
			frameCoeffs[w] = coeffs[w]
		}

		// Unit-gain all-pole recursion per window; the frame gain was
		// already applied at sample rate above.
		filtered, err := lpc.Synthesize(windows, ones, frameCoeffs)
		if err != nil {
			return nil, err
		}

		// Windowed overlap-add of the filtered frames and of an
		// all-ones signal; the latter corrects for window overlap
		// energy.
		acc := make([]float64, len(padded))
		norm := make([]float64, len(padded))
		for w := 0; w < numWindows; w++ {
			base := w * hop
			row := filtered[w]
			for j := 0; j < windowSize; j++ {
				acc[base+j] += row[j] * f.window[j]
				norm[base+j] += f.window[j]
			}
		}

		outLen := 0
		if numWindows > 0 {
			outLen = (numWindows-1)*hop + windowSize - 2*padding
		}
		y := make([]float64, outLen)
		for i := range y {
			y[i] = acc[padding+i] / norm[padding+i]
		}
		out[b] = y
	}
	return out, nil
}
