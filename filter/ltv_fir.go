package filter

import (
	"github.com/glotsynth/glotsynth/dsp"
	"github.com/glotsynth/glotsynth/types"
)

// firKind selects the spectral phase convention of a time-varying FIR
// kernel derived from a log-magnitude envelope.
type firKind int

const (
	minimumPhase firKind = iota
	zeroPhase
)

// ltvFIR holds the kernel derivation shared by the precise and framed FIR
// realizations.
type ltvFIR struct {
	windowName string
	kind       firKind
}

func newLTVFIR(windowName string, kind firKind) (ltvFIR, error) {
	// Probe the name so an unknown window fails at construction.
	if _, err := dsp.Window(windowName, 16); err != nil {
		return ltvFIR{}, err
	}
	return ltvFIR{windowName: windowName, kind: kind}, nil
}

// kernels derives one windowed time-domain kernel per frame from the
// frame-rate log-magnitude spectra (frames, nfft/2+1).
func (f ltvFIR) kernels(logMag [][]float64) ([][]float64, error) {
	if len(logMag) == 0 {
		return nil, ErrControlShape
	}
	n := 2 * (len(logMag[0]) - 1)
	window, err := dsp.Window(f.windowName, n)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(logMag))
	for i, row := range logMag {
		if len(row) != len(logMag[0]) {
			return nil, ErrControlShape
		}
		var kernel []float64
		if f.kind == minimumPhase {
			kernel = minimumPhaseKernel(row)
			windowKernelTail(kernel, window)
		} else {
			kernel = zeroPhaseKernel(row)
			windowKernel(kernel, window)
		}
		out[i] = kernel
	}
	return out, nil
}

// upsampleKernels linearly interpolates frame-rate kernels to sample rate,
// tap by tap.
func upsampleKernels(kernels [][]float64, hop int) [][]float64 {
	up := dsp.LinearUpsampleChannels([][][]float64{kernels}, hop)
	return up[0]
}

// LTVMinimumPhaseFIRPrecise realizes the time-varying minimum-phase FIR
// filter exactly: the kernel is linearly interpolated to sample rate and
// every output sample is an inner product of the local input history with
// its co-located kernel. Dense and exact, at a cost of one kernel-length
// product per sample.
type LTVMinimumPhaseFIRPrecise struct {
	ltvFIR
}

// NewLTVMinimumPhaseFIRPrecise builds the precise minimum-phase FIR filter
// with the named tail window.
func NewLTVMinimumPhaseFIRPrecise(windowName string) (*LTVMinimumPhaseFIRPrecise, error) {
	base, err := newLTVFIR(windowName, minimumPhase)
	if err != nil {
		return nil, err
	}
	return &LTVMinimumPhaseFIRPrecise{ltvFIR: base}, nil
}

// Apply filters the excitation; ctrl.LogMag (batch, frames, nfft/2+1) is
// required.
func (f *LTVMinimumPhaseFIRPrecise) Apply(ex [][]float64, ctrl types.FilterControls, ctx types.TimeContext) ([][]float64, error) {
	if ctrl.LogMag == nil {
		return nil, ErrMissingControl
	}
	if len(ctrl.LogMag) != len(ex) {
		return nil, ErrControlShape
	}
	out := make([][]float64, len(ex))
	for b := range ex {
		kernels, err := f.kernels(ctrl.LogMag[b])
		if err != nil {
			return nil, err
		}
		up := upsampleKernels(kernels, ctx.HopLength)
		n := dsp.Min(len(ex[b]), len(up))
		y := make([]float64, n)
		for t := 0; t < n; t++ {
			k := up[t]
			taps := dsp.Min(len(k)-1, t)
			var acc float64
			for tau := 0; tau <= taps; tau++ {
				acc += k[tau] * ex[b][t-tau]
			}
			y[t] = acc
		}
		out[b] = y
	}
	return out, nil
}

// LTVMinimumPhaseFIR is the framed realization of the minimum-phase FIR
// filter: the signal is sliced into hop-length frames and each frame is
// convolved with its own kernel, held constant within the frame. Cheaper
// than the precise form, with a stepwise kernel across frame boundaries.
type LTVMinimumPhaseFIR struct {
	ltvFIR
}

// NewLTVMinimumPhaseFIR builds the framed minimum-phase FIR filter with the
// named tail window.
func NewLTVMinimumPhaseFIR(windowName string) (*LTVMinimumPhaseFIR, error) {
	base, err := newLTVFIR(windowName, minimumPhase)
	if err != nil {
		return nil, err
	}
	return &LTVMinimumPhaseFIR{ltvFIR: base}, nil
}

// Apply filters the excitation; ctrl.LogMag (batch, frames, nfft/2+1) is
// required and must cover the signal's frame count.
func (f *LTVMinimumPhaseFIR) Apply(ex [][]float64, ctrl types.FilterControls, ctx types.TimeContext) ([][]float64, error) {
	if ctrl.LogMag == nil {
		return nil, ErrMissingControl
	}
	if len(ctrl.LogMag) != len(ex) {
		return nil, ErrControlShape
	}
	hop := ctx.HopLength
	out := make([][]float64, len(ex))
	for b := range ex {
		kernels, err := f.kernels(ctrl.LogMag[b])
		if err != nil {
			return nil, err
		}
		x := ex[b]
		numFrames := 0
		if len(x) >= hop {
			numFrames = (len(x)-hop)/hop + 1
		}
		if numFrames > len(kernels) {
			return nil, ErrControlShape
		}
		y := make([]float64, numFrames*hop)
		for fr := 0; fr < numFrames; fr++ {
			k := kernels[fr]
			for j := 0; j < hop; j++ {
				t := fr*hop + j
				taps := dsp.Min(len(k)-1, t)
				var acc float64
				for tau := 0; tau <= taps; tau++ {
					acc += k[tau] * x[t-tau]
				}
				y[t] = acc
			}
		}
		out[b] = y
	}
	return out, nil
}

// LTVZeroPhaseFIRPrecise is the exact realization of the time-varying
// zero-phase FIR filter, analogous to LTVMinimumPhaseFIRPrecise but with a
// symmetric kernel centered on the output sample.
type LTVZeroPhaseFIRPrecise struct {
	ltvFIR
}

// NewLTVZeroPhaseFIRPrecise builds the precise zero-phase FIR filter with
// the named symmetric window.
func NewLTVZeroPhaseFIRPrecise(windowName string) (*LTVZeroPhaseFIRPrecise, error) {
	base, err := newLTVFIR(windowName, zeroPhase)
	if err != nil {
		return nil, err
	}
	return &LTVZeroPhaseFIRPrecise{ltvFIR: base}, nil
}

// Apply filters the excitation; ctrl.LogMag (batch, frames, nfft/2+1) is
// required.
func (f *LTVZeroPhaseFIRPrecise) Apply(ex [][]float64, ctrl types.FilterControls, ctx types.TimeContext) ([][]float64, error) {
	if ctrl.LogMag == nil {
		return nil, ErrMissingControl
	}
	if len(ctrl.LogMag) != len(ex) {
		return nil, ErrControlShape
	}
	out := make([][]float64, len(ex))
	for b := range ex {
		kernels, err := f.kernels(ctrl.LogMag[b])
		if err != nil {
			return nil, err
		}
		up := upsampleKernels(kernels, ctx.HopLength)
		n := dsp.Min(len(ex[b]), len(up))
		x := ex[b]
		left := 0
		if n > 0 {
			left = (len(up[0]) - 1) / 2
		}
		y := make([]float64, n)
		for t := 0; t < n; t++ {
			k := up[t]
			var acc float64
			for tau := range k {
				src := t - left + tau
				if src < 0 || src >= len(x) {
					continue
				}
				acc += k[tau] * x[src]
			}
			y[t] = acc
		}
		out[b] = y
	}
	return out, nil
}

// LTVZeroPhaseFIR is the framed realization of the zero-phase FIR filter,
// analogous to LTVMinimumPhaseFIR.
type LTVZeroPhaseFIR struct {
	ltvFIR
}

// NewLTVZeroPhaseFIR builds the framed zero-phase FIR filter with the named
// symmetric window.
func NewLTVZeroPhaseFIR(windowName string) (*LTVZeroPhaseFIR, error) {
	base, err := newLTVFIR(windowName, zeroPhase)
	if err != nil {
		return nil, err
	}
	return &LTVZeroPhaseFIR{ltvFIR: base}, nil
}

// Apply filters the excitation; ctrl.LogMag (batch, frames, nfft/2+1) is
// required and must cover the signal's frame count.
func (f *LTVZeroPhaseFIR) Apply(ex [][]float64, ctrl types.FilterControls, ctx types.TimeContext) ([][]float64, error) {
	if ctrl.LogMag == nil {
		return nil, ErrMissingControl
	}
	if len(ctrl.LogMag) != len(ex) {
		return nil, ErrControlShape
	}
	hop := ctx.HopLength
	out := make([][]float64, len(ex))
	for b := range ex {
		kernels, err := f.kernels(ctrl.LogMag[b])
		if err != nil {
			return nil, err
		}
		x := ex[b]
		kernelLen := len(kernels[0])
		left := (kernelLen - 1) / 2
		numFrames := 0
		if padded := len(x) + 2*left; padded >= kernelLen+hop-1 {
			numFrames = (padded-(kernelLen+hop-1))/hop + 1
		}
		if numFrames > len(kernels) {
			return nil, ErrControlShape
		}
		y := make([]float64, numFrames*hop)
		for fr := 0; fr < numFrames; fr++ {
			k := kernels[fr]
			for j := 0; j < hop; j++ {
				t := fr*hop + j
				var acc float64
				for tau := range k {
					src := t - left + tau
					if src < 0 || src >= len(x) {
						continue
					}
					acc += k[tau] * x[src]
				}
				y[t] = acc
			}
		}
		out[b] = y
	}
	return out, nil
}
