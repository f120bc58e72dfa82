// Package types defines shared types used across glotsynth packages.
// This package exists to break import cycles between packages.
package types

import "errors"

// ErrInvalidHopLength indicates a non-positive hop length.
var ErrInvalidHopLength = errors.New("types: invalid hop length (must be >= 1)")

// TimeContext maps between frame-rate control data and sample-rate signals.
// It is an immutable value type: callers pass it by value and Rescale returns
// a fresh context rather than mutating the receiver.
type TimeContext struct {
	// HopLength is the number of samples spanned by one analysis frame.
	HopLength int
}

// NewTimeContext returns a TimeContext with the given hop length.
func NewTimeContext(hopLength int) (TimeContext, error) {
	if hopLength < 1 {
		return TimeContext{}, ErrInvalidHopLength
	}
	return TimeContext{HopLength: hopLength}, nil
}

// Rescale derives a context at a coarser frame rate whose hop length is
// k times the receiver's. The receiver is left unchanged.
// k must be >= 1.
func (c TimeContext) Rescale(k int) TimeContext {
	return TimeContext{HopLength: c.HopLength * k}
}

// Frames returns the number of whole or partial frames covering the given
// sample count.
func (c TimeContext) Frames(samples int) int {
	return (samples + c.HopLength - 1) / c.HopLength
}

// Samples returns the number of samples spanned by the given frame count.
func (c TimeContext) Samples(frames int) int {
	return frames * c.HopLength
}

// OscillatorControls carries the per-call control data for the closed family
// of oscillators. Each oscillator reads only the fields its contract names;
// unused fields stay nil.
type OscillatorControls struct {
	// Amplitudes holds per-harmonic amplitudes at frame rate,
	// shaped (batch, frames, harmonics). Harmonic oscillator only.
	Amplitudes [][][]float64

	// TableControl is a scalar table-selection control in [0, 1] at frame
	// rate, shaped (batch, frames). Indexed glottal-flow table only.
	TableControl [][]float64

	// TableWeights is a probability-simplex weighting over the table bank
	// at frame rate, shaped (batch, frames, tableSize). Weighted
	// glottal-flow table only.
	TableWeights [][][]float64

	// Features is an auxiliary higher-rate feature stream shaped
	// (batch, frames, channels), consumed by the downsampled table
	// variants to derive their selection control.
	Features [][][]float64

	// InitialPhase offsets the instantaneous phase of each harmonic,
	// shaped (batch, harmonics). Optional.
	InitialPhase [][]float64

	// PhaseOffset is a per-sample wrapped-phase offset shaped
	// (batch, samples), carried from a previous synthesis block to stitch
	// consecutive calls. Optional.
	PhaseOffset [][]float64
}

// FilterControls carries the per-call frame-rate control data for the closed
// family of time-varying filters.
type FilterControls struct {
	// Gain is a per-frame gain shaped (batch, frames).
	// Minimum-phase IIR filter only.
	Gain [][]float64

	// Coefficients are per-frame all-pole coefficients shaped
	// (batch, frames, order). Minimum-phase IIR filter only.
	Coefficients [][][]float64

	// LogMag is a per-frame log-magnitude spectral envelope shaped
	// (batch, frames, nfft/2+1). FIR filters only.
	LogMag [][][]float64
}
