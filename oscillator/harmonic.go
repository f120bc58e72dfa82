package oscillator

import (
	"math"

	"github.com/glotsynth/glotsynth/dsp"
	"github.com/glotsynth/glotsynth/types"
)

// Harmonic synthesizes audio with a bank of sinusoidal oscillators at
// integer multiples of the fundamental. Harmonics whose instantaneous
// frequency reaches the Nyquist limit are hard-muted sample by sample, so
// the output is free of fold-back aliasing.
type Harmonic struct{}

// NewHarmonic returns a harmonic-bank oscillator.
func NewHarmonic() *Harmonic {
	return &Harmonic{}
}

// Synthesize renders the harmonic bank.
//
// upsampledPhase is the per-sample phase increment (batch, samples) in
// [0, 0.5]. ctrl.Amplitudes supplies per-harmonic amplitudes at frame rate
// (batch, frames, harmonics); they are linearly upsampled to sample rate
// when ctx.HopLength > 1. ctrl.InitialPhase and ctrl.PhaseOffset optionally
// stitch the block onto a previous one. The output is truncated to the
// shorter of the phase and amplitude streams.
func (o *Harmonic) Synthesize(upsampledPhase [][]float64, ctrl types.OscillatorControls, ctx types.TimeContext) ([][]float64, error) {
	if !dsp.InRange(upsampledPhase, 0, 0.5) {
		return nil, ErrPhaseOutOfRange
	}
	if ctrl.Amplitudes == nil {
		return nil, ErrMissingControl
	}
	if len(ctrl.Amplitudes) != len(upsampledPhase) {
		return nil, ErrControlShape
	}
	if !phaseOffsetShaped(ctrl.PhaseOffset, upsampledPhase) {
		return nil, ErrControlShape
	}
	if ctrl.InitialPhase != nil && len(ctrl.InitialPhase) != len(upsampledPhase) {
		return nil, ErrControlShape
	}

	amplitudes := ctrl.Amplitudes
	if ctx.HopLength > 1 {
		amplitudes = dsp.LinearUpsampleChannels(amplitudes, ctx.HopLength)
	}

	out := make([][]float64, len(upsampledPhase))
	for b := range upsampledPhase {
		inc := upsampledPhase[b]
		amps := amplitudes[b]
		if len(amps) == 0 {
			out[b] = []float64{}
			continue
		}
		nHarmonic := len(amps[0])

		running := dsp.CumulativeSum(inc)
		n := dsp.Min(len(running), len(amps))

		var offset []float64
		if ctrl.PhaseOffset != nil {
			offset = ctrl.PhaseOffset[b]
		}
		var initial []float64
		if ctrl.InitialPhase != nil {
			initial = ctrl.InitialPhase[b]
			if len(initial) < nHarmonic {
				return nil, ErrControlShape
			}
		}

		y := make([]float64, n)
		for t := 0; t < n; t++ {
			var off float64
			if offset != nil {
				off = dsp.Wrap01(offset[t])
			}
			var acc float64
			for k := 0; k < nHarmonic; k++ {
				h := float64(k + 1)
				// Hard anti-aliasing: mute any harmonic at or
				// above Nyquist at this sample.
				if inc[t]*h >= 0.5 {
					continue
				}
				phase := running[t]*h + off*h
				if initial != nil {
					phase += initial[k]
				}
				acc += amps[t][k] * math.Sin(2*math.Pi*phase)
			}
			y[t] = acc
		}
		out[b] = y
	}
	return out, nil
}

// phaseOffsetShaped reports whether an optional per-sample offset matches the
// phase signal's batch shape and covers every row.
func phaseOffsetShaped(offset, phase [][]float64) bool {
	if offset == nil {
		return true
	}
	if len(offset) != len(phase) {
		return false
	}
	for b := range offset {
		if len(offset[b]) < len(phase[b]) {
			return false
		}
	}
	return true
}
