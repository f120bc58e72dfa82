package glotsynth

import (
	"fmt"

	"github.com/glotsynth/glotsynth/dsp"
	"github.com/glotsynth/glotsynth/types"
)

// Oscillator converts an upsampled per-sample phase increment in [0, 0.5]
// and oscillator-specific control data into a periodic excitation signal.
type Oscillator interface {
	Synthesize(upsampledPhase [][]float64, ctrl types.OscillatorControls, ctx types.TimeContext) ([][]float64, error)
}

// NoiseGenerator produces a noise excitation conditioned on a signal,
// typically the harmonic excitation.
type NoiseGenerator interface {
	Generate(conditioning [][]float64, ctx types.TimeContext) ([][]float64, error)
}

// TimeVaryingFilter reshapes a signal's spectral envelope under frame-rate
// control data.
type TimeVaryingFilter interface {
	Apply(ex [][]float64, ctrl types.FilterControls, ctx types.TimeContext) ([][]float64, error)
}

// StaticFilter is a time-invariant filter with a single-signature apply.
type StaticFilter interface {
	Apply(ex [][]float64) ([][]float64, error)
}

// HarmonicPlusNoiseSynth wires one oscillator, one noise generator,
// optional per-path time-varying filters, and an optional static end filter
// into a complete synthesis pipeline. It holds no state across calls beyond
// the trainable parameters its components own.
type HarmonicPlusNoiseSynth struct {
	// Time-varying components.
	HarmOscillator Oscillator
	NoiseGenerator NoiseGenerator
	HarmFilter     TimeVaryingFilter // optional
	NoiseFilter    TimeVaryingFilter // optional

	// Static components.
	EndFilter StaticFilter // optional
}

// NewHarmonicPlusNoiseSynth builds a synth from its components. The
// oscillator and noise generator are required; filters may be nil.
func NewHarmonicPlusNoiseSynth(osc Oscillator, noiseGen NoiseGenerator, harmFilter, noiseFilter TimeVaryingFilter, endFilter StaticFilter) (*HarmonicPlusNoiseSynth, error) {
	if osc == nil {
		return nil, ErrMissingOscillator
	}
	if noiseGen == nil {
		return nil, ErrMissingNoiseGenerator
	}
	return &HarmonicPlusNoiseSynth{
		HarmOscillator: osc,
		NoiseGenerator: noiseGen,
		HarmFilter:     harmFilter,
		NoiseFilter:    noiseFilter,
		EndFilter:      endFilter,
	}, nil
}

// Params carries the per-call control data produced by the upstream
// parameter predictor.
type Params struct {
	// PhaseIncrement is the frame-rate fundamental-frequency increment
	// (batch, frames) in [0, 0.5] cycles per sample.
	PhaseIncrement [][]float64

	// Voicing optionally gates the phase increment sample-wise,
	// (batch, frames) in [0, 1].
	Voicing [][]float64

	// Oscillator is handed to the harmonic oscillator.
	Oscillator types.OscillatorControls

	// HarmFilter and NoiseFilter are handed to the respective
	// time-varying filters when present.
	HarmFilter  types.FilterControls
	NoiseFilter types.FilterControls
}

// Synthesize renders one utterance: the phase increment is upsampled and
// optionally voicing-gated, the oscillator produces the harmonic
// excitation, the noise generator produces a noise excitation conditioned
// on it, each path is independently filtered, the paths are truncated to
// the shorter length and summed, and the optional end filter shapes the
// result.
func (s *HarmonicPlusNoiseSynth) Synthesize(ctx types.TimeContext, p Params) ([][]float64, error) {
	if p.PhaseIncrement == nil {
		return nil, ErrShapeMismatch
	}
	if !dsp.InRange(p.PhaseIncrement, 0, 0.5) {
		return nil, ErrPhaseOutOfRange
	}
	upsampledPhase := dsp.LinearUpsampleBatch(p.PhaseIncrement, ctx.HopLength)

	if p.Voicing != nil {
		if len(p.Voicing) != len(p.PhaseIncrement) {
			return nil, ErrShapeMismatch
		}
		if !dsp.InRange(p.Voicing, 0, 1) {
			return nil, ErrVoicingOutOfRange
		}
		upsampledVoicing := dsp.LinearUpsampleBatch(p.Voicing, ctx.HopLength)
		for b := range upsampledPhase {
			n := dsp.Min(len(upsampledPhase[b]), len(upsampledVoicing[b]))
			for i := 0; i < n; i++ {
				upsampledPhase[b][i] *= upsampledVoicing[b][i]
			}
		}
	}

	harm, err := s.HarmOscillator.Synthesize(upsampledPhase, p.Oscillator, ctx)
	if err != nil {
		return nil, fmt.Errorf("harmonic oscillator: %w", err)
	}
	noiseSig, err := s.NoiseGenerator.Generate(harm, ctx)
	if err != nil {
		return nil, fmt.Errorf("noise generator: %w", err)
	}

	if s.HarmFilter != nil {
		harm, err = s.HarmFilter.Apply(harm, p.HarmFilter, ctx)
		if err != nil {
			return nil, fmt.Errorf("harmonic filter: %w", err)
		}
	}
	if s.NoiseFilter != nil {
		noiseSig, err = s.NoiseFilter.Apply(noiseSig, p.NoiseFilter, ctx)
		if err != nil {
			return nil, fmt.Errorf("noise filter: %w", err)
		}
	}

	// Time-align both paths to the shorter length and sum.
	out := make([][]float64, len(harm))
	for b := range harm {
		n := dsp.Min(len(harm[b]), len(noiseSig[b]))
		row := make([]float64, n)
		for i := 0; i < n; i++ {
			row[i] = harm[b][i] + noiseSig[b][i]
		}
		out[b] = row
	}

	if s.EndFilter != nil {
		out, err = s.EndFilter.Apply(out)
		if err != nil {
			return nil, fmt.Errorf("end filter: %w", err)
		}
	}
	return out, nil
}
