package oscillator

import (
	"math"

	"github.com/glotsynth/glotsynth/dsp"
	"github.com/glotsynth/glotsynth/types"
)

// Sawtooth is a band-limited sawtooth built on the harmonic bank with the
// classic 1/k amplitude roll-off, evaluated with per-sample control
// (hop length 1).
type Sawtooth struct {
	bank *Harmonic
	gain float64
	amps []float64
}

// NewSawtooth returns a sawtooth oscillator with the given number of
// harmonics. gain is retained as configured output scaling metadata.
func NewSawtooth(numHarmonics int, gain float64) (*Sawtooth, error) {
	if numHarmonics < 1 {
		return nil, ErrInvalidHarmonics
	}
	amps := make([]float64, numHarmonics)
	for k := range amps {
		amps[k] = 1 / float64(k+1)
	}
	return &Sawtooth{bank: NewHarmonic(), gain: gain, amps: amps}, nil
}

// Gain returns the configured output gain.
func (o *Sawtooth) Gain() float64 { return o.gain }

// Synthesize renders the sawtooth. Amplitudes are fixed; only the phase
// increment and the optional stitching offsets from ctrl are consumed.
func (o *Sawtooth) Synthesize(upsampledPhase [][]float64, ctrl types.OscillatorControls, _ types.TimeContext) ([][]float64, error) {
	amplitudes := make([][][]float64, len(upsampledPhase))
	for b := range upsampledPhase {
		rows := make([][]float64, len(upsampledPhase[b]))
		for t := range rows {
			rows[t] = o.amps
		}
		amplitudes[b] = rows
	}
	ctrl.Amplitudes = amplitudes
	return o.bank.Synthesize(upsampledPhase, ctrl, types.TimeContext{HopLength: 1})
}

// PulseTrain emits an impulse of height 1/sqrt(phase_increment) at every
// phase wrap and zero elsewhere. It is a direct, alias-prone reference
// generator; see AdditivePulseTrain for the band-limited version.
type PulseTrain struct{}

// NewPulseTrain returns a pulse-train oscillator.
func NewPulseTrain() *PulseTrain {
	return &PulseTrain{}
}

// Synthesize renders the pulse train. Only the phase increment and the
// optional ctrl.PhaseOffset are consumed.
func (o *PulseTrain) Synthesize(upsampledPhase [][]float64, ctrl types.OscillatorControls, _ types.TimeContext) ([][]float64, error) {
	if !dsp.InRange(upsampledPhase, 0, 0.5) {
		return nil, ErrPhaseOutOfRange
	}
	if !phaseOffsetShaped(ctrl.PhaseOffset, upsampledPhase) {
		return nil, ErrControlShape
	}
	out := make([][]float64, len(upsampledPhase))
	for b := range upsampledPhase {
		inc := upsampledPhase[b]
		var offset []float64
		if ctrl.PhaseOffset != nil {
			offset = ctrl.PhaseOffset[b]
		}
		phase := wrapPhase(inc, offset)
		y := make([]float64, len(inc))
		for t := 1; t < len(phase); t++ {
			if phase[t]-phase[t-1] < 0 {
				y[t] = 1 / math.Sqrt(inc[t])
			}
		}
		out[b] = y
	}
	return out, nil
}

// DefaultPulseTrainHarmonics is the default harmonic budget for
// AdditivePulseTrain; the bank's alias muting trims it to the local pitch.
const DefaultPulseTrainHarmonics = 155

// AdditivePulseTrain approximates a pulse train with the harmonic bank: a
// frequency-dependent number of harmonics contribute, each scaled by
// 1/sqrt(0.5/phase_increment), evaluated with per-sample control.
type AdditivePulseTrain struct {
	bank         *Harmonic
	numHarmonics int
}

// NewAdditivePulseTrain returns an additive pulse train with the given
// harmonic budget; the bank's alias muting trims it per sample.
func NewAdditivePulseTrain(numHarmonics int) (*AdditivePulseTrain, error) {
	if numHarmonics < 1 {
		return nil, ErrInvalidHarmonics
	}
	return &AdditivePulseTrain{bank: NewHarmonic(), numHarmonics: numHarmonics}, nil
}

// Synthesize renders the band-limited pulse train. Only the phase increment
// and the optional stitching offsets from ctrl are consumed.
func (o *AdditivePulseTrain) Synthesize(upsampledPhase [][]float64, ctrl types.OscillatorControls, _ types.TimeContext) ([][]float64, error) {
	if !dsp.InRange(upsampledPhase, 0, 0.5) {
		return nil, ErrPhaseOutOfRange
	}
	amplitudes := make([][][]float64, len(upsampledPhase))
	for b := range upsampledPhase {
		rows := make([][]float64, len(upsampledPhase[b]))
		for t, inc := range upsampledPhase[b] {
			// Empirical flat roll-off tied to the local pitch.
			amp := 1 / math.Sqrt(0.5/inc)
			row := make([]float64, o.numHarmonics)
			for k := range row {
				row[k] = amp
			}
			rows[t] = row
		}
		amplitudes[b] = rows
	}
	ctrl.Amplitudes = amplitudes
	return o.bank.Synthesize(upsampledPhase, ctrl, types.TimeContext{HopLength: 1})
}
