package oscillator

import (
	"errors"
	"math"
	"testing"

	"github.com/glotsynth/glotsynth/types"
)

func TestPulseTrainImpulses(t *testing.T) {
	// At a quarter cycle per sample the phase wraps every 4 samples, so an
	// impulse of height 1/sqrt(0.25) = 2 lands at t = 3, 7, 11.
	osc := NewPulseTrain()
	out, err := osc.Synthesize(constantPhase(0.25, 12), types.OscillatorControls{}, types.TimeContext{HopLength: 1})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out[0] {
		want := 0.0
		if i%4 == 3 {
			want = 2
		}
		if math.Abs(v-want) > 1e-12 {
			t.Errorf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestPulseTrainSplitCallContinuity(t *testing.T) {
	// Carrying the accumulated phase into the second call keeps the
	// impulse grid aligned with the whole-length render. The increment is
	// a binary fraction so the carried phase is exact.
	osc := NewPulseTrain()
	ctx := types.TimeContext{HopLength: 1}
	const (
		inc  = 1.0 / 64
		n    = 192
		half = n / 2
	)

	full, err := osc.Synthesize(constantPhase(inc, n), types.OscillatorControls{}, ctx)
	if err != nil {
		t.Fatal(err)
	}

	first, err := osc.Synthesize(constantPhase(inc, half), types.OscillatorControls{}, ctx)
	if err != nil {
		t.Fatal(err)
	}

	carried := inc * float64(half)
	offset := make([]float64, half)
	for i := range offset {
		offset[i] = carried
	}
	second, err := osc.Synthesize(constantPhase(inc, half), types.OscillatorControls{
		PhaseOffset: [][]float64{offset},
	}, ctx)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < half; i++ {
		if full[0][i] != first[0][i] {
			t.Fatalf("first half diverges at %d: %v vs %v", i, full[0][i], first[0][i])
		}
		if full[0][half+i] != second[0][i] {
			t.Fatalf("second half diverges at %d: %v vs %v", i, full[0][half+i], second[0][i])
		}
	}
}

func TestPulseTrainOffsetShape(t *testing.T) {
	// An offset row shorter than the signal is a precondition failure,
	// never an index panic.
	osc := NewPulseTrain()
	_, err := osc.Synthesize(constantPhase(0.25, 16), types.OscillatorControls{
		PhaseOffset: [][]float64{{0.1, 0.2}},
	}, types.TimeContext{HopLength: 1})
	if !errors.Is(err, ErrControlShape) {
		t.Errorf("error = %v, want ErrControlShape", err)
	}
}

func TestPulseTrainPhaseRange(t *testing.T) {
	osc := NewPulseTrain()
	_, err := osc.Synthesize(constantPhase(0.6, 8), types.OscillatorControls{}, types.TimeContext{HopLength: 1})
	if !errors.Is(err, ErrPhaseOutOfRange) {
		t.Errorf("error = %v, want ErrPhaseOutOfRange", err)
	}
}

func TestSawtoothSingleHarmonic(t *testing.T) {
	// One harmonic reduces the sawtooth to a plain sine.
	osc, err := NewSawtooth(1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if osc.Gain() != 0.5 {
		t.Errorf("gain = %v, want 0.5", osc.Gain())
	}
	const inc = 0.02
	out, err := osc.Synthesize(constantPhase(inc, 32), types.OscillatorControls{}, types.TimeContext{HopLength: 1})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out[0] {
		want := math.Sin(2 * math.Pi * inc * float64(i+1))
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestSawtoothRollOff(t *testing.T) {
	// The k-th harmonic carries amplitude 1/k: with two harmonics the
	// output is sin(w t) + sin(2 w t)/2.
	osc, err := NewSawtooth(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	const inc = 0.05
	out, err := osc.Synthesize(constantPhase(inc, 40), types.OscillatorControls{}, types.TimeContext{HopLength: 1})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out[0] {
		arg := 2 * math.Pi * inc * float64(i+1)
		want := math.Sin(arg) + math.Sin(2*arg)/2
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestSawtoothInvalidHarmonics(t *testing.T) {
	if _, err := NewSawtooth(0, 1); !errors.Is(err, ErrInvalidHarmonics) {
		t.Errorf("error = %v, want ErrInvalidHarmonics", err)
	}
}

func TestAdditivePulseTrainAmplitude(t *testing.T) {
	// One harmonic at inc = 0.125 gives a sine scaled by
	// 1/sqrt(0.5/0.125) = 0.5.
	osc, err := NewAdditivePulseTrain(1)
	if err != nil {
		t.Fatal(err)
	}
	const inc = 0.125
	out, err := osc.Synthesize(constantPhase(inc, 32), types.OscillatorControls{}, types.TimeContext{HopLength: 1})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out[0] {
		want := 0.5 * math.Sin(2*math.Pi*inc*float64(i+1))
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestAdditivePulseTrainAliasBudget(t *testing.T) {
	// A generous harmonic budget is trimmed per sample by the bank's alias
	// muting: at inc = 0.2 only harmonics 1 and 2 survive.
	osc, err := NewAdditivePulseTrain(16)
	if err != nil {
		t.Fatal(err)
	}
	const inc = 0.2
	out, err := osc.Synthesize(constantPhase(inc, 32), types.OscillatorControls{}, types.TimeContext{HopLength: 1})
	if err != nil {
		t.Fatal(err)
	}
	amp := 1 / math.Sqrt(0.5/inc)
	for i, v := range out[0] {
		arg := 2 * math.Pi * inc * float64(i+1)
		want := amp * (math.Sin(arg) + math.Sin(2*arg))
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("out[%d] = %v, want %v", i, v, want)
		}
	}
}
