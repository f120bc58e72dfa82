package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/glotsynth/glotsynth/types"
)

// flatLogMag builds a frame-rate log-magnitude control of all zeros, whose
// spectrum is unity at every bin.
func flatLogMag(frames, bins int) types.FilterControls {
	rows := make([][]float64, frames)
	for f := range rows {
		rows[f] = make([]float64, bins)
	}
	return types.FilterControls{LogMag: [][][]float64{rows}}
}

func TestMinimumPhaseFIRPreciseIdentity(t *testing.T) {
	// A flat log magnitude derives a unit-impulse kernel, so the precise
	// realization is an exact identity.
	f, err := NewLTVMinimumPhaseFIRPrecise("hann")
	if err != nil {
		t.Fatal(err)
	}
	x := rampSignal(32)
	out, err := f.Apply(x, flatLogMag(8, 9), types.TimeContext{HopLength: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(out[0]) != 32 {
		t.Fatalf("length = %d, want 32", len(out[0]))
	}
	for i := range out[0] {
		if math.Abs(out[0][i]-x[0][i]) > 1e-9 {
			t.Errorf("out[%d] = %v, want %v", i, out[0][i], x[0][i])
		}
	}
}

func TestMinimumPhaseFIRFramedIdentity(t *testing.T) {
	f, err := NewLTVMinimumPhaseFIR("hann")
	if err != nil {
		t.Fatal(err)
	}
	x := rampSignal(32)
	out, err := f.Apply(x, flatLogMag(8, 9), types.TimeContext{HopLength: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(out[0]) != 32 {
		t.Fatalf("length = %d, want 32", len(out[0]))
	}
	for i := range out[0] {
		if math.Abs(out[0][i]-x[0][i]) > 1e-9 {
			t.Errorf("out[%d] = %v, want %v", i, out[0][i], x[0][i])
		}
	}
}

func TestMinimumPhaseFIRScaling(t *testing.T) {
	// A constant log magnitude of c scales the signal by exp(c).
	f, err := NewLTVMinimumPhaseFIRPrecise("hann")
	if err != nil {
		t.Fatal(err)
	}
	ctrl := flatLogMag(8, 9)
	for fr := range ctrl.LogMag[0] {
		for i := range ctrl.LogMag[0][fr] {
			ctrl.LogMag[0][fr][i] = 0.5
		}
	}
	x := rampSignal(32)
	out, err := f.Apply(x, ctrl, types.TimeContext{HopLength: 4})
	if err != nil {
		t.Fatal(err)
	}
	scale := math.Exp(0.5)
	for i := range out[0] {
		if math.Abs(out[0][i]-scale*x[0][i]) > 1e-9 {
			t.Errorf("out[%d] = %v, want %v", i, out[0][i], scale*x[0][i])
		}
	}
}

func TestZeroPhaseFIRPreciseShift(t *testing.T) {
	// For an even nfft the flat-spectrum zero-phase kernel is an impulse
	// at index nfft/2 while the group-delay compensation uses (nfft-1)/2,
	// so the realization advances the signal by exactly one sample. The
	// rectangular window keeps the kernel untouched.
	f, err := NewLTVZeroPhaseFIRPrecise("rectangular")
	if err != nil {
		t.Fatal(err)
	}
	x := rampSignal(32)
	out, err := f.Apply(x, flatLogMag(8, 9), types.TimeContext{HopLength: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(out[0]) != 32 {
		t.Fatalf("length = %d, want 32", len(out[0]))
	}
	for i := 0; i < 31; i++ {
		if math.Abs(out[0][i]-x[0][i+1]) > 1e-9 {
			t.Errorf("out[%d] = %v, want %v", i, out[0][i], x[0][i+1])
		}
	}
	if math.Abs(out[0][31]) > 1e-9 {
		t.Errorf("out[31] = %v, want 0 past the signal end", out[0][31])
	}
}

func TestZeroPhaseFIRFramedShift(t *testing.T) {
	f, err := NewLTVZeroPhaseFIR("rectangular")
	if err != nil {
		t.Fatal(err)
	}
	x := rampSignal(32)
	out, err := f.Apply(x, flatLogMag(8, 9), types.TimeContext{HopLength: 4})
	if err != nil {
		t.Fatal(err)
	}
	// kernel length 16, one-sided padding 7: 7 frames of 4 samples.
	if len(out[0]) != 28 {
		t.Fatalf("length = %d, want 28", len(out[0]))
	}
	for i := range out[0] {
		if math.Abs(out[0][i]-x[0][i+1]) > 1e-9 {
			t.Errorf("out[%d] = %v, want %v", i, out[0][i], x[0][i+1])
		}
	}
}

func TestFIRControlErrors(t *testing.T) {
	f, err := NewLTVMinimumPhaseFIR("hann")
	if err != nil {
		t.Fatal(err)
	}
	x := rampSignal(32)

	_, err = f.Apply(x, types.FilterControls{}, types.TimeContext{HopLength: 4})
	if !errors.Is(err, ErrMissingControl) {
		t.Errorf("error = %v, want ErrMissingControl", err)
	}

	// 4 frames of control cannot cover 8 signal frames.
	_, err = f.Apply(x, flatLogMag(4, 9), types.TimeContext{HopLength: 4})
	if !errors.Is(err, ErrControlShape) {
		t.Errorf("error = %v, want ErrControlShape", err)
	}

	// Ragged spectra are rejected.
	ctrl := flatLogMag(2, 9)
	ctrl.LogMag[0][1] = make([]float64, 5)
	_, err = f.Apply(x, ctrl, types.TimeContext{HopLength: 4})
	if !errors.Is(err, ErrControlShape) {
		t.Errorf("error = %v, want ErrControlShape", err)
	}
}

func TestFIRUnknownWindow(t *testing.T) {
	if _, err := NewLTVMinimumPhaseFIRPrecise("gabor"); err == nil {
		t.Error("unknown window accepted")
	}
	if _, err := NewLTVZeroPhaseFIR("gabor"); err == nil {
		t.Error("unknown window accepted")
	}
}
