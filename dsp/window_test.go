package dsp

import (
	"errors"
	"math"
	"testing"
)

func TestWindowHann(t *testing.T) {
	w, err := Window("hann", 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(w) != 9 {
		t.Fatalf("length = %d, want 9", len(w))
	}
	if w[0] != 0 || w[8] != 0 {
		t.Errorf("endpoints = %v, %v, want 0, 0", w[0], w[8])
	}
	if math.Abs(w[4]-1) > 1e-12 {
		t.Errorf("center = %v, want 1", w[4])
	}
	// Symmetry.
	for i := 0; i < 4; i++ {
		if math.Abs(w[i]-w[8-i]) > 1e-12 {
			t.Errorf("asymmetric at %d: %v vs %v", i, w[i], w[8-i])
		}
	}
}

func TestWindowAliases(t *testing.T) {
	a, err := Window("hann", 16)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Window("hanning", 16)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("alias mismatch at %d", i)
		}
	}
}

func TestWindowRectangular(t *testing.T) {
	w, err := Window("rectangular", 5)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range w {
		if v != 1 {
			t.Errorf("w[%d] = %v, want 1", i, v)
		}
	}
}

func TestWindowUnknown(t *testing.T) {
	if _, err := Window("kaiser-bessel-derived", 8); !errors.Is(err, ErrUnknownWindow) {
		t.Errorf("error = %v, want ErrUnknownWindow", err)
	}
	if _, err := Window("hann", 0); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("error = %v, want ErrInvalidLength", err)
	}
}
