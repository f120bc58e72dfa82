package noise

import (
	"math"
	"testing"

	"github.com/glotsynth/glotsynth/types"
)

func TestGaussianShapeAndScale(t *testing.T) {
	g := NewGaussian(0.1, 42)
	conditioning := [][]float64{make([]float64, 10000), make([]float64, 500)}
	out, err := g.Generate(conditioning, types.TimeContext{HopLength: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || len(out[0]) != 10000 || len(out[1]) != 500 {
		t.Fatalf("shape = (%d, %d, %d), want (2, 10000, 500)", len(out), len(out[0]), len(out[1]))
	}

	var sum, sumSq float64
	for _, v := range out[0] {
		sum += v
		sumSq += v * v
	}
	n := float64(len(out[0]))
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)
	if math.Abs(mean) > 0.005 {
		t.Errorf("sample mean = %v, want near 0", mean)
	}
	if math.Abs(std-0.1) > 0.005 {
		t.Errorf("sample std = %v, want near 0.1", std)
	}
}

func TestGaussianSeedReproducibility(t *testing.T) {
	conditioning := [][]float64{make([]float64, 64)}
	a, err := NewGaussian(1, 7).Generate(conditioning, types.TimeContext{HopLength: 1})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGaussian(1, 7).Generate(conditioning, types.TimeContext{HopLength: 1})
	if err != nil {
		t.Fatal(err)
	}
	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatalf("seeded streams diverge at %d", i)
		}
	}
}

func TestZero(t *testing.T) {
	out, err := Zero{}.Generate([][]float64{make([]float64, 32)}, types.TimeContext{HopLength: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(out[0]) != 32 {
		t.Fatalf("length = %d, want 32", len(out[0]))
	}
	for i, v := range out[0] {
		if v != 0 {
			t.Errorf("out[%d] = %v, want 0", i, v)
		}
	}
}
