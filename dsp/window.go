package dsp

import "gonum.org/v1/gonum/dsp/window"

// Window returns the sample weights of the named window function at the
// given length. Recognized names: "hann" (alias "hanning"), "hamming",
// "blackman", "blackmanharris", "nuttall", "flattop", "triangular"
// (alias "bartlett"), "rectangular" (alias "boxcar"). An unknown name is a
// precondition failure.
func Window(name string, length int) ([]float64, error) {
	if length < 1 {
		return nil, ErrInvalidLength
	}
	fn, ok := windowFuncs[name]
	if !ok {
		return nil, ErrUnknownWindow
	}
	w := make([]float64, length)
	for i := range w {
		w[i] = 1
	}
	return fn(w), nil
}

var windowFuncs = map[string]func([]float64) []float64{
	"hann":           window.Hann,
	"hanning":        window.Hann,
	"hamming":        window.Hamming,
	"blackman":       window.Blackman,
	"blackmanharris": window.BlackmanHarris,
	"nuttall":        window.Nuttall,
	"flattop":        window.FlatTop,
	"triangular":     window.Triangular,
	"bartlett":       window.Triangular,
	"rectangular":    window.Rectangular,
	"boxcar":         window.Rectangular,
}
