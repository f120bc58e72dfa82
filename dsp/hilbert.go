package dsp

import "gonum.org/v1/gonum/dsp/fourier"

// Hilbert returns the analytic signal of x: the complex sequence whose real
// part is x and whose imaginary part is the Hilbert transform of x. It is
// computed by zeroing the negative-frequency half of the spectrum and
// doubling the positive half (DC and, for even lengths, Nyquist are kept
// as-is).
func Hilbert(x []float64) []complex128 {
	n := len(x)
	if n == 0 {
		return nil
	}
	fft := fourier.NewCmplxFFT(n)
	seq := make([]complex128, n)
	for i, v := range x {
		seq[i] = complex(v, 0)
	}
	coeff := fft.Coefficients(nil, seq)

	// One-sided spectrum multiplier.
	half := n / 2
	for i := 1; i < n; i++ {
		switch {
		case n%2 == 0 && i == half:
			// Nyquist bin stays.
		case i < half || (n%2 == 1 && i <= half):
			coeff[i] *= 2
		default:
			coeff[i] = 0
		}
	}

	out := fft.Sequence(nil, coeff)
	scale := complex(1/float64(n), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// IFFTReal returns the real part of the inverse DFT of the given full
// complex spectrum, normalized by the sequence length.
func IFFTReal(spectrum []complex128) []float64 {
	n := len(spectrum)
	if n == 0 {
		return nil
	}
	fft := fourier.NewCmplxFFT(n)
	seq := fft.Sequence(nil, spectrum)
	out := make([]float64, n)
	for i, v := range seq {
		out[i] = real(v) / float64(n)
	}
	return out
}

// IRFFT computes the inverse real DFT of a half spectrum of length m,
// returning a real sequence of length 2*(m-1), normalized.
func IRFFT(halfSpectrum []complex128) []float64 {
	m := len(halfSpectrum)
	if m < 2 {
		return nil
	}
	n := 2 * (m - 1)
	fft := fourier.NewFFT(n)
	out := fft.Sequence(nil, halfSpectrum)
	for i := range out {
		out[i] /= float64(n)
	}
	return out
}

// FFTShift rotates x so the zero-lag sample moves to the center, turning a
// causal-wrapped kernel into one even about its midpoint.
func FFTShift(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	half := n / 2
	copy(out, x[n-half:])
	copy(out[half:], x[:n-half])
	return out
}
