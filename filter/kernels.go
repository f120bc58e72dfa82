package filter

import (
	"math"
	"math/cmplx"

	"github.com/glotsynth/glotsynth/dsp"
)

// minimumPhaseKernel converts one frame's log-magnitude half spectrum
// (length nfft/2+1, nfft even) into a minimum-phase time-domain FIR kernel
// of length nfft. The minimum-phase spectral phase is the negated Hilbert
// conjugate of the symmetric log-magnitude.
func minimumPhaseKernel(logMag []float64) []float64 {
	m := len(logMag)
	n := 2 * (m - 1)

	// Mirror to the full symmetric log-magnitude spectrum.
	full := make([]float64, n)
	copy(full, logMag)
	for i := 1; i < m-1; i++ {
		full[n-i] = logMag[i]
	}

	analytic := dsp.Hilbert(full)
	spectrum := make([]complex128, n)
	for i := range spectrum {
		phase := -imag(analytic[i])
		spectrum[i] = cmplx.Exp(complex(full[i], phase))
	}
	return dsp.IFFTReal(spectrum)
}

// zeroPhaseKernel converts one frame's log-magnitude half spectrum into a
// zero-phase kernel of length nfft: the magnitude is inverse-transformed
// directly and shifted so the kernel is even about its midpoint.
func zeroPhaseKernel(logMag []float64) []float64 {
	m := len(logMag)
	half := make([]complex128, m)
	for i, v := range logMag {
		half[i] = complex(math.Exp(v), 0)
	}
	return dsp.FFTShift(dsp.IRFFT(half))
}

// windowKernelTail windows only the decaying tail of a minimum-phase
// kernel: the causal half up to the midpoint is left untouched.
func windowKernelTail(kernel, window []float64) {
	half := len(kernel) / 2
	for i := half; i < len(kernel); i++ {
		kernel[i] *= window[i]
	}
}

// windowKernel windows a zero-phase kernel symmetrically.
func windowKernel(kernel, window []float64) {
	for i := range kernel {
		kernel[i] *= window[i]
	}
}
