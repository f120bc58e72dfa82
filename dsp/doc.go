// Package dsp provides the shared signal primitives used by the glotsynth
// oscillator and filter packages: frame-rate to sample-rate interpolation,
// cumulative phase accumulation, window generation, the Hilbert transform,
// and small polynomial and inner-product helpers.
//
// All routines operate on float64 slices. Batched callers iterate the batch
// dimension themselves; the inner loops here are written as straight slice
// arithmetic so the compiler can vectorize them.
package dsp
