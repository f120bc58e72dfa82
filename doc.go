// Package glotsynth is the signal-synthesis core of a glottal-flow vocoder.
//
// It converts frame-rate acoustic control parameters (fundamental-frequency
// phase increments, spectral envelopes, filter coefficients, voicing and
// noise weights) into sample-rate audio by composing a band-limited
// oscillator bank, a noise generator, and a bank of linear filters whose
// coefficients vary per analysis frame or stay fixed.
//
// The root package defines the capability contracts the composition root
// wires together:
//   - Oscillator: phase increment + controls -> periodic excitation
//   - NoiseGenerator: conditioning signal -> noise excitation
//   - TimeVaryingFilter: signal + frame-rate controls -> signal
//   - StaticFilter: signal -> signal
//
// Implementations live in the oscillator, filter, and noise subpackages;
// frame/sample bookkeeping lives in types.TimeContext. Evaluation is whole
// utterance and batched: every operation is a pure array transform whose
// only state is the trainable parameters its module owns, mutated strictly
// between evaluations by an external optimizer.
package glotsynth
