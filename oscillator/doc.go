// Package oscillator implements the glotsynth oscillator bank: a
// band-limited additive harmonic oscillator, glottal-flow wavetable
// oscillators morphing along a voice-quality axis, and derived sawtooth and
// pulse-train generators.
//
// Every oscillator consumes a per-sample phase-increment signal in
// [0, 0.5] cycles per sample and control data supplied through
// types.OscillatorControls, and produces a per-sample waveform of matching
// batch shape.
package oscillator
