// errors.go defines public error types for the glotsynth package.

package glotsynth

import "errors"

var (
	// ErrPhaseOutOfRange indicates a phase increment outside [0, 0.5]
	// cycles per sample.
	ErrPhaseOutOfRange = errors.New("glotsynth: phase increment out of range (must be in [0, 0.5])")

	// ErrVoicingOutOfRange indicates a voicing weight outside [0, 1].
	ErrVoicingOutOfRange = errors.New("glotsynth: voicing weight out of range (must be in [0, 1])")

	// ErrShapeMismatch indicates control data whose batch dimension does
	// not match the phase-increment signal.
	ErrShapeMismatch = errors.New("glotsynth: control batch shape mismatch")

	// ErrMissingOscillator indicates a synth constructed without a
	// harmonic oscillator.
	ErrMissingOscillator = errors.New("glotsynth: harmonic oscillator is required")

	// ErrMissingNoiseGenerator indicates a synth constructed without a
	// noise generator.
	ErrMissingNoiseGenerator = errors.New("glotsynth: noise generator is required")
)
