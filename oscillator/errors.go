// errors.go defines public error types for the oscillator package.

package oscillator

import "errors"

var (
	// ErrPhaseOutOfRange indicates a phase increment outside [0, 0.5]
	// cycles per sample.
	ErrPhaseOutOfRange = errors.New("oscillator: phase increment out of range (must be in [0, 0.5])")

	// ErrControlOutOfRange indicates a table-selection control or weight
	// outside [0, 1].
	ErrControlOutOfRange = errors.New("oscillator: table selection control out of range (must be in [0, 1])")

	// ErrMissingControl indicates that the control field an oscillator
	// requires was not supplied.
	ErrMissingControl = errors.New("oscillator: required control data missing")

	// ErrControlShape indicates control data whose batch or inner
	// dimension does not match the oscillator's expectation.
	ErrControlShape = errors.New("oscillator: control data shape mismatch")

	// ErrUnknownTableType indicates an unrecognized glottal table type.
	ErrUnknownTableType = errors.New("oscillator: unknown table type (must be \"derivative\" or \"flow\")")

	// ErrUnknownNormalization indicates an unrecognized table
	// normalization method.
	ErrUnknownNormalization = errors.New("oscillator: unknown normalize method (must be \"constant_power\", \"peak\", or \"none\")")

	// ErrInvalidTableConfig indicates a non-positive table size or length
	// or an empty R_d range.
	ErrInvalidTableConfig = errors.New("oscillator: invalid table configuration")

	// ErrInvalidHarmonics indicates a non-positive harmonic count.
	ErrInvalidHarmonics = errors.New("oscillator: invalid number of harmonics (must be >= 1)")

	// ErrInvalidHopRate indicates a non-positive downsampling hop rate.
	ErrInvalidHopRate = errors.New("oscillator: invalid hop rate (must be >= 1)")
)
