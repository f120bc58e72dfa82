// errors.go defines public error types for the filter package.

package filter

import "errors"

var (
	// ErrWindowTooShort indicates an analysis window shorter than twice
	// the hop length, for which overlap-add reconstruction breaks down.
	ErrWindowTooShort = errors.New("filter: window length must be >= 2 * hop length")

	// ErrMissingControl indicates that the control field a filter
	// requires was not supplied.
	ErrMissingControl = errors.New("filter: required control data missing")

	// ErrControlShape indicates control data whose batch shape or frame
	// count cannot serve the input signal.
	ErrControlShape = errors.New("filter: control data shape mismatch")

	// ErrInvalidRoots indicates a non-positive allpass root count.
	ErrInvalidRoots = errors.New("filter: invalid root count (must be >= 1)")

	// ErrInvalidMaxAbs indicates an allpass pole magnitude bound outside
	// (0, 1).
	ErrInvalidMaxAbs = errors.New("filter: max absolute pole value must be in (0, 1)")

	// ErrInvalidZeros indicates a non-positive radiation filter zero
	// count.
	ErrInvalidZeros = errors.New("filter: invalid number of zeros (must be >= 1)")
)
