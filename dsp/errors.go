// errors.go defines public error types for the dsp package.

package dsp

import "errors"

var (
	// ErrUnknownWindow indicates an unrecognized window-function name.
	ErrUnknownWindow = errors.New("dsp: unknown window name")

	// ErrInvalidLength indicates a non-positive sequence length.
	ErrInvalidLength = errors.New("dsp: invalid length (must be >= 1)")
)
