// Package filter implements the glotsynth filter bank: time-varying filters
// whose coefficients change per analysis frame (a windowed overlap-add
// all-pole filter and minimum-/zero-phase FIR filters in precise and framed
// realizations) and time-invariant filters (a fixed lip-radiation FIR and
// trainable allpass cascades).
//
// Time-varying filters take their frame-rate control data through
// types.FilterControls together with a types.TimeContext; time-invariant
// filters apply with a single-signature Apply(signal).
package filter
