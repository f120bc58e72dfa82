package dsp

import "math"

// CumulativeSum returns the running sum of x: out[i] = x[0] + ... + x[i].
func CumulativeSum(x []float64) []float64 {
	out := make([]float64, len(x))
	var acc float64
	for i, v := range x {
		acc += v
		out[i] = acc
	}
	return out
}

// Wrap01 wraps x into [0, 1). Negative inputs wrap from the top, matching
// the behavior of a floored modulo.
func Wrap01(x float64) float64 {
	w := math.Mod(x, 1)
	if w < 0 {
		w++
	}
	return w
}

// InnerProduct computes the dot product of a and b over the first length
// samples, accumulating in four independent lanes so the loop
// auto-vectorizes.
func InnerProduct(a, b []float64, length int) float64 {
	if length <= 0 {
		return 0
	}
	a = a[:length:length]
	b = b[:length:length]
	var s0, s1, s2, s3 float64
	i := 0
	n := len(a) - 3
	for ; i < n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	for ; i < len(a); i++ {
		s0 += a[i] * b[i]
	}
	return s0 + s1 + s2 + s3
}

// PolyMul convolves two polynomial coefficient sequences (lowest order
// first), returning the coefficients of their product.
func PolyMul(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// InRange reports whether every sample of a batched signal lies in
// [lo, hi]. NaN fails the check.
func InRange(x [][]float64, lo, hi float64) bool {
	for _, row := range x {
		for _, v := range row {
			if !(v >= lo && v <= hi) {
				return false
			}
		}
	}
	return true
}

// InRange3 reports whether every entry of a (batch, frames, dims) sequence
// lies in [lo, hi]. NaN fails the check.
func InRange3(x [][][]float64, lo, hi float64) bool {
	for _, frames := range x {
		if !InRange(frames, lo, hi) {
			return false
		}
	}
	return true
}

// Signed is a constraint for signed integer and float types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Min returns the smaller of a and b.
func Min[T Signed](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Clamp limits x to the range [lo, hi].
func Clamp[T Signed](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
