package features

import "math"

var nan = math.NaN()

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// sub returns a-b, or NaN unless both are finite.
func sub(a, b float64) float64 {
	if !finite(a) || !finite(b) {
		return nan
	}
	return a - b
}

// ratio returns num/den, or NaN unless both are finite and den is non-zero.
func ratio(num, den float64) float64 {
	if !finite(num) || !finite(den) || den == 0 {
		return nan
	}
	return num / den
}

// maxFinite ignores non-finite samples; it is NaN when none are finite.
func maxFinite(values []float64) float64 {
	out := nan
	for _, v := range values {
		if finite(v) && (math.IsNaN(out) || v > out) {
			out = v
		}
	}
	return out
}

// minFinite ignores non-finite samples; it is NaN when none are finite.
func minFinite(values []float64) float64 {
	out := nan
	for _, v := range values {
		if finite(v) && (math.IsNaN(out) || v < out) {
			out = v
		}
	}
	return out
}

func sign(v float64) int {
	switch {
	case !finite(v) || v == 0:
		return 0
	case v > 0:
		return 1
	default:
		return -1
	}
}
