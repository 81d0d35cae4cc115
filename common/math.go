package common

import "cmp"

// Clamp limits v to the closed range [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AddClamped adds delta to v without exceeding hi, guarding against int overflow.
func AddClamped(v, delta, hi int) int {
	if delta >= hi-v {
		return hi
	}
	return v + delta
}
