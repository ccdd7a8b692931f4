package voxeltrace

import "math"

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

// saturate clamps x to [0,1].
func saturate(x Real) Real {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func clamp(x, lo, hi Real) Real {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// fract wraps x into [0,1).
func fract(x Real) Real {
	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}
