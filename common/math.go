package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveTowards moves current toward target by at most maxDelta without overshooting.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + Sign(target-current)*maxDelta
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApproxEqual reports whether a and b differ by no more than eps.
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
