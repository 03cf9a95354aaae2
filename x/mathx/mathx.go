package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Percent returns 100*part/whole clamped to [0,100], with whole==0 -> 0.
// Integer maths only; used for the buffer and free-space status rows.
func Percent[T constraints.Integer](part, whole T) int {
	if whole == 0 {
		return 0
	}
	return Clamp(int(100*int64(part)/int64(whole)), 0, 100)
}
