// Package bounds holds overflow-safe range checks shared by the arena and the
// interpreter.
package bounds

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrSize indicates a non-positive or overflowing length.
	ErrSize = errors.New("bounds: invalid size")

	// ErrRange indicates a range that does not fit inside the addressable space.
	ErrRange = errors.New("bounds: out of range")
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow int.
// Used for cell count * cell size calculations.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, false
	}
	if a < 0 && b < 0 && a < math.MaxInt/b {
		return 0, false
	}
	if a > 0 && b < 0 && b < math.MinInt/a {
		return 0, false
	}
	if a < 0 && b > 0 && a < math.MinInt/b {
		return 0, false
	}
	return a * b, true
}

// In reports whether addr lies in [0, capacity).
func In(capacity, addr int) bool {
	return addr >= 0 && addr < capacity
}

// CheckRange validates that [start, start+length) lies inside [0, capacity).
// It returns the exclusive end of the range.
//
// A length <= 0 yields ErrSize. A start or last cell outside the space, or an
// end that would overflow int, yields ErrRange.
func CheckRange(capacity, start, length int) (int, error) {
	if length <= 0 {
		return 0, fmt.Errorf("%w: length=%d", ErrSize, length)
	}
	end, ok := AddOverflowSafe(start, length)
	if !ok {
		return 0, fmt.Errorf("%w: start=%d + length=%d overflows", ErrRange, start, length)
	}
	if !In(capacity, start) || !In(capacity, end-1) {
		return 0, fmt.Errorf("%w: [%d,%d) outside [0,%d)", ErrRange, start, end, capacity)
	}
	return end, nil
}
