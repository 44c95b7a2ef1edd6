// Package conv provides checked integer conversion helpers.
//
// These functions perform bounds checking before narrowing integer conversions
// to prevent silent overflow. They panic on overflow since this indicates a
// programming error (e.g. an automaton with more states than StateID can address).
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// uint comparison avoids overflow on 32-bit platforms
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Int64ToInt safely converts an int64 to int.
// Panics if n does not fit in an int on this platform.
func Int64ToInt(n int64) int {
	if n < math.MinInt || n > math.MaxInt {
		panic("integer overflow: int64 value out of int range")
	}
	return int(n)
}

// IntToByte safely converts an int in [0, 255] to a byte.
func IntToByte(n int) byte {
	if n < 0 || n > math.MaxUint8 {
		panic("integer overflow: int value out of byte range")
	}
	return byte(n)
}
