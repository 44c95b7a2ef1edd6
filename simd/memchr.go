// Package simd provides byte scanning primitives in pure Go.
//
// The scanners use SWAR (SIMD Within A Register): eight bytes are loaded
// into a uint64 and tested with bitwise arithmetic, so a whole word is
// rejected in a handful of instructions.
package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
	lo7 = 0x7f7f7f7f7f7f7f7f
)

// zeroBytes returns a mask with the high bit of every zero byte of v set.
// Borrows may set bits above the first zero byte, so only the lowest set
// bit is reliable.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

// zeroBytesExact is zeroBytes without false positives. It is slower but
// every set bit marks a zero byte.
func zeroBytesExact(v uint64) uint64 {
	return ^(((v & lo7) + lo7) | v | lo7)
}

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
func Memchr(haystack []byte, needle byte) int {
	n := len(haystack)
	if n < 8 {
		for i := 0; i < n; i++ {
			if haystack[i] == needle {
				return i
			}
		}
		return -1
	}

	// broadcast needle to every byte
	mask := uint64(needle) * lo8
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk ^ mask); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// Memchr2 returns the index of the first instance of either needle in
// haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	n := len(haystack)
	if n < 8 {
		for i := 0; i < n; i++ {
			if b := haystack[i]; b == needle1 || b == needle2 {
				return i
			}
		}
		return -1
	}

	mask1 := uint64(needle1) * lo8
	mask2 := uint64(needle2) * lo8
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^mask1) | zeroBytes(chunk^mask2); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if b := haystack[i]; b == needle1 || b == needle2 {
			return i
		}
	}
	return -1
}

// Memrchr returns the index of the last instance of needle in haystack,
// or -1 if needle is not present in haystack.
func Memrchr(haystack []byte, needle byte) int {
	i := len(haystack)
	mask := uint64(needle) * lo8
	for ; i >= 8; i -= 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i-8:])
		if z := zeroBytesExact(chunk ^ mask); z != 0 {
			return i - 8 + (bits.Len64(z)-1)/8
		}
	}
	for i--; i >= 0; i-- {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// MemchrInTable returns the index of the first byte b of haystack with
// table[b] set, or -1 if there is none.
func MemchrInTable(haystack []byte, table *[256]bool) int {
	for i, b := range haystack {
		if table[b] {
			return i
		}
	}
	return -1
}

// MemrchrInTable returns the index of the last byte b of haystack with
// table[b] set, or -1 if there is none.
func MemrchrInTable(haystack []byte, table *[256]bool) int {
	for i := len(haystack) - 1; i >= 0; i-- {
		if table[haystack[i]] {
			return i
		}
	}
	return -1
}
