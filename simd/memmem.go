package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack. An empty needle matches at 0.
//
// Candidates are found by scanning for the rarest byte of needle with
// Memchr and verified in full.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab"))
//	// pos == 4
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	rare, rareIdx := SelectRareByte(needle)
	start := rareIdx
	last := len(haystack) - len(needle) + rareIdx
	for start <= last {
		i := Memchr(haystack[start:last+1], rare)
		if i < 0 {
			return -1
		}
		pos := start + i - rareIdx
		if bytes.Equal(haystack[pos:pos+len(needle)], needle) {
			return pos
		}
		start += i + 1
	}
	return -1
}

// Memrmem returns the index of the last instance of needle in haystack,
// or -1 if needle is not present in haystack. An empty needle matches at
// len(haystack).
func Memrmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return len(haystack)
	case len(needle) > len(haystack):
		return -1
	}

	rare, rareIdx := SelectRareByte(needle)
	first := rareIdx
	end := len(haystack) - len(needle) + rareIdx + 1
	for end > first {
		i := Memrchr(haystack[first:end], rare)
		if i < 0 {
			return -1
		}
		pos := first + i - rareIdx
		if bytes.Equal(haystack[pos:pos+len(needle)], needle) {
			return pos
		}
		end = first + i
	}
	return -1
}
