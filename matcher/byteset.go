package matcher

import (
	"math/bits"
)

// ByteSet is a set of byte values stored as a 256-bit bitmap.
// The zero value is the empty set. ByteSets are comparable with ==.
type ByteSet [4]uint64

// FullByteSet returns the set of all 256 byte values.
func FullByteSet() ByteSet {
	return ByteSet{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
}

// ByteSetOf returns the set containing the given bytes.
func ByteSetOf(bs ...byte) ByteSet {
	var s ByteSet
	for _, b := range bs {
		s.Add(b)
	}
	return s
}

// ByteRangeSet returns the set of bytes in [lo, hi].
func ByteRangeSet(lo, hi byte) ByteSet {
	var s ByteSet
	s.AddRange(lo, hi)
	return s
}

// Add adds b to the set.
func (s *ByteSet) Add(b byte) {
	s[b>>6] |= 1 << (b & 63)
}

// AddRange adds every byte in [lo, hi] to the set.
func (s *ByteSet) AddRange(lo, hi byte) {
	for b := int(lo); b <= int(hi); b++ {
		s.Add(byte(b))
	}
}

// Remove removes b from the set.
func (s *ByteSet) Remove(b byte) {
	s[b>>6] &^= 1 << (b & 63)
}

// Contains reports whether b is in the set.
func (s ByteSet) Contains(b byte) bool {
	return s[b>>6]&(1<<(b&63)) != 0
}

// Len returns the number of bytes in the set.
func (s ByteSet) Len() int {
	return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1]) +
		bits.OnesCount64(s[2]) + bits.OnesCount64(s[3])
}

// IsEmpty reports whether the set has no members.
func (s ByteSet) IsEmpty() bool {
	return s[0]|s[1]|s[2]|s[3] == 0
}

// IsFull reports whether the set contains all 256 bytes.
func (s ByteSet) IsFull() bool {
	return s == FullByteSet()
}

// Union returns s ∪ o.
func (s ByteSet) Union(o ByteSet) ByteSet {
	return ByteSet{s[0] | o[0], s[1] | o[1], s[2] | o[2], s[3] | o[3]}
}

// Intersect returns s ∩ o.
func (s ByteSet) Intersect(o ByteSet) ByteSet {
	return ByteSet{s[0] & o[0], s[1] & o[1], s[2] & o[2], s[3] & o[3]}
}

// Difference returns the members of s that are not in o.
func (s ByteSet) Difference(o ByteSet) ByteSet {
	return ByteSet{s[0] &^ o[0], s[1] &^ o[1], s[2] &^ o[2], s[3] &^ o[3]}
}

// Complement returns the bytes not in s.
func (s ByteSet) Complement() ByteSet {
	return ByteSet{^s[0], ^s[1], ^s[2], ^s[3]}
}

// IsSubsetOf reports whether every member of s is in o.
func (s ByteSet) IsSubsetOf(o ByteSet) bool {
	return s.Difference(o).IsEmpty()
}

// Bytes returns the members in ascending order.
func (s ByteSet) Bytes() []byte {
	out := make([]byte, 0, s.Len())
	for word := 0; word < 4; word++ {
		w := s[word]
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			out = append(out, byte(word*64+bit))
			w &= w - 1
		}
	}
	return out
}

// First returns the smallest member. ok is false for the empty set.
func (s ByteSet) First() (b byte, ok bool) {
	for word := 0; word < 4; word++ {
		if s[word] != 0 {
			return byte(word*64 + bits.TrailingZeros64(s[word])), true
		}
	}
	return 0, false
}

// ByteRange is an inclusive run of byte values.
type ByteRange struct {
	Lo, Hi byte
}

// Ranges returns the members as maximal runs of consecutive values.
func (s ByteSet) Ranges() []ByteRange {
	var out []ByteRange
	inRun := false
	var lo byte
	for b := 0; b < 256; b++ {
		in := s.Contains(byte(b))
		switch {
		case in && !inRun:
			lo, inRun = byte(b), true
		case !in && inRun:
			out = append(out, ByteRange{Lo: lo, Hi: byte(b - 1)})
			inRun = false
		}
	}
	if inRun {
		out = append(out, ByteRange{Lo: lo, Hi: 0xFF})
	}
	return out
}
