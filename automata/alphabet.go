package automata

import (
	"github.com/coregx/byteseek/matcher"
)

// ByteClasses maps each byte value to its equivalence class.
//
// Two bytes share a class if no transition in the automaton distinguishes
// them, so a frozen state needs one table entry per class instead of 256.
//
// Example for a single transition on [a-z]:
//   - Class 0: bytes 0x00-0x60 (before 'a')
//   - Class 1: bytes 0x61-0x7a ('a' to 'z')
//   - Class 2: bytes 0x7b-0xff (after 'z')
type ByteClasses struct {
	classes [256]byte
}

// SingletonByteClasses creates ByteClasses where each byte is its own class.
func SingletonByteClasses() ByteClasses {
	var bc ByteClasses
	for i := 0; i < 256; i++ {
		bc.classes[i] = byte(i)
	}
	return bc
}

// Get returns the equivalence class for the given byte.
func (bc *ByteClasses) Get(b byte) byte {
	return bc.classes[b]
}

// AlphabetLen returns the number of equivalence classes.
func (bc *ByteClasses) AlphabetLen() int {
	// classes are assigned in ascending byte order, so the last is the largest
	return int(bc.classes[255]) + 1
}

// Representatives returns one byte per class, in class order.
func (bc *ByteClasses) Representatives() []byte {
	reps := make([]byte, 0, bc.AlphabetLen())
	for b := 0; b < 256; b++ {
		if b == 0 || bc.classes[b] != bc.classes[b-1] {
			reps = append(reps, byte(b))
		}
	}
	return reps
}

// Elements returns the set of bytes in the given class.
func (bc *ByteClasses) Elements(class byte) matcher.ByteSet {
	var s matcher.ByteSet
	for b := 0; b < 256; b++ {
		if bc.classes[b] == class {
			s.Add(byte(b))
		}
	}
	return s
}

// ByteClassSet accumulates class boundaries while scanning transitions.
//
// A boundary bit at b means b and b+1 belong to different classes. Each
// byte range [lo, hi] contributes boundaries at lo-1 and hi.
type ByteClassSet struct {
	bits matcher.ByteSet
}

// SetRange marks [start, end] as distinguished from its neighbours.
func (bcs *ByteClassSet) SetRange(start, end byte) {
	if start > 0 {
		bcs.bits.Add(start - 1)
	}
	bcs.bits.Add(end)
}

// SetByteSet marks every maximal run of s.
func (bcs *ByteClassSet) SetByteSet(s matcher.ByteSet) {
	for _, r := range s.Ranges() {
		bcs.SetRange(r.Lo, r.Hi)
	}
}

// ByteClasses converts the boundaries into a lookup table by incrementing
// the class number after each boundary byte.
func (bcs *ByteClassSet) ByteClasses() ByteClasses {
	var bc ByteClasses
	class := byte(0)
	for b := 0; b < 256; b++ {
		bc.classes[b] = class
		if bcs.bits.Contains(byte(b)) && b < 255 {
			class++
		}
	}
	return bc
}
