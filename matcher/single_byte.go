package matcher

import (
	"fmt"

	"github.com/coregx/byteseek/window"
)

// leafKind records how a SingleByte was described, which drives rendering.
// Matching always goes through the byte set.
type leafKind uint8

const (
	kindOne leafKind = iota
	kindRange
	kindSet
	kindAllBitmask
	kindAnyBitmask
	kindAny
	kindCaseInsensitive
)

// SingleByte is a ByteMatcher backed by a 256-bit set of matching bytes.
//
// Constructors record the shape of the predicate (a byte, a range, a bitmask,
// ...) so that RegularExpression can render it the way it was written.
type SingleByte struct {
	set      ByteSet
	kind     leafKind
	value    byte // byte, bitmask or range low end
	high     byte // range high end
	inverted bool
}

// OneByte returns a matcher for exactly b.
func OneByte(b byte) *SingleByte {
	return &SingleByte{set: ByteSetOf(b), kind: kindOne, value: b}
}

// InvertedByte returns a matcher for every byte except b.
func InvertedByte(b byte) *SingleByte {
	return &SingleByte{set: ByteSetOf(b).Complement(), kind: kindOne, value: b, inverted: true}
}

// Range returns a matcher for bytes in [lo, hi]. The bounds may be given in
// either order.
func Range(lo, hi byte) *SingleByte {
	if hi < lo {
		lo, hi = hi, lo
	}
	return &SingleByte{set: ByteRangeSet(lo, hi), kind: kindRange, value: lo, high: hi}
}

// InvertedRange returns a matcher for bytes outside [lo, hi].
func InvertedRange(lo, hi byte) *SingleByte {
	m := Range(lo, hi)
	m.set = m.set.Complement()
	m.inverted = true
	return m
}

// AllBitmask returns a matcher for bytes with every bit of mask set.
func AllBitmask(mask byte) *SingleByte {
	var s ByteSet
	for b := 0; b < 256; b++ {
		if byte(b)&mask == mask {
			s.Add(byte(b))
		}
	}
	return &SingleByte{set: s, kind: kindAllBitmask, value: mask}
}

// AnyBitmask returns a matcher for bytes sharing at least one bit with mask.
// A zero mask matches nothing and is rejected by callers that need a
// non-empty predicate.
func AnyBitmask(mask byte) *SingleByte {
	var s ByteSet
	for b := 0; b < 256; b++ {
		if byte(b)&mask != 0 {
			s.Add(byte(b))
		}
	}
	return &SingleByte{set: s, kind: kindAnyBitmask, value: mask}
}

// AnyByte returns a matcher for every byte.
func AnyByte() *SingleByte {
	return &SingleByte{set: FullByteSet(), kind: kindAny}
}

// CaseInsensitiveByte returns a matcher for c in either ASCII case.
// Non-alphabetic characters yield a plain OneByte matcher.
func CaseInsensitiveByte(c byte) *SingleByte {
	lower := toLowerASCII(c)
	upper := toUpperASCII(c)
	if lower == upper {
		return OneByte(c)
	}
	return &SingleByte{set: ByteSetOf(lower, upper), kind: kindCaseInsensitive, value: lower}
}

// NewSet returns a matcher for the members of s, rendered as a set.
func NewSet(s ByteSet) (*SingleByte, error) {
	if s.IsEmpty() {
		return nil, fmt.Errorf("%w: empty byte set", ErrInvalidArgument)
	}
	return &SingleByte{set: s, kind: kindSet}, nil
}

// FromSet returns the simplest matcher for the members of s: a single byte,
// an inverted byte, a range, any byte, or a general set.
func FromSet(s ByteSet) (*SingleByte, error) {
	switch n := s.Len(); n {
	case 0:
		return nil, fmt.Errorf("%w: empty byte set", ErrInvalidArgument)
	case 1:
		b, _ := s.First()
		return OneByte(b), nil
	case 255:
		b, _ := s.Complement().First()
		return InvertedByte(b), nil
	case 256:
		return AnyByte(), nil
	}
	if ranges := s.Ranges(); len(ranges) == 1 {
		return Range(ranges[0].Lo, ranges[0].Hi), nil
	}
	return NewSet(s)
}

// FromBytes returns the simplest matcher for the given bytes.
func FromBytes(bs ...byte) (*SingleByte, error) {
	return FromSet(ByteSetOf(bs...))
}

// MatchesByte reports whether b satisfies the predicate.
func (m *SingleByte) MatchesByte(b byte) bool {
	return m.set.Contains(b)
}

// ByteSet returns the set of matching bytes.
func (m *SingleByte) ByteSet() ByteSet {
	return m.set
}

// MatchingBytes returns the matching bytes in ascending order.
func (m *SingleByte) MatchingBytes() []byte {
	return m.set.Bytes()
}

// NumMatchingBytes returns the number of matching bytes.
func (m *SingleByte) NumMatchingBytes() int {
	return m.set.Len()
}

// Matches reports whether buf[pos] satisfies the predicate.
func (m *SingleByte) Matches(buf []byte, pos int) bool {
	return pos >= 0 && pos < len(buf) && m.set.Contains(buf[pos])
}

// MatchesNoBoundsCheck is Matches without bounds validation.
func (m *SingleByte) MatchesNoBoundsCheck(buf []byte, pos int) bool {
	return m.set.Contains(buf[pos])
}

// MatchesReader reports whether the byte at pos satisfies the predicate.
func (m *SingleByte) MatchesReader(r window.Reader, pos int64) (bool, error) {
	b, ok, err := window.ReadByte(r, pos)
	if err != nil || !ok {
		return false, err
	}
	return m.set.Contains(b), nil
}

func (m *SingleByte) matchesChunk(chunk []byte, _ int) bool {
	return m.set.Contains(chunk[0])
}

// Len returns 1.
func (m *SingleByte) Len() int {
	return 1
}

// MatcherForPosition returns m for position 0 and panics otherwise.
func (m *SingleByte) MatcherForPosition(i int) ByteMatcher {
	if i != 0 {
		panic(fmt.Sprintf("matcher: position %d out of range [0, 1)", i))
	}
	return m
}

// Reverse returns m: a single byte reads the same in both directions.
func (m *SingleByte) Reverse() SequenceMatcher {
	return m
}

// Subsequence returns m for [0, 1) and an error for any other range.
func (m *SingleByte) Subsequence(begin, end int) (SequenceMatcher, error) {
	if err := checkRange(begin, end, 1); err != nil {
		return nil, err
	}
	return m, nil
}

// Repeat returns a literal sequence for a plain byte and a matcher list
// otherwise.
func (m *SingleByte) Repeat(n int) (SequenceMatcher, error) {
	if n < 1 {
		return nil, repeatError(n)
	}
	if n == 1 {
		return m, nil
	}
	if m.kind == kindOne && !m.inverted {
		return NewByteSequenceRepeated(m.value, n)
	}
	if m.kind == kindAny {
		return NewFixedGap(n)
	}
	matchers := make([]ByteMatcher, n)
	for i := range matchers {
		matchers[i] = m
	}
	return &ByteMatcherSequence{matchers: matchers}, nil
}

// RegularExpression renders the predicate in the form it was constructed.
func (m *SingleByte) RegularExpression(pretty bool) string {
	prefix := ""
	if m.inverted {
		prefix = "^"
	}
	switch m.kind {
	case kindOne:
		return prefix + byteToken(m.value, pretty)
	case kindRange:
		return prefix + byteToken(m.value, pretty) + "-" + byteToken(m.high, pretty)
	case kindAllBitmask:
		return prefix + "&" + hexString(m.value)
	case kindAnyBitmask:
		return prefix + "~" + hexString(m.value)
	case kindAny:
		return "."
	case kindCaseInsensitive:
		return "`" + string(m.value) + "`"
	default:
		return renderSet(m.set, pretty)
	}
}

// String returns a human-readable representation of the matcher
func (m *SingleByte) String() string {
	return fmt.Sprintf("SingleByte(%s)", m.RegularExpression(true))
}

func toLowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func toUpperASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
