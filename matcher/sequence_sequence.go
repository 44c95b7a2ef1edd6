package matcher

import (
	"fmt"
	"slices"

	"github.com/coregx/byteseek/window"
)

// SequenceSequence concatenates other sequence matchers.
// Nested SequenceSequences are flattened on construction.
type SequenceSequence struct {
	matchers []SequenceMatcher
	length   int
}

// NewSequenceSequence returns the concatenation of matchers.
func NewSequenceSequence(matchers ...SequenceMatcher) (*SequenceSequence, error) {
	if len(matchers) == 0 {
		return nil, fmt.Errorf("%w: empty matcher list", ErrInvalidArgument)
	}
	flat := make([]SequenceMatcher, 0, len(matchers))
	for i, m := range matchers {
		if m == nil {
			return nil, fmt.Errorf("%w: nil matcher at index %d", ErrInvalidArgument, i)
		}
		flat = appendFlattened(flat, m)
	}
	return newSequenceSequence(flat), nil
}

func newSequenceSequence(matchers []SequenceMatcher) *SequenceSequence {
	length := 0
	for _, m := range matchers {
		length += m.Len()
	}
	return &SequenceSequence{matchers: matchers, length: length}
}

func appendFlattened(dst []SequenceMatcher, m SequenceMatcher) []SequenceMatcher {
	if ss, ok := m.(*SequenceSequence); ok {
		return append(dst, ss.matchers...)
	}
	return append(dst, m)
}

// Matchers returns a copy of the component matchers.
func (s *SequenceSequence) Matchers() []SequenceMatcher {
	return slices.Clone(s.matchers)
}

// Matches reports whether every component matches in turn from pos.
func (s *SequenceSequence) Matches(buf []byte, pos int) bool {
	return pos >= 0 && pos+s.length <= len(buf) && s.MatchesNoBoundsCheck(buf, pos)
}

// MatchesNoBoundsCheck is Matches without bounds validation.
func (s *SequenceSequence) MatchesNoBoundsCheck(buf []byte, pos int) bool {
	_ = buf[pos+s.length-1]
	for _, m := range s.matchers {
		if !m.MatchesNoBoundsCheck(buf, pos) {
			return false
		}
		pos += m.Len()
	}
	return true
}

// MatchesReader matches each component against the stream. A component that
// fits in the current window is matched there directly; one that straddles a
// window boundary is matched through its own MatchesReader.
func (s *SequenceSequence) MatchesReader(r window.Reader, pos int64) (bool, error) {
	if pos < 0 {
		return false, nil
	}
	for _, m := range s.matchers {
		w, err := r.Window(pos)
		if err != nil {
			return false, err
		}
		if w == nil {
			return false, nil
		}
		offset := r.WindowOffset(pos)
		if offset < 0 || offset >= w.Len() {
			return false, window.ErrInvalidWindow
		}
		var ok bool
		if offset+m.Len() <= w.Len() {
			ok = m.MatchesNoBoundsCheck(w.Bytes(), offset)
		} else if ok, err = m.MatchesReader(r, pos); err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		pos += int64(m.Len())
	}
	return true, nil
}

func (s *SequenceSequence) matchesChunk(chunk []byte, at int) bool {
	start := 0
	for _, m := range s.matchers {
		end := start + m.Len()
		lo, hi := max(start, at), min(end, at+len(chunk))
		if lo < hi && !m.matchesChunk(chunk[lo-at:hi-at], lo-start) {
			return false
		}
		if end >= at+len(chunk) {
			break
		}
		start = end
	}
	return true
}

// Len returns the total length of the components.
func (s *SequenceSequence) Len() int {
	return s.length
}

// locate returns the index of the component containing position i and the
// position's offset within it.
func (s *SequenceSequence) locate(i int) (int, int) {
	for idx, m := range s.matchers {
		if i < m.Len() {
			return idx, i
		}
		i -= m.Len()
	}
	panic(fmt.Sprintf("matcher: no component for position in sequence of length %d", s.length))
}

// MatcherForPosition returns the predicate at position i of the concatenation.
func (s *SequenceSequence) MatcherForPosition(i int) ByteMatcher {
	if i < 0 || i >= s.length {
		panic(fmt.Sprintf("matcher: position %d out of range [0, %d)", i, s.length))
	}
	idx, off := s.locate(i)
	return s.matchers[idx].MatcherForPosition(off)
}

// Reverse returns the reversed components in reverse order.
func (s *SequenceSequence) Reverse() SequenceMatcher {
	reversed := make([]SequenceMatcher, len(s.matchers))
	for i, m := range s.matchers {
		reversed[len(s.matchers)-1-i] = m.Reverse()
	}
	return &SequenceSequence{matchers: reversed, length: s.length}
}

// Subsequence returns the components covering [begin, end), truncating the
// first and last of them.
func (s *SequenceSequence) Subsequence(begin, end int) (SequenceMatcher, error) {
	if err := checkRange(begin, end, s.length); err != nil {
		return nil, err
	}
	if begin == 0 && end == s.length {
		return s, nil
	}
	first, firstOff := s.locate(begin)
	last, lastOff := s.locate(end - 1)
	if first == last {
		return s.matchers[first].Subsequence(firstOff, lastOff+1)
	}
	head, err := SubsequenceFrom(s.matchers[first], firstOff)
	if err != nil {
		return nil, err
	}
	tail, err := s.matchers[last].Subsequence(0, lastOff+1)
	if err != nil {
		return nil, err
	}
	parts := make([]SequenceMatcher, 0, last-first+1)
	parts = append(parts, head)
	parts = append(parts, s.matchers[first+1:last]...)
	parts = append(parts, tail)
	return &SequenceSequence{matchers: parts, length: end - begin}, nil
}

// Repeat returns a matcher with the component list repeated n times.
func (s *SequenceSequence) Repeat(n int) (SequenceMatcher, error) {
	if n < 1 {
		return nil, repeatError(n)
	}
	if n == 1 {
		return s, nil
	}
	parts := make([]SequenceMatcher, 0, len(s.matchers)*n)
	for range n {
		parts = append(parts, s.matchers...)
	}
	return &SequenceSequence{matchers: parts, length: s.length * n}, nil
}

// RegularExpression renders the components inside a group.
func (s *SequenceSequence) RegularExpression(pretty bool) string {
	parts := make([]string, len(s.matchers))
	for i, m := range s.matchers {
		parts[i] = m.RegularExpression(pretty)
	}
	return "(" + joinRendered(parts, pretty) + ")"
}

// String returns a human-readable representation of the matcher
func (s *SequenceSequence) String() string {
	return fmt.Sprintf("SequenceSequence(%s)", s.RegularExpression(true))
}

// Join concatenates matchers into the simplest equivalent matcher.
// Adjacent literals merge into one ByteSequence and adjacent gaps into one
// FixedGap. A result of only single-byte matchers becomes a
// ByteMatcherSequence; anything else becomes a SequenceSequence.
func Join(matchers ...SequenceMatcher) (SequenceMatcher, error) {
	if len(matchers) == 0 {
		return nil, fmt.Errorf("%w: empty matcher list", ErrInvalidArgument)
	}
	var flat []SequenceMatcher
	for i, m := range matchers {
		if m == nil {
			return nil, fmt.Errorf("%w: nil matcher at index %d", ErrInvalidArgument, i)
		}
		flat = appendFlattened(flat, m)
	}

	var (
		parts   []SequenceMatcher
		literal []byte
		gap     int
	)
	flush := func() {
		switch {
		case len(literal) == 1:
			parts = append(parts, OneByte(literal[0]))
		case len(literal) > 1:
			parts = append(parts, &ByteSequence{bytes: literal})
		case gap == 1:
			parts = append(parts, AnyByte())
		case gap > 1:
			parts = append(parts, &FixedGap{n: gap})
		}
		literal, gap = nil, 0
	}
	for _, m := range flat {
		if b, ok := literalBytes(m); ok {
			if gap > 0 {
				flush()
			}
			literal = append(literal, b...)
			continue
		}
		if n, ok := gapLength(m); ok {
			if len(literal) > 0 {
				flush()
			}
			gap += n
			continue
		}
		flush()
		parts = append(parts, m)
	}
	flush()

	if len(parts) == 1 {
		return parts[0], nil
	}
	bytesOnly := make([]ByteMatcher, 0, len(parts))
	for _, p := range parts {
		bm, ok := p.(ByteMatcher)
		if !ok {
			return newSequenceSequence(parts), nil
		}
		bytesOnly = append(bytesOnly, bm)
	}
	return &ByteMatcherSequence{matchers: bytesOnly}, nil
}

// literalBytes returns the bytes of a matcher that matches exactly one
// byte string.
func literalBytes(m SequenceMatcher) ([]byte, bool) {
	switch v := m.(type) {
	case *ByteSequence:
		return v.bytes, true
	case *ReverseByteSequence:
		return v.reversed(), true
	case *SingleByte:
		if v.set.Len() == 1 {
			b, _ := v.set.First()
			return []byte{b}, true
		}
	}
	return nil, false
}

func gapLength(m SequenceMatcher) (int, bool) {
	switch v := m.(type) {
	case *FixedGap:
		return v.n, true
	case *SingleByte:
		if v.set.IsFull() {
			return 1, true
		}
	}
	return 0, false
}
