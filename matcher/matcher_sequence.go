package matcher

import (
	"fmt"
	"slices"

	"github.com/coregx/byteseek/window"
)

// ByteMatcherSequence matches one ByteMatcher per position.
//
// Like ByteSequence, the matcher slice is shared by Subsequence and Reverse
// views. Only Repeat with n > 1 allocates.
type ByteMatcherSequence struct {
	matchers []ByteMatcher
}

// NewByteMatcherSequence returns a matcher for the given per-position
// matchers. The slice is copied.
func NewByteMatcherSequence(matchers ...ByteMatcher) (*ByteMatcherSequence, error) {
	if len(matchers) == 0 {
		return nil, fmt.Errorf("%w: empty matcher list", ErrInvalidArgument)
	}
	for i, m := range matchers {
		if m == nil {
			return nil, fmt.Errorf("%w: nil matcher at position %d", ErrInvalidArgument, i)
		}
	}
	return &ByteMatcherSequence{matchers: slices.Clone(matchers)}, nil
}

// NewByteMatcherSequenceRepeated returns a matcher for n copies of m.
func NewByteMatcherSequenceRepeated(m ByteMatcher, n int) (*ByteMatcherSequence, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil matcher", ErrInvalidArgument)
	}
	if n < 1 {
		return nil, repeatError(n)
	}
	matchers := make([]ByteMatcher, n)
	for i := range matchers {
		matchers[i] = m
	}
	return &ByteMatcherSequence{matchers: matchers}, nil
}

// Matches reports whether every position matches buf starting at pos.
func (s *ByteMatcherSequence) Matches(buf []byte, pos int) bool {
	return pos >= 0 && pos+len(s.matchers) <= len(buf) && s.MatchesNoBoundsCheck(buf, pos)
}

// MatchesNoBoundsCheck is Matches without bounds validation.
func (s *ByteMatcherSequence) MatchesNoBoundsCheck(buf []byte, pos int) bool {
	_ = buf[pos+len(s.matchers)-1]
	candidate := buf[pos : pos+len(s.matchers)]
	for i, m := range s.matchers {
		if !m.MatchesByte(candidate[i]) {
			return false
		}
	}
	return true
}

// MatchesReader reports whether every position matches the stream at pos.
func (s *ByteMatcherSequence) MatchesReader(r window.Reader, pos int64) (bool, error) {
	return matchesWindows(r, pos, len(s.matchers), s.matchesChunk)
}

func (s *ByteMatcherSequence) matchesChunk(chunk []byte, at int) bool {
	for i, b := range chunk {
		if !s.matchers[at+i].MatchesByte(b) {
			return false
		}
	}
	return true
}

// Len returns the number of positions.
func (s *ByteMatcherSequence) Len() int {
	return len(s.matchers)
}

// MatcherForPosition returns the matcher at position i.
func (s *ByteMatcherSequence) MatcherForPosition(i int) ByteMatcher {
	return s.matchers[i]
}

// Reverse returns a view matching the positions back to front.
func (s *ByteMatcherSequence) Reverse() SequenceMatcher {
	if len(s.matchers) == 1 {
		return s.matchers[0]
	}
	return &ReverseByteMatcherSequence{matchers: s.matchers}
}

// Subsequence returns a view of positions [begin, end).
func (s *ByteMatcherSequence) Subsequence(begin, end int) (SequenceMatcher, error) {
	if err := checkRange(begin, end, len(s.matchers)); err != nil {
		return nil, err
	}
	switch {
	case begin == 0 && end == len(s.matchers):
		return s, nil
	case end-begin == 1:
		return s.matchers[begin], nil
	}
	return &ByteMatcherSequence{matchers: s.matchers[begin:end]}, nil
}

// Repeat returns a matcher for n copies of the sequence in a fresh slice.
func (s *ByteMatcherSequence) Repeat(n int) (SequenceMatcher, error) {
	if n < 1 {
		return nil, repeatError(n)
	}
	if n == 1 {
		return s, nil
	}
	return &ByteMatcherSequence{matchers: repeatMatchers(s.matchers, n)}, nil
}

// RegularExpression renders each position in turn.
func (s *ByteMatcherSequence) RegularExpression(pretty bool) string {
	return renderMatchers(s.matchers, pretty)
}

// String returns a human-readable representation of the matcher
func (s *ByteMatcherSequence) String() string {
	return fmt.Sprintf("ByteMatcherSequence(%s)", s.RegularExpression(true))
}

// ReverseByteMatcherSequence matches the positions of a ByteMatcherSequence
// back to front without copying the matcher slice.
type ReverseByteMatcherSequence struct {
	matchers []ByteMatcher
}

func (s *ReverseByteMatcherSequence) at(i int) ByteMatcher {
	return s.matchers[len(s.matchers)-1-i]
}

// Matches reports whether every reversed position matches buf at pos.
func (s *ReverseByteMatcherSequence) Matches(buf []byte, pos int) bool {
	return pos >= 0 && pos+len(s.matchers) <= len(buf) && s.MatchesNoBoundsCheck(buf, pos)
}

// MatchesNoBoundsCheck is Matches without bounds validation.
func (s *ReverseByteMatcherSequence) MatchesNoBoundsCheck(buf []byte, pos int) bool {
	_ = buf[pos+len(s.matchers)-1]
	return s.matchesChunk(buf[pos:pos+len(s.matchers)], 0)
}

// MatchesReader reports whether every reversed position matches the stream at pos.
func (s *ReverseByteMatcherSequence) MatchesReader(r window.Reader, pos int64) (bool, error) {
	return matchesWindows(r, pos, len(s.matchers), s.matchesChunk)
}

func (s *ReverseByteMatcherSequence) matchesChunk(chunk []byte, at int) bool {
	for i, b := range chunk {
		if !s.at(at + i).MatchesByte(b) {
			return false
		}
	}
	return true
}

// Len returns the number of positions.
func (s *ReverseByteMatcherSequence) Len() int {
	return len(s.matchers)
}

// MatcherForPosition returns the matcher at reversed position i.
func (s *ReverseByteMatcherSequence) MatcherForPosition(i int) ByteMatcher {
	if i < 0 || i >= len(s.matchers) {
		panic(fmt.Sprintf("matcher: position %d out of range [0, %d)", i, len(s.matchers)))
	}
	return s.at(i)
}

// Reverse returns the forward view over the same matchers.
func (s *ReverseByteMatcherSequence) Reverse() SequenceMatcher {
	return &ByteMatcherSequence{matchers: s.matchers}
}

// Subsequence returns a reversed view of positions [begin, end).
func (s *ReverseByteMatcherSequence) Subsequence(begin, end int) (SequenceMatcher, error) {
	n := len(s.matchers)
	if err := checkRange(begin, end, n); err != nil {
		return nil, err
	}
	switch {
	case begin == 0 && end == n:
		return s, nil
	case end-begin == 1:
		return s.at(begin), nil
	}
	return &ReverseByteMatcherSequence{matchers: s.matchers[n-end : n-begin]}, nil
}

// Repeat returns a forward matcher over a fresh slice of n reversed copies.
func (s *ReverseByteMatcherSequence) Repeat(n int) (SequenceMatcher, error) {
	if n < 1 {
		return nil, repeatError(n)
	}
	if n == 1 {
		return s, nil
	}
	return &ByteMatcherSequence{matchers: repeatMatchers(s.reversed(), n)}, nil
}

func (s *ReverseByteMatcherSequence) reversed() []ByteMatcher {
	out := slices.Clone(s.matchers)
	slices.Reverse(out)
	return out
}

// RegularExpression renders each position in matching order.
func (s *ReverseByteMatcherSequence) RegularExpression(pretty bool) string {
	return renderMatchers(s.reversed(), pretty)
}

// String returns a human-readable representation of the matcher
func (s *ReverseByteMatcherSequence) String() string {
	return fmt.Sprintf("ReverseByteMatcherSequence(%s)", s.RegularExpression(true))
}

func repeatMatchers(matchers []ByteMatcher, n int) []ByteMatcher {
	out := make([]ByteMatcher, 0, len(matchers)*n)
	for range n {
		out = append(out, matchers...)
	}
	return out
}

func renderMatchers(matchers []ByteMatcher, pretty bool) string {
	parts := make([]string, len(matchers))
	for i, m := range matchers {
		parts[i] = m.RegularExpression(pretty)
	}
	return joinRendered(parts, pretty)
}
