package matcher

import (
	"fmt"
	"strconv"

	"github.com/coregx/byteseek/window"
)

// FixedGap matches any n bytes. Matching only checks that the bytes exist.
type FixedGap struct {
	n int
}

// NewFixedGap returns a matcher for n arbitrary bytes.
func NewFixedGap(n int) (*FixedGap, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: gap length %d must be at least 1", ErrInvalidArgument, n)
	}
	return &FixedGap{n: n}, nil
}

// Matches reports whether buf holds n bytes from pos.
func (g *FixedGap) Matches(buf []byte, pos int) bool {
	return pos >= 0 && pos+g.n <= len(buf)
}

// MatchesNoBoundsCheck touches the last byte of the gap so that misuse
// panics instead of succeeding.
func (g *FixedGap) MatchesNoBoundsCheck(buf []byte, pos int) bool {
	_ = buf[pos+g.n-1]
	return true
}

// MatchesReader reports whether the stream holds n bytes from pos.
func (g *FixedGap) MatchesReader(r window.Reader, pos int64) (bool, error) {
	if pos < 0 {
		return false, nil
	}
	_, ok, err := window.ReadByte(r, pos+int64(g.n)-1)
	return ok, err
}

func (g *FixedGap) matchesChunk([]byte, int) bool {
	return true
}

// Len returns the gap length.
func (g *FixedGap) Len() int {
	return g.n
}

// MatcherForPosition returns an any-byte matcher.
func (g *FixedGap) MatcherForPosition(i int) ByteMatcher {
	if i < 0 || i >= g.n {
		panic(fmt.Sprintf("matcher: position %d out of range [0, %d)", i, g.n))
	}
	return AnyByte()
}

// Reverse returns g.
func (g *FixedGap) Reverse() SequenceMatcher {
	return g
}

// Subsequence returns a gap of end-begin bytes.
func (g *FixedGap) Subsequence(begin, end int) (SequenceMatcher, error) {
	if err := checkRange(begin, end, g.n); err != nil {
		return nil, err
	}
	switch {
	case begin == 0 && end == g.n:
		return g, nil
	case end-begin == 1:
		return AnyByte(), nil
	}
	return &FixedGap{n: end - begin}, nil
}

// Repeat returns a gap n times as long.
func (g *FixedGap) Repeat(n int) (SequenceMatcher, error) {
	if n < 1 {
		return nil, repeatError(n)
	}
	if n == 1 {
		return g, nil
	}
	return &FixedGap{n: g.n * n}, nil
}

// RegularExpression renders the gap as .{n}.
func (g *FixedGap) RegularExpression(bool) string {
	if g.n == 1 {
		return "."
	}
	return ".{" + strconv.Itoa(g.n) + "}"
}

// String returns a human-readable representation of the matcher
func (g *FixedGap) String() string {
	return fmt.Sprintf("FixedGap(%d)", g.n)
}
