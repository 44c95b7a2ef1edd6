// Package search finds sequence matchers in buffers and windowed streams.
//
// Searchers scan for a cheap candidate first and verify the full sequence
// only where the candidate occurs:
//   - literal sequences use simd.Memmem on the rarest byte
//   - other sequences scan for the position whose byte set is rarest,
//     with simd.Memchr for single bytes and a lookup table otherwise
//   - keyword sets use a trie, skipping ahead with an Aho-Corasick
//     automaton when every keyword is a literal
package search

import (
	"github.com/coregx/byteseek/matcher"
	"github.com/coregx/byteseek/simd"
	"github.com/coregx/byteseek/window"
)

// literalOf returns the bytes of seq if every position matches exactly one byte.
func literalOf(seq matcher.SequenceMatcher) ([]byte, bool) {
	if bs, ok := seq.(*matcher.ByteSequence); ok {
		return bs.Bytes(), true
	}
	lit := make([]byte, seq.Len())
	for i := range lit {
		m := seq.MatcherForPosition(i)
		if m.NumMatchingBytes() != 1 {
			return nil, false
		}
		lit[i] = m.MatchingBytes()[0]
	}
	return lit, true
}

// SequenceSearcher searches for one sequence matcher. It is immutable and
// safe for concurrent use.
type SequenceSearcher struct {
	seq     matcher.SequenceMatcher
	length  int
	literal []byte

	// anchor is the offset of the rarest position; anchorByte is used when
	// that position matches a single byte, anchorTable otherwise.
	anchor      int
	anchorByte  byte
	anchorOne   bool
	anchorTable [256]bool
}

// NewSequenceSearcher creates a searcher for seq.
func NewSequenceSearcher(seq matcher.SequenceMatcher) *SequenceSearcher {
	s := &SequenceSearcher{seq: seq, length: seq.Len()}
	if lit, ok := literalOf(seq); ok {
		s.literal = lit
		return s
	}
	best := -1
	for i := 0; i < s.length; i++ {
		if rank := simd.SetRank(seq.MatcherForPosition(i).MatchingBytes()); best < 0 || rank < best {
			best, s.anchor = rank, i
		}
	}
	m := seq.MatcherForPosition(s.anchor)
	if m.NumMatchingBytes() == 1 {
		s.anchorOne, s.anchorByte = true, m.MatchingBytes()[0]
	}
	for _, b := range m.MatchingBytes() {
		s.anchorTable[b] = true
	}
	return s
}

// Sequence returns the sequence being searched for.
func (s *SequenceSearcher) Sequence() matcher.SequenceMatcher {
	return s.seq
}

// clamp limits the start positions [from, to] to those at which the
// sequence fits in a buffer of length n.
func (s *SequenceSearcher) clamp(n, from, to int) (int, int) {
	return max(from, 0), min(to, n-s.length)
}

// SearchForwards returns the first position in [from, to] at which the
// sequence matches buf, or -1.
func (s *SequenceSearcher) SearchForwards(buf []byte, from, to int) int {
	from, to = s.clamp(len(buf), from, to)
	if from > to {
		return -1
	}
	if s.literal != nil {
		i := simd.Memmem(buf[from:to+s.length], s.literal)
		if i < 0 {
			return -1
		}
		return from + i
	}

	// anchor candidates lie in [from+anchor, to+anchor]
	region := buf[from+s.anchor : to+s.anchor+1]
	for offset := 0; offset < len(region); {
		var i int
		if s.anchorOne {
			i = simd.Memchr(region[offset:], s.anchorByte)
		} else {
			i = simd.MemchrInTable(region[offset:], &s.anchorTable)
		}
		if i < 0 {
			return -1
		}
		pos := from + offset + i
		if s.seq.MatchesNoBoundsCheck(buf, pos) {
			return pos
		}
		offset += i + 1
	}
	return -1
}

// SearchBackwards returns the last position in [to, from] at which the
// sequence matches buf, or -1. The search runs from from down to to.
func (s *SequenceSearcher) SearchBackwards(buf []byte, from, to int) int {
	to, from = s.clamp(len(buf), to, from)
	if to > from {
		return -1
	}
	if s.literal != nil {
		i := simd.Memrmem(buf[to:from+s.length], s.literal)
		if i < 0 {
			return -1
		}
		return to + i
	}

	region := buf[to+s.anchor : from+s.anchor+1]
	for end := len(region); end > 0; {
		var i int
		if s.anchorOne {
			i = simd.Memrchr(region[:end], s.anchorByte)
		} else {
			i = simd.MemrchrInTable(region[:end], &s.anchorTable)
		}
		if i < 0 {
			return -1
		}
		pos := to + i
		if s.seq.MatchesNoBoundsCheck(buf, pos) {
			return pos
		}
		end = i
	}
	return -1
}

// SearchForwardsReader returns the first position in [from, to] at which
// the sequence matches the stream, or -1. Positions whose match lies inside
// one window are searched in memory; positions straddling a window
// boundary are checked through the reader.
func (s *SequenceSearcher) SearchForwardsReader(r window.Reader, from, to int64) (int64, error) {
	pos := max(from, 0)
	for pos <= to {
		w, err := r.Window(pos)
		if err != nil {
			return -1, err
		}
		if w == nil {
			return -1, nil
		}
		offset := r.WindowOffset(pos)
		if offset < 0 || offset >= w.Len() {
			return -1, window.ErrInvalidWindow
		}
		last := offset + int(min(to-pos, int64(w.Len())))

		if i := s.SearchForwards(w.Bytes(), offset, last); i >= 0 {
			return pos + int64(i-offset), nil
		}
		for i := max(offset, w.Len()-s.length+1); i < w.Len() && i <= last; i++ {
			p := pos + int64(i-offset)
			ok, err := s.seq.MatchesReader(r, p)
			if err != nil {
				return -1, err
			}
			if ok {
				return p, nil
			}
		}
		pos += int64(w.Len() - offset)
	}
	return -1, nil
}

// SearchBackwardsReader returns the last position in [to, from] at which
// the sequence matches the stream, or -1. Readers implementing window.Sized
// skip straight to the last position that can hold a match.
func (s *SequenceSearcher) SearchBackwardsReader(r window.Reader, from, to int64) (int64, error) {
	if sz, ok := r.(window.Sized); ok {
		n, err := sz.Length()
		if err != nil {
			return -1, err
		}
		from = min(from, n-int64(s.length))
	}
	to = max(to, 0)
	for p := from; p >= to; p-- {
		w, err := r.Window(p)
		if err != nil {
			return -1, err
		}
		if w == nil {
			continue
		}
		offset := r.WindowOffset(p)
		if offset < 0 || offset >= w.Len() {
			return -1, window.ErrInvalidWindow
		}
		if offset+s.length > w.Len() {
			ok, err := s.seq.MatchesReader(r, p)
			if err != nil {
				return -1, err
			}
			if ok {
				return p, nil
			}
			continue
		}
		// every start from lo to offset fits in this window
		lo := offset - int(min(p-to, int64(offset)))
		if i := s.SearchBackwards(w.Bytes(), offset, lo); i >= 0 {
			return p - int64(offset-i), nil
		}
		p -= int64(offset - lo)
	}
	return -1, nil
}
