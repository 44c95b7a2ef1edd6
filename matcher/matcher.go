// Package matcher provides byte and byte-sequence matchers.
//
// A ByteMatcher tests a single byte against a predicate with an enumerable
// matching set. A SequenceMatcher tests a fixed-length run of bytes, one
// predicate per position, against an in-memory buffer or a windowed reader.
//
// Variants and their storage:
//   - ByteSequence: literal bytes; Subsequence and Reverse are zero-copy views
//   - ByteMatcherSequence: one ByteMatcher per position; zero-copy views
//   - CaseInsensitiveSequence: ASCII text matched ignoring case
//   - FixedGap: N arbitrary bytes, checks only that the bytes exist
//   - SequenceSequence: a concatenation of other sequence matchers
//
// All matchers are immutable and safe for concurrent use.
package matcher

import (
	"github.com/coregx/byteseek/window"
)

// SequenceMatcher matches a fixed-length sequence of bytes.
type SequenceMatcher interface {
	// Matches reports whether the sequence matches buf at pos.
	// It returns false if pos is negative or the sequence would run past
	// the end of buf.
	Matches(buf []byte, pos int) bool

	// MatchesNoBoundsCheck is Matches without bounds validation. Callers must
	// guarantee 0 <= pos && pos+Len() <= len(buf); otherwise it panics with a
	// runtime index error.
	MatchesNoBoundsCheck(buf []byte, pos int) bool

	// MatchesReader reports whether the sequence matches the stream at pos,
	// crossing window boundaries as needed. Running out of data is a
	// mismatch, not an error; errors come only from the reader.
	MatchesReader(r window.Reader, pos int64) (bool, error)

	// Len returns the number of bytes the sequence matches. Always >= 1.
	Len() int

	// MatcherForPosition returns the predicate at offset i.
	// It panics if i is outside [0, Len()).
	MatcherForPosition(i int) ByteMatcher

	// Reverse returns a matcher for the bytes in reverse order.
	Reverse() SequenceMatcher

	// Subsequence returns a matcher for positions [begin, end).
	Subsequence(begin, end int) (SequenceMatcher, error)

	// Repeat returns a matcher for n consecutive copies of this sequence.
	Repeat(n int) (SequenceMatcher, error)

	// RegularExpression renders the matcher in expression syntax.
	// With pretty set, output is spaced and printable bytes are quoted.
	RegularExpression(pretty bool) string

	String() string

	// matchesChunk matches chunk against positions [at, at+len(chunk)).
	matchesChunk(chunk []byte, at int) bool
}

// ByteMatcher matches a single byte. Every ByteMatcher is also a
// SequenceMatcher of length one.
type ByteMatcher interface {
	SequenceMatcher

	// MatchesByte reports whether b satisfies the predicate.
	MatchesByte(b byte) bool

	// ByteSet returns the set of matching bytes.
	ByteSet() ByteSet

	// MatchingBytes returns the matching bytes in ascending order.
	MatchingBytes() []byte

	// NumMatchingBytes returns the number of matching bytes.
	NumMatchingBytes() int
}

// SubsequenceFrom returns the subsequence of m from begin to its end.
func SubsequenceFrom(m SequenceMatcher, begin int) (SequenceMatcher, error) {
	return m.Subsequence(begin, m.Len())
}

// matchesWindows walks the windows covering [pos, pos+length), handing each
// covered chunk to match along with its offset in the sequence. Every
// iteration consumes at least one byte, so it terminates even when window
// boundaries coincide with match boundaries.
func matchesWindows(r window.Reader, pos int64, length int, match func(chunk []byte, at int) bool) (bool, error) {
	if pos < 0 {
		return false, nil
	}
	for matched := 0; matched < length; {
		w, err := r.Window(pos)
		if err != nil {
			return false, err
		}
		if w == nil {
			return false, nil
		}
		offset := r.WindowOffset(pos)
		available := w.Len() - offset
		if offset < 0 || available <= 0 {
			return false, window.ErrInvalidWindow
		}
		n := min(available, length-matched)
		if !match(w.Bytes()[offset:offset+n], matched) {
			return false, nil
		}
		matched += n
		pos += int64(n)
	}
	return true, nil
}
