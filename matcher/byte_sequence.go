package matcher

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"

	"github.com/coregx/byteseek/window"
)

// ByteSequence matches a literal run of bytes.
//
// The bytes are a view: Subsequence slices the same backing array and
// Reverse returns a view that reads it back to front. Constructors copy
// caller-supplied input so that later mutation by the caller cannot leak in.
type ByteSequence struct {
	bytes []byte
}

// NewByteSequence returns a matcher for a copy of b.
func NewByteSequence(b []byte) (*ByteSequence, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty byte sequence", ErrInvalidArgument)
	}
	return &ByteSequence{bytes: bytes.Clone(b)}, nil
}

// NewByteSequenceString returns a matcher for the bytes of s.
func NewByteSequenceString(s string) (*ByteSequence, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidArgument)
	}
	return &ByteSequence{bytes: []byte(s)}, nil
}

// NewByteSequenceEncoded returns a matcher for s encoded with enc
// (for example charmap.ISO8859_1 or unicode.UTF16).
func NewByteSequenceEncoded(s string, enc encoding.Encoding) (*ByteSequence, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidArgument)
	}
	encoded, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot encode %q: %v", ErrInvalidArgument, s, err)
	}
	return &ByteSequence{bytes: encoded}, nil
}

// NewByteSequenceRepeated returns a matcher for n copies of b.
func NewByteSequenceRepeated(b byte, n int) (*ByteSequence, error) {
	if n < 1 {
		return nil, repeatError(n)
	}
	return &ByteSequence{bytes: bytes.Repeat([]byte{b}, n)}, nil
}

// NewByteSequenceSlice returns a matcher for b[begin:end] of a copy of b.
func NewByteSequenceSlice(b []byte, begin, end int) (*ByteSequence, error) {
	if err := checkRange(begin, end, len(b)); err != nil {
		return nil, err
	}
	return NewByteSequence(b[begin:end])
}

// Bytes returns a copy of the matched bytes.
func (s *ByteSequence) Bytes() []byte {
	return bytes.Clone(s.bytes)
}

// Matches reports whether buf contains the sequence at pos.
func (s *ByteSequence) Matches(buf []byte, pos int) bool {
	return pos >= 0 && pos+len(s.bytes) <= len(buf) && bytes.Equal(buf[pos:pos+len(s.bytes)], s.bytes)
}

// MatchesNoBoundsCheck is Matches without bounds validation.
func (s *ByteSequence) MatchesNoBoundsCheck(buf []byte, pos int) bool {
	_ = buf[pos+len(s.bytes)-1]
	return bytes.Equal(buf[pos:pos+len(s.bytes)], s.bytes)
}

// MatchesReader reports whether the stream contains the sequence at pos.
func (s *ByteSequence) MatchesReader(r window.Reader, pos int64) (bool, error) {
	return matchesWindows(r, pos, len(s.bytes), s.matchesChunk)
}

func (s *ByteSequence) matchesChunk(chunk []byte, at int) bool {
	return bytes.Equal(chunk, s.bytes[at:at+len(chunk)])
}

// Len returns the number of bytes in the sequence.
func (s *ByteSequence) Len() int {
	return len(s.bytes)
}

// MatcherForPosition returns a OneByte matcher for the byte at i.
func (s *ByteSequence) MatcherForPosition(i int) ByteMatcher {
	return OneByte(s.bytes[i])
}

// Reverse returns a view reading the same bytes back to front.
func (s *ByteSequence) Reverse() SequenceMatcher {
	if len(s.bytes) == 1 {
		return s
	}
	return &ReverseByteSequence{bytes: s.bytes}
}

// Subsequence returns a view of positions [begin, end).
func (s *ByteSequence) Subsequence(begin, end int) (SequenceMatcher, error) {
	if err := checkRange(begin, end, len(s.bytes)); err != nil {
		return nil, err
	}
	switch {
	case begin == 0 && end == len(s.bytes):
		return s, nil
	case end-begin == 1:
		return OneByte(s.bytes[begin]), nil
	}
	return &ByteSequence{bytes: s.bytes[begin:end]}, nil
}

// Repeat returns a matcher for n copies of the sequence in fresh storage.
func (s *ByteSequence) Repeat(n int) (SequenceMatcher, error) {
	if n < 1 {
		return nil, repeatError(n)
	}
	if n == 1 {
		return s, nil
	}
	return &ByteSequence{bytes: bytes.Repeat(s.bytes, n)}, nil
}

// RegularExpression renders the bytes as hex, quoting printable runs if pretty.
func (s *ByteSequence) RegularExpression(pretty bool) string {
	return renderBytes(s.bytes, pretty)
}

// String returns a human-readable representation of the matcher
func (s *ByteSequence) String() string {
	return fmt.Sprintf("ByteSequence(%s)", renderBytes(s.bytes, true))
}

// ReverseByteSequence matches the bytes of a ByteSequence in reverse order
// without copying them: position i reads bytes[len-1-i].
type ReverseByteSequence struct {
	bytes []byte
}

// NewReverseByteSequence returns a matcher for b read back to front.
func NewReverseByteSequence(b []byte) (*ReverseByteSequence, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty byte sequence", ErrInvalidArgument)
	}
	return &ReverseByteSequence{bytes: bytes.Clone(b)}, nil
}

func (s *ReverseByteSequence) at(i int) byte {
	return s.bytes[len(s.bytes)-1-i]
}

// Matches reports whether buf contains the reversed sequence at pos.
func (s *ReverseByteSequence) Matches(buf []byte, pos int) bool {
	return pos >= 0 && pos+len(s.bytes) <= len(buf) && s.MatchesNoBoundsCheck(buf, pos)
}

// MatchesNoBoundsCheck is Matches without bounds validation.
func (s *ReverseByteSequence) MatchesNoBoundsCheck(buf []byte, pos int) bool {
	last := len(s.bytes) - 1
	_ = buf[pos+last]
	candidate := buf[pos : pos+len(s.bytes)]
	for i, b := range candidate {
		if b != s.bytes[last-i] {
			return false
		}
	}
	return true
}

// MatchesReader reports whether the stream contains the reversed sequence at pos.
func (s *ReverseByteSequence) MatchesReader(r window.Reader, pos int64) (bool, error) {
	return matchesWindows(r, pos, len(s.bytes), s.matchesChunk)
}

func (s *ReverseByteSequence) matchesChunk(chunk []byte, at int) bool {
	for i, b := range chunk {
		if b != s.at(at+i) {
			return false
		}
	}
	return true
}

// Len returns the number of bytes in the sequence.
func (s *ReverseByteSequence) Len() int {
	return len(s.bytes)
}

// MatcherForPosition returns a OneByte matcher for the byte at reversed position i.
func (s *ReverseByteSequence) MatcherForPosition(i int) ByteMatcher {
	if i < 0 || i >= len(s.bytes) {
		panic(fmt.Sprintf("matcher: position %d out of range [0, %d)", i, len(s.bytes)))
	}
	return OneByte(s.at(i))
}

// Reverse returns the forward view over the same bytes.
func (s *ReverseByteSequence) Reverse() SequenceMatcher {
	return &ByteSequence{bytes: s.bytes}
}

// Subsequence returns a reversed view of positions [begin, end).
func (s *ReverseByteSequence) Subsequence(begin, end int) (SequenceMatcher, error) {
	n := len(s.bytes)
	if err := checkRange(begin, end, n); err != nil {
		return nil, err
	}
	switch {
	case begin == 0 && end == n:
		return s, nil
	case end-begin == 1:
		return OneByte(s.at(begin)), nil
	}
	return &ReverseByteSequence{bytes: s.bytes[n-end : n-begin]}, nil
}

// Repeat returns a forward matcher over fresh storage holding n reversed copies.
func (s *ReverseByteSequence) Repeat(n int) (SequenceMatcher, error) {
	if n < 1 {
		return nil, repeatError(n)
	}
	if n == 1 {
		return s, nil
	}
	return &ByteSequence{bytes: bytes.Repeat(s.reversed(), n)}, nil
}

func (s *ReverseByteSequence) reversed() []byte {
	out := make([]byte, len(s.bytes))
	for i := range out {
		out[i] = s.at(i)
	}
	return out
}

// RegularExpression renders the bytes in matching order.
func (s *ReverseByteSequence) RegularExpression(pretty bool) string {
	return renderBytes(s.reversed(), pretty)
}

// String returns a human-readable representation of the matcher
func (s *ReverseByteSequence) String() string {
	return fmt.Sprintf("ReverseByteSequence(%s)", renderBytes(s.reversed(), true))
}
