package matcher

import (
	"fmt"
	"strings"

	"github.com/coregx/byteseek/window"
)

// CaseInsensitiveSequence matches ASCII text ignoring letter case.
// Bytes outside A-Z and a-z must match exactly.
//
// Reverse rebuilds the matcher from the reversed text instead of returning a
// view: folding a short string is cheap and keeps the type a single struct.
type CaseInsensitiveSequence struct {
	text  string
	lower []byte
}

// NewCaseInsensitiveSequence returns a matcher for text in any ASCII case.
func NewCaseInsensitiveSequence(text string) (*CaseInsensitiveSequence, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidArgument)
	}
	return newCaseInsensitive(text), nil
}

func newCaseInsensitive(text string) *CaseInsensitiveSequence {
	lower := make([]byte, len(text))
	for i := 0; i < len(text); i++ {
		lower[i] = toLowerASCII(text[i])
	}
	return &CaseInsensitiveSequence{text: text, lower: lower}
}

// Text returns the text the matcher was built from.
func (s *CaseInsensitiveSequence) Text() string {
	return s.text
}

// Matches reports whether buf contains the text in any case at pos.
func (s *CaseInsensitiveSequence) Matches(buf []byte, pos int) bool {
	return pos >= 0 && pos+len(s.lower) <= len(buf) && s.MatchesNoBoundsCheck(buf, pos)
}

// MatchesNoBoundsCheck is Matches without bounds validation.
func (s *CaseInsensitiveSequence) MatchesNoBoundsCheck(buf []byte, pos int) bool {
	_ = buf[pos+len(s.lower)-1]
	return s.matchesChunk(buf[pos:pos+len(s.lower)], 0)
}

// MatchesReader reports whether the stream contains the text in any case at pos.
func (s *CaseInsensitiveSequence) MatchesReader(r window.Reader, pos int64) (bool, error) {
	return matchesWindows(r, pos, len(s.lower), s.matchesChunk)
}

func (s *CaseInsensitiveSequence) matchesChunk(chunk []byte, at int) bool {
	want := s.lower[at : at+len(chunk)]
	for i, b := range chunk {
		if toLowerASCII(b) != want[i] {
			return false
		}
	}
	return true
}

// Len returns the length of the text.
func (s *CaseInsensitiveSequence) Len() int {
	return len(s.lower)
}

// MatcherForPosition returns a case-folding matcher for the character at i.
func (s *CaseInsensitiveSequence) MatcherForPosition(i int) ByteMatcher {
	return CaseInsensitiveByte(s.text[i])
}

// Reverse returns a matcher for the reversed text.
func (s *CaseInsensitiveSequence) Reverse() SequenceMatcher {
	if len(s.text) == 1 {
		return s
	}
	b := []byte(s.text)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return newCaseInsensitive(string(b))
}

// Subsequence returns a matcher for characters [begin, end).
func (s *CaseInsensitiveSequence) Subsequence(begin, end int) (SequenceMatcher, error) {
	if err := checkRange(begin, end, len(s.text)); err != nil {
		return nil, err
	}
	switch {
	case begin == 0 && end == len(s.text):
		return s, nil
	case end-begin == 1:
		return CaseInsensitiveByte(s.text[begin]), nil
	}
	return &CaseInsensitiveSequence{text: s.text[begin:end], lower: s.lower[begin:end]}, nil
}

// Repeat returns a matcher for n copies of the text.
func (s *CaseInsensitiveSequence) Repeat(n int) (SequenceMatcher, error) {
	if n < 1 {
		return nil, repeatError(n)
	}
	if n == 1 {
		return s, nil
	}
	return newCaseInsensitive(strings.Repeat(s.text, n)), nil
}

// RegularExpression renders the text between backticks. Text that cannot be
// quoted that way is rendered one position at a time.
func (s *CaseInsensitiveSequence) RegularExpression(pretty bool) string {
	if strings.IndexByte(s.text, '`') < 0 {
		return "`" + s.text + "`"
	}
	parts := make([]string, len(s.text))
	for i := 0; i < len(s.text); i++ {
		parts[i] = CaseInsensitiveByte(s.text[i]).RegularExpression(pretty)
	}
	return joinRendered(parts, pretty)
}

// String returns a human-readable representation of the matcher
func (s *CaseInsensitiveSequence) String() string {
	return fmt.Sprintf("CaseInsensitiveSequence(%q)", s.text)
}
