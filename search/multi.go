package search

import (
	"errors"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/byteseek/automata/trie"
	"github.com/coregx/byteseek/matcher"
	"github.com/coregx/byteseek/window"
)

// ErrNoSequences indicates a multi-sequence searcher was created without
// any sequences.
var ErrNoSequences = errors.New("no sequences to search for")

// Result is a position and the sequences that match there, shortest first.
type Result struct {
	Position  int64
	Sequences []matcher.SequenceMatcher
}

// MultiSequenceSearcher searches for several sequences at once. It is
// immutable and safe for concurrent use.
type MultiSequenceSearcher struct {
	trie *trie.Trie

	// prefilter is set when every sequence is a literal.
	prefilter *ahocorasick.Automaton
}

// NewMultiSequenceSearcher creates a searcher for seqs.
func NewMultiSequenceSearcher(seqs ...matcher.SequenceMatcher) (*MultiSequenceSearcher, error) {
	if len(seqs) == 0 {
		return nil, ErrNoSequences
	}
	m := &MultiSequenceSearcher{trie: trie.New(seqs...)}

	builder := ahocorasick.NewBuilder()
	for _, seq := range seqs {
		lit, ok := literalOf(seq)
		if !ok {
			return m, nil
		}
		builder.AddPattern(lit)
	}
	ac, err := builder.Build()
	if err != nil {
		// the trie alone is still correct
		return m, nil
	}
	m.prefilter = ac
	return m, nil
}

// Sequences returns the sequences being searched for.
func (m *MultiSequenceSearcher) Sequences() []matcher.SequenceMatcher {
	return m.trie.Sequences()
}

// HasPrefilter reports whether literal prefiltering is in use.
func (m *MultiSequenceSearcher) HasPrefilter() bool {
	return m.prefilter != nil
}

// SearchForwards returns the first position in [from, to] at which any
// sequence matches buf.
func (m *MultiSequenceSearcher) SearchForwards(buf []byte, from, to int) (Result, bool) {
	from = max(from, 0)
	to = min(to, len(buf)-1)
	if m.prefilter != nil {
		return m.searchPrefiltered(buf, from, to)
	}
	for p := from; p <= to; p++ {
		if seqs := m.trie.Matches(buf, p); len(seqs) > 0 {
			return Result{Position: int64(p), Sequences: seqs}, true
		}
	}
	return Result{}, false
}

// searchPrefiltered jumps between Aho-Corasick candidates. A reported match
// ending at End rules out any earlier match starting before End-MaxLength,
// so only starts from there to the reported Start are checked.
func (m *MultiSequenceSearcher) searchPrefiltered(buf []byte, from, to int) (Result, bool) {
	for p := from; p <= to; {
		hit := m.prefilter.Find(buf, p)
		if hit == nil || hit.Start > to {
			return Result{}, false
		}
		for q := max(p, hit.End-m.trie.MaxLength()); q <= hit.Start; q++ {
			if seqs := m.trie.Matches(buf, q); len(seqs) > 0 {
				return Result{Position: int64(q), Sequences: seqs}, true
			}
		}
		p = hit.Start + 1
	}
	return Result{}, false
}

// SearchBackwards returns the last position in [to, from] at which any
// sequence matches buf.
func (m *MultiSequenceSearcher) SearchBackwards(buf []byte, from, to int) (Result, bool) {
	from = min(from, len(buf)-m.trie.MinLength())
	for p := from; p >= max(to, 0); p-- {
		if seqs := m.trie.Matches(buf, p); len(seqs) > 0 {
			return Result{Position: int64(p), Sequences: seqs}, true
		}
	}
	return Result{}, false
}

// FindAll returns every position in buf at which some sequence matches.
func (m *MultiSequenceSearcher) FindAll(buf []byte) []Result {
	var out []Result
	for p := 0; p < len(buf); {
		r, ok := m.SearchForwards(buf, p, len(buf)-1)
		if !ok {
			break
		}
		out = append(out, r)
		p = int(r.Position) + 1
	}
	return out
}

// SearchForwardsReader returns the first position in [from, to] at which
// any sequence matches the stream.
func (m *MultiSequenceSearcher) SearchForwardsReader(r window.Reader, from, to int64) (Result, bool, error) {
	pos := max(from, 0)
	for pos <= to {
		w, err := r.Window(pos)
		if err != nil {
			return Result{}, false, err
		}
		if w == nil {
			return Result{}, false, nil
		}
		offset := r.WindowOffset(pos)
		if offset < 0 || offset >= w.Len() {
			return Result{}, false, window.ErrInvalidWindow
		}
		last := offset + int(min(to-pos, int64(w.Len())))

		// Starts that leave room for the longest sequence are searched in
		// memory; the rest go through the reader.
		inside := min(last, w.Len()-m.trie.MaxLength())
		if inside >= offset {
			if res, ok := m.SearchForwards(w.Bytes(), offset, inside); ok {
				res.Position = pos + (res.Position - int64(offset))
				return res, true, nil
			}
		}
		for i := max(offset, inside+1); i < w.Len() && i <= last; i++ {
			p := pos + int64(i-offset)
			seqs, err := m.trie.MatchesReader(r, p)
			if err != nil {
				return Result{}, false, err
			}
			if len(seqs) > 0 {
				return Result{Position: p, Sequences: seqs}, true, nil
			}
		}
		pos += int64(w.Len() - offset)
	}
	return Result{}, false, nil
}
