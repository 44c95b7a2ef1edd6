// Package trie builds shared-prefix automata from lists of sequence matchers.
//
// Positions are compared as byte sets rather than literal bytes, so
// sequences such as 'ca' [72 74] and 'car' share states wherever their
// byte sets overlap. When an existing transition only partly overlaps the
// bytes a new sequence needs, the transition is split in two and the
// non-overlapping half keeps a copy of the original subtree.
//
// Every final state carries the sequences that end there as associations,
// so a match reports which sequences matched.
package trie

import (
	"slices"

	"github.com/coregx/byteseek/automata"
	"github.com/coregx/byteseek/matcher"
	"github.com/coregx/byteseek/window"
)

// Trie is a shared-prefix automaton over a set of sequences.
// Add must not be called concurrently with matching.
type Trie struct {
	root      *automata.State
	sequences []matcher.SequenceMatcher
	minLen    int
	maxLen    int
}

// New creates a trie containing seqs.
func New(seqs ...matcher.SequenceMatcher) *Trie {
	t := &Trie{root: automata.NewState(false)}
	for _, s := range seqs {
		t.Add(s)
	}
	return t
}

// Compile builds a trie from seqs and returns its initial state.
func Compile(seqs []matcher.SequenceMatcher) *automata.State {
	return New(seqs...).Initial()
}

// Initial returns the root state.
func (t *Trie) Initial() *automata.State {
	return t.root
}

// Sequences returns the inserted sequences in insertion order.
func (t *Trie) Sequences() []matcher.SequenceMatcher {
	return slices.Clone(t.sequences)
}

// MinLength returns the length of the shortest inserted sequence, or 0 if
// the trie is empty.
func (t *Trie) MinLength() int {
	return t.minLen
}

// MaxLength returns the length of the longest inserted sequence.
func (t *Trie) MaxLength() int {
	return t.maxLen
}

// Add inserts seq.
func (t *Trie) Add(seq matcher.SequenceMatcher) {
	t.insert(seq, seq)
}

// AddReversed inserts the reverse of seq, associated with seq itself. A trie
// built this way matches sequences ending at a position when fed bytes
// backwards.
func (t *Trie) AddReversed(seq matcher.SequenceMatcher) {
	t.insert(seq.Reverse(), seq)
}

func (t *Trie) insert(path, assoc matcher.SequenceMatcher) {
	n := path.Len()
	if len(t.sequences) == 0 || n < t.minLen {
		t.minLen = n
	}
	t.maxLen = max(t.maxLen, n)
	t.sequences = append(t.sequences, assoc)

	frontier := []*automata.State{t.root}
	for i := 0; i < n; i++ {
		last := i == n-1
		needed := path.MatcherForPosition(i).ByteSet()
		var next []*automata.State
		for _, s := range frontier {
			next = appendUnique(next, advance(s, needed, last)...)
		}
		frontier = next
	}
	for _, s := range frontier {
		s.AddAssociation(assoc)
	}
}

// advance extends s by the bytes in needed and returns the states reached.
// Transitions are read from a snapshot while the live list is edited.
func advance(s *automata.State, needed matcher.ByteSet, last bool) []*automata.State {
	var reached []*automata.State
	for _, tr := range s.Transitions() {
		if needed.IsEmpty() {
			break
		}
		have := tr.ByteSet()
		overlap := have.Intersect(needed)
		switch {
		case overlap.IsEmpty():
			continue
		case have.IsSubsetOf(needed):
			markFinal(tr.Target(), last)
			reached = append(reached, tr.Target())
		default:
			rest := tr.Target().DeepCopy()
			s.RemoveTransition(tr)
			s.AddTransition(automata.NewSetTransition(overlap, tr.Target()))
			s.AddTransition(automata.NewSetTransition(have.Difference(overlap), rest))
			markFinal(tr.Target(), last)
			reached = append(reached, tr.Target())
		}
		needed = needed.Difference(overlap)
	}
	if !needed.IsEmpty() {
		fresh := automata.NewState(last)
		s.AddTransition(automata.NewSetTransition(needed, fresh))
		reached = append(reached, fresh)
	}
	return reached
}

func markFinal(s *automata.State, last bool) {
	if last {
		s.SetFinal(true)
	}
}

func appendUnique(dst []*automata.State, states ...*automata.State) []*automata.State {
	for _, s := range states {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}

// step follows the transition of s on b. Transitions of a trie state are
// disjoint, so there is at most one.
func step(s *automata.State, b byte) *automata.State {
	for _, tr := range s.Transitions() {
		if tr.Matches(b) {
			return tr.Target()
		}
	}
	return nil
}

func collect(out []matcher.SequenceMatcher, s *automata.State) []matcher.SequenceMatcher {
	if !s.IsFinal() {
		return out
	}
	for _, a := range s.Associations() {
		if m, ok := a.(matcher.SequenceMatcher); ok {
			out = append(out, m)
		}
	}
	return out
}

// Matches returns every inserted sequence that matches buf at pos, shortest
// first.
func (t *Trie) Matches(buf []byte, pos int) []matcher.SequenceMatcher {
	if pos < 0 || pos >= len(buf) {
		return nil
	}
	var out []matcher.SequenceMatcher
	s := t.root
	for _, b := range buf[pos:] {
		if s = step(s, b); s == nil {
			break
		}
		out = collect(out, s)
	}
	return out
}

// MatchesReader returns every inserted sequence that matches the stream at
// pos, shortest first.
func (t *Trie) MatchesReader(r window.Reader, pos int64) ([]matcher.SequenceMatcher, error) {
	if pos < 0 {
		return nil, nil
	}
	var out []matcher.SequenceMatcher
	s := t.root
	for {
		w, err := r.Window(pos)
		if err != nil {
			return nil, err
		}
		if w == nil {
			return out, nil
		}
		offset := r.WindowOffset(pos)
		if offset < 0 || offset >= w.Len() {
			return nil, window.ErrInvalidWindow
		}
		for _, b := range w.Bytes()[offset:] {
			if s = step(s, b); s == nil {
				return out, nil
			}
			out = collect(out, s)
		}
		pos += int64(w.Len() - offset)
	}
}
