// Package byteseek compiles byte-pattern expressions into matchers and
// automata and searches for them in buffers and large streams.
//
// Expressions describe byte sequences:
//
//	'GIF8' [37 39] 'a'         literal text, a byte set, more text
//	ff d8 ff .{2} `jfif`       hex bytes, a gap, case-insensitive text
//	'PK' 03 04 | 'PK' 05 06    alternation (automata only)
//	00 00 01 [b3 ba] (00)*     repetition (automata only)
//
// Fixed-length expressions compile to a Pattern, which searches buffers and
// windowed readers:
//
//	p := byteseek.MustCompile(`'%PDF-' 31 2e [30-37]`)
//	pos := p.Index(data) // -1 if absent
//
// Expressions with alternation or unbounded repetition compile to an
// Automaton. Several fixed-length expressions can be searched together with
// CompileSet, which reports which of them matched.
//
// Patterns, Automata and Sets are immutable and safe for concurrent use.
package byteseek

import (
	"github.com/coregx/byteseek/automata"
	"github.com/coregx/byteseek/automata/dfa"
	"github.com/coregx/byteseek/automata/glushkov"
	"github.com/coregx/byteseek/automata/trie"
	"github.com/coregx/byteseek/matcher"
	"github.com/coregx/byteseek/search"
	"github.com/coregx/byteseek/syntax"
	"github.com/coregx/byteseek/window"
)

// Pattern is a compiled fixed-length expression.
//
// Example:
//
//	p := byteseek.MustCompile(`'GIF8' [37 39] 'a'`)
//	if p.Match(header) {
//	    println("GIF image")
//	}
type Pattern struct {
	expr     string
	seq      matcher.SequenceMatcher
	searcher *search.SequenceSearcher
}

// Compile compiles a fixed-length expression.
// Returns an error if the expression is invalid or can match sequences of
// different lengths.
func Compile(expr string) (*Pattern, error) {
	n, err := syntax.Parse(expr)
	if err != nil {
		return nil, err
	}
	seq, err := matcher.CompileSequence(n)
	if err != nil {
		return nil, err
	}
	return FromSequence(expr, seq), nil
}

// MustCompile compiles an expression and panics if it fails.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic("byteseek: Compile(`" + expr + "`): " + err.Error())
	}
	return p
}

// FromSequence wraps an existing sequence matcher. expr is reported by
// String; pass "" to use the matcher's own rendering.
func FromSequence(expr string, seq matcher.SequenceMatcher) *Pattern {
	if expr == "" {
		expr = seq.RegularExpression(true)
	}
	return &Pattern{expr: expr, seq: seq, searcher: search.NewSequenceSearcher(seq)}
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.expr
}

// Sequence returns the compiled sequence matcher.
func (p *Pattern) Sequence() matcher.SequenceMatcher {
	return p.seq
}

// Len returns the number of bytes the pattern matches.
func (p *Pattern) Len() int {
	return p.seq.Len()
}

// RegularExpression renders the compiled matcher in expression syntax.
func (p *Pattern) RegularExpression() string {
	return p.seq.RegularExpression(true)
}

// MatchAt reports whether the pattern matches b at pos.
func (p *Pattern) MatchAt(b []byte, pos int) bool {
	return p.seq.Matches(b, pos)
}

// Match reports whether the pattern occurs anywhere in b.
func (p *Pattern) Match(b []byte) bool {
	return p.Index(b) >= 0
}

// Index returns the position of the first match in b, or -1.
func (p *Pattern) Index(b []byte) int {
	return p.searcher.SearchForwards(b, 0, len(b))
}

// LastIndex returns the position of the last match in b, or -1.
func (p *Pattern) LastIndex(b []byte) int {
	return p.searcher.SearchBackwards(b, len(b), 0)
}

// FindAllIndex returns the positions of successive non-overlapping matches.
// If n >= 0, at most n positions are returned.
func (p *Pattern) FindAllIndex(b []byte, n int) []int {
	var out []int
	for pos := 0; n < 0 || len(out) < n; {
		i := p.searcher.SearchForwards(b, pos, len(b))
		if i < 0 {
			break
		}
		out = append(out, i)
		pos = i + p.seq.Len()
	}
	return out
}

// Count returns the number of non-overlapping matches in b.
func (p *Pattern) Count(b []byte) int {
	return len(p.FindAllIndex(b, -1))
}

// IndexReader returns the position of the first match in the stream at or
// after from, or -1.
func (p *Pattern) IndexReader(r window.Reader, from int64) (int64, error) {
	return p.searcher.SearchForwardsReader(r, from, maxPosition)
}

// LastIndexReader returns the position of the last match in the stream at
// or before from, or -1.
func (p *Pattern) LastIndexReader(r window.Reader, from int64) (int64, error) {
	return p.searcher.SearchBackwardsReader(r, from, 0)
}

const maxPosition = int64(^uint64(0) >> 1)

// Config configures automaton compilation.
type Config struct {
	// Glushkov configures NFA construction.
	Glushkov glushkov.Config

	// DFA configures subset construction.
	DFA dfa.Config

	// Deterministic determinizes the NFA before freezing it.
	// Default: true
	Deterministic bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Glushkov:      glushkov.DefaultConfig(),
		DFA:           dfa.DefaultConfig(),
		Deterministic: true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Glushkov.Validate(); err != nil {
		return err
	}
	if c.Deterministic {
		return c.DFA.Validate()
	}
	return nil
}

// Automaton is a compiled expression of any shape.
type Automaton struct {
	expr string
	fa   *automata.Automaton
}

// CompileAutomaton compiles expr into a frozen automaton.
func CompileAutomaton(expr string, config Config) (*Automaton, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	n, err := syntax.Parse(expr)
	if err != nil {
		return nil, err
	}
	frag, err := glushkov.NewCompiler(config.Glushkov).Compile(n)
	if err != nil {
		return nil, err
	}
	initial := frag.Initial
	if config.Deterministic {
		if initial, err = dfa.CompileWithConfig(initial, config.DFA); err != nil {
			return nil, err
		}
	}
	return &Automaton{expr: expr, fa: automata.Freeze(initial)}, nil
}

// MustCompileAutomaton is CompileAutomaton with the default configuration
// that panics on error.
func MustCompileAutomaton(expr string) *Automaton {
	a, err := CompileAutomaton(expr, DefaultConfig())
	if err != nil {
		panic("byteseek: CompileAutomaton(`" + expr + "`): " + err.Error())
	}
	return a
}

// String returns the source expression.
func (a *Automaton) String() string {
	return a.expr
}

// Automaton returns the underlying frozen automaton.
func (a *Automaton) Automaton() *automata.Automaton {
	return a.fa
}

// MatchAt reports whether a match starts at pos in b.
func (a *Automaton) MatchAt(b []byte, pos int) bool {
	return a.fa.MatchesAt(b, pos)
}

// Index returns the first position of b at which a match starts, or -1.
func (a *Automaton) Index(b []byte) int {
	for pos := 0; pos <= len(b); pos++ {
		if a.fa.MatchesAt(b, pos) {
			return pos
		}
	}
	return -1
}

// FindIndex returns the start and end of the leftmost-longest match in b,
// or nil.
func (a *Automaton) FindIndex(b []byte) []int {
	for pos := 0; pos <= len(b); pos++ {
		if lengths := a.fa.MatchLengths(b, pos); len(lengths) > 0 {
			return []int{pos, pos + lengths[len(lengths)-1]}
		}
	}
	return nil
}

// MatchReader reports whether a match starts at pos in the stream.
func (a *Automaton) MatchReader(r window.Reader, pos int64) (bool, error) {
	return a.fa.MatchesReader(r, pos)
}

// CompileTrie compiles fixed-length expressions into a trie whose final
// states are associated with the matchers they complete.
func CompileTrie(exprs ...string) (*trie.Trie, error) {
	t := trie.New()
	for _, expr := range exprs {
		p, err := Compile(expr)
		if err != nil {
			return nil, err
		}
		t.Add(p.seq)
	}
	return t, nil
}

// Set is a compiled group of fixed-length expressions searched together.
type Set struct {
	patterns []*Pattern
	byseq    map[matcher.SequenceMatcher][]int
	searcher *search.MultiSequenceSearcher
}

// SetMatch is a match of one or more members of a Set at one position.
type SetMatch struct {
	Position int64
	// Indexes lists the matching members by their position in CompileSet's
	// arguments, shortest match first.
	Indexes []int
}

// CompileSet compiles every expression and builds a shared trie over them.
func CompileSet(exprs ...string) (*Set, error) {
	s := &Set{byseq: make(map[matcher.SequenceMatcher][]int, len(exprs))}
	seqs := make([]matcher.SequenceMatcher, 0, len(exprs))
	for i, expr := range exprs {
		p, err := Compile(expr)
		if err != nil {
			return nil, err
		}
		s.patterns = append(s.patterns, p)
		s.byseq[p.seq] = append(s.byseq[p.seq], i)
		seqs = append(seqs, p.seq)
	}
	searcher, err := search.NewMultiSequenceSearcher(seqs...)
	if err != nil {
		return nil, err
	}
	s.searcher = searcher
	return s, nil
}

// Patterns returns the compiled members.
func (s *Set) Patterns() []*Pattern {
	return append([]*Pattern(nil), s.patterns...)
}

func (s *Set) toSetMatch(r search.Result) SetMatch {
	m := SetMatch{Position: r.Position, Indexes: make([]int, 0, len(r.Sequences))}
	for _, seq := range r.Sequences {
		m.Indexes = append(m.Indexes, s.byseq[seq]...)
	}
	return m
}

// Find returns the first position in b at which any member matches.
func (s *Set) Find(b []byte) (SetMatch, bool) {
	r, ok := s.searcher.SearchForwards(b, 0, len(b))
	if !ok {
		return SetMatch{}, false
	}
	return s.toSetMatch(r), true
}

// FindAll returns every position in b at which some member matches.
func (s *Set) FindAll(b []byte) []SetMatch {
	results := s.searcher.FindAll(b)
	out := make([]SetMatch, 0, len(results))
	for _, r := range results {
		out = append(out, s.toSetMatch(r))
	}
	return out
}

// FindReader returns the first position at or after from at which any
// member matches the stream.
func (s *Set) FindReader(r window.Reader, from int64) (SetMatch, bool, error) {
	res, ok, err := s.searcher.SearchForwardsReader(r, from, maxPosition)
	if err != nil || !ok {
		return SetMatch{}, false, err
	}
	return s.toSetMatch(res), true, nil
}
