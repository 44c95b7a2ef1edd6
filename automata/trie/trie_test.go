package trie

import (
	"testing"

	"github.com/coregx/byteseek/automata"
	"github.com/coregx/byteseek/matcher"
	"github.com/coregx/byteseek/window"
)

func literal(t *testing.T, s string) matcher.SequenceMatcher {
	t.Helper()
	m, err := matcher.NewByteSequenceString(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// walk follows input from the root and returns the state reached, or nil.
func walk(tr *Trie, input string) *automata.State {
	s := tr.Initial()
	for i := 0; i < len(input) && s != nil; i++ {
		s = step(s, input[i])
	}
	return s
}

func sameMatchers(want, got []matcher.SequenceMatcher) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

func TestTrie_CatCarDog(t *testing.T) {
	cat, car, dog := literal(t, "cat"), literal(t, "car"), literal(t, "dog")
	tr := New(cat, car, dog)

	for _, tt := range []struct {
		input string
		want  matcher.SequenceMatcher
	}{
		{"cat", cat},
		{"car", car},
		{"dog", dog},
	} {
		s := walk(tr, tt.input)
		if s == nil || !s.IsFinal() {
			t.Fatalf("%q does not reach a final state", tt.input)
		}
		assoc := s.Associations()
		if len(assoc) != 1 || assoc[0] != any(tt.want) {
			t.Errorf("%q associations = %v, want [%v]", tt.input, assoc, tt.want)
		}
	}
	if s := walk(tr, "ca"); s == nil || s.IsFinal() {
		t.Error(`"ca" should reach a non-final state`)
	}
	if walk(tr, "cow") != nil {
		t.Error(`"cow" should fall off the trie`)
	}
	// root, c, ca, cat, car, d, do, dog
	if got := automata.GraphStats(tr.Initial()).States; got != 8 {
		t.Errorf("states = %d, want 8", got)
	}
	if !automata.IsDeterministic(tr.Initial()) {
		t.Error("trie should be deterministic")
	}
}

func TestTrie_SharedPrefix(t *testing.T) {
	cat, cats := literal(t, "cat"), literal(t, "cats")
	tr := New(cat, cats)
	if got := automata.GraphStats(tr.Initial()).States; got != 5 {
		t.Errorf("states = %d, want 5", got)
	}
	catState := walk(tr, "cat")
	catsState := walk(tr, "cats")
	if !catState.IsFinal() || !catsState.IsFinal() {
		t.Fatal("both cat and cats should be final")
	}
	if len(catState.Transitions()) != 1 || catState.Transitions()[0].Target() != catsState {
		t.Error("cats should be one transition past cat")
	}
	got := tr.Matches([]byte("xcats"), 1)
	if !sameMatchers([]matcher.SequenceMatcher{cat, cats}, got) {
		t.Errorf("Matches got %v, want %v", got, []matcher.SequenceMatcher{cat, cats})
	}
	if tr.MinLength() != 3 || tr.MaxLength() != 4 {
		t.Errorf("lengths = (%d, %d), want (3, 4)", tr.MinLength(), tr.MaxLength())
	}
}

func TestTrie_SplitsPartialOverlap(t *testing.T) {
	// [a-c] x, then b y: the [a-c] transition splits into b and [ac].
	first, err := matcher.NewByteMatcherSequence(matcher.Range('a', 'c'), matcher.OneByte('x'))
	if err != nil {
		t.Fatal(err)
	}
	second := literal(t, "by")
	tr := New(first, second)

	if !automata.IsDeterministic(tr.Initial()) {
		t.Fatal("split trie should be deterministic")
	}
	if n := len(tr.Initial().Transitions()); n != 2 {
		t.Fatalf("root transitions = %d, want 2", n)
	}
	tests := []struct {
		input string
		want  []matcher.SequenceMatcher
	}{
		{"ax", []matcher.SequenceMatcher{first}},
		{"bx", []matcher.SequenceMatcher{first}},
		{"cx", []matcher.SequenceMatcher{first}},
		{"by", []matcher.SequenceMatcher{second}},
		{"ay", nil},
		{"dx", nil},
	}
	for _, tt := range tests {
		got := tr.Matches([]byte(tt.input), 0)
		if !sameMatchers(tt.want, got) {
			t.Errorf("Matches(%q) got %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTrie_SubsetCoversSeveralTransitions(t *testing.T) {
	a, b := literal(t, "a1"), literal(t, "b2")
	any2, err := matcher.NewByteMatcherSequence(matcher.AnyByte(), matcher.OneByte('3'))
	if err != nil {
		t.Fatal(err)
	}
	tr := New(a, b, any2)
	if !automata.IsDeterministic(tr.Initial()) {
		t.Fatal("trie should be deterministic")
	}
	for _, in := range []string{"a3", "b3", "z3"} {
		got := tr.Matches([]byte(in), 0)
		if !sameMatchers([]matcher.SequenceMatcher{any2}, got) {
			t.Errorf("Matches(%q) got %v, want %v", in, got, []matcher.SequenceMatcher{any2})
		}
	}
	if got := tr.Matches([]byte("a1"), 0); len(got) != 1 || got[0] != a {
		t.Errorf("Matches(a1) = %v", got)
	}
}

func TestTrie_AddReversed(t *testing.T) {
	abc := literal(t, "abc")
	tr := New()
	tr.AddReversed(abc)
	got := tr.Matches([]byte("cba"), 0)
	if len(got) != 1 || got[0] != abc {
		t.Errorf("reversed trie Matches = %v, want [abc]", got)
	}
	if tr.Matches([]byte("abc"), 0) != nil {
		t.Error("reversed trie should not match forwards")
	}
}

func TestTrie_MatchesReader(t *testing.T) {
	he, hers, she := literal(t, "he"), literal(t, "hers"), literal(t, "she")
	tr := New(he, hers, she)
	data := []byte("ushers")
	for size := 1; size <= len(data); size++ {
		r, _ := window.NewByteReader(data, size)
		got, err := tr.MatchesReader(r, 2)
		if err != nil {
			t.Fatalf("window size %d: %v", size, err)
		}
		if !sameMatchers([]matcher.SequenceMatcher{he, hers}, got) {
			t.Errorf("window size %d: got %v, want %v", size, got, []matcher.SequenceMatcher{he, hers})
		}
		got, _ = tr.MatchesReader(r, 1)
		if !sameMatchers([]matcher.SequenceMatcher{she}, got) {
			t.Errorf("window size %d at 1: got %v, want %v", size, got, []matcher.SequenceMatcher{she})
		}
	}
}

func TestTrie_Empty(t *testing.T) {
	tr := New()
	if tr.MinLength() != 0 || tr.MaxLength() != 0 || len(tr.Sequences()) != 0 {
		t.Error("empty trie should report no sequences")
	}
	if tr.Matches([]byte("abc"), 0) != nil {
		t.Error("empty trie should not match")
	}
}
