package automata

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/byteseek/matcher"
	"github.com/coregx/byteseek/window"
)

func TestByteClassSet_SimpleRange(t *testing.T) {
	var bcs ByteClassSet
	bcs.SetRange('a', 'z')
	bc := bcs.ByteClasses()

	for b := 0; b < 256; b++ {
		want := byte(0)
		switch {
		case b >= 'a' && b <= 'z':
			want = 1
		case b > 'z':
			want = 2
		}
		if got := bc.Get(byte(b)); got != want {
			t.Errorf("Get(%#x) = %d, want %d", b, got, want)
		}
	}
	if bc.AlphabetLen() != 3 {
		t.Errorf("AlphabetLen() = %d, want 3", bc.AlphabetLen())
	}
	if diff := cmp.Diff([]byte{0, 'a', 'z' + 1}, bc.Representatives()); diff != "" {
		t.Errorf("Representatives() mismatch (-want +got):\n%s", diff)
	}
	if bc.Elements(1) != matcher.ByteRangeSet('a', 'z') {
		t.Error("Elements(1) should be [a-z]")
	}
}

func TestByteClassSet_Edges(t *testing.T) {
	var bcs ByteClassSet
	bcs.SetByteSet(matcher.ByteSetOf(0, 0xff))
	bc := bcs.ByteClasses()
	if bc.AlphabetLen() != 3 {
		t.Errorf("AlphabetLen() = %d, want 3", bc.AlphabetLen())
	}
	if bc.Get(0) == bc.Get(1) || bc.Get(0xfe) == bc.Get(0xff) {
		t.Error("edge bytes should have their own classes")
	}

	single := SingletonByteClasses()
	if single.AlphabetLen() != 256 {
		t.Errorf("SingletonByteClasses().AlphabetLen() = %d", single.AlphabetLen())
	}
}

// abOrAc builds a non-deterministic graph for ab|ac|a+.
func abOrAc() *State {
	s0 := NewState(false)
	s1, s2, s3 := NewState(false), NewState(false), NewState(true)
	sb, sc := NewState(true), NewState(true)
	s0.AddTransition(NewTransition(matcher.OneByte('a'), s1))
	s0.AddTransition(NewTransition(matcher.OneByte('a'), s2))
	s0.AddTransition(NewTransition(matcher.OneByte('a'), s3))
	s1.AddTransition(NewTransition(matcher.OneByte('b'), sb))
	s2.AddTransition(NewTransition(matcher.OneByte('c'), sc))
	s3.AddTransition(NewTransition(matcher.OneByte('a'), s3))
	sb.AddAssociation("ab")
	sc.AddAssociation("ac")
	s3.AddAssociation("a+")
	return s0
}

func TestFreeze(t *testing.T) {
	a := Freeze(abOrAc())
	if a.NumStates() != 6 {
		t.Errorf("NumStates() = %d, want 6", a.NumStates())
	}
	if a.IsDeterministic() {
		t.Error("automaton with three 'a' transitions should not be deterministic")
	}
	if a.Start() != 0 || a.IsFinal(a.Start()) {
		t.Error("start state should be 0 and not final")
	}
	if got := len(a.Next(a.Start(), 'a')); got != 3 {
		t.Errorf("len(Next(start, 'a')) = %d, want 3", got)
	}
	if got := len(a.Next(a.Start(), 'z')); got != 0 {
		t.Errorf("len(Next(start, 'z')) = %d, want 0", got)
	}
	// Classes: below 'a', 'a', 'b', 'c', above 'c'.
	if a.ByteClasses().AlphabetLen() != 5 {
		t.Errorf("AlphabetLen() = %d, want 5", a.ByteClasses().AlphabetLen())
	}
}

func TestAutomaton_Accepts(t *testing.T) {
	a := Freeze(abOrAc())
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"a", true},
		{"aaa", true},
		{"ab", true},
		{"ac", true},
		{"ad", false},
		{"abc", false},
		{"b", false},
	}
	for _, tt := range tests {
		if got := a.Accepts([]byte(tt.input)); got != tt.want {
			t.Errorf("Accepts(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAutomaton_MatchesAt(t *testing.T) {
	a := Freeze(abOrAc())
	buf := []byte("xxaaby")
	if a.MatchesAt(buf, 0) {
		t.Error("no match should start at 0")
	}
	if !a.MatchesAt(buf, 2) {
		t.Error("should match at 2")
	}
	if a.MatchesAt(buf, -1) || a.MatchesAt(buf, 7) {
		t.Error("out-of-range positions should not match")
	}
	if diff := cmp.Diff([]int{1, 2}, a.MatchLengths(buf, 2)); diff != "" {
		t.Errorf("MatchLengths(2) mismatch (-want +got):\n%s", diff)
	}
	if got := a.MatchLengths(buf, 4); got != nil {
		t.Errorf("MatchLengths(4) = %v, want nil", got)
	}

	matches := a.Matches([]byte("ab"), 0)
	want := []Match{
		{Length: 1, Associations: []any{"a+"}},
		{Length: 2, Associations: []any{"ab"}},
	}
	if diff := cmp.Diff(want, matches); diff != "" {
		t.Errorf("Matches mismatch (-want +got):\n%s", diff)
	}
}

func TestAutomaton_EmptyMatch(t *testing.T) {
	s := NewState(true)
	s.AddTransition(NewTransition(matcher.OneByte('a'), s))
	a := Freeze(s)
	if !a.IsDeterministic() {
		t.Error("a* should be deterministic")
	}
	if !a.MatchesAt(nil, 0) {
		t.Error("accepting start state should match the empty prefix")
	}
	if diff := cmp.Diff([]int{0, 1, 2}, a.MatchLengths([]byte("aab"), 0)); diff != "" {
		t.Errorf("MatchLengths mismatch (-want +got):\n%s", diff)
	}
	r, _ := window.NewByteReader(nil, 4)
	if ok, err := a.MatchesReader(r, 0); !ok || err != nil {
		t.Errorf("MatchesReader on empty stream = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestAutomaton_MatchesReader(t *testing.T) {
	s0, s1, s2, s3 := NewState(false), NewState(false), NewState(false), NewState(true)
	s0.AddTransition(NewTransition(matcher.OneByte('x'), s1))
	s1.AddTransition(NewTransition(matcher.AnyByte(), s2))
	s2.AddTransition(NewTransition(matcher.OneByte('z'), s3))
	a := Freeze(s0)

	data := []byte("----xyz--x")
	for size := 1; size <= len(data); size++ {
		r, _ := window.NewByteReader(data, size)
		if ok, err := a.MatchesReader(r, 4); !ok || err != nil {
			t.Errorf("window size %d: MatchesReader(4) = (%v, %v)", size, ok, err)
		}
		if ok, _ := a.MatchesReader(r, 5); ok {
			t.Errorf("window size %d: MatchesReader(5) should not match", size)
		}
		if ok, _ := a.MatchesReader(r, 9); ok {
			t.Errorf("window size %d: MatchesReader(9) should run out of data", size)
		}
	}
}
