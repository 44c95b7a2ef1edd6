package glushkov

import (
	"errors"
	"testing"

	"github.com/coregx/byteseek/automata"
	"github.com/coregx/byteseek/syntax"
)

func mustCompile(t *testing.T, expr string) *automata.State {
	t.Helper()
	s, err := CompileString(expr)
	if err != nil {
		t.Fatalf("CompileString(%q) error: %v", expr, err)
	}
	return s
}

func TestCompile_Language(t *testing.T) {
	tests := []struct {
		expr   string
		accept []string
		reject []string
	}{
		{"'abc'", []string{"abc"}, []string{"", "ab", "abcd", "abd"}},
		{"`ab`", []string{"ab", "AB", "aB"}, []string{"ac", "a"}},
		{"01 (02|03) 04", []string{"\x01\x02\x04", "\x01\x03\x04"}, []string{"\x01\x04", "\x01\x02\x03\x04"}},
		{"61*", []string{"", "a", "aaa"}, []string{"b", "ab"}},
		{"61+", []string{"a", "aa"}, []string{"", "b"}},
		{"61 62? 63", []string{"ac", "abc"}, []string{"abbc", "ab"}},
		{"61{2}", []string{"aa"}, []string{"a", "aaa"}},
		{"61{2,3}", []string{"aa", "aaa"}, []string{"a", "aaaa"}},
		{"61{2,*}", []string{"aa", "aaaaa"}, []string{"", "a"}},
		{"61{0,1}", []string{"", "a"}, []string{"aa"}},
		{"(61 62)* 63", []string{"c", "abc", "ababc"}, []string{"abac", "ab", "aabc"}},
		{"(61|62 63)+", []string{"a", "bc", "abca", "bcbc"}, []string{"", "b", "cb"}},
		{"[30-39]{3}", []string{"123", "000"}, []string{"12a", "12"}},
		{"^61 .", []string{"bx", "\xff\x00"}, []string{"ax", "b"}},
		{"(61*|62)*", []string{"", "aab", "bba"}, []string{"c", "abc"}},
		{"61? 62?", []string{"", "a", "b", "ab"}, []string{"ba", "aa"}},
		{"(61?){2} 62", []string{"b", "ab", "aab"}, []string{"aaab", "a"}},
		{"&0f", []string{"\x0f", "\xff"}, []string{"\x0e"}},
		{"~81", []string{"\x01", "\x80"}, []string{"\x7e"}},
		{"'ab'|'ac'|61+", []string{"ab", "ac", "aaa"}, []string{"abc", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			a := automata.Freeze(mustCompile(t, tt.expr))
			for _, in := range tt.accept {
				if !a.Accepts([]byte(in)) {
					t.Errorf("should accept %q", in)
				}
			}
			for _, in := range tt.reject {
				if a.Accepts([]byte(in)) {
					t.Errorf("should reject %q", in)
				}
			}
		})
	}
}

func TestCompile_OneStatePerPosition(t *testing.T) {
	tests := []struct {
		expr   string
		states int
	}{
		{"'abc'", 4},
		{"61{2,3}", 4},
		{"(61|62)*", 3},
		{"(61|62 63)+", 4},
		{"01 (02|03) 04", 5},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got := automata.GraphStats(mustCompile(t, tt.expr)).States
			if got != tt.states {
				t.Errorf("states = %d, want %d", got, tt.states)
			}
		})
	}
}

func TestCompile_InitialHasNoIncoming(t *testing.T) {
	for _, expr := range []string{"61*", "(61 62)+", "(61|62){2,*}", "(61*|62)*"} {
		initial := mustCompile(t, expr)
		for _, s := range automata.Reachable(initial) {
			for _, tr := range s.Transitions() {
				if tr.Target() == initial {
					t.Errorf("%s: transition %v leads back to the initial state", expr, tr)
				}
			}
		}
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		node *syntax.Node
		op   syntax.Op
		want error
	}{
		{"unknown op", &syntax.Node{Op: syntax.Op(99)}, syntax.Op(99), ErrUnknownNode},
		{"nested unknown op", &syntax.Node{Op: syntax.OpSequence, Sub: []*syntax.Node{
			{Op: syntax.OpByte, Value: 1}, {Op: syntax.Op(42)},
		}}, syntax.Op(42), ErrUnknownNode},
		{"empty alternatives", &syntax.Node{Op: syntax.OpAlternatives}, syntax.OpAlternatives, ErrEmptyNode},
		{"bad repeat", &syntax.Node{Op: syntax.OpRepeat, Min: 3, Max: 1, Sub: []*syntax.Node{
			{Op: syntax.OpAnyByte},
		}}, syntax.OpRepeat, ErrInvalidRepeat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.node)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var ce *CompileError
			if !errors.As(err, &ce) || ce.Op != tt.op {
				t.Errorf("error %v should name op %v", err, tt.op)
			}
		})
	}
}

func TestCompile_RecursionLimit(t *testing.T) {
	n := syntax.MustParse("((61 62)|63)*")
	c := NewCompiler(DefaultConfig().WithMaxRecursionDepth(3))
	if _, err := c.Compile(n); !errors.Is(err, ErrTooComplex) {
		t.Errorf("error = %v, want ErrTooComplex", err)
	}
	c = NewCompiler(DefaultConfig().WithMaxRecursionDepth(4))
	if _, err := c.Compile(n); err != nil {
		t.Errorf("depth 4 should be enough: %v", err)
	}

	cfg := Config{MaxRecursionDepth: -1}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
	}
}

func TestFragment_DeepCopy(t *testing.T) {
	c := NewCompiler(DefaultConfig())
	f, err := c.Compile(syntax.MustParse("61 62*"))
	if err != nil {
		t.Fatal(err)
	}
	cp := f.DeepCopy()
	if len(cp.Finals) != len(f.Finals) {
		t.Fatalf("finals = %d, want %d", len(cp.Finals), len(f.Finals))
	}
	reach := automata.Reachable(f.Initial)
	for _, s := range automata.Reachable(cp.Initial) {
		for _, orig := range reach {
			if s == orig {
				t.Fatal("copy shares a state with the original")
			}
		}
	}
	for _, fin := range cp.Finals {
		found := false
		for _, s := range automata.Reachable(cp.Initial) {
			found = found || s == fin
		}
		if !found {
			t.Error("copied final state is not part of the copied graph")
		}
	}
}

func TestFragment_SetFinal(t *testing.T) {
	f := newFragment(false)
	s := automata.NewState(false)
	f.SetFinal(s, true)
	f.SetFinal(s, true)
	if len(f.Finals) != 1 || !s.IsFinal() {
		t.Fatalf("Finals = %v", f.Finals)
	}
	f.SetFinal(s, false)
	if len(f.Finals) != 0 || s.IsFinal() {
		t.Errorf("Finals = %v after unsetting", f.Finals)
	}
}
