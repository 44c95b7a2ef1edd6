package automata

import (
	"testing"

	"github.com/coregx/byteseek/matcher"
)

func TestState_Transitions(t *testing.T) {
	s := NewState(false)
	target := NewState(true)
	t1 := NewTransition(matcher.OneByte('a'), target)
	t2 := NewTransition(matcher.OneByte('b'), target)
	s.AddTransitions([]*Transition{t1, t2})

	snapshot := s.Transitions()
	// Mutating the live list must not disturb the snapshot.
	for _, tr := range snapshot {
		s.RemoveTransition(tr)
		s.AddTransition(NewTransition(matcher.OneByte('c'), target))
	}
	if len(snapshot) != 2 || snapshot[0] != t1 || snapshot[1] != t2 {
		t.Errorf("snapshot changed: %v", snapshot)
	}
	if s.NumTransitions() != 2 {
		t.Errorf("NumTransitions() = %d, want 2", s.NumTransitions())
	}
	for _, tr := range s.Transitions() {
		if !tr.Matches('c') {
			t.Errorf("transition %v should be on 'c'", tr)
		}
	}
	if s.RemoveTransition(t1) {
		t.Error("removing a transition twice should report false")
	}
	s.ClearTransitions()
	if s.NumTransitions() != 0 {
		t.Error("ClearTransitions left transitions behind")
	}
}

func TestState_SetFinal(t *testing.T) {
	s := NewState(false)
	s.SetFinal(true)
	if !s.IsFinal() {
		t.Error("SetFinal(true) did not stick")
	}
}

func TestState_Associations(t *testing.T) {
	s := NewState(true)
	a, b := new(int), new(int)
	s.AddAssociation(a)
	s.AddAssociations([]any{a, b})
	got := s.Associations()
	if len(got) != 2 || got[0] != any(a) || got[1] != any(b) {
		t.Errorf("Associations() = %v", got)
	}
	got[0] = nil
	if s.Associations()[0] == nil {
		t.Error("Associations() should return a copy")
	}
}

func TestState_DeepCopyPreservesSharing(t *testing.T) {
	// initial -a-> left  -c-> shared
	//         -b-> right -d-> shared -e-> initial (cycle)
	initial := NewState(false)
	left, right := NewState(false), NewState(false)
	shared := NewState(true)
	shared.AddAssociation("tag")
	initial.AddTransition(NewTransition(matcher.OneByte('a'), left))
	initial.AddTransition(NewTransition(matcher.OneByte('b'), right))
	left.AddTransition(NewTransition(matcher.OneByte('c'), shared))
	right.AddTransition(NewTransition(matcher.OneByte('d'), shared))
	shared.AddTransition(NewTransition(matcher.OneByte('e'), initial))

	cp := initial.DeepCopy()
	if cp == initial {
		t.Fatal("DeepCopy returned the original")
	}
	ts := cp.Transitions()
	cpLeft, cpRight := ts[0].Target(), ts[1].Target()
	if cpLeft == left || cpRight == right {
		t.Fatal("copied transitions point at original states")
	}
	sharedViaLeft := cpLeft.Transitions()[0].Target()
	sharedViaRight := cpRight.Transitions()[0].Target()
	if sharedViaLeft != sharedViaRight {
		t.Error("shared state was duplicated by the copy")
	}
	if sharedViaLeft == shared || !sharedViaLeft.IsFinal() {
		t.Error("shared state was not copied faithfully")
	}
	if len(sharedViaLeft.Associations()) != 1 {
		t.Error("associations were not copied")
	}
	if sharedViaLeft.Transitions()[0].Target() != cp {
		t.Error("cycle back to the initial state was not preserved")
	}
	if got, want := GraphStats(cp), GraphStats(initial); got != want {
		t.Errorf("GraphStats(copy) = %+v, want %+v", got, want)
	}

	// Mutating the copy leaves the original alone.
	sharedViaLeft.SetFinal(false)
	if !shared.IsFinal() {
		t.Error("copy aliases the original")
	}
}

func TestState_DeepCopyWithSharedMap(t *testing.T) {
	a := NewState(false)
	b := NewState(true)
	a.AddTransition(NewTransition(matcher.AnyByte(), b))

	copies := make(map[*State]*State)
	aCopy := a.DeepCopyWith(copies)
	bCopy := b.DeepCopyWith(copies)
	if aCopy.Transitions()[0].Target() != bCopy {
		t.Error("second copy with the same map should reuse the first copy's states")
	}
}

func TestNewSetTransition(t *testing.T) {
	tr := NewSetTransition(matcher.ByteRangeSet('0', '9'), NewState(true))
	if !tr.Matches('5') || tr.Matches('a') {
		t.Errorf("transition %v has the wrong guard", tr)
	}
	defer func() {
		if recover() == nil {
			t.Error("empty set should panic")
		}
	}()
	NewSetTransition(matcher.ByteSet{}, NewState(true))
}

func TestIsDeterministic(t *testing.T) {
	s := NewState(false)
	f := NewState(true)
	s.AddTransition(NewTransition(matcher.Range('a', 'm'), f))
	s.AddTransition(NewTransition(matcher.Range('n', 'z'), f))
	if !IsDeterministic(s) {
		t.Error("disjoint guards should be deterministic")
	}
	f.AddTransition(NewTransition(matcher.OneByte('x'), s))
	f.AddTransition(NewTransition(matcher.AnyByte(), f))
	if IsDeterministic(s) {
		t.Error("overlapping guards on a reachable state should not be deterministic")
	}
}

func TestReachable(t *testing.T) {
	s0, s1, s2 := NewState(false), NewState(false), NewState(true)
	s0.AddTransition(NewTransition(matcher.OneByte(1), s1))
	s0.AddTransition(NewTransition(matcher.OneByte(2), s2))
	s1.AddTransition(NewTransition(matcher.OneByte(3), s2))
	s2.AddTransition(NewTransition(matcher.OneByte(4), s0))
	NewState(true).AddTransition(NewTransition(matcher.OneByte(5), s0)) // unreachable

	got := Reachable(s0)
	if len(got) != 3 || got[0] != s0 || got[1] != s1 || got[2] != s2 {
		t.Errorf("Reachable() = %v", got)
	}
	st := GraphStats(s0)
	if st != (Stats{States: 3, Finals: 1, Transitions: 4}) {
		t.Errorf("GraphStats() = %+v", st)
	}
}
