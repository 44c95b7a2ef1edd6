package glushkov

import (
	"slices"

	"github.com/coregx/byteseek/automata"
)

// Fragment is a partially built automaton: an initial state and the states
// that accept. No state has a transition into Initial.
type Fragment struct {
	Initial *automata.State
	Finals  []*automata.State
}

// newFragment creates a fragment of a single initial state.
func newFragment(final bool) Fragment {
	s := automata.NewState(final)
	f := Fragment{Initial: s}
	if final {
		f.Finals = []*automata.State{s}
	}
	return f
}

// SetFinal sets the finality of s and keeps Finals in step with it.
func (f *Fragment) SetFinal(s *automata.State, final bool) {
	s.SetFinal(final)
	i := slices.Index(f.Finals, s)
	switch {
	case final && i < 0:
		f.Finals = append(f.Finals, s)
	case !final && i >= 0:
		f.Finals = slices.Delete(f.Finals, i, i+1)
	}
}

// DeepCopy returns a structurally independent copy of the fragment.
func (f Fragment) DeepCopy() Fragment {
	copies := make(map[*automata.State]*automata.State)
	cp := Fragment{
		Initial: f.Initial.DeepCopyWith(copies),
		Finals:  make([]*automata.State, 0, len(f.Finals)),
	}
	for _, s := range f.Finals {
		cp.Finals = append(cp.Finals, s.DeepCopyWith(copies))
	}
	return cp
}

// copyTransitions adds a fresh copy of every transition of from onto to.
func copyTransitions(from, to *automata.State) {
	for _, t := range from.Transitions() {
		to.AddTransition(automata.NewTransition(t.Guard(), t.Target()))
	}
}

// sequence joins right onto the end of left. The initial state of right is
// absorbed into the final states of left.
func sequence(left, right Fragment) Fragment {
	rightEmpty := right.Initial.IsFinal()
	out := Fragment{Initial: left.Initial}
	for _, f := range left.Finals {
		copyTransitions(right.Initial, f)
		f.SetFinal(rightEmpty)
		if rightEmpty {
			out.Finals = append(out.Finals, f)
		}
	}
	for _, f := range right.Finals {
		if f != right.Initial && !slices.Contains(out.Finals, f) {
			out.Finals = append(out.Finals, f)
		}
	}
	return out
}

// alternatives merges the initial states of frags into one.
func alternatives(frags []Fragment) Fragment {
	out := newFragment(false)
	for _, fr := range frags {
		copyTransitions(fr.Initial, out.Initial)
		if fr.Initial.IsFinal() {
			out.SetFinal(out.Initial, true)
		}
		for _, f := range fr.Finals {
			if f != fr.Initial && !slices.Contains(out.Finals, f) {
				out.Finals = append(out.Finals, f)
			}
		}
	}
	return out
}

// loop wires every final state back to the successors of the initial state.
func loop(f Fragment) {
	for _, final := range f.Finals {
		if final != f.Initial {
			copyTransitions(f.Initial, final)
		}
	}
}

// zeroToMany turns f into f*.
func zeroToMany(f Fragment) Fragment {
	loop(f)
	f.SetFinal(f.Initial, true)
	return f
}

// oneToMany turns f into f+.
func oneToMany(f Fragment) Fragment {
	loop(f)
	return f
}

// optional turns f into f?.
func optional(f Fragment) Fragment {
	f.SetFinal(f.Initial, true)
	return f
}

// repeat builds f{min,max}; max < 0 means unbounded. f itself is consumed as
// the last copy.
func repeat(f Fragment, minCount, maxCount int) Fragment {
	var parts []Fragment
	next := func(last bool) Fragment {
		if last {
			return f
		}
		return f.DeepCopy()
	}
	extra := maxCount - minCount
	if maxCount < 0 {
		extra = 1
	}
	total := minCount + extra
	for i := 0; i < minCount; i++ {
		parts = append(parts, next(i == total-1))
	}
	for i := minCount; i < total; i++ {
		part := next(i == total-1)
		if maxCount < 0 {
			part = zeroToMany(part)
		} else {
			part = optional(part)
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return newFragment(true)
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out = sequence(out, p)
	}
	return out
}
