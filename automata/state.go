// Package automata provides the graph that automaton builders work on and
// the frozen form used for matching.
//
// Builders (Glushkov, subset construction, trie) wire together *State nodes
// connected by *Transition edges guarded by byte matchers. The graph may
// contain cycles and shared states. Once construction is finished the graph
// should be treated as read-only, or converted with Freeze into an Automaton:
// an arena of StateID-indexed states with byte-class transition tables.
package automata

import (
	"fmt"
	"slices"

	"github.com/coregx/byteseek/matcher"
)

// State is a node in an automaton under construction.
//
// States are identity-distinct: two states with identical transitions are
// still different states. A State is not safe for concurrent mutation.
type State struct {
	final        bool
	transitions  []*Transition
	associations []any
}

// NewState creates a state with no transitions.
func NewState(final bool) *State {
	return &State{final: final}
}

// IsFinal reports whether reaching this state accepts the input so far.
func (s *State) IsFinal() bool {
	return s.final
}

// SetFinal sets whether the state accepts.
func (s *State) SetFinal(final bool) {
	s.final = final
}

// AddTransition appends t to the outgoing transitions.
func (s *State) AddTransition(t *Transition) {
	s.transitions = append(s.transitions, t)
}

// AddTransitions appends every transition in ts.
func (s *State) AddTransitions(ts []*Transition) {
	s.transitions = append(s.transitions, ts...)
}

// RemoveTransition removes t (compared by identity).
// Returns false if t is not an outgoing transition of s.
func (s *State) RemoveTransition(t *Transition) bool {
	i := slices.Index(s.transitions, t)
	if i < 0 {
		return false
	}
	s.transitions = slices.Delete(s.transitions, i, i+1)
	return true
}

// ClearTransitions removes every outgoing transition.
func (s *State) ClearTransitions() {
	s.transitions = nil
}

// Transitions returns a snapshot of the outgoing transitions.
// Callers may add or remove transitions on s while iterating the snapshot.
func (s *State) Transitions() []*Transition {
	return slices.Clone(s.transitions)
}

// NumTransitions returns the number of outgoing transitions.
func (s *State) NumTransitions() int {
	return len(s.transitions)
}

// Associations returns a copy of the objects associated with the state.
func (s *State) Associations() []any {
	return slices.Clone(s.associations)
}

// AddAssociation associates v with the state. Associations must be
// comparable values (typically pointers); duplicates are ignored.
func (s *State) AddAssociation(v any) {
	if !slices.Contains(s.associations, v) {
		s.associations = append(s.associations, v)
	}
}

// AddAssociations associates every value in vs with the state.
func (s *State) AddAssociations(vs []any) {
	for _, v := range vs {
		s.AddAssociation(v)
	}
}

// DeepCopy copies s and every state reachable from it.
// Sharing within the copied graph is preserved.
func (s *State) DeepCopy() *State {
	return s.DeepCopyWith(make(map[*State]*State))
}

// DeepCopyWith is DeepCopy with a caller-supplied identity map from original
// states to their copies. States already present in copies are reused rather
// than copied again, so a single map threaded through several calls copies
// a graph fragment by fragment without duplicating shared states.
func (s *State) DeepCopyWith(copies map[*State]*State) *State {
	if c, ok := copies[s]; ok {
		return c
	}
	root := s.shallowCopy()
	copies[s] = root
	stack := []*State{s}
	for len(stack) > 0 {
		orig := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cp := copies[orig]
		cp.transitions = make([]*Transition, 0, len(orig.transitions))
		for _, t := range orig.transitions {
			target, ok := copies[t.target]
			if !ok {
				target = t.target.shallowCopy()
				copies[t.target] = target
				stack = append(stack, t.target)
			}
			cp.transitions = append(cp.transitions, &Transition{guard: t.guard, target: target})
		}
	}
	return root
}

func (s *State) shallowCopy() *State {
	return &State{final: s.final, associations: slices.Clone(s.associations)}
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	return fmt.Sprintf("State{final: %t, transitions: %d}", s.final, len(s.transitions))
}

// Transition is an edge to a target state guarded by a byte matcher.
// Transitions are immutable.
type Transition struct {
	guard  matcher.ByteMatcher
	target *State
}

// NewTransition creates a transition to target taken on bytes matching guard.
func NewTransition(guard matcher.ByteMatcher, target *State) *Transition {
	return &Transition{guard: guard, target: target}
}

// NewSetTransition creates a transition guarded by the simplest matcher for
// the bytes in set. It panics if set is empty.
func NewSetTransition(set matcher.ByteSet, target *State) *Transition {
	guard, err := matcher.FromSet(set)
	if err != nil {
		panic(fmt.Sprintf("automata: %v", err))
	}
	return &Transition{guard: guard, target: target}
}

// Guard returns the byte matcher guarding the transition.
func (t *Transition) Guard() matcher.ByteMatcher {
	return t.guard
}

// Target returns the state the transition leads to.
func (t *Transition) Target() *State {
	return t.target
}

// ByteSet returns the bytes on which the transition is taken.
func (t *Transition) ByteSet() matcher.ByteSet {
	return t.guard.ByteSet()
}

// Matches reports whether the transition is taken on b.
func (t *Transition) Matches(b byte) bool {
	return t.guard.MatchesByte(b)
}

// String returns a human-readable representation of the transition
func (t *Transition) String() string {
	return fmt.Sprintf("Transition{%s}", t.guard.RegularExpression(true))
}
