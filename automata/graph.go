package automata

import (
	"github.com/coregx/byteseek/matcher"
)

// Reachable returns every state reachable from initial, initial first, in
// breadth-first order.
func Reachable(initial *State) []*State {
	seen := map[*State]bool{initial: true}
	order := []*State{initial}
	for i := 0; i < len(order); i++ {
		for _, t := range order[i].transitions {
			if !seen[t.target] {
				seen[t.target] = true
				order = append(order, t.target)
			}
		}
	}
	return order
}

// IsDeterministic reports whether no state reachable from initial has two
// outgoing transitions sharing a byte.
func IsDeterministic(initial *State) bool {
	for _, s := range Reachable(initial) {
		if !s.isDeterministic() {
			return false
		}
	}
	return true
}

func (s *State) isDeterministic() bool {
	var seen matcher.ByteSet
	for _, t := range s.transitions {
		set := t.ByteSet()
		if !set.Intersect(seen).IsEmpty() {
			return false
		}
		seen = seen.Union(set)
	}
	return true
}

// Stats summarizes the size of a graph.
type Stats struct {
	States      int
	Finals      int
	Transitions int
}

// GraphStats counts the states, final states and transitions reachable from
// initial.
func GraphStats(initial *State) Stats {
	var st Stats
	for _, s := range Reachable(initial) {
		st.States++
		if s.final {
			st.Finals++
		}
		st.Transitions += len(s.transitions)
	}
	return st
}
