package automata

import (
	"fmt"
	"slices"

	"github.com/coregx/byteseek/internal/conv"
	"github.com/coregx/byteseek/internal/sparse"
	"github.com/coregx/byteseek/window"
)

// StateID identifies a state of a frozen Automaton.
type StateID uint32

// frozenState is the read-only form of a State. next holds, for every byte
// class, the targets reached on bytes of that class.
type frozenState struct {
	final        bool
	next         [][]StateID
	associations []any
}

// Automaton is an immutable automaton compiled from a builder graph.
// It is safe for concurrent use.
type Automaton struct {
	states        []frozenState
	start         StateID
	classes       ByteClasses
	deterministic bool
}

// Freeze converts the graph reachable from initial into an Automaton.
// State 0 is the initial state; the rest follow in breadth-first order.
func Freeze(initial *State) *Automaton {
	order := Reachable(initial)
	ids := make(map[*State]StateID, len(order))
	for i, s := range order {
		ids[s] = StateID(conv.IntToUint32(i))
	}

	var bcs ByteClassSet
	for _, s := range order {
		for _, t := range s.transitions {
			bcs.SetByteSet(t.ByteSet())
		}
	}
	classes := bcs.ByteClasses()
	reps := classes.Representatives()

	a := &Automaton{
		states:        make([]frozenState, len(order)),
		classes:       classes,
		deterministic: true,
	}
	for i, s := range order {
		fs := frozenState{
			final:        s.final,
			next:         make([][]StateID, len(reps)),
			associations: slices.Clone(s.associations),
		}
		for class, rep := range reps {
			for _, t := range s.transitions {
				if t.Matches(rep) {
					fs.next[class] = append(fs.next[class], ids[t.target])
				}
			}
			if len(fs.next[class]) > 1 {
				a.deterministic = false
			}
		}
		a.states[i] = fs
	}
	return a
}

// Start returns the initial state.
func (a *Automaton) Start() StateID {
	return a.start
}

// NumStates returns the number of states.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// IsFinal reports whether id is an accepting state.
func (a *Automaton) IsFinal(id StateID) bool {
	return a.states[id].final
}

// Next returns the states reached from id on b. The slice must not be modified.
func (a *Automaton) Next(id StateID, b byte) []StateID {
	return a.states[id].next[a.classes.Get(b)]
}

// Associations returns the objects associated with id.
func (a *Automaton) Associations(id StateID) []any {
	return slices.Clone(a.states[id].associations)
}

// ByteClasses returns the byte equivalence classes of the automaton.
func (a *Automaton) ByteClasses() *ByteClasses {
	return &a.classes
}

// IsDeterministic reports whether every state has at most one target per byte.
func (a *Automaton) IsDeterministic() bool {
	return a.deterministic
}

// String returns a human-readable representation of the automaton
func (a *Automaton) String() string {
	return fmt.Sprintf("Automaton{states: %d, classes: %d, deterministic: %t}",
		len(a.states), a.classes.AlphabetLen(), a.deterministic)
}

// runner steps the automaton over input one byte at a time, tracking the
// set of active states.
type runner struct {
	a    *Automaton
	sets *sparse.SparseSets
}

func (a *Automaton) newRunner() *runner {
	r := &runner{a: a, sets: sparse.NewSparseSets(conv.IntToUint32(len(a.states)))}
	r.sets.Set1.Insert(uint32(a.start))
	return r
}

// step advances every active state on b. It reports whether any state is
// still active.
func (r *runner) step(b byte) bool {
	cur, next := r.sets.Set1, r.sets.Set2
	next.Clear()
	class := r.a.classes.Get(b)
	for _, id := range cur.Values() {
		for _, target := range r.a.states[id].next[class] {
			next.Insert(uint32(target))
		}
	}
	r.sets.Swap()
	return !next.IsEmpty()
}

// accepting reports whether any active state is final.
func (r *runner) accepting() bool {
	for _, id := range r.sets.Set1.Values() {
		if r.a.states[id].final {
			return true
		}
	}
	return false
}

// activeAssociations returns the associations of the active final states.
func (r *runner) activeAssociations() []any {
	var out []any
	for _, id := range r.sets.Set1.Values() {
		s := &r.a.states[id]
		if !s.final {
			continue
		}
		for _, v := range s.associations {
			if !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	return out
}

// Accepts reports whether the automaton accepts exactly input.
func (a *Automaton) Accepts(input []byte) bool {
	r := a.newRunner()
	for _, b := range input {
		if !r.step(b) {
			return false
		}
	}
	return r.accepting()
}

// MatchesAt reports whether some prefix of buf[pos:] is accepted. An
// accepting initial state matches the empty prefix.
func (a *Automaton) MatchesAt(buf []byte, pos int) bool {
	if pos < 0 || pos > len(buf) {
		return false
	}
	r := a.newRunner()
	if r.accepting() {
		return true
	}
	for _, b := range buf[pos:] {
		if !r.step(b) {
			return false
		}
		if r.accepting() {
			return true
		}
	}
	return false
}

// MatchLengths returns, in ascending order, the length of every accepted
// prefix of buf[pos:].
func (a *Automaton) MatchLengths(buf []byte, pos int) []int {
	if pos < 0 || pos > len(buf) {
		return nil
	}
	var lengths []int
	r := a.newRunner()
	if r.accepting() {
		lengths = append(lengths, 0)
	}
	for i, b := range buf[pos:] {
		if !r.step(b) {
			break
		}
		if r.accepting() {
			lengths = append(lengths, i+1)
		}
	}
	return lengths
}

// Match is an accepted prefix and the associations of the states accepting it.
type Match struct {
	Length       int
	Associations []any
}

// Matches returns every accepted prefix of buf[pos:] along with the
// associations of the final states reached.
func (a *Automaton) Matches(buf []byte, pos int) []Match {
	if pos < 0 || pos > len(buf) {
		return nil
	}
	var out []Match
	r := a.newRunner()
	if r.accepting() {
		out = append(out, Match{Length: 0, Associations: r.activeAssociations()})
	}
	for i, b := range buf[pos:] {
		if !r.step(b) {
			break
		}
		if r.accepting() {
			out = append(out, Match{Length: i + 1, Associations: r.activeAssociations()})
		}
	}
	return out
}

// MatchesReader reports whether some prefix of the stream from pos is
// accepted, reading window by window until the automaton accepts or dies.
func (a *Automaton) MatchesReader(rd window.Reader, pos int64) (bool, error) {
	if pos < 0 {
		return false, nil
	}
	r := a.newRunner()
	if r.accepting() {
		return true, nil
	}
	for {
		w, err := rd.Window(pos)
		if err != nil {
			return false, err
		}
		if w == nil {
			return false, nil
		}
		offset := rd.WindowOffset(pos)
		if offset < 0 || offset >= w.Len() {
			return false, window.ErrInvalidWindow
		}
		for _, b := range w.Bytes()[offset:] {
			if !r.step(b) {
				return false, nil
			}
			if r.accepting() {
				return true, nil
			}
		}
		pos += int64(w.Len() - offset)
	}
}
