// Package dfa converts non-deterministic automata into deterministic ones by
// subset construction.
//
// Each DFA state stands for a set of NFA states. Sets are memoized, so every
// reachable subset is built exactly once and construction terminates. For
// each subset the byte values are partitioned into groups that lead to the
// same set of NFA states, and one transition is added per group. The groups
// are disjoint, so at most one transition of a DFA state matches any byte.
package dfa

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/coregx/byteseek/automata"
	"github.com/coregx/byteseek/internal/conv"
	"github.com/coregx/byteseek/matcher"
)

// StateKey is the hash of a sorted NFA state set.
type StateKey uint64

// ComputeStateKey hashes a sorted set of NFA state ids.
func ComputeStateKey(set []uint32) StateKey {
	var buf [4]byte
	d := xxhash.New()
	for _, id := range set {
		binary.LittleEndian.PutUint32(buf[:], id)
		_, _ = d.Write(buf[:])
	}
	return StateKey(d.Sum64())
}

// subset is one DFA state under construction.
type subset struct {
	members []uint32
	state   *automata.State
}

// Builder runs the subset construction over one NFA.
type Builder struct {
	config Config

	nfa     []*automata.State
	ids     map[*automata.State]uint32
	classes automata.ByteClasses
	reps    []byte

	// memo buckets subsets by key; members are compared to resolve collisions.
	memo    map[StateKey][]*subset
	pending []*subset
	count   int
}

// NewBuilder creates a builder for the NFA starting at initial.
func NewBuilder(initial *automata.State, config Config) *Builder {
	order := automata.Reachable(initial)
	ids := make(map[*automata.State]uint32, len(order))
	var bcs automata.ByteClassSet
	for i, s := range order {
		ids[s] = conv.IntToUint32(i)
		for _, t := range s.Transitions() {
			bcs.SetByteSet(t.ByteSet())
		}
	}
	classes := bcs.ByteClasses()
	return &Builder{
		config:  config,
		nfa:     order,
		ids:     ids,
		classes: classes,
		reps:    classes.Representatives(),
		memo:    make(map[StateKey][]*subset),
	}
}

// Build returns the initial state of the DFA.
func (b *Builder) Build() (*automata.State, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	start, err := b.lookup([]uint32{0})
	if err != nil {
		return nil, err
	}
	for len(b.pending) > 0 {
		sub := b.pending[len(b.pending)-1]
		b.pending = b.pending[:len(b.pending)-1]
		if err := b.expand(sub); err != nil {
			return nil, err
		}
	}
	return start.state, nil
}

// lookup returns the DFA state for a sorted member set, creating it and
// queueing it for expansion if it is new.
func (b *Builder) lookup(members []uint32) (*subset, error) {
	key := ComputeStateKey(members)
	for _, sub := range b.memo[key] {
		if slices.Equal(sub.members, members) {
			return sub, nil
		}
	}
	if b.count >= b.config.MaxStates {
		return nil, ErrStateLimitExceeded
	}
	b.count++

	state := automata.NewState(false)
	for _, id := range members {
		s := b.nfa[id]
		if s.IsFinal() {
			state.SetFinal(true)
		}
		state.AddAssociations(s.Associations())
	}
	sub := &subset{members: members, state: state}
	b.memo[key] = append(b.memo[key], sub)
	b.pending = append(b.pending, sub)
	return sub, nil
}

// expand adds the outgoing transitions of sub, one per group of byte classes
// with the same target set.
func (b *Builder) expand(sub *subset) error {
	type group struct {
		targets []uint32
		bytes   matcher.ByteSet
	}
	var groups []*group
	for class, rep := range b.reps {
		var targets []uint32
		for _, id := range sub.members {
			for _, t := range b.nfa[id].Transitions() {
				if t.Matches(rep) {
					targets = append(targets, b.ids[t.Target()])
				}
			}
		}
		if len(targets) == 0 {
			continue
		}
		slices.Sort(targets)
		targets = slices.Compact(targets)

		elems := b.classes.Elements(conv.IntToByte(class))
		i := slices.IndexFunc(groups, func(g *group) bool { return slices.Equal(g.targets, targets) })
		if i >= 0 {
			groups[i].bytes = groups[i].bytes.Union(elems)
			continue
		}
		groups = append(groups, &group{targets: targets, bytes: elems})
	}

	for _, g := range groups {
		next, err := b.lookup(g.targets)
		if err != nil {
			return err
		}
		sub.state.AddTransition(automata.NewSetTransition(g.bytes, next.state))
	}
	return nil
}

// NumStates returns the number of DFA states built so far.
func (b *Builder) NumStates() int {
	return b.count
}

// Compile determinizes the NFA starting at initial with the default configuration.
func Compile(initial *automata.State) (*automata.State, error) {
	return CompileWithConfig(initial, DefaultConfig())
}

// CompileWithConfig determinizes the NFA starting at initial.
func CompileWithConfig(initial *automata.State, config Config) (*automata.State, error) {
	return NewBuilder(initial, config).Build()
}
