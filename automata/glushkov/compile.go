// Package glushkov builds non-deterministic automata without empty
// transitions from byte expressions.
//
// Every byte-consuming position of the expression becomes one state. The
// combinators in this package join sub-automata by copying the transitions
// of an initial state onto the final states it follows, and by propagating
// finality where a sub-automaton can match the empty input.
package glushkov

import (
	"github.com/coregx/byteseek/automata"
	"github.com/coregx/byteseek/matcher"
	"github.com/coregx/byteseek/syntax"
)

// Config configures Glushkov compilation.
type Config struct {
	// MaxRecursionDepth limits how deeply nested an expression may be.
	// Default: 100
	MaxRecursionDepth int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{MaxRecursionDepth: 100}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxRecursionDepth <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// WithMaxRecursionDepth returns a new config with the specified depth limit
func (c Config) WithMaxRecursionDepth(depth int) Config {
	c.MaxRecursionDepth = depth
	return c
}

// Compiler turns syntax trees into Glushkov automata.
// A Compiler is not safe for concurrent use.
type Compiler struct {
	config Config
	depth  int
}

// NewCompiler creates a compiler with the given configuration.
// A zero MaxRecursionDepth takes the default.
func NewCompiler(config Config) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = DefaultConfig().MaxRecursionDepth
	}
	return &Compiler{config: config}
}

// Compile builds an automaton for n with the default configuration and
// returns its initial state.
func Compile(n *syntax.Node) (*automata.State, error) {
	f, err := NewCompiler(DefaultConfig()).Compile(n)
	if err != nil {
		return nil, err
	}
	return f.Initial, nil
}

// CompileString parses expr and builds its automaton.
func CompileString(expr string) (*automata.State, error) {
	n, err := syntax.Parse(expr)
	if err != nil {
		return nil, err
	}
	return Compile(n)
}

// Compile builds the fragment for n.
func (c *Compiler) Compile(n *syntax.Node) (Fragment, error) {
	if err := c.config.Validate(); err != nil {
		return Fragment{}, err
	}
	c.depth = 0
	return c.compile(n)
}

func (c *Compiler) compile(n *syntax.Node) (Fragment, error) {
	if n == nil {
		return Fragment{}, &CompileError{Err: ErrUnknownNode}
	}
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return Fragment{}, &CompileError{Op: n.Op, Err: ErrTooComplex}
	}
	defer func() { c.depth-- }()

	switch n.Op {
	case syntax.OpByte, syntax.OpRange, syntax.OpSet, syntax.OpAllBitmask,
		syntax.OpAnyBitmask, syntax.OpAnyByte:
		return c.compileLeaf(n)
	case syntax.OpString:
		return chain(n.Text, func(b byte) matcher.ByteMatcher { return matcher.OneByte(b) }), nil
	case syntax.OpCaseInsensitiveString:
		return chain(n.Text, func(b byte) matcher.ByteMatcher { return matcher.CaseInsensitiveByte(b) }), nil
	case syntax.OpSequence:
		return c.compileSequence(n.Sub)
	case syntax.OpAlternatives:
		return c.compileAlternatives(n)
	case syntax.OpZeroToMany:
		return c.compileUnary(n, zeroToMany)
	case syntax.OpOneToMany:
		return c.compileUnary(n, oneToMany)
	case syntax.OpOptional:
		return c.compileUnary(n, optional)
	case syntax.OpRepeat:
		return c.compileRepeat(n)
	default:
		return Fragment{}, &CompileError{Op: n.Op, Err: ErrUnknownNode}
	}
}

// compileLeaf builds initial -guard-> final for a single-byte node.
func (c *Compiler) compileLeaf(n *syntax.Node) (Fragment, error) {
	guard, err := matcher.CompileByte(n)
	if err != nil {
		return Fragment{}, &CompileError{Op: n.Op, Err: err}
	}
	f := newFragment(false)
	final := automata.NewState(true)
	f.Initial.AddTransition(automata.NewTransition(guard, final))
	f.Finals = append(f.Finals, final)
	return f, nil
}

// chain builds a line of states, one transition per byte of text.
func chain(text string, guard func(byte) matcher.ByteMatcher) Fragment {
	f := newFragment(len(text) == 0)
	cur := f.Initial
	for i := 0; i < len(text); i++ {
		next := automata.NewState(i == len(text)-1)
		cur.AddTransition(automata.NewTransition(guard(text[i]), next))
		cur = next
	}
	if len(text) > 0 {
		f.Finals = append(f.Finals, cur)
	}
	return f
}

func (c *Compiler) compileSequence(subs []*syntax.Node) (Fragment, error) {
	if len(subs) == 0 {
		return newFragment(true), nil
	}
	out, err := c.compile(subs[0])
	if err != nil {
		return Fragment{}, err
	}
	for _, sub := range subs[1:] {
		right, err := c.compile(sub)
		if err != nil {
			return Fragment{}, err
		}
		out = sequence(out, right)
	}
	return out, nil
}

func (c *Compiler) compileAlternatives(n *syntax.Node) (Fragment, error) {
	if len(n.Sub) == 0 {
		return Fragment{}, &CompileError{Op: n.Op, Err: ErrEmptyNode}
	}
	frags := make([]Fragment, 0, len(n.Sub))
	for _, sub := range n.Sub {
		f, err := c.compile(sub)
		if err != nil {
			return Fragment{}, err
		}
		frags = append(frags, f)
	}
	return alternatives(frags), nil
}

func (c *Compiler) compileUnary(n *syntax.Node, op func(Fragment) Fragment) (Fragment, error) {
	if len(n.Sub) != 1 {
		return Fragment{}, &CompileError{Op: n.Op, Err: ErrEmptyNode}
	}
	f, err := c.compile(n.Sub[0])
	if err != nil {
		return Fragment{}, err
	}
	return op(f), nil
}

func (c *Compiler) compileRepeat(n *syntax.Node) (Fragment, error) {
	if len(n.Sub) != 1 {
		return Fragment{}, &CompileError{Op: n.Op, Err: ErrEmptyNode}
	}
	if n.Min < 0 || (n.Max >= 0 && n.Max < n.Min) {
		return Fragment{}, &CompileError{Op: n.Op, Err: ErrInvalidRepeat}
	}
	f, err := c.compile(n.Sub[0])
	if err != nil {
		return Fragment{}, err
	}
	return repeat(f, n.Min, n.Max), nil
}
