package cmd

import (
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coregx/byteseek"
	"github.com/coregx/byteseek/automata"
	"github.com/coregx/byteseek/automata/dfa"
	"github.com/coregx/byteseek/automata/glushkov"
	"github.com/coregx/byteseek/syntax"
)

type automatonOptions struct {
	config byteseek.Config
	trie   bool
}

func newAutomatonCommand() *cobra.Command {
	opts := &automatonOptions{config: byteseek.DefaultConfig()}
	nfaOnly := false
	c := &cobra.Command{
		Use:   "automaton [flags] EXPR...",
		Short: "Print state statistics for the automata an expression compiles to",
		Long: "Compile an expression to a Glushkov NFA and, unless --nfa is given,\n" +
			"determinize it. With --trie every argument must have a fixed length\n" +
			"and the arguments are compiled together into one trie.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			opts.config.Deterministic = !nfaOnly
			if err := opts.config.Validate(); err != nil {
				return err
			}
			if opts.trie {
				return runTrieStats(c.OutOrStdout(), opts, args)
			}
			for _, expr := range args {
				if err := runAutomatonStats(c.OutOrStdout(), opts, expr); err != nil {
					return err
				}
			}
			return nil
		},
	}
	fs := c.Flags()
	fs.BoolVar(&nfaOnly, "nfa", false, "skip determinization")
	fs.BoolVar(&opts.trie, "trie", false, "compile all arguments into a single trie")
	bindConfigFlags(fs, &opts.config)
	return c
}

// bindConfigFlags exposes the compilation limits of cfg as flags, defaulting
// to its current values.
func bindConfigFlags(fs *pflag.FlagSet, cfg *byteseek.Config) {
	fs.IntVar(&cfg.DFA.MaxStates, "max-states", cfg.DFA.MaxStates, "DFA state limit")
	fs.IntVar(&cfg.Glushkov.MaxRecursionDepth, "max-depth", cfg.Glushkov.MaxRecursionDepth, "expression nesting limit")
}

func printStats(out io.Writer, label string, initial *automata.State) {
	st := automata.GraphStats(initial)
	fmt.Fprintf(out, "  %-6s states=%d finals=%d transitions=%d deterministic=%t\n",
		label, st.States, st.Finals, st.Transitions, automata.IsDeterministic(initial))
}

func printFrozen(out io.Writer, initial *automata.State) {
	fa := automata.Freeze(initial)
	fmt.Fprintf(out, "  frozen states=%d classes=%d\n", fa.NumStates(), fa.ByteClasses().AlphabetLen())
}

func runAutomatonStats(out io.Writer, opts *automatonOptions, expr string) error {
	n, err := syntax.Parse(expr)
	if err != nil {
		return err
	}
	frag, err := glushkov.NewCompiler(opts.config.Glushkov).Compile(n)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n", expr)
	printStats(out, "nfa", frag.Initial)
	initial := frag.Initial
	if opts.config.Deterministic {
		if initial, err = dfa.CompileWithConfig(initial, opts.config.DFA); err != nil {
			return err
		}
		printStats(out, "dfa", initial)
	}
	printFrozen(out, initial)
	return nil
}

func runTrieStats(out io.Writer, opts *automatonOptions, exprs []string) error {
	t, err := byteseek.CompileTrie(exprs...)
	if err != nil {
		return err
	}
	glog.V(1).Infof("trie over %d sequences, lengths %d..%d", len(exprs), t.MinLength(), t.MaxLength())
	fmt.Fprintf(out, "trie of %d sequences\n", len(exprs))
	printStats(out, "trie", t.Initial())
	initial := t.Initial()
	if opts.config.Deterministic && !automata.IsDeterministic(initial) {
		if initial, err = dfa.CompileWithConfig(initial, opts.config.DFA); err != nil {
			return err
		}
		printStats(out, "dfa", initial)
	}
	printFrozen(out, initial)
	return nil
}
