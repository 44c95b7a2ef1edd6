package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/coregx/byteseek"
	"github.com/coregx/byteseek/window"
)

type searchOptions struct {
	exprs      []string
	windowSize int
	count      bool
	max        int
	hex        bool
}

func newSearchCommand() *cobra.Command {
	opts := &searchOptions{}
	c := &cobra.Command{
		Use:   "search [flags] EXPR FILE...",
		Short: "Report the offsets at which expressions match in files",
		Long: "Search memory-mapped files for a fixed-length expression. Extra\n" +
			"expressions given with -e are searched for together, and each match\n" +
			"reports which expressions matched.",
		Example: "  bseek search \"'GIF8' [37 39] 'a'\" *.bin\n" +
			"  bseek search -e \"'PK' 03 04\" -e \"'%PDF-'\" -- archive.dat",
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSearch(c.OutOrStdout(), opts, args)
		},
	}
	fs := c.Flags()
	fs.StringArrayVarP(&opts.exprs, "expr", "e", nil, "expression to search for (repeatable); when set, every argument is a file")
	fs.IntVar(&opts.windowSize, "window-size", 1<<16, "bytes per window when reading files")
	fs.BoolVarP(&opts.count, "count", "c", false, "print only the number of matches per file")
	fs.IntVarP(&opts.max, "max-count", "m", -1, "stop after this many matches per file")
	fs.BoolVar(&opts.hex, "hex", false, "print offsets in hexadecimal")
	return c
}

// matchFunc returns the next match at or after pos, and a description of
// what matched there.
type matchFunc func(r window.Reader, pos int64) (at int64, next int64, what string, err error)

func newMatchFunc(exprs []string) (matchFunc, error) {
	if len(exprs) == 1 {
		p, err := byteseek.Compile(exprs[0])
		if err != nil {
			return nil, err
		}
		glog.V(1).Infof("compiled %q as %s", exprs[0], p.RegularExpression())
		return func(r window.Reader, pos int64) (int64, int64, string, error) {
			at, err := p.IndexReader(r, pos)
			return at, at + int64(p.Len()), "", err
		}, nil
	}
	set, err := byteseek.CompileSet(exprs...)
	if err != nil {
		return nil, err
	}
	return func(r window.Reader, pos int64) (int64, int64, string, error) {
		m, ok, err := set.FindReader(r, pos)
		if err != nil || !ok {
			return -1, -1, "", err
		}
		what := ""
		for _, i := range m.Indexes {
			what += " " + exprs[i]
		}
		return m.Position, m.Position + 1, what, nil
	}, nil
}

func runSearch(out io.Writer, opts *searchOptions, args []string) error {
	exprs, files := opts.exprs, args
	if len(exprs) == 0 {
		exprs, files = args[:1], args[1:]
	}
	if len(files) == 0 {
		return errors.New("search: no files given")
	}
	next, err := newMatchFunc(exprs)
	if err != nil {
		return err
	}

	matched := false
	var failed error
	for _, name := range files {
		n, err := searchFile(out, next, opts, name, len(files) > 1)
		if err != nil {
			glog.Errorf("search %s: %v", name, err)
			failed = err
			continue
		}
		matched = matched || n > 0
	}
	switch {
	case failed != nil:
		return failed
	case !matched:
		return ErrNoMatch
	}
	return nil
}

func searchFile(out io.Writer, next matchFunc, opts *searchOptions, name string, prefix bool) (int, error) {
	r, err := window.OpenMmap(name, opts.windowSize)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	glog.V(2).Infof("searching %s", name)

	found := 0
	for pos := int64(0); opts.max < 0 || found < opts.max; {
		at, after, what, err := next(r, pos)
		if err != nil {
			return found, err
		}
		if at < 0 {
			break
		}
		found++
		pos = after
		if opts.count {
			continue
		}
		if prefix {
			fmt.Fprintf(out, "%s:", name)
		}
		if opts.hex {
			fmt.Fprintf(out, "%#x%s\n", at, what)
		} else {
			fmt.Fprintf(out, "%d%s\n", at, what)
		}
	}
	if opts.count {
		if prefix {
			fmt.Fprintf(out, "%s:", name)
		}
		fmt.Fprintf(out, "%d\n", found)
	}
	return found, nil
}
