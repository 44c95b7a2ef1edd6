// Package cmd implements the bseek subcommands.
package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// ErrNoMatch is returned by search when no file contains a match, so the
// process can exit with status 1 like grep.
var ErrNoMatch = errors.New("no match")

// ExitCode maps a command error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNoMatch):
		return 1
	default:
		return 2
	}
}

// NewRootCommand builds the bseek command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "bseek",
		Short: "bseek: byte-pattern search",
		Long: "Search files for byte sequences described by hex, string, set and\n" +
			"repetition expressions, and inspect what those expressions compile to.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSearchCommand())
	root.AddCommand(newRenderCommand())
	root.AddCommand(newAutomatonCommand())
	return root
}
