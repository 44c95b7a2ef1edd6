package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/byteseek"
)

func newRenderCommand() *cobra.Command {
	var compact bool
	c := &cobra.Command{
		Use:   "render EXPR",
		Short: "Print the canonical form of a fixed-length expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			p, err := byteseek.Compile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), p.Sequence().RegularExpression(!compact))
			return nil
		},
	}
	c.Flags().BoolVar(&compact, "compact", false, "omit spacing between elements")
	return c
}
