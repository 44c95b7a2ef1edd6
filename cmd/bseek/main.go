// bseek searches files for byte-pattern expressions.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/coregx/byteseek/cmd/bseek/cmd"
)

func main() {
	root := cmd.NewRootCommand()

	// glog registers its flags on the standard flag set.
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	// glog complains about logging before flag.Parse otherwise.
	args := os.Args
	os.Args = os.Args[:1]
	flag.Parse()
	os.Args = args

	err := root.Execute()
	if err != nil && !errors.Is(err, cmd.ErrNoMatch) {
		fmt.Fprintf(os.Stderr, "bseek: %v\n", err)
	}
	glog.Flush()
	if err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
