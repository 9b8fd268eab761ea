package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the funds found in the workbook" }
func (*listCmd) Usage() string {
	return `pprs list

  Prints the name of every fund with at least one valid quote, in
  alphabetical order. No file is written.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, h, status := setup(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintln(stdout, "Available options:")
	for _, name := range h.Names() {
		fmt.Fprintln(stdout, name)
	}
	return subcommands.ExitSuccess
}
