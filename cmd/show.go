package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ppr/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	name string
	raw  bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the history of a fund" }
func (*showCmd) Usage() string {
	return `pprs show -p <name> [-raw]

  Displays the most recent value and the history of a fund.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "p", "", "fund name")
	f.BoolVar(&c.raw, "raw", false, "print raw markdown")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "-p is required")
		return subcommands.ExitUsageError
	}
	cfg, h, status := setup(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	in := h.Get(c.name)
	if in == nil {
		fmt.Fprintf(os.Stderr, "warning: unknown fund %q\n", c.name)
		return subcommands.ExitSuccess
	}

	md := renderer.Markdown(in, cfg.Currency)
	if c.raw {
		fmt.Fprint(stdout, md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
