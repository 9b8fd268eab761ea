package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ppr/archive"
	"github.com/google/subcommands"
)

type exportCmd struct {
	db string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "save all histories into a SQLite database" }
func (*exportCmd) Usage() string {
	return `pprs export -db <file>

  Saves every fund history into a SQLite database, replacing the funds
  already there.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.db, "db", "ppr.db", "SQLite database file")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, h, status := setup(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	a, err := archive.Open(c.db)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.Save(ctx, h); err != nil {
		fmt.Fprintf(os.Stderr, "failed to export to %s: %v\n", c.db, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Exported %d funds to %s\n", len(h), c.db)
	return subcommands.ExitSuccess
}
