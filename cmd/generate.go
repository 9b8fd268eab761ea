package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ppr"
	"github.com/etnz/ppr/publish"
	"github.com/google/subcommands"
)

type generateCmd struct {
	name   string
	format string
}

func (*generateCmd) Name() string     { return "generate" }
func (*generateCmd) Synopsis() string { return "generate the reports of one or all funds" }
func (*generateCmd) Usage() string {
	return `pprs generate [-p <name>] [-o json|html|csv|all]

  Writes one report per fund and format in the output directory. Without
  -p, every fund is generated.
`
}

func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "p", "", "fund name, all funds if empty")
	f.StringVar(&c.format, "o", "all", "report format: json, html, csv or all")
}

func (c *generateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, h, status := setup(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}

	kinds, ok := ppr.SelectKinds(c.format)
	if !ok {
		fmt.Fprintf(os.Stderr, "warning: unknown format %q, generating all formats\n", c.format)
	}

	jobs, err := publish.Plan(h, c.name, kinds)
	if errors.Is(err, publish.ErrUnknownInstrument) {
		fmt.Fprintf(os.Stderr, "warning: %v, nothing generated\n", err)
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var last string
	for _, job := range jobs {
		if job.Instrument.Name != last {
			last = job.Instrument.Name
			fmt.Fprintf(stdout, "Generating for PPR: %s\n", last)
		}
	}

	if err := publish.Publish(ctx, jobs, publish.DirSink{Dir: cfg.OutputDir}, cfg.Workers); err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate reports:\n%v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
