package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type fetchCmd struct {
	output string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download the source workbook" }
func (*fetchCmd) Usage() string {
	return `pprs fetch [-o <file>]

  Downloads the source workbook into a local file, so that later runs can
  use it with -source.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "history.xlsx", "destination file")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := settings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	content, err := fetcher(cfg).Fetch(ctx, cfg.Source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", cfg.Source, err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.output, content, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write file %s: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	log.Info().Str("file", c.output).Int("bytes", len(content)).Msg("source saved")
	return subcommands.ExitSuccess
}
