// Command pprs generates the reports of the PPR funds from their published workbook.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/ppr/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("pprs")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	cmd.SetupLogging()
	os.Exit(int(commander.Execute(context.Background())))
}
