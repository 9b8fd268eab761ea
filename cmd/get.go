package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/ppr"
	"github.com/etnz/ppr/renderer"
	"github.com/google/subcommands"
)

type getCmd struct {
	name string
}

func (*getCmd) Name() string     { return "get" }
func (*getCmd) Synopsis() string { return "query the JSON report of a fund" }
func (*getCmd) Usage() string {
	return `pprs get -p <name> <jsonpath>

  Evaluates a JSONPath expression on the JSON report of a fund, and prints
  the result as JSON. For instance:

    pprs get -p "Test Fund" '$.currentMarketPrice.value'
`
}

func (c *getCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "p", "", "fund name")
}

func (c *getCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pprs get -p <name> <jsonpath>")
		return subcommands.ExitUsageError
	}
	_, h, status := setup(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	in := h.Get(c.name)
	if in == nil {
		fmt.Fprintf(os.Stderr, "warning: unknown fund %q\n", c.name)
		return subcommands.ExitSuccess
	}

	val, err := query(in, f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	out, err := json.Marshal(val)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, string(out))
	return subcommands.ExitSuccess
}

// query evaluates path on the JSON report of in.
func query(in *ppr.Instrument, path string) (any, error) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, in, ppr.JSON); err != nil {
		return nil, err
	}
	// Numbers stay json.Number to keep their digits.
	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, err
	}
	val, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return val, nil
}
