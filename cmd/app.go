// Package cmd implements the pprs command-line application.
package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/ppr"
	"github.com/etnz/ppr/config"
	"github.com/etnz/ppr/fetch"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&listCmd{}, "reports")
	c.Register(&generateCmd{}, "reports")
	c.Register(&showCmd{}, "reports")
	c.Register(&getCmd{}, "reports")

	c.Register(&fetchCmd{}, "source")
	c.Register(&exportCmd{}, "source")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to a configuration file (.toml, .yaml or .yml)")
	source     = flag.String("source", config.DefaultSource, "Workbook location, an http(s) URL or a local file")
	outputDir  = flag.String("output-dir", "output", "Directory receiving the generated reports")
	workers    = flag.Int("workers", 1, "Number of reports generated at once")
	cache      = flag.Bool("cache", false, "Keep downloads in a daily disk cache")
	verbose    = flag.Bool("v", false, "Verbose logging")
)

// stdout receives the user facing output of the commands.
var stdout io.Writer = os.Stdout

// SetupLogging configures the global logger, it must be called after the flags are parsed.
func SetupLogging() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// settings returns the validated configuration: the config file and
// environment, then the command-line flags explicitly set.
func settings() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source = *source
		case "output-dir":
			cfg.OutputDir = *outputDir
		case "workers":
			cfg.Workers = *workers
		case "cache":
			cfg.Cache = *cache
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// fetcher returns the source fetcher configured by cfg.
func fetcher(cfg *config.Config) *fetch.Fetcher {
	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.Cache {
		client.Transport = fetch.NewDailyCache(http.DefaultTransport, cfg.CacheDir)
	}
	return &fetch.Fetcher{Client: client}
}

// loadHistories fetches the source workbook and builds the histories.
func loadHistories(ctx context.Context, cfg *config.Config) (ppr.Histories, error) {
	content, err := fetcher(cfg).Fetch(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}
	quotes, err := ppr.DecodeWorkbook(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	h := ppr.Build(slices.Values(quotes))
	log.Debug().Int("quotes", len(quotes)).Int("instruments", len(h)).Msg("histories built")
	return h, nil
}

// setup is the common prologue of commands working on the histories.
func setup(ctx context.Context) (*config.Config, ppr.Histories, subcommands.ExitStatus) {
	cfg, err := settings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, subcommands.ExitFailure
	}
	h, err := loadHistories(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", cfg.Source, err)
		return nil, nil, subcommands.ExitFailure
	}
	return cfg, h, subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, or prints it raw when it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	log.Debug().Err(err).Msg("cannot render markdown")
	fmt.Fprint(stdout, md)
}

// Completion returns the shell completion tree of pprs.
func Completion() *complete.Command {
	name := predict.Something
	formats := predict.Set{"all", "html", "json", "csv"}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"list":     {},
			"generate": {Flags: map[string]complete.Predictor{"p": name, "o": formats}},
			"show":     {Flags: map[string]complete.Predictor{"p": name, "raw": nil}},
			"get":      {Flags: map[string]complete.Predictor{"p": name}},
			"fetch":    {Flags: map[string]complete.Predictor{"o": predict.Files("*.xlsx")}},
			"export":   {Flags: map[string]complete.Predictor{"db": predict.Files("*.db")}},
			"topic":    {Args: predict.Set{"workbook", "formats", "config"}},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"config":     predict.Files("*"),
			"source":     predict.Files("*.xlsx"),
			"output-dir": predict.Dirs("*"),
			"workers":    predict.Something,
			"cache":      nil,
			"v":          nil,
		},
	}
}
