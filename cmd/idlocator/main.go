package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/idlocator/internal/config"
	"github.com/standardbeagle/idlocator/internal/debug"
	"github.com/standardbeagle/idlocator/internal/engine"
	"github.com/standardbeagle/idlocator/internal/phonetic"
	"github.com/standardbeagle/idlocator/internal/semantic"
	"github.com/standardbeagle/idlocator/internal/version"
	"github.com/standardbeagle/idlocator/internal/watch"
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	if csv := c.String("csv"); csv != "" {
		// flag paths are relative to the working directory, not the config file
		cfg.Dataset.Path = csv
		if wd, err := os.Getwd(); err == nil {
			cfg.Dir = wd
		}
	}

	return cfg, nil
}

// newEngine wires the scoring stack described by cfg over source
func newEngine(cfg *config.Config, source engine.Source, maxResults int) (*engine.Engine, error) {
	lexicon, err := semantic.LoadLexicon(cfg.LexiconPath())
	if err != nil {
		return nil, err
	}

	scorer := semantic.NewFieldScorer(cfg.ScoreLayers(), lexicon, phonetic.NewCoder(cfg.Search.CodeLength))
	return engine.New(source, engine.Options{
		Weights:     cfg.EngineWeights(),
		Scorer:      scorer,
		MaxResults:  maxResults,
		Parallelism: cfg.Search.Parallelism,
	}), nil
}

// openDataset loads the configured dataset and builds an engine over it
func openDataset(cfg *config.Config, maxResults int) (*watch.Dataset, *engine.Engine, error) {
	location := cfg.DatasetPath()
	dataset, err := watch.NewDataset(location)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	debug.LogStore("dataset %q loaded with %d records\n", location, dataset.Snapshot().Len())

	eng, err := newEngine(cfg, dataset, maxResults)
	if err != nil {
		return nil, nil, err
	}
	return dataset, eng, nil
}

func newApp() *cli.App {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintln(c.App.Writer, version.FullInfo())
	}

	return &cli.App{
		Name:                   "idlocator",
		Usage:                  "Fuzzy person lookup over Hebrew and Latin records",
		Version:                version.Info(),
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   config.DefaultFileName,
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Dataset CSV file or glob pattern (e.g., --csv 'data/**/*.csv'); overrides config",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write debug logs (stderr, or a temp file for mcp)",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				debug.SetEnabled(true)
			}
			// DEBUG=1 enables logging too; give it somewhere to go
			if debug.IsDebugEnabled() {
				debug.SetDebugOutput(c.App.ErrWriter)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
		Commands: []*cli.Command{
			{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Search for a person by any combination of fields",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "ID number (exact lookup)"},
					&cli.StringFlag{Name: "first-name", Aliases: []string{"f"}, Usage: "First name"},
					&cli.StringFlag{Name: "last-name", Aliases: []string{"l"}, Usage: "Last name"},
					&cli.StringFlag{Name: "street", Usage: "Street"},
					&cli.StringFlag{Name: "city", Usage: "City"},
					&cli.StringFlag{Name: "house-number", Usage: "House number"},
					&cli.BoolFlag{Name: "no-phonetic", Usage: "Disable phonetic matching tiers"},
					&cli.BoolFlag{Name: "json", Aliases: []string{"j"}, Usage: "Output as JSON"},
					&cli.IntFlag{Name: "max", Aliases: []string{"m"}, Usage: "Maximum results (0 or unset = config default)"},
				},
				Action: searchCommand,
			},
			{
				Name:  "list",
				Usage: "List every record in the dataset",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Aliases: []string{"j"}, Usage: "Output as JSON"},
				},
				Action: listCommand,
			},
			{
				Name:   "mcp",
				Usage:  "Serve search_person over the Model Context Protocol (stdio)",
				Action: mcpCommand,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
