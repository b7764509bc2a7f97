package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/idlocator/internal/debug"
	"github.com/standardbeagle/idlocator/internal/mcp"
	"github.com/standardbeagle/idlocator/internal/types"
	"github.com/standardbeagle/idlocator/internal/watch"
)

func searchCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	maxResults := cfg.Search.MaxResults
	if n := c.Int("max"); n > 0 {
		maxResults = n
	}

	_, eng, err := openDataset(cfg, maxResults)
	if err != nil {
		return err
	}

	query := types.NewQuerySpec(map[string]string{
		string(types.FieldID):          c.String("id"),
		string(types.FieldFirstName):   c.String("first-name"),
		string(types.FieldLastName):    c.String("last-name"),
		string(types.FieldStreet):      c.String("street"),
		string(types.FieldCity):        c.String("city"),
		string(types.FieldHouseNumber): c.String("house-number"),
	}, cfg.Search.UsePhonetic && !c.Bool("no-phonetic"))

	results, err := eng.SearchRequired(c.Context, query)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		if err := writeJSON(c.App.Writer, results); err != nil {
			return err
		}
	} else {
		printResults(c.App.Writer, results)
	}

	if len(results) == 0 {
		return cli.Exit("no results", 1)
	}
	return nil
}

func listCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	dataset, err := watch.NewDataset(cfg.DatasetPath())
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	records := dataset.Snapshot().All()

	if c.Bool("json") {
		return writeJSON(c.App.Writer, records)
	}

	for _, p := range records {
		fmt.Fprintf(c.App.Writer, "%-10s  %-24s  %s\n", p.ID, p.FullName(), p.FullAddress())
	}
	fmt.Fprintf(c.App.Writer, "%d records\n", len(records))
	return nil
}

func mcpCommand(c *cli.Context) error {
	// stdout belongs to the protocol; debug output goes to a file
	if debug.IsDebugEnabled() {
		if _, err := debug.InitDebugLogFile(); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "Warning: %v\n", err)
			debug.SetDebugOutput(nil)
		}
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	dataset, eng, err := openDataset(cfg, cfg.Search.MaxResults)
	if err != nil {
		return err
	}

	if cfg.Dataset.Watch && dataset.Location() != "" {
		watcher, err := watch.NewWatcher(dataset, cfg.Dataset.WatchDebounceMs)
		if err != nil {
			return fmt.Errorf("failed to create dataset watcher: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()
		debug.LogMCP("watching dataset %s\n", dataset.Location())
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = mcp.NewServer(eng, dataset).Start(ctx)
	if err != nil && ctx.Err() != nil {
		debug.LogMCP("Received shutdown signal: %v\n", err)
		return nil
	}
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResults(w io.Writer, results []types.MatchResult) {
	for i, r := range results {
		fmt.Fprintf(w, "%d. %s  %s  %s  (score %.2f)\n", i+1, r.Person.ID, r.Person.FullName(), r.Person.FullAddress(), r.Score)

		parts := make([]string, 0, len(r.FieldScores))
		for _, fs := range r.OrderedFieldScores() {
			parts = append(parts, fmt.Sprintf("%s %.0f %s", fs.Field, fs.Score, fs.Tier))
		}
		if len(parts) > 0 {
			fmt.Fprintf(w, "   %s\n", strings.Join(parts, " | "))
		}
	}
}
