package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tohlinger/depot"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch daily prices and store them in the price database" }
func (*fetchCmd) Usage() string {
	return `dpt fetch

  Fetches daily close prices for every label in the ticker map, from the
  earliest activity to today, and writes them to the price database.
`
}

func (*fetchCmd) SetFlags(_ *flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := DecodeActivityLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading activity log: %v\n", err)
		return subcommands.ExitFailure
	}
	span, err := activitySpan(l)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing activity span: %v\n", err)
		return subcommands.ExitFailure
	}

	src, err := DecodeSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ticker map: %v\n", err)
		return subcommands.ExitFailure
	}
	prices, err := src.Fetch(ctx, span)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(*pricesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating price database %q: %v\n", *pricesFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := depot.ExportPrices(out, prices); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing price database %q: %v\n", *pricesFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully fetched prices for %d labels into %s\n", len(prices.Labels()), *pricesFile)
	return subcommands.ExitSuccess
}
