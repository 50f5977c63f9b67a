package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/tohlinger/depot"
)

// buildCmd holds the flags for the 'build' subcommand.
type buildCmd struct {
	outputDir string
}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "compute the depot time series and write the CSV tables" }
func (*buildCmd) Usage() string {
	return `dpt build [-o <dir>]

  Reads the activity log, loads or fetches daily prices, runs the valuation
  pipeline and writes the three CSV tables for the visualization tool.
`
}

func (c *buildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "tableau_data", "Output directory for the generated CSV tables")
}

func (c *buildCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := buildResult(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building depot time series: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		return subcommands.ExitFailure
	}

	tables := []struct {
		name   string
		encode func(f *os.File) error
	}{
		{"time_series_data.csv", func(f *os.File) error { return depot.EncodeTimeSeries(f, r.TimeSeries) }},
		{"portfolio_history.csv", func(f *os.File) error { return depot.EncodePrices(f, r.Prices) }},
		{"index_benchmark.csv", func(f *os.File) error { return depot.EncodeIndex(f, r.Index) }},
	}
	for _, table := range tables {
		name := filepath.Join(c.outputDir, table.name)
		out, err := os.Create(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		err = table.encode(out)
		out.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Successfully wrote %s\n", name)
	}
	return subcommands.ExitSuccess
}
