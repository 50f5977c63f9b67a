package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tohlinger/depot"
	"github.com/tohlinger/depot/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a depot performance summary" }
func (*summaryCmd) Usage() string {
	return `dpt summary

  Displays a summary of the depot on the latest priced day, including total
  market value, total return, unrealized gains and max drawdown.
`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := buildResult(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building depot time series: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(depot.NewSummary(r)))
	return subcommands.ExitSuccess
}
