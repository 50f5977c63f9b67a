package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yuin/goldmark"

	"github.com/tohlinger/depot"
	"github.com/tohlinger/depot/renderer"
)

// publishCmd holds the flags for the 'publish' subcommand.
type publishCmd struct {
	outputFile string
}

func (*publishCmd) Name() string     { return "publish" }
func (*publishCmd) Synopsis() string { return "generate an HTML depot report" }
func (*publishCmd) Usage() string {
	return `dpt publish [-o <file>]

  Renders the depot summary as a standalone HTML page.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "depot.html", "Output file for the generated report")
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := buildResult(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building depot time series: %v\n", err)
		return subcommands.ExitFailure
	}
	md := renderer.SummaryMarkdown(depot.NewSummary(r))

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(md), &body); err != nil {
		fmt.Fprintf(os.Stderr, "Error converting report to HTML: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(c.outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.outputFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	fmt.Fprintln(out, "<!DOCTYPE html>")
	fmt.Fprintln(out, `<html><head><meta charset="utf-8"><title>Depot Report</title></head><body>`)
	if _, err := out.Write(body.Bytes()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.outputFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(out, "</body></html>")

	fmt.Printf("Successfully published report to %s\n", c.outputFile)
	return subcommands.ExitSuccess
}
