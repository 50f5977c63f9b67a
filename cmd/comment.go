package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/tohlinger/depot"
	"github.com/tohlinger/depot/renderer"
)

// commentCmd holds the flags for the 'comment' subcommand.
type commentCmd struct {
	model string
}

func (*commentCmd) Name() string     { return "comment" }
func (*commentCmd) Synopsis() string { return "ask a model to comment on the depot performance" }
func (*commentCmd) Usage() string {
	return `dpt comment [-model <name>]

  Sends the depot summary to Gemini and prints the model's commentary on
  the current performance. Requires GEMINI_API_KEY in the environment.
`
}

func (c *commentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "gemini-2.5-pro", "Model to ask for commentary")
}

func (c *commentCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := buildResult(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building depot time series: %v\n", err)
		return subcommands.ExitFailure
	}
	md := renderer.SummaryMarkdown(depot.NewSummary(r))

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a sober investment analyst. The user shows you the current
			state of his depot. Comment on the performance, the concentration
			and the drawdown in a few short paragraphs. No financial advice,
			no disclaimers, plain language.
		`}}},
	}
	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(md), config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error asking %s for commentary: %v\n", c.model, err)
		return subcommands.ExitFailure
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		fmt.Fprintln(os.Stderr, "No commentary in the model response")
		return subcommands.ExitFailure
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		out += part.Text
	}
	printMarkdown(out)
	return subcommands.ExitSuccess
}
