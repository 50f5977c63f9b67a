// Package cmd implements the CLI application to manage a depot.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/tohlinger/depot"
	"github.com/tohlinger/depot/date"
	"github.com/tohlinger/depot/yahoo"
)

// Commands lists the subcommands of the dpt binary. A main package
// registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&buildCmd{},
	&fetchCmd{},
	&summaryCmd{},
	&publishCmd{},
	&commentCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var activityFile = flag.String("activity-file", "activities.csv", "Path to the activity log (CSV format)")
var pricesFile = flag.String("prices-file", "prices.jsonl", "Path to the price database (JSONL format)")
var tickersFile = flag.String("tickers-file", "tickers.json", "Path to the label-to-ticker mapping")

// DecodeActivityLog reads the app activity log file.
func DecodeActivityLog() (*depot.ActivityLog, error) {
	f, err := os.Open(*activityFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open activity log %q: %w", *activityFile, err)
	}
	defer f.Close()
	return depot.DecodeActivities(f)
}

// jsource is the on-disk shape of the ticker configuration.
type jsource struct {
	Tickers   map[string]string  `json:"tickers"`
	Fallbacks map[string]float64 `json:"fallbacks"`
}

// DecodeSource reads the app ticker configuration into a price source.
func DecodeSource() (*yahoo.Source, error) {
	content, err := os.ReadFile(*tickersFile)
	if err != nil {
		return nil, fmt.Errorf("cannot read ticker map %q: %w", *tickersFile, err)
	}
	var js jsource
	if err := json.Unmarshal(content, &js); err != nil {
		return nil, fmt.Errorf("cannot parse ticker map %q: %w", *tickersFile, err)
	}
	if len(js.Tickers) == 0 {
		return nil, fmt.Errorf("ticker map %q has no tickers", *tickersFile)
	}
	return &yahoo.Source{Tickers: js.Tickers, Fallbacks: js.Fallbacks}, nil
}

// activitySpan returns the calendar range to price: from the earliest
// activity up to today.
func activitySpan(l *depot.ActivityLog) (date.Range, error) {
	span, err := l.Span()
	if err != nil {
		return date.Range{}, err
	}
	span.To = date.Today()
	return span, nil
}

// LoadPrices returns the prices for the span, from the app price
// database when it exists, fetched otherwise. Fetched prices are not
// persisted here, that is what the fetch command is for.
func LoadPrices(ctx context.Context, span date.Range) (*depot.PriceTable, error) {
	f, err := os.Open(*pricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, price database %q does not exist, fetching instead", *pricesFile)
		src, err := DecodeSource()
		if err != nil {
			return nil, err
		}
		return src.Fetch(ctx, span)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open price database %q: %w", *pricesFile, err)
	}
	defer f.Close()
	return depot.ImportPrices(f)
}

// buildResult loads the activity log and prices and runs the pipeline.
func buildResult(ctx context.Context) (*depot.Result, error) {
	l, err := DecodeActivityLog()
	if err != nil {
		return nil, err
	}
	span, err := activitySpan(l)
	if err != nil {
		return nil, err
	}
	prices, err := LoadPrices(ctx, span)
	if err != nil {
		return nil, err
	}
	return depot.Build(l, prices)
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when the renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
