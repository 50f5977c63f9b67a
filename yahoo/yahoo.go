// Package yahoo fetches daily close prices from the Yahoo Finance chart
// API and turns them into a price table for the valuation engine.
//
// Each asset label maps to a Yahoo ticker symbol. Labels whose chart
// cannot be fetched fall back to a constant manual price over the whole
// range, so one delisted or mistyped ticker never aborts a build. A
// failing label with no manual price is logged and left out of the
// returned table.
package yahoo

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"golang.org/x/sync/errgroup"

	"github.com/tohlinger/depot"
	"github.com/tohlinger/depot/date"
)

const chartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// Source fetches prices for a fixed set of asset labels.
type Source struct {
	// Tickers maps an asset label to its Yahoo ticker symbol.
	Tickers map[string]string
	// Fallbacks holds a constant manual price per label, used for the
	// whole range when the chart request fails or comes back empty.
	Fallbacks map[string]float64
	// Client is the HTTP client for chart requests. Nil means a client
	// with a daily-expiring disk cache.
	Client *http.Client
}

// Fetch downloads daily closes for every ticker over the span and
// returns them as a dense price table. Labels run concurrently, each
// failure is logged and replaced by the label's fallback series.
func (s *Source) Fetch(ctx context.Context, span date.Range) (*depot.PriceTable, error) {
	client := s.Client
	if client == nil {
		client = newDailyCachingClient()
	}

	var mu sync.Mutex
	series := make(map[string]map[date.Date]float64, len(s.Tickers))

	g, ctx := errgroup.WithContext(ctx)
	for label, ticker := range s.Tickers {
		g.Go(func() error {
			closes, err := fetchCloses(ctx, client, ticker, span)
			if err != nil {
				price, ok := s.Fallbacks[label]
				if !ok {
					log.Printf("no data for %s (%s) and no manual price configured, label left out: %v", label, ticker, err)
					return nil
				}
				log.Printf("no data for %s (%s), using manual price as constant fallback: %v", label, ticker, err)
				closes = constantSeries(price, span)
			}
			mu.Lock()
			series[label] = closes
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := depot.NewPriceTable(span)
	for label, closes := range series {
		days := make([]date.Date, 0, len(closes))
		for d := range closes {
			days = append(days, d)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
		for _, d := range days {
			table.Append(label, d, closes[d])
		}
	}
	return table, table.Validate()
}

// constantSeries builds a constant price series over the whole span.
func constantSeries(price float64, span date.Range) map[date.Date]float64 {
	closes := make(map[date.Date]float64, span.Len())
	for d := range span.Days() {
		closes[d] = price
	}
	return closes
}

// fetchCloses downloads one ticker's chart and extracts the (day, close)
// observations inside the span.
func fetchCloses(ctx context.Context, client *http.Client, ticker string, span date.Range) (map[date.Date]float64, error) {
	// period2 is exclusive, extend it by a day to include span.To.
	addr := chartURL + url.PathEscape(ticker) + fmt.Sprintf(
		"?interval=1d&period1=%d&period2=%d",
		span.From.Time().Unix(),
		span.To.Add(1).Time().Unix(),
	)

	var jobj any
	if err := jwget(ctx, client, addr, &jobj); err != nil {
		return nil, err
	}
	return parseChart(jobj, span)
}

// parseChart pulls timestamps and closes out of a decoded chart response.
func parseChart(jobj any, span date.Range) (map[date.Date]float64, error) {
	if desc, err := jsonpath.Get("$.chart.error.description", jobj); err == nil && desc != nil {
		return nil, fmt.Errorf("chart error: %v", desc)
	}

	jstamps, err := jsonpath.Get("$.chart.result[0].timestamp", jobj)
	if err != nil {
		return nil, fmt.Errorf("chart has no timestamps: %w", err)
	}
	jcloses, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return nil, fmt.Errorf("chart has no closes: %w", err)
	}
	stamps, ok := jstamps.([]any)
	if !ok {
		return nil, fmt.Errorf("chart timestamps are not a list: %v", jstamps)
	}
	values, ok := jcloses.([]any)
	if !ok {
		return nil, fmt.Errorf("chart closes are not a list: %v", jcloses)
	}
	if len(stamps) != len(values) {
		return nil, fmt.Errorf("chart has %d timestamps but %d closes", len(stamps), len(values))
	}

	closes := make(map[date.Date]float64, len(stamps))
	for i, jstamp := range stamps {
		stamp, ok := jstamp.(float64)
		if !ok {
			return nil, fmt.Errorf("chart timestamp is not a number: %v", jstamp)
		}
		// null closes mark days the exchange was open but no trade printed.
		close, ok := values[i].(float64)
		if !ok {
			continue
		}
		d := date.FromTime(time.Unix(int64(stamp), 0).UTC())
		if span.Contains(d) {
			closes[d] = close
		}
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("chart has no closes in range")
	}
	return closes, nil
}
