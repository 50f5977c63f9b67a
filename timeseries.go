package depot

import (
	"iter"
	"math"
	"slices"

	"github.com/tohlinger/depot/date"
)

// TotalLabel is the synthetic asset label carrying the portfolio total.
// Its close price is fixed at 0; it is not a real price and the index
// engine must not derive a return from it.
const TotalLabel = "Gesamtwert"

// PortfolioLabel is the series label of the compounded portfolio index.
const PortfolioLabel = "normalisierte_rendite"

// undefined marks a cell with no defined value (division by zero, no
// previous day, ...). It is serialized as an empty cell, never as ±Inf.
func undefined() float64 { return math.NaN() }

// defined reports whether a cell holds a defined value.
func defined(v float64) bool { return !math.IsNaN(v) }

// Row is one (date, asset) point of the portfolio time series. Columns
// are filled in stage order; cells a stage has not reached yet, or that
// have no defined value, hold NaN.
type Row struct {
	Date                date.Date
	Asset               string
	Close               float64
	Volume              float64
	MarketValue         float64
	Return              float64
	Index               float64
	Drawdown            float64
	WeightedDrawdown    float64
	CumulativeBuys      float64
	CumulativeSales     float64
	CumulativeDividends float64
	TotalReturn         float64
	WeightedTotalReturn float64
	UnrealizedGain      float64
	UnrealizedGainPct   float64

	weightPrev float64 // previous-day portfolio share, kept for the drawdown stage
}

// TimeSeries is the central derived table: a dense grid of one Row per
// label per day, all labels sharing the same date axis, with the
// synthetic total label last.
type TimeSeries struct {
	dates  []date.Date
	labels []string // real assets sorted, TotalLabel last
	series map[string][]Row
}

// Dates returns the shared date axis of the table.
func (ts *TimeSeries) Dates() []date.Date { return ts.dates }

// Labels returns all labels of the table, the synthetic total last.
func (ts *TimeSeries) Labels() []string { return ts.labels }

// Assets returns the real asset labels, excluding the synthetic total.
func (ts *TimeSeries) Assets() []string {
	return ts.labels[:len(ts.labels)-1]
}

// LatestDate returns the last day of the date axis.
func (ts *TimeSeries) LatestDate() date.Date {
	return ts.dates[len(ts.dates)-1]
}

// Get returns the row of a label on a day.
func (ts *TimeSeries) Get(label string, on date.Date) (Row, bool) {
	rows, ok := ts.series[label]
	if !ok {
		return Row{}, false
	}
	for i, d := range ts.dates {
		if d == on {
			return rows[i], true
		}
	}
	return Row{}, false
}

// Rows returns an iterator over the long-format table, label block by
// label block in chronological order, the synthetic total last.
func (ts *TimeSeries) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, label := range ts.labels {
			for _, row := range ts.series[label] {
				if !yield(row) {
					return
				}
			}
		}
	}
}

// clone returns a deep copy. Stages enrich a clone of their input so no
// stage ever mutates another stage's output.
func (ts *TimeSeries) clone() *TimeSeries {
	out := &TimeSeries{
		dates:  slices.Clone(ts.dates),
		labels: slices.Clone(ts.labels),
		series: make(map[string][]Row, len(ts.series)),
	}
	for label, rows := range ts.series {
		out.series[label] = slices.Clone(rows)
	}
	return out
}

// totalMarketValue sums the market value of every row on the date-axis
// index i, the synthetic total included. Undefined cells are skipped.
func (ts *TimeSeries) totalMarketValue(i int) float64 {
	var sum float64
	for _, label := range ts.labels {
		if v := ts.series[label][i].MarketValue; defined(v) {
			sum += v
		}
	}
	return sum
}
