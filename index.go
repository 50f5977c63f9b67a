package depot

import (
	"iter"

	"github.com/tohlinger/depot/date"
)

// IndexRow is one point of the portfolio-index table: either the
// compounded portfolio series (PortfolioLabel) or the benchmark
// (BenchmarkLabel).
type IndexRow struct {
	Date           date.Date
	Label          string
	WeightedReturn float64
	Index          float64
	Drawdown       float64
}

// IndexSeries holds the portfolio index and the benchmark index on the
// same date axis.
type IndexSeries struct {
	portfolio []IndexRow
	benchmark []IndexRow
}

// Portfolio returns the portfolio index rows in chronological order.
func (s *IndexSeries) Portfolio() []IndexRow { return s.portfolio }

// Benchmark returns the benchmark index rows in chronological order.
func (s *IndexSeries) Benchmark() []IndexRow { return s.benchmark }

// Rows returns the long-format table, the portfolio block first.
func (s *IndexSeries) Rows() iter.Seq[IndexRow] {
	return func(yield func(IndexRow) bool) {
		for _, r := range s.portfolio {
			if !yield(r) {
				return
			}
		}
		for _, r := range s.benchmark {
			if !yield(r) {
				return
			}
		}
	}
}

// ComputeIndex derives, for every asset label of the time series, the
// simple daily return on the close price and a compounding index: 100
// times the running product of (1+return) over every day with a defined
// return, so the series starts at exactly 100 and compounds from there.
// From the previous day's market values it computes each label's
// portfolio weight, compounds the weighted returns into the portfolio
// index, and extracts the benchmark series unchanged.
//
// The previous-day total is halved before weighting: the synthetic
// total row is part of the per-date sum and doubles the portfolio
// capital, and the halving undoes exactly that. The total's own return
// stays undefined because its close is the 0 sentinel; the portfolio
// index is built from the weighted per-asset returns instead.
func ComputeIndex(ts *TimeSeries) (*IndexSeries, *TimeSeries) {
	out := ts.clone()

	// Per-asset simple returns and compounding index. The synthetic
	// total is skipped: its 0 sentinel close has no return and its
	// index cells stay undefined.
	for _, label := range out.Assets() {
		rows := out.series[label]
		index := 100.0 // the empty product
		for i := range rows {
			rows[i].Return = undefined()
			if i > 0 {
				prev := rows[i-1].Close
				if defined(prev) && defined(rows[i].Close) && prev != 0 {
					rows[i].Return = rows[i].Close/prev - 1
				}
			}
			if defined(rows[i].Return) {
				index *= 1 + rows[i].Return
			}
			rows[i].Index = index
		}
	}

	// Previous-day weights and the weighted portfolio return.
	portfolio := make([]IndexRow, len(out.dates))
	portfolioIndex := 100.0
	for i, d := range out.dates {
		var weighted float64
		if i > 0 {
			prevTotal := out.totalMarketValue(i-1) / 2
			for _, label := range out.labels {
				rows := out.series[label]
				rows[i].weightPrev = undefined()
				prevValue := rows[i-1].MarketValue
				if prevTotal != 0 && defined(prevValue) {
					rows[i].weightPrev = prevValue / prevTotal
				}
				if defined(rows[i].weightPrev) && defined(rows[i].Return) {
					weighted += rows[i].weightPrev * rows[i].Return
				}
			}
		}

		portfolioIndex *= 1 + weighted
		portfolio[i] = IndexRow{
			Date:           d,
			Label:          PortfolioLabel,
			WeightedReturn: weighted,
			Index:          portfolioIndex,
			Drawdown:       undefined(),
		}
	}

	// The benchmark series is extracted unchanged: its own return and
	// its own compounding index.
	var benchmark []IndexRow
	if rows, ok := out.series[BenchmarkLabel]; ok {
		benchmark = make([]IndexRow, len(rows))
		for i, r := range rows {
			benchmark[i] = IndexRow{
				Date:           r.Date,
				Label:          BenchmarkLabel,
				WeightedReturn: r.Return,
				Index:          r.Index,
				Drawdown:       undefined(),
			}
		}
	}

	return &IndexSeries{portfolio: portfolio, benchmark: benchmark}, out
}
