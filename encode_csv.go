package depot

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// this file serializes the three output tables to CSV for the
// visualization tool. Dates are ISO calendar strings, undefined cells
// are empty, never "NaN" or "Inf".

// cell formats a float column value, empty for undefined cells.
func cell(v float64) string {
	if !defined(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EncodeTimeSeries writes the time-series table as CSV.
func EncodeTimeSeries(w io.Writer, ts *TimeSeries) error {
	cw := csv.NewWriter(w)
	header := []string{
		"date", "anlage", "kurs", "volume", "depotwert",
		"return", "index", "drawdown", "weighted_drawdown",
		"cumulative_buys", "cumulative_sales", "cumulative_dividends",
		"total_return", "weighted_total_return",
		"unrealized_gain", "unrealized_gain_pct",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write time-series header: %w", err)
	}
	for row := range ts.Rows() {
		record := []string{
			row.Date.String(),
			row.Asset,
			cell(row.Close),
			cell(row.Volume),
			cell(row.MarketValue),
			cell(row.Return),
			cell(row.Index),
			cell(row.Drawdown),
			cell(row.WeightedDrawdown),
			cell(row.CumulativeBuys),
			cell(row.CumulativeSales),
			cell(row.CumulativeDividends),
			cell(row.TotalReturn),
			cell(row.WeightedTotalReturn),
			cell(row.UnrealizedGain),
			cell(row.UnrealizedGainPct),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write time-series row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodePrices writes the price table as CSV.
func EncodePrices(w io.Writer, p *PriceTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "anlage", "kurs"}); err != nil {
		return fmt.Errorf("cannot write price header: %w", err)
	}
	for row := range p.Rows() {
		record := []string{row.Date.String(), row.Asset, cell(row.Close)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write price row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeIndex writes the portfolio-index table as CSV, the portfolio
// block first, then the benchmark.
func EncodeIndex(w io.Writer, s *IndexSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "anlage", "gewichtete_rendite", "index", "drawdown"}); err != nil {
		return fmt.Errorf("cannot write index header: %w", err)
	}
	for row := range s.Rows() {
		record := []string{
			row.Date.String(),
			row.Label,
			cell(row.WeightedReturn),
			cell(row.Index),
			cell(row.Drawdown),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write index row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
