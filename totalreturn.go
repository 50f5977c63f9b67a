package depot

import "github.com/tohlinger/depot/date"

// cashFlows accumulates an asset's cumulative cash movements keyed by
// event date: buy cost, sell proceeds and cash dividends. The amounts
// stay decimal until they are fixed into the time-series grid.
type cashFlows struct {
	buys      date.History[float64]
	sales     date.History[float64]
	dividends date.History[float64]
}

// newCashFlows derives the running sums of one asset from the log.
//
// Buy cost is volume × per-unit value; sell proceeds are the value field
// taken as an already-total figure; cash-dividend amounts ride in the
// volume column. These are source-format contracts, see Activity.
func newCashFlows(l *ActivityLog, asset string) *cashFlows {
	cf := &cashFlows{}
	buys, sales, dividends := EUR(0), EUR(0), EUR(0)
	for a := range l.Activities() {
		if a.Asset != asset {
			continue
		}
		switch a.Type {
		case Buy:
			buys = buys.Add(a.Cost())
			cf.buys.Append(a.Date, buys.InexactFloat64())
		case Sell:
			sales = sales.Add(a.Proceeds())
			cf.sales.Append(a.Date, sales.InexactFloat64())
		case CashDividend:
			dividends = dividends.Add(a.CashAmount())
			cf.dividends.Append(a.Date, dividends.InexactFloat64())
		}
	}
	return cf
}

// asOf reads a running sum forward-filled: the last accumulated value on
// or before the day, zero before the first event.
func asOf(h *date.History[float64], on date.Date) float64 {
	v, ok := h.ValueAsOf(on)
	if !ok {
		return 0
	}
	return v
}

// ComputeTotalReturn fills the cumulative cash-flow columns and the
// capital-adjusted total return of every asset:
//
//	total_return = market_value + cumulative_sales - cumulative_buys + cumulative_dividends
//
// The synthetic total rows are recomputed as cross-asset sums, since the
// total has no activities of its own. weighted_total_return divides by
// the cumulative buys and stays undefined while nothing was bought.
func ComputeTotalReturn(ts *TimeSeries, l *ActivityLog) *TimeSeries {
	out := ts.clone()

	for _, label := range out.Assets() {
		cf := newCashFlows(l, label)
		rows := out.series[label]
		for i := range rows {
			rows[i].CumulativeBuys = asOf(&cf.buys, rows[i].Date)
			rows[i].CumulativeSales = asOf(&cf.sales, rows[i].Date)
			rows[i].CumulativeDividends = asOf(&cf.dividends, rows[i].Date)
			if defined(rows[i].MarketValue) {
				rows[i].TotalReturn = rows[i].MarketValue +
					rows[i].CumulativeSales -
					rows[i].CumulativeBuys +
					rows[i].CumulativeDividends
			}
			rows[i].WeightedTotalReturn = weightedTotalReturn(rows[i].TotalReturn, rows[i].CumulativeBuys)
		}
	}

	totals := out.series[TotalLabel]
	for i := range totals {
		var buys, sales, dividends, totalReturn float64
		for _, label := range out.Assets() {
			r := out.series[label][i]
			buys += r.CumulativeBuys
			sales += r.CumulativeSales
			dividends += r.CumulativeDividends
			if defined(r.TotalReturn) {
				totalReturn += r.TotalReturn
			}
		}
		totals[i].CumulativeBuys = buys
		totals[i].CumulativeSales = sales
		totals[i].CumulativeDividends = dividends
		totals[i].TotalReturn = totalReturn
		totals[i].WeightedTotalReturn = weightedTotalReturn(totalReturn, buys)
	}

	return out
}

// weightedTotalReturn guards the division: a zero capital base yields an
// undefined cell, never an infinity.
func weightedTotalReturn(totalReturn, buys float64) float64 {
	if buys == 0 || !defined(totalReturn) {
		return undefined()
	}
	return totalReturn / buys
}
