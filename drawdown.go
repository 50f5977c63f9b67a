package depot

import "math"

// ComputeDrawdown derives peak-to-trough decline series.
//
// For the portfolio and benchmark indices the drawdown on a day is the
// relative distance of the index to its running maximum, always <= 0 and
// 0 at a new peak. The same computation runs on every asset's close
// price, weighted by the previous-day portfolio share. The portfolio
// drawdown is copied onto the synthetic total rows of the time series so
// both tables expose the same portfolio figure.
//
// It returns the enriched tables and the maximum (most negative)
// portfolio drawdown over the whole history.
func ComputeDrawdown(ps *IndexSeries, ts *TimeSeries) (*IndexSeries, *TimeSeries, float64) {
	out := ts.clone()
	ips := &IndexSeries{
		portfolio: append([]IndexRow{}, ps.portfolio...),
		benchmark: append([]IndexRow{}, ps.benchmark...),
	}

	// Per-asset drawdown on the raw close price. The total's sentinel
	// close of 0 never forms a peak, so its cells stay undefined here
	// until the portfolio drawdown is copied over below.
	for _, label := range out.labels {
		rows := out.series[label]
		max := undefined()
		for i := range rows {
			if defined(rows[i].Close) && (!defined(max) || rows[i].Close > max) {
				max = rows[i].Close
			}
			if defined(max) && max != 0 && defined(rows[i].Close) {
				rows[i].Drawdown = (rows[i].Close - max) / max
			}
			if defined(rows[i].Drawdown) && defined(rows[i].weightPrev) {
				rows[i].WeightedDrawdown = rows[i].Drawdown * rows[i].weightPrev
			}
		}
	}

	maxDrawdown := drawdownOf(ips.portfolio)
	drawdownOf(ips.benchmark)

	// Mirror the portfolio drawdown onto the synthetic total rows.
	totals := out.series[TotalLabel]
	for i := range totals {
		totals[i].Drawdown = ips.portfolio[i].Drawdown
		totals[i].WeightedDrawdown = ips.portfolio[i].Drawdown
	}

	return ips, out, maxDrawdown
}

// drawdownOf fills the drawdown column of an index series in place and
// returns the most negative value reached.
func drawdownOf(rows []IndexRow) float64 {
	max := undefined()
	worst := math.Inf(1)
	for i := range rows {
		if defined(rows[i].Index) && (!defined(max) || rows[i].Index > max) {
			max = rows[i].Index
		}
		if defined(max) && max != 0 && defined(rows[i].Index) {
			rows[i].Drawdown = (rows[i].Index - max) / max
			if rows[i].Drawdown < worst {
				worst = rows[i].Drawdown
			}
		}
	}
	if math.IsInf(worst, 1) {
		return undefined()
	}
	return worst
}
