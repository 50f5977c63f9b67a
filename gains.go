package depot

import "github.com/shopspring/decimal"

// ComputeUnrealizedGains fills the unrealized-gain columns for the
// latest date of the time series only.
//
// For every asset with a positive held volume the FIFO cost basis of
// that volume is computed from the asset's buy lots, earliest first,
// and subtracted from the market value. The relative gain divides by
// the basis and stays undefined on a zero basis. The synthetic total
// row carries the cross-asset sums, or stays undefined when no asset
// is held on the latest date.
func ComputeUnrealizedGains(ts *TimeSeries, l *ActivityLog) *TimeSeries {
	out := ts.clone()
	last := len(out.dates) - 1

	var totalGain, totalPct float64
	anyHeld := false
	for _, label := range out.Assets() {
		rows := out.series[label]
		row := &rows[last]
		if !defined(row.Volume) || row.Volume <= 0 || !defined(row.MarketValue) {
			continue
		}

		held := Q(decimal.NewFromFloat(row.Volume))
		basis := buyLots(l, label).fifoCostOf(held).InexactFloat64()

		row.UnrealizedGain = row.MarketValue - basis
		anyHeld = true
		totalGain += row.UnrealizedGain
		if basis != 0 {
			row.UnrealizedGainPct = row.UnrealizedGain / basis * 100
			totalPct += row.UnrealizedGainPct
		}
	}

	// With nothing held the total cells stay empty instead of a
	// spurious zero gain.
	if anyHeld {
		total := &out.series[TotalLabel][last]
		total.UnrealizedGain = totalGain
		total.UnrealizedGainPct = totalPct
	}

	return out
}
