package depot

import (
	"fmt"

	"github.com/tohlinger/depot/date"
)

// MergeValuation joins the inventory with the daily prices into the
// portfolio time series: one row per priced (day, label) with
// market_value = close × volume, plus one synthetic total row per day
// whose market value is the cross-asset sum and whose close is fixed
// at 0.
//
// The join is a left outer join on (date, asset) keyed by the price
// table: every priced day gets a row even when the asset had no
// activity yet. Volumes are carried forward and zero before the asset's
// first event; a close missing at the start of a series leaves the
// market value undefined for those days.
func MergeValuation(inv *Inventory, prices *PriceTable) (*TimeSeries, error) {
	if err := prices.Validate(); err != nil {
		return nil, fmt.Errorf("cannot merge valuation: %w", err)
	}

	span := prices.Span()
	dates := make([]date.Date, 0, span.Len())
	for d := range span.Days() {
		dates = append(dates, d)
	}

	ts := &TimeSeries{
		dates:  dates,
		labels: append(append([]string{}, prices.Labels()...), TotalLabel),
		series: make(map[string][]Row),
	}

	for _, label := range prices.Labels() {
		rows := make([]Row, len(dates))
		for i, d := range dates {
			row := newRow(d, label)
			row.Volume = inv.VolumeOn(label, d)
			if close, ok := prices.CloseOn(label, d); ok {
				row.Close = close
				row.MarketValue = close * row.Volume
			}
			rows[i] = row
		}
		ts.series[label] = rows
	}

	// The synthetic total: close pinned to 0 (a sentinel, not a price),
	// market value summed across the real assets of that day.
	totals := make([]Row, len(dates))
	for i, d := range dates {
		row := newRow(d, TotalLabel)
		row.Close = 0
		var sum float64
		for _, label := range prices.Labels() {
			if v := ts.series[label][i].MarketValue; defined(v) {
				sum += v
			}
		}
		row.MarketValue = sum
		totals[i] = row
	}
	ts.series[TotalLabel] = totals

	return ts, nil
}

// newRow returns a row with every derived cell still undefined.
func newRow(d date.Date, label string) Row {
	return Row{
		Date:                d,
		Asset:               label,
		Close:               undefined(),
		Volume:              undefined(),
		MarketValue:         undefined(),
		Return:              undefined(),
		Index:               undefined(),
		Drawdown:            undefined(),
		WeightedDrawdown:    undefined(),
		CumulativeBuys:      undefined(),
		CumulativeSales:     undefined(),
		CumulativeDividends: undefined(),
		TotalReturn:         undefined(),
		WeightedTotalReturn: undefined(),
		UnrealizedGain:      undefined(),
		UnrealizedGainPct:   undefined(),
		weightPrev:          undefined(),
	}
}
