package depot

import "fmt"

// Result bundles the output tables of one pipeline run.
type Result struct {
	TimeSeries  *TimeSeries
	Index       *IndexSeries
	Prices      *PriceTable
	MaxDrawdown float64
}

// Build runs the whole pipeline: inventory, valuation, index, drawdown,
// total return and FIFO unrealized gains, in that order. Every stage
// consumes the previous stage's table and produces a new one.
//
// An empty activity log or an empty price table is fatal; everything
// else is recovered locally into explicit undefined cells.
func Build(l *ActivityLog, prices *PriceTable) (*Result, error) {
	inv, err := BuildInventory(l)
	if err != nil {
		return nil, fmt.Errorf("cannot build inventory: %w", err)
	}

	ts, err := MergeValuation(inv, prices)
	if err != nil {
		return nil, err
	}

	index, ts := ComputeIndex(ts)
	index, ts, maxDrawdown := ComputeDrawdown(index, ts)
	ts = ComputeTotalReturn(ts, l)
	ts = ComputeUnrealizedGains(ts, l)

	return &Result{
		TimeSeries:  ts,
		Index:       index,
		Prices:      prices,
		MaxDrawdown: maxDrawdown,
	}, nil
}
