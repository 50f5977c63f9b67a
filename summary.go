package depot

import "github.com/tohlinger/depot/date"

// AssetSummary is the latest-date view of a single asset.
type AssetSummary struct {
	Label               string
	Volume              float64
	Close               float64
	MarketValue         float64
	CumulativeBuys      float64
	CumulativeSales     float64
	CumulativeDividends float64
	TotalReturn         float64
	UnrealizedGain      float64
	UnrealizedGainPct   float64
}

// Summary condenses a pipeline result into the figures of the latest
// date, for rendering and terminal reports.
type Summary struct {
	Date           date.Date
	TotalValue     float64
	TotalReturn    float64
	UnrealizedGain float64
	MaxDrawdown    float64
	Assets         []AssetSummary
}

// NewSummary extracts the latest-date summary from a pipeline result.
func NewSummary(r *Result) *Summary {
	ts := r.TimeSeries
	on := ts.LatestDate()

	s := &Summary{
		Date:        on,
		MaxDrawdown: r.MaxDrawdown,
	}

	total, _ := ts.Get(TotalLabel, on)
	s.TotalValue = total.MarketValue
	s.TotalReturn = total.TotalReturn
	s.UnrealizedGain = total.UnrealizedGain

	for _, label := range ts.Assets() {
		row, _ := ts.Get(label, on)
		if !defined(row.Volume) || row.Volume == 0 {
			continue // not held anymore, or the benchmark
		}
		s.Assets = append(s.Assets, AssetSummary{
			Label:               label,
			Volume:              row.Volume,
			Close:               row.Close,
			MarketValue:         row.MarketValue,
			CumulativeBuys:      row.CumulativeBuys,
			CumulativeSales:     row.CumulativeSales,
			CumulativeDividends: row.CumulativeDividends,
			TotalReturn:         row.TotalReturn,
			UnrealizedGain:      row.UnrealizedGain,
			UnrealizedGainPct:   row.UnrealizedGainPct,
		})
	}
	return s
}
