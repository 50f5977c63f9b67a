package depot

import (
	"math"
	"testing"
	"time"

	"github.com/tohlinger/depot/date"
)

// constantPrices builds a dense price table with one constant close per label.
func constantPrices(t *testing.T, span date.Range, closes map[string]float64) *PriceTable {
	t.Helper()
	p := NewPriceTable(span)
	for label, close := range closes {
		for d := range span.Days() {
			p.Append(label, d, close)
		}
	}
	return p
}

func TestMergeValuationMarketValue(t *testing.T) {
	l := testLog(t)
	inv, err := BuildInventory(l)
	if err != nil {
		t.Fatalf("BuildInventory() error = %v", err)
	}
	span := date.NewRange(date.New(2025, time.January, 2), date.New(2025, time.January, 11))
	prices := constantPrices(t, span, map[string]float64{"APPLE": 150, "BTC": 50000, "MSCI": 100})

	ts, err := MergeValuation(inv, prices)
	if err != nil {
		t.Fatalf("MergeValuation() error = %v", err)
	}

	row, ok := ts.Get("APPLE", date.New(2025, time.January, 7))
	if !ok {
		t.Fatal("missing APPLE row")
	}
	if row.Volume != 15 || row.MarketValue != 15*150 {
		t.Errorf("APPLE on Jan 7: volume = %v, market value = %v", row.Volume, row.MarketValue)
	}

	// The benchmark is priced but never held.
	msci, _ := ts.Get("MSCI", date.New(2025, time.January, 7))
	if msci.Volume != 0 || msci.MarketValue != 0 {
		t.Errorf("MSCI volume = %v, market value = %v, want 0, 0", msci.Volume, msci.MarketValue)
	}
}

func TestMergeValuationTotalConsistency(t *testing.T) {
	l := testLog(t)
	inv, _ := BuildInventory(l)
	span := date.NewRange(date.New(2025, time.January, 2), date.New(2025, time.January, 11))
	prices := constantPrices(t, span, map[string]float64{"APPLE": 150, "BTC": 50000})

	ts, err := MergeValuation(inv, prices)
	if err != nil {
		t.Fatalf("MergeValuation() error = %v", err)
	}

	for _, d := range ts.Dates() {
		var sum float64
		for _, label := range ts.Assets() {
			row, _ := ts.Get(label, d)
			if defined(row.MarketValue) {
				sum += row.MarketValue
			}
		}
		total, _ := ts.Get(TotalLabel, d)
		if math.Abs(total.MarketValue-sum) > 1e-9 {
			t.Errorf("on %v: total market value = %v, sum of assets = %v", d, total.MarketValue, sum)
		}
		if total.Close != 0 {
			t.Errorf("on %v: total close = %v, want the 0 sentinel", d, total.Close)
		}
	}
}

func TestMergeValuationEmptyPricesFatal(t *testing.T) {
	inv, _ := BuildInventory(testLog(t))
	empty := NewPriceTable(date.Range{})
	if _, err := MergeValuation(inv, empty); err == nil {
		t.Fatal("MergeValuation() with empty prices expected an error")
	}
}

func TestMergeValuationLeadingPriceGap(t *testing.T) {
	l := NewActivityLog()
	l.Append(
		Activity{Date: date.New(2025, time.January, 1), Asset: "OTLY", Type: Buy, Volume: Q(10), Value: EUR(11)},
		Activity{Date: date.New(2025, time.January, 5), Asset: "OTLY", Type: Buy, Volume: Q(1), Value: EUR(11)},
	)
	inv, _ := BuildInventory(l)

	// Prices only start on Jan 3: the first two days have no close to
	// carry forward, so the market value stays undefined there.
	span := date.NewRange(date.New(2025, time.January, 1), date.New(2025, time.January, 5))
	p := NewPriceTable(span)
	for d := range date.NewRange(date.New(2025, time.January, 3), span.To).Days() {
		p.Append("OTLY", d, 11)
	}

	ts, err := MergeValuation(inv, p)
	if err != nil {
		t.Fatalf("MergeValuation() error = %v", err)
	}
	early, _ := ts.Get("OTLY", date.New(2025, time.January, 1))
	if defined(early.MarketValue) {
		t.Errorf("market value before the first price = %v, want undefined", early.MarketValue)
	}
	late, _ := ts.Get("OTLY", date.New(2025, time.January, 4))
	if late.MarketValue != 110 {
		t.Errorf("market value after the first price = %v, want 110", late.MarketValue)
	}
}
