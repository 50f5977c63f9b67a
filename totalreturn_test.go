package depot

import (
	"math"
	"testing"
	"time"

	"github.com/tohlinger/depot/date"
)

func totalReturnFixture(t *testing.T) *TimeSeries {
	t.Helper()
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
	return ComputeTotalReturn(ts, l)
}

func TestTotalReturnCumulativeColumns(t *testing.T) {
	ts := totalReturnFixture(t)

	testCases := []struct {
		on                 date.Date
		wantBuys, wantSale float64
	}{
		{date.New(2025, time.January, 2), 1000, 0},
		{date.New(2025, time.January, 5), 1000, 0},    // carried across non-event days
		{date.New(2025, time.January, 6), 1600, 0},    // second buy
		{date.New(2025, time.January, 11), 1600, 700}, // sell proceeds are a total
	}
	for _, tc := range testCases {
		t.Run(tc.on.String(), func(t *testing.T) {
			row, _ := ts.Get("APPLE", tc.on)
			if row.CumulativeBuys != tc.wantBuys {
				t.Errorf("cumulative buys = %v, want %v", row.CumulativeBuys, tc.wantBuys)
			}
			if row.CumulativeSales != tc.wantSale {
				t.Errorf("cumulative sales = %v, want %v", row.CumulativeSales, tc.wantSale)
			}
		})
	}
}

func TestTotalReturnIdentity(t *testing.T) {
	ts := totalReturnFixture(t)

	for row := range ts.Rows() {
		if row.Asset == TotalLabel || !defined(row.TotalReturn) {
			continue
		}
		want := row.MarketValue + row.CumulativeSales - row.CumulativeBuys + row.CumulativeDividends
		if row.TotalReturn != want {
			t.Errorf("%q on %v: total return = %v, want exactly %v", row.Asset, row.Date, row.TotalReturn, want)
		}
	}
}

func TestTotalReturnTotalRowIsSum(t *testing.T) {
	ts := totalReturnFixture(t)

	for _, d := range ts.Dates() {
		var buys, totalReturn float64
		for _, label := range ts.Assets() {
			row, _ := ts.Get(label, d)
			buys += row.CumulativeBuys
			if defined(row.TotalReturn) {
				totalReturn += row.TotalReturn
			}
		}
		total, _ := ts.Get(TotalLabel, d)
		if math.Abs(total.CumulativeBuys-buys) > 1e-9 {
			t.Errorf("on %v: total cumulative buys = %v, want %v", d, total.CumulativeBuys, buys)
		}
		if math.Abs(total.TotalReturn-totalReturn) > 1e-9 {
			t.Errorf("on %v: total total-return = %v, want %v", d, total.TotalReturn, totalReturn)
		}
	}
}

func TestWeightedTotalReturnUndefinedOnZeroBuys(t *testing.T) {
	ts := totalReturnFixture(t)

	// The benchmark has no activities: cumulative buys stay 0 and the
	// ratio must be undefined, never infinite and never zero.
	for _, d := range ts.Dates() {
		row, _ := ts.Get("MSCI", d)
		if row.CumulativeBuys != 0 {
			t.Fatalf("MSCI cumulative buys = %v, want 0", row.CumulativeBuys)
		}
		if defined(row.WeightedTotalReturn) {
			t.Errorf("on %v: weighted total return = %v, want undefined", d, row.WeightedTotalReturn)
		}
		if math.IsInf(row.WeightedTotalReturn, 0) {
			t.Errorf("on %v: weighted total return is infinite", d)
		}
	}
}

func TestTotalReturnWithDividends(t *testing.T) {
	l := NewActivityLog()
	l.Append(
		Activity{Date: date.New(2025, time.February, 1), Asset: "AMZN", Type: Buy, Volume: Q(4), Value: EUR(200)},
		Activity{Date: date.New(2025, time.February, 3), Asset: "AMZN", Type: CashDividend, Volume: Q(10)},
		Activity{Date: date.New(2025, time.February, 5), Asset: "AMZN", Type: StockDividend, Volume: Q(1)},
	)
	inv, _ := BuildInventory(l)
	span := date.NewRange(date.New(2025, time.February, 1), date.New(2025, time.February, 5))
	prices := constantPrices(t, span, map[string]float64{"AMZN": 210})
	ts, _ := MergeValuation(inv, prices)
	ts = ComputeTotalReturn(ts, l)

	row, _ := ts.Get("AMZN", date.New(2025, time.February, 5))
	if row.CumulativeDividends != 10 {
		t.Errorf("cumulative dividends = %v, want 10", row.CumulativeDividends)
	}
	// 5 shares (4 bought + 1 stock dividend) at 210, minus 800 cost, plus 10 cash.
	want := 5*210.0 + 0 - 800 + 10
	if row.TotalReturn != want {
		t.Errorf("total return = %v, want %v", row.TotalReturn, want)
	}
}
