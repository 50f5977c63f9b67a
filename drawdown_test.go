package depot

import (
	"math"
	"testing"
	"time"

	"github.com/tohlinger/depot/date"
)

func drawdownFixture(t *testing.T) (*IndexSeries, *TimeSeries, float64) {
	t.Helper()
	ts, ps := indexFixture(t)
	return ComputeDrawdown(ps, ts)
}

func TestDrawdownNonPositive(t *testing.T) {
	ps, ts, _ := drawdownFixture(t)

	for _, row := range ps.Portfolio() {
		if defined(row.Drawdown) && row.Drawdown > 0 {
			t.Errorf("portfolio drawdown on %v = %v, want <= 0", row.Date, row.Drawdown)
		}
	}
	for row := range ts.Rows() {
		if defined(row.Drawdown) && row.Drawdown > 1e-12 {
			t.Errorf("drawdown of %q on %v = %v, want <= 0", row.Asset, row.Date, row.Drawdown)
		}
	}
}

func TestDrawdownZeroAtPeaks(t *testing.T) {
	ps, _, _ := drawdownFixture(t)

	// Prices: 100, 110, 99, 99 -> the index peaks on day 2.
	rows := ps.Portfolio()
	if rows[0].Drawdown != 0 {
		t.Errorf("day-1 drawdown = %v, want 0 (first peak)", rows[0].Drawdown)
	}
	if rows[1].Drawdown != 0 {
		t.Errorf("day-2 drawdown = %v, want 0 (new peak)", rows[1].Drawdown)
	}
	wantDay3 := (99.0 - 110.0) / 110.0
	if math.Abs(rows[2].Drawdown-wantDay3) > 1e-12 {
		t.Errorf("day-3 drawdown = %v, want %v", rows[2].Drawdown, wantDay3)
	}
}

func TestDrawdownMaxScalar(t *testing.T) {
	ps, _, maxDrawdown := drawdownFixture(t)

	want := math.Inf(1)
	for _, row := range ps.Portfolio() {
		if defined(row.Drawdown) && row.Drawdown < want {
			want = row.Drawdown
		}
	}
	if maxDrawdown != want {
		t.Errorf("max drawdown = %v, want %v", maxDrawdown, want)
	}
	if maxDrawdown >= 0 {
		t.Errorf("max drawdown = %v, want negative for a declining index", maxDrawdown)
	}
}

func TestDrawdownCopiedOntoTotalRows(t *testing.T) {
	ps, ts, _ := drawdownFixture(t)

	for i, d := range ts.Dates() {
		total, _ := ts.Get(TotalLabel, d)
		want := ps.Portfolio()[i].Drawdown
		if defined(want) != defined(total.Drawdown) {
			t.Fatalf("on %v: definedness mismatch between tables", d)
		}
		if defined(want) && total.Drawdown != want {
			t.Errorf("on %v: total drawdown = %v, portfolio drawdown = %v", d, total.Drawdown, want)
		}
	}
}

func TestDrawdownWeighted(t *testing.T) {
	_, ts, _ := drawdownFixture(t)

	// Single held asset at weight 1: weighted drawdown equals raw drawdown.
	row, _ := ts.Get("APPLE", date.New(2025, time.January, 3))
	if !defined(row.WeightedDrawdown) {
		t.Fatal("weighted drawdown undefined")
	}
	if math.Abs(row.WeightedDrawdown-row.Drawdown*row.weightPrev) > 1e-12 {
		t.Errorf("weighted drawdown = %v, want drawdown*weight = %v", row.WeightedDrawdown, row.Drawdown*row.weightPrev)
	}
}
