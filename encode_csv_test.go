package depot

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/tohlinger/depot/date"
)

func TestEncodeTimeSeriesCells(t *testing.T) {
	l := testLog(t)
	span := date.NewRange(date.New(2025, time.January, 2), date.New(2025, time.January, 11))
	prices := constantPrices(t, span, map[string]float64{"APPLE": 150, "BTC": 50000, "MSCI": 100})
	r, err := Build(l, prices)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var buf strings.Builder
	if err := EncodeTimeSeries(&buf, r.TimeSeries); err != nil {
		t.Fatalf("EncodeTimeSeries() error = %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("cannot read back CSV: %v", err)
	}

	if got, want := records[0][0]+","+records[0][1]+","+records[0][2], "date,anlage,kurs"; got != want {
		t.Errorf("header starts with %q, want %q", got, want)
	}
	// One row per (date, label) over the dense grid, plus the header.
	wantRows := span.Len()*len(r.TimeSeries.Labels()) + 1
	if len(records) != wantRows {
		t.Errorf("got %d records, want %d", len(records), wantRows)
	}

	for _, rec := range records[1:] {
		if _, err := date.Parse(rec[0]); err != nil {
			t.Fatalf("date column %q is not ISO: %v", rec[0], err)
		}
		for i, field := range rec {
			if strings.Contains(field, "NaN") || strings.Contains(field, "Inf") {
				t.Errorf("column %d of %v renders %q, want empty for undefined", i, rec[0], field)
			}
		}
	}
}

func TestEncodeTimeSeriesUndefinedEmpty(t *testing.T) {
	l := testLog(t)
	span := date.NewRange(date.New(2025, time.January, 2), date.New(2025, time.January, 11))
	prices := constantPrices(t, span, map[string]float64{"APPLE": 150, "BTC": 50000, "MSCI": 100})
	r, err := Build(l, prices)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var buf strings.Builder
	if err := EncodeTimeSeries(&buf, r.TimeSeries); err != nil {
		t.Fatalf("EncodeTimeSeries() error = %v", err)
	}
	records, _ := csv.NewReader(strings.NewReader(buf.String())).ReadAll()

	// The first day of every label has an undefined return.
	firstDay := span.From.String()
	for _, rec := range records[1:] {
		if rec[0] == firstDay && rec[5] != "" {
			t.Errorf("return of %q on the first day = %q, want empty", rec[1], rec[5])
		}
	}
}

func TestEncodeIndex(t *testing.T) {
	index, _, _ := drawdownFixture(t)

	var buf strings.Builder
	if err := EncodeIndex(&buf, index); err != nil {
		t.Fatalf("EncodeIndex() error = %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("cannot read back CSV: %v", err)
	}
	if got, want := strings.Join(records[0], ","), "date,anlage,gewichtete_rendite,index,drawdown"; got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	var labels []string
	seen := make(map[string]bool)
	for _, rec := range records[1:] {
		if !seen[rec[1]] {
			seen[rec[1]] = true
			labels = append(labels, rec[1])
		}
	}
	if got, want := strings.Join(labels, ","), PortfolioLabel+","+BenchmarkLabel; got != want {
		t.Errorf("label blocks = %q, want portfolio first then benchmark %q", got, want)
	}
}
