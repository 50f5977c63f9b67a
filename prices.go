package depot

import (
	"fmt"
	"iter"
	"slices"

	"github.com/tohlinger/depot/date"
)

// BenchmarkLabel is the sentinel asset label of the benchmark index.
// It is priced like any other asset but no holdings exist for it.
const BenchmarkLabel = "MSCI"

// PriceTable holds daily close prices for a set of asset labels over a
// calendar span. Providers guarantee one value per calendar day; reads
// carry the last known close forward across residual gaps.
type PriceTable struct {
	span   date.Range
	labels []string
	series map[string]*date.History[float64]
}

// PriceRow is one point of the long-format price table.
type PriceRow struct {
	Date  date.Date
	Asset string
	Close float64
}

// NewPriceTable creates an empty price table covering the given span.
func NewPriceTable(span date.Range) *PriceTable {
	return &PriceTable{
		span:   span,
		labels: make([]string, 0),
		series: make(map[string]*date.History[float64]),
	}
}

// Append records the close price of a label on a day. Unknown labels are
// added to the table.
func (p *PriceTable) Append(label string, on date.Date, close float64) {
	h, ok := p.series[label]
	if !ok {
		h = &date.History[float64]{}
		p.series[label] = h
		p.labels = append(p.labels, label)
		slices.Sort(p.labels)
	}
	h.Append(on, close)
}

// Span returns the calendar range covered by the table.
func (p *PriceTable) Span() date.Range { return p.span }

// Labels returns the sorted asset labels of the table.
func (p *PriceTable) Labels() []string { return p.labels }

// Has reports whether the table holds a series for the label.
func (p *PriceTable) Has(label string) bool {
	_, ok := p.series[label]
	return ok
}

// CloseOn returns the close price of a label on a day, carrying the last
// known close forward. It returns false when no price exists on or
// before that day.
func (p *PriceTable) CloseOn(label string, on date.Date) (float64, bool) {
	h, ok := p.series[label]
	if !ok {
		return 0, false
	}
	return h.ValueAsOf(on)
}

// Rows returns the dense long-format table: one row per label per
// calendar day of the span.
func (p *PriceTable) Rows() iter.Seq[PriceRow] {
	return func(yield func(PriceRow) bool) {
		for _, label := range p.labels {
			for d := range p.span.Days() {
				close, ok := p.CloseOn(label, d)
				if !ok {
					close = undefined()
				}
				if !yield(PriceRow{Date: d, Asset: label, Close: close}) {
					return
				}
			}
		}
	}
}

// Validate checks the preconditions the engine relies on: a non-empty
// label set and at least one price per label.
func (p *PriceTable) Validate() error {
	if len(p.labels) == 0 {
		return fmt.Errorf("empty price table: no labels")
	}
	for _, label := range p.labels {
		if p.series[label].Len() == 0 {
			return fmt.Errorf("price table has no prices for %q", label)
		}
	}
	return nil
}
