package depot

import (
	"iter"
	"slices"

	"github.com/tohlinger/depot/date"
)

// Inventory is the daily per-asset cumulative holdings derived from the
// activity log. Holdings change stepwise at event dates and are constant
// in between; before an asset's first event they are zero.
type Inventory struct {
	span    date.Range
	assets  []string
	volumes map[string]*date.History[float64]
}

// InventoryRow is one point of the dense daily holdings grid.
type InventoryRow struct {
	Date   date.Date
	Asset  string
	Volume float64
}

// BuildInventory converts the activity log into cumulative holdings per
// asset. Same-day events are summed, then cumulated per asset along the
// date axis. The result covers every calendar day between the first and
// the last activity.
func BuildInventory(l *ActivityLog) (*Inventory, error) {
	span, err := l.Span()
	if err != nil {
		return nil, err
	}

	// Group signed changes by (date, asset). Quantities stay decimal
	// until the running sum is fixed, so same-day buys and sells cancel
	// exactly.
	deltas := make(map[string]map[date.Date]Quantity)
	for a := range l.Activities() {
		byDay, ok := deltas[a.Asset]
		if !ok {
			byDay = make(map[date.Date]Quantity)
			deltas[a.Asset] = byDay
		}
		byDay[a.Date] = byDay[a.Date].Add(a.SignedChange())
	}

	inv := &Inventory{
		span:    span,
		assets:  l.Assets(),
		volumes: make(map[string]*date.History[float64]),
	}
	for _, asset := range inv.assets {
		days := make([]date.Date, 0, len(deltas[asset]))
		for d := range deltas[asset] {
			days = append(days, d)
		}
		slices.SortFunc(days, func(a, b date.Date) int {
			if a.Before(b) {
				return -1
			}
			if a.After(b) {
				return 1
			}
			return 0
		})

		h := &date.History[float64]{}
		running := Q(0)
		for _, d := range days {
			running = running.Add(deltas[asset][d])
			h.Append(d, running.InexactFloat64())
		}
		inv.volumes[asset] = h
	}
	return inv, nil
}

// Span returns the calendar range covered by the inventory.
func (inv *Inventory) Span() date.Range { return inv.span }

// Assets returns the sorted asset labels of the inventory.
func (inv *Inventory) Assets() []string { return inv.assets }

// VolumeOn returns the cumulative volume of an asset on a day: the last
// change on or before that day carried forward, or zero before the
// asset's first event.
func (inv *Inventory) VolumeOn(asset string, on date.Date) float64 {
	h, ok := inv.volumes[asset]
	if !ok {
		return 0
	}
	v, ok := h.ValueAsOf(on)
	if !ok {
		return 0
	}
	return v
}

// Rows returns the dense grid: one row per asset per calendar day of the
// inventory span.
func (inv *Inventory) Rows() iter.Seq[InventoryRow] {
	return func(yield func(InventoryRow) bool) {
		for _, asset := range inv.assets {
			for d := range inv.span.Days() {
				if !yield(InventoryRow{Date: d, Asset: asset, Volume: inv.VolumeOn(asset, d)}) {
					return
				}
			}
		}
	}
}
