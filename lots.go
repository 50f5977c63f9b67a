package depot

import "github.com/tohlinger/depot/date"

// lot represents a single purchase of an asset, used for cost basis
// calculations.
type lot struct {
	Date     date.Date
	Quantity Quantity
	Cost     Money // total cost of the lot (quantity * price)
}

type lots []lot

// buyLots collects an asset's purchase lots from the log, in
// chronological order. Sell events are deliberately not replayed against
// the queue: the caller matches against the already-net held volume, so
// after sells the earliest lots consumed for cost-basis purposes may not
// be the lots that were actually sold.
func buyLots(l *ActivityLog, asset string) lots {
	var out lots
	for a := range l.ByType(Buy) {
		if a.Asset != asset {
			continue
		}
		out = append(out, lot{
			Date:     a.Date,
			Quantity: a.Volume,
			Cost:     a.Cost(),
		})
	}
	return out
}

// fifoCostOf calculates the cost basis of a held quantity by consuming
// the earliest lots first. A lot larger than the remaining unmatched
// volume is consumed partially, at its average per-unit cost.
func (l lots) fifoCostOf(held Quantity) Money {
	basis := EUR(0)

	for _, currentLot := range l {
		if !held.IsPositive() {
			break
		}
		if currentLot.Quantity.GreaterThan(held) {
			// Partial match from this lot.
			basis = basis.Add(currentLot.Cost.Mul(held).Div(currentLot.Quantity))
			return basis
		}
		// Full match of this lot.
		basis = basis.Add(currentLot.Cost)
		held = held.Sub(currentLot.Quantity)
	}
	return basis
}
