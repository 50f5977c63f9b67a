package depot

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/tohlinger/depot/date"
)

// ActivityType identifies the kind of a single activity-log event.
type ActivityType int

const (
	// Buy adds volume to a position at a per-unit price.
	Buy ActivityType = iota
	// Sell removes volume; its value field carries the total proceeds.
	Sell
	// StockDividend adds volume at no cost.
	StockDividend
	// CashDividend pays out cash; the amount rides in the volume column
	// and the share count is unaffected.
	CashDividend
)

func (t ActivityType) String() string {
	switch t {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	case StockDividend:
		return "stock-dividend"
	case CashDividend:
		return "cash-dividend"
	default:
		return "unknown"
	}
}

// Code returns the short code used in the activity-log file format.
func (t ActivityType) Code() string {
	switch t {
	case Buy:
		return "B"
	case Sell:
		return "S"
	case StockDividend:
		return "SD"
	case CashDividend:
		return "CD"
	default:
		return "?"
	}
}

// Sign returns the multiplier applied to the event volume to obtain the
// change in held shares: +1 for buys and stock dividends, -1 for sells,
// 0 for cash dividends.
func (t ActivityType) Sign() int {
	switch t {
	case Buy, StockDividend:
		return 1
	case Sell:
		return -1
	default:
		return 0
	}
}

// ParseActivityType parses a short code or a long name into an ActivityType.
func ParseActivityType(s string) (ActivityType, error) {
	switch s {
	case "B", "buy":
		return Buy, nil
	case "S", "sell":
		return Sell, nil
	case "SD", "stock-dividend":
		return StockDividend, nil
	case "CD", "cash-dividend":
		return CashDividend, nil
	default:
		return 0, fmt.Errorf("unknown activity type: %q", s)
	}
}

// Activity is a single immutable event of the activity log.
//
// The meaning of Value depends on the type: on buys it is the price per
// unit, on sells it is the total proceeds of the sale. This asymmetry is
// the contract of the source spreadsheet and is preserved throughout;
// use Cost and Proceeds instead of reading Value directly.
type Activity struct {
	Date      date.Date
	Asset     string
	Type      ActivityType
	Volume    Quantity
	Value     Money
	FeeBuy    Percent // one-time fee rate charged at buy time
	FeeAnnual Percent // recurring yearly fee rate
}

// SignedChange returns the change in held shares caused by this activity.
func (a Activity) SignedChange() Quantity {
	switch a.Type.Sign() {
	case 1:
		return a.Volume
	case -1:
		return a.Volume.Neg()
	default:
		return Q(0)
	}
}

// Cost returns the total purchase cost of a buy (volume times per-unit
// value), and zero for every other type.
func (a Activity) Cost() Money {
	if a.Type != Buy {
		return EUR(0)
	}
	return a.Value.Mul(a.Volume)
}

// Proceeds returns the total proceeds of a sell. The value field of a
// sell is already a total, it is not multiplied by the volume.
func (a Activity) Proceeds() Money {
	if a.Type != Sell {
		return EUR(0)
	}
	return a.Value
}

// CashAmount returns the paid-out amount of a cash dividend, carried in
// the volume column of the source format.
func (a Activity) CashAmount() Money {
	if a.Type != CashDividend {
		return EUR(0)
	}
	return EUR(a.Volume.value)
}

// ErrEmptyLog is returned when an operation needs at least one activity
// to establish a date range.
var ErrEmptyLog = errors.New("empty activity log: cannot establish a date range")

// ActivityLog is a chronologically ordered list of activities.
type ActivityLog struct {
	activities []Activity
}

// NewActivityLog creates an empty activity log.
func NewActivityLog() *ActivityLog {
	return &ActivityLog{activities: make([]Activity, 0)}
}

// Append adds activities to the log, keeping it in chronological order.
// Same-day activities keep their insertion order.
func (l *ActivityLog) Append(as ...Activity) *ActivityLog {
	l.activities = append(l.activities, as...)
	l.stableSort()
	return l
}

func (l *ActivityLog) stableSort() {
	sort.SliceStable(l.activities, func(i, j int) bool {
		return l.activities[i].Date.Before(l.activities[j].Date)
	})
}

// Len returns the number of activities in the log.
func (l *ActivityLog) Len() int { return len(l.activities) }

// Activities returns an iterator over all activities in chronological order.
func (l *ActivityLog) Activities() iter.Seq[Activity] {
	return func(yield func(Activity) bool) {
		for _, a := range l.activities {
			if !yield(a) {
				return
			}
		}
	}
}

// ByType returns an iterator over the activities of one type, in
// chronological order.
func (l *ActivityLog) ByType(t ActivityType) iter.Seq[Activity] {
	return func(yield func(Activity) bool) {
		for _, a := range l.activities {
			if a.Type != t {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}
}

// Assets returns the sorted set of asset labels appearing in the log.
func (l *ActivityLog) Assets() []string {
	var assets []string
	for _, a := range l.activities {
		if !slices.Contains(assets, a.Asset) {
			assets = append(assets, a.Asset)
		}
	}
	slices.Sort(assets)
	return assets
}

// Span returns the calendar range from the first to the last activity.
// It fails with ErrEmptyLog on an empty log.
func (l *ActivityLog) Span() (date.Range, error) {
	if len(l.activities) == 0 {
		return date.Range{}, ErrEmptyLog
	}
	return date.NewRange(l.activities[0].Date, l.activities[len(l.activities)-1].Date), nil
}
