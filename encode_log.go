package depot

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tohlinger/depot/date"
)

// this file handles the activity-log file format: a CSV table with the
// columns date,anlage,type,volume,value,fee_buy,fee_annual, sorted by
// date ascending. The fee columns are optional.

// DecodeActivities reads an activity log from 'r' in CSV format and
// returns a chronologically sorted log.
//
// An empty or missing value cell on a buy or sell is not fatal: the
// derived cost or proceeds are treated as zero and a warning is logged.
// A malformed date, type or volume is a hard error.
func DecodeActivities(r io.Reader) (*ActivityLog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyLog
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read activity log header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"date", "anlage", "type", "volume"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("activity log is missing column %q", required)
		}
	}

	activities := NewActivityLog()
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("cannot read activity log line %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		on, err := date.Parse(field("date"))
		if err != nil {
			return nil, fmt.Errorf("activity log line %d: %w", line, err)
		}
		kind, err := ParseActivityType(field("type"))
		if err != nil {
			return nil, fmt.Errorf("activity log line %d: %w", line, err)
		}
		volume, err := decimal.NewFromString(field("volume"))
		if err != nil {
			return nil, fmt.Errorf("activity log line %d: invalid volume %q: %w", line, field("volume"), err)
		}

		a := Activity{
			Date:   on,
			Asset:  field("anlage"),
			Type:   kind,
			Volume: Q(volume),
		}

		if raw := field("value"); raw != "" {
			value, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("activity log line %d: invalid value %q: %w", line, raw, err)
			}
			a.Value = EUR(value)
		} else if kind == Buy || kind == Sell {
			log.Printf("warning: line %d: %s of %q has no value, cost/proceeds counted as zero", line, kind, a.Asset)
			a.Value = EUR(0)
		}

		if raw := field("fee_buy"); raw != "" {
			rate, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("activity log line %d: invalid fee_buy %q: %w", line, raw, err)
			}
			a.FeeBuy = Percent(rate.InexactFloat64())
		}
		if raw := field("fee_annual"); raw != "" {
			rate, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("activity log line %d: invalid fee_annual %q: %w", line, raw, err)
			}
			a.FeeAnnual = Percent(rate.InexactFloat64())
		}

		activities.Append(a)
	}

	if activities.Len() == 0 {
		return nil, ErrEmptyLog
	}
	return activities, nil
}
