package depot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tohlinger/depot/date"
)

// this file contains functions to handle the price database format.
// It should remain human readable, single file and easy to merge.

// jprices is the readable version of the format: one JSON object per
// line, one line per asset label, history keyed by ISO date.
type jprices struct {
	Anlage  string             `json:"anlage"`
	History map[string]float64 `json:"history"`
}

// ImportPrices reads a price table from 'r' in the price database
// format. The span of the table is derived from the earliest and latest
// price found.
func ImportPrices(r io.Reader) (*PriceTable, error) {
	var records []jprices
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jp jprices
		if err := json.Unmarshal(line, &jp); err != nil {
			return nil, fmt.Errorf("cannot parse line for price import format: %q: %w", string(line), err)
		}
		records = append(records, jp)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read price database: %w", err)
	}

	var span date.Range
	first := true
	parsed := make(map[string]map[date.Date]float64, len(records))
	for _, jp := range records {
		byDay := make(map[date.Date]float64, len(jp.History))
		for day, close := range jp.History {
			d, err := date.Parse(day)
			if err != nil {
				return nil, fmt.Errorf("price database %q: %w", jp.Anlage, err)
			}
			byDay[d] = close
			if first {
				span = date.Range{From: d, To: d}
				first = false
				continue
			}
			if d.Before(span.From) {
				span.From = d
			}
			if d.After(span.To) {
				span.To = d
			}
		}
		parsed[jp.Anlage] = byDay
	}
	if first {
		return nil, fmt.Errorf("empty price database")
	}

	table := NewPriceTable(span)
	for label, byDay := range parsed {
		for d, close := range byDay {
			table.Append(label, d, close)
		}
	}
	return table, nil
}

// ExportPrices writes the price table to 'w' in the price database
// format, one line per label.
func ExportPrices(w io.Writer, p *PriceTable) error {
	for _, label := range p.Labels() {
		jp := jprices{
			Anlage:  label,
			History: make(map[string]float64),
		}
		for row := range p.Rows() {
			if row.Asset != label || !defined(row.Close) {
				continue
			}
			jp.History[row.Date.String()] = row.Close
		}
		data, err := json.Marshal(jp)
		if err != nil {
			return fmt.Errorf("cannot marshal prices for %q: %w", label, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write price database: %w", err)
		}
	}
	return nil
}
