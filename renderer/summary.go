package renderer

import (
	"bytes"
	"fmt"
	"math"

	md "github.com/nao1215/markdown"

	"github.com/tohlinger/depot"
)

// SummaryMarkdown renders the latest-date depot summary as a markdown
// report: headline figures, then one table row per held asset.
func SummaryMarkdown(s *depot.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Depot Summary on %s", s.Date))
	doc.PlainText(fmt.Sprintf("Total Market Value: %.2f %s", s.TotalValue, depot.ReportingCurrency))
	doc.PlainText(fmt.Sprintf("Total Return: %+.2f %s", s.TotalReturn, depot.ReportingCurrency))
	doc.PlainText(fmt.Sprintf("Unrealized Gain: %+.2f %s", s.UnrealizedGain, depot.ReportingCurrency))
	if !math.IsNaN(s.MaxDrawdown) {
		doc.PlainText(fmt.Sprintf("Max Drawdown: %.2f%%", s.MaxDrawdown*100))
	}

	doc.H2("Holdings")

	table := md.TableSet{
		Header: []string{"Asset", "Volume", "Close", "Market Value", "Total Return", "Unrealized Gain"},
		Rows:   make([][]string, 0, len(s.Assets)),
	}
	for _, a := range s.Assets {
		table.Rows = append(table.Rows, []string{
			a.Label,
			fmt.Sprintf("%g", a.Volume),
			fmt.Sprintf("%.2f", a.Close),
			fmt.Sprintf("%.2f", a.MarketValue),
			cellSigned(a.TotalReturn),
			cellSigned(a.UnrealizedGain),
		})
	}
	doc.Table(table)

	return doc.String()
}

// cellSigned formats a money cell with an explicit sign, empty for
// undefined values.
func cellSigned(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%+.2f", v)
}
