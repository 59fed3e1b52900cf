package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/scrollmark/internal/emoji"
	"github.com/yildizm/scrollmark/internal/metrics"
)

// textFormatter formats output as plain text for terminal display using go-termfmt
type textFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewText creates a new text formatter
func NewText(color, useEmoji bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = useEmoji
	return &textFormatter{opts: opts}
}

func (f *textFormatter) Format(result *metrics.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no analysis result to format")
	}

	var b strings.Builder
	f.writeHeader(&b)

	for _, d := range metrics.Domains {
		f.writeDomain(&b, result, d)

		switch d {
		case metrics.DomainSentiment:
			f.writeSentimentBars(&b, result.Sentiment)
		case metrics.DomainPublishing:
			f.writeRecommendations(&b, result.Publishing.AIRecommendations)
		case metrics.DomainDiagnostics:
			f.writeAlerts(&b, result.Diagnostics.Alerts)
		case metrics.DomainVirality:
			f.writeTips(&b, result.Virality.Tips)
		}
	}

	return []byte(b.String()), nil
}

// writeHeader writes the boxed report title
func (f *textFormatter) writeHeader(b *strings.Builder) {
	header := "Scrollmark Analysis Summary"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeDomain writes a domain's headline figures as a tree
func (f *textFormatter) writeDomain(b *strings.Builder, result *metrics.Result, d metrics.Domain) {
	rows := headlines(result, d)
	if len(rows) == 0 {
		return
	}

	b.WriteString(f.domainSymbol(d) + d.Title() + "\n")

	items := make([]termfmt.TreeItem, 0, len(rows))
	for i, row := range rows {
		items = append(items, termfmt.TreeItem{
			Label: row.Label,
			Value: row.Value,
			Last:  i == len(rows)-1,
		})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

func (f *textFormatter) domainSymbol(d metrics.Domain) string {
	if !f.opts.Emoji {
		return ""
	}
	return emoji.ForDomain(d) + " "
}

// writeSentimentBars draws the overall split as bars
func (f *textFormatter) writeSentimentBars(b *strings.Builder, s *metrics.Sentiment) {
	split := []struct {
		label string
		pct   int
	}{
		{"Positive", s.Overall.Positive},
		{"Neutral", s.Overall.Neutral},
		{"Negative", s.Overall.Negative},
	}
	for _, part := range split {
		bar := termfmt.CreateConfidenceBar(float64(part.pct)/100, f.opts)
		fmt.Fprintf(b, "  %-8s %s %3d%%\n", part.label, bar, part.pct)
	}
	b.WriteString("\n")
}

// writeRecommendations lists the top publishing recommendations
func (f *textFormatter) writeRecommendations(b *strings.Builder, recs []metrics.Recommendation) {
	if len(recs) == 0 {
		return
	}

	symbol := termfmt.GetEmoji("recommendations", f.opts)
	b.WriteString(symbol + " Recommendations\n")

	for i, rec := range recs {
		if i < 3 { // Limit to top 3 recommendations for text format
			fmt.Fprintf(b, "• [%s] %s\n", rec.Priority, rec.Title)
		}
	}
	b.WriteString("\n")
}

// writeAlerts writes diagnostic alerts with a symbol per alert type
func (f *textFormatter) writeAlerts(b *strings.Builder, alerts []metrics.Alert) {
	if len(alerts) == 0 {
		return
	}

	items := make([]termfmt.TreeItem, 0, len(alerts))
	for i, alert := range alerts {
		var children []termfmt.TreeItem
		if alert.Description != "" {
			children = append(children, termfmt.TreeItem{Label: "Description", Value: alert.Description})
		}
		if alert.Action != "" {
			children = append(children, termfmt.TreeItem{Label: "Action", Value: alert.Action, Last: true})
		}
		items = append(items, termfmt.TreeItem{
			Label:    fmt.Sprintf("%s %s", f.alertSymbol(alert.Type), alert.Title),
			Children: children,
			Last:     i == len(alerts)-1,
		})
	}

	symbol := termfmt.GetEmoji("warning", f.opts)
	b.WriteString(symbol + " Alerts\n")
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *textFormatter) alertSymbol(kind string) string {
	switch kind {
	case "success":
		return termfmt.GetEmoji("success", f.opts)
	case "warning":
		return termfmt.GetEmoji("warning", f.opts)
	default:
		return termfmt.GetEmoji("info", f.opts)
	}
}

// writeTips writes the virality tips
func (f *textFormatter) writeTips(b *strings.Builder, tips []string) {
	if len(tips) == 0 {
		return
	}

	symbol := termfmt.GetEmoji("insights", f.opts)
	b.WriteString(symbol + " Tips\n")
	for _, tip := range tips {
		b.WriteString("• " + tip + "\n")
	}
}
