// Package panels renders one metric domain each. Panels are pure functions of
// the delivered data and the available width; they hold no state.
package panels

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/scrollmark/internal/emoji"
	"github.com/yildizm/scrollmark/internal/metrics"
	"github.com/yildizm/scrollmark/internal/ui/components"
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#3B82F6"}).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
)

// Render dispatches to the panel for d
func Render(d metrics.Domain, r *metrics.Result, width int) string {
	if r == nil {
		return noData()
	}
	switch d {
	case metrics.DomainEngagement:
		return Engagement(r.Engagement, width)
	case metrics.DomainBuyerIntent:
		return BuyerIntent(r.BuyerIntent, width)
	case metrics.DomainAdvocates:
		return Advocates(r.Advocates, width)
	case metrics.DomainPublishing:
		return Publishing(r.Publishing, width)
	case metrics.DomainDiagnostics:
		return Diagnostics(r.Diagnostics, width)
	case metrics.DomainSentiment:
		return Sentiment(r.Sentiment, width)
	case metrics.DomainVirality:
		return Virality(r.Virality, width)
	}
	return noData()
}

func noData() string {
	return mutedStyle.Render("No data available")
}

// stack joins non-empty blocks with a blank line between them
func stack(blocks ...string) string {
	kept := blocks[:0]
	for _, b := range blocks {
		if strings.TrimSpace(b) != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n\n")
}

func heading(s string) string {
	return headingStyle.Render(s)
}

// summaryCards turns backend KPI cards into a card grid
func summaryCards(cards []metrics.SummaryCard, width int) string {
	if len(cards) == 0 {
		return ""
	}
	d := components.NewStatsDashboard(len(cards))
	for _, c := range cards {
		d.AddCard(components.NewStatsCard(c.Title, cardValue(c.Value), c.Change).
			SetStatus(c.Trend).
			SetIcon(emoji.ForTrend(c.Trend)))
	}
	d.FitWidth(width)
	return d.Render()
}

// cardValue groups the digits of whole numbers; everything else is shown
// as sent
func cardValue(v metrics.Value) string {
	f, ok := v.Float()
	if !ok || f != math.Trunc(f) || math.Abs(f) >= 1e15 {
		return v.String()
	}
	return components.FormatNumber(int(f))
}

func sparkline(title string, points []metrics.DatePoint, width int) string {
	if len(points) == 0 {
		return heading(title) + "\n" + noData()
	}
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = float64(p.Value)
	}
	line := components.NewSparklineChart(values, max(width-2, 1)).Render()
	span := fmt.Sprintf("%s → %s", points[0].Date, points[len(points)-1].Date)
	return heading(title) + "\n" + line + "\n" + mutedStyle.Render(span)
}

func bulletList(title string, items []string) string {
	if len(items) == 0 {
		return heading(title) + "\n" + noData()
	}
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, heading(title))
	for _, it := range items {
		lines = append(lines, "• "+it)
	}
	return strings.Join(lines, "\n")
}

func percent(n int) string {
	return fmt.Sprintf("%d%%", n)
}
