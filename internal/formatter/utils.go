package formatter

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yildizm/scrollmark/internal/metrics"
)

var printer = message.NewPrinter(language.English)

// metricRow is one label/value line of a domain summary
type metricRow struct {
	Label string
	Value string
}

// formatNumber formats numbers with thousands separators
func formatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

func percent(n int) string {
	return fmt.Sprintf("%d%%", n)
}

// postLabel names a post by caption, falling back to its media id
func postLabel(p metrics.TopPost) string {
	if p.Caption != nil && strings.TrimSpace(*p.Caption) != "" {
		return truncate(*p.Caption, 48)
	}
	return "media " + p.MediaID.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// headlines returns the key figures of one domain in display order
func headlines(r *metrics.Result, d metrics.Domain) []metricRow {
	switch d {
	case metrics.DomainEngagement:
		return engagementRows(r.Engagement)
	case metrics.DomainBuyerIntent:
		return buyerIntentRows(r.BuyerIntent)
	case metrics.DomainAdvocates:
		return advocateRows(r.Advocates)
	case metrics.DomainPublishing:
		return publishingRows(r.Publishing)
	case metrics.DomainDiagnostics:
		return diagnosticRows(r.Diagnostics)
	case metrics.DomainSentiment:
		return sentimentRows(r.Sentiment)
	case metrics.DomainVirality:
		return viralityRows(r.Virality)
	}
	return nil
}

func engagementRows(e *metrics.Engagement) []metricRow {
	rows := []metricRow{
		{"Total Posts", formatNumber(e.TotalPosts)},
		{"Total Comments", formatNumber(e.TotalComments)},
	}
	if len(e.PeakEngagementHours) > 0 {
		peak := e.PeakEngagementHours[0]
		for _, h := range e.PeakEngagementHours[1:] {
			if h.Activity > peak.Activity {
				peak = h
			}
		}
		rows = append(rows, metricRow{"Peak Hour", fmt.Sprintf("%s (%s)", peak.Hour, formatNumber(peak.Activity))})
	}
	if len(e.TopPerformingPosts) > 0 {
		top := e.TopPerformingPosts[0]
		rows = append(rows, metricRow{"Top Post", fmt.Sprintf("%s (%s comments)", postLabel(top), formatNumber(top.Comments))})
	}
	return rows
}

func buyerIntentRows(b *metrics.BuyerIntent) []metricRow {
	return []metricRow{
		{"High-Intent Users", formatNumber(b.HighIntentUsers)},
		{"Predicted Revenue", b.PredictedRevenue},
		{"Conversion Rate", b.ConversionRate},
		{"Active Prospects", formatNumber(b.ActiveProspects)},
	}
}

func advocateRows(a *metrics.Advocates) []metricRow {
	rows := make([]metricRow, 0, len(a.CommunityHealth)+2)
	for _, h := range a.CommunityHealth {
		v := h.Value.String()
		if h.Change != "" {
			v += " (" + h.Change + ")"
		}
		rows = append(rows, metricRow{h.Metric, v})
	}
	if len(a.TopAdvocates) > 0 {
		top := a.TopAdvocates[0]
		rows = append(rows, metricRow{"Top Advocate", fmt.Sprintf("%s (%s, score %d)", top.Name, top.Tier, top.Score)})
	}
	rows = append(rows, metricRow{"Advocacy Tiers", formatNumber(len(a.AdvocacyTiers))})
	return rows
}

func publishingRows(p *metrics.Publishing) []metricRow {
	var rows []metricRow
	if len(p.BestPostingTimes) > 0 {
		best := p.BestPostingTimes[0]
		for _, s := range p.BestPostingTimes[1:] {
			if s.Engagement > best.Engagement {
				best = s
			}
		}
		rows = append(rows, metricRow{"Best Posting Time", best.Time})
	}
	if len(p.TrendingTopics) > 0 {
		top := p.TrendingTopics[0]
		for _, t := range p.TrendingTopics[1:] {
			if t.Engagement > top.Engagement {
				top = t
			}
		}
		rows = append(rows, metricRow{"Top Topic", top.Topic})
	}
	return append(rows,
		metricRow{"Recommendations", formatNumber(len(p.AIRecommendations))},
		metricRow{"Upcoming Posts", formatNumber(len(p.UpcomingPosts))},
	)
}

func diagnosticRows(d *metrics.Diagnostics) []metricRow {
	rows := []metricRow{{"UGC Volume", formatNumber(d.UGCVolume)}}
	for _, m := range d.CurrentMetrics {
		v := m.Current
		if m.Target != "" {
			v += " (target " + m.Target + ")"
		}
		rows = append(rows, metricRow{m.Title, v})
	}
	return append(rows, metricRow{"Alerts", formatNumber(len(d.Alerts))})
}

func sentimentRows(s *metrics.Sentiment) []metricRow {
	return []metricRow{
		{"Overall", s.Overall.Overall},
		{"Positive", percent(s.Overall.Positive)},
		{"Neutral", percent(s.Overall.Neutral)},
		{"Negative", percent(s.Overall.Negative)},
	}
}

func viralityRows(v *metrics.Virality) []metricRow {
	rows := []metricRow{{"Score", fmt.Sprintf("%d/100", v.Score)}}
	if len(v.Factors) > 0 {
		top := v.Factors[0]
		for _, f := range v.Factors[1:] {
			if f.Score > top.Score {
				top = f
			}
		}
		rows = append(rows, metricRow{"Strongest Factor", fmt.Sprintf("%s (%d)", top.Factor, top.Score)})
	}
	return append(rows, metricRow{"Tips", formatNumber(len(v.Tips))})
}
