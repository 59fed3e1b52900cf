package panels

import (
	"fmt"

	"github.com/yildizm/scrollmark/internal/metrics"
	"github.com/yildizm/scrollmark/internal/ui/components"
)

// Engagement renders post and comment activity
func Engagement(e *metrics.Engagement, width int) string {
	if e == nil {
		return noData()
	}

	totals := components.NewStatsDashboard(2)
	totals.AddCard(components.NewStatsCard("Total Posts", components.FormatNumber(e.TotalPosts), "in upload"))
	totals.AddCard(components.NewStatsCard("Total Comments", components.FormatNumber(e.TotalComments), "in upload"))
	totals.FitWidth(width)

	comments := make([]metrics.DatePoint, len(e.EngagementOverTime))
	for i, p := range e.EngagementOverTime {
		comments[i] = metrics.DatePoint{Date: p.Date, Value: p.Comments}
	}

	hours := components.NewBarChart("Peak Engagement Hours", width)
	for _, h := range e.PeakEngagementHours {
		hours.Add(h.Hour, float64(h.Activity))
	}

	posts := components.NewTable("Top Performing Posts", "#", "Post", "Comments")
	for i, p := range e.TopPerformingPosts {
		caption := "(no caption)"
		if p.Caption != nil && *p.Caption != "" {
			caption = *p.Caption
		}
		posts.AddRow(fmt.Sprintf("%d", i+1), caption, components.FormatNumber(p.Comments))
	}

	byType := components.NewBarChart("Engagement by Post Type", width)
	for _, t := range e.EngagementByType {
		byType.Add(t.Type, float64(t.Engagement))
	}

	return stack(
		totals.Render(),
		summaryCards(e.MetricsSummary, width),
		sparkline("Comments Over Time", comments, width),
		hours.Render(),
		posts.Render(),
		byType.Render(),
	)
}
