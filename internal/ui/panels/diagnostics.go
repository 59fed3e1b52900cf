package panels

import (
	"fmt"
	"strings"

	"github.com/yildizm/scrollmark/internal/metrics"
	"github.com/yildizm/scrollmark/internal/ui/components"
)

// Diagnostics renders tracked metrics against targets and open alerts
func Diagnostics(d *metrics.Diagnostics, width int) string {
	if d == nil {
		return noData()
	}

	volume := components.NewStatsCard("UGC Volume", components.FormatNumber(d.UGCVolume), "comments analyzed")

	perf := make([]metrics.DatePoint, len(d.PerformanceTrends))
	for i, p := range d.PerformanceTrends {
		perf[i] = metrics.DatePoint{Date: p.Date, Value: p.Comments}
	}

	var current []string
	for _, m := range d.CurrentMetrics {
		bar := components.NewProgressBar(max(min(width/3, 30), 10)).SetProgress(m.Progress).Render()
		current = append(current, fmt.Sprintf("%s: %s (was %s, target %s)\n%s", m.Title, m.Current, m.Previous, m.Target, bar))
	}
	currentBlock := heading("Current Metrics") + "\n" + noData()
	if len(current) > 0 {
		currentBlock = heading("Current Metrics") + "\n" + strings.Join(current, "\n")
	}

	alerts := make([]*components.Section, 0, len(d.Alerts))
	for _, a := range d.Alerts {
		s := components.NewSection(a.Title, a.Type).AddLine(a.Description)
		if a.Action != "" {
			s.AddLine("→ " + a.Action)
		}
		alerts = append(alerts, s)
	}

	audience := components.NewTable("Audience Insights", "Metric", "Share", "Change")
	for _, a := range d.AudienceInsights {
		audience.AddRow(a.Metric, percent(a.Percentage), a.Change)
	}

	return stack(
		volume.Render(),
		sparkline("Performance Trend", perf, width),
		currentBlock,
		sections("Alerts", alerts),
		audience.Render(),
	)
}
