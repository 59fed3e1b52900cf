package panels

import (
	"fmt"

	"github.com/yildizm/scrollmark/internal/metrics"
	"github.com/yildizm/scrollmark/internal/ui/components"
)

// Virality renders the historical virality view. The draft predictor is
// interactive and is drawn by the dashboard beneath this panel.
func Virality(v *metrics.Virality, width int) string {
	if v == nil {
		return noData()
	}

	gauge := components.NewStatsCard("Virality Score", scoreLabel(v.Score), "based on uploaded posts").
		SetStatus(scoreStatus(v.Score))
	meter := components.NewProgressBar(max(min(width-12, 40), 10)).SetProgress(v.Score).Render()

	factors := components.NewBarChart("Virality Factors", width)
	for _, f := range v.Factors {
		factors.Add(f.Factor, float64(f.Score))
	}

	past := components.NewTable("Past Viral Posts", "Content", "Score", "Reach", "Engagement", "Shares", "When")
	for _, p := range v.PastPosts {
		past.AddStatusRow(scoreStatus(p.Score), p.Content, fmt.Sprintf("%d", p.Score), p.Reach, p.Engagement, p.Shares, p.Date)
	}

	return stack(
		gauge.Render()+"\n"+meter,
		factors.Render(),
		past.Render(),
		sparkline("Virality Trend", v.Trends, width),
		bulletList("Tips", v.Tips),
	)
}
