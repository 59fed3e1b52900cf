package panels

import (
	"github.com/yildizm/scrollmark/internal/metrics"
	"github.com/yildizm/scrollmark/internal/ui/components"
)

// Publishing renders timing, topics and recommendations
func Publishing(p *metrics.Publishing, width int) string {
	if p == nil {
		return noData()
	}

	times := components.NewBarChart("Best Posting Times", width)
	for _, s := range p.BestPostingTimes {
		times.Add(s.Time, float64(s.Engagement))
	}

	topics := components.NewBarChart("Trending Topics", width)
	for _, t := range p.TrendingTopics {
		topics.Add(t.Topic, float64(t.Engagement))
	}

	recs := make([]*components.Section, 0, len(p.AIRecommendations))
	for _, r := range p.AIRecommendations {
		s := components.NewSection(r.Title+" ["+r.Priority+"]", priorityStatus(r.Priority))
		if r.Type != "" {
			s.AddLine(r.Type)
		}
		s.AddLine(r.Description)
		if r.Action != "" {
			s.AddLine("→ " + r.Action)
		}
		recs = append(recs, s)
	}

	upcoming := components.NewTable("Upcoming Posts", "Time", "Content", "Status")
	for _, u := range p.UpcomingPosts {
		upcoming.AddRow(u.Time, u.Content, u.Status)
	}

	return stack(
		times.Render(),
		sparkline("Engagement Forecast", p.EngagementForecast, width),
		topics.Render(),
		sections("AI Recommendations", recs),
		upcoming.Render(),
	)
}

func sections(title string, secs []*components.Section) string {
	if len(secs) == 0 {
		return heading(title) + "\n" + noData()
	}
	blocks := make([]string, 0, len(secs)+1)
	blocks = append(blocks, heading(title))
	for _, s := range secs {
		blocks = append(blocks, s.Render())
	}
	return stack(blocks...)
}
