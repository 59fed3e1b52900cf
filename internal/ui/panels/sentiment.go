package panels

import (
	"fmt"

	"github.com/yildizm/scrollmark/internal/metrics"
	"github.com/yildizm/scrollmark/internal/ui/components"
)

// Sentiment renders the overall split and its breakdowns
func Sentiment(s *metrics.Sentiment, width int) string {
	if s == nil {
		return noData()
	}

	overall := heading("Overall Sentiment: "+s.Overall.Overall) + "\n" +
		components.SplitBar(s.Overall.Positive, s.Overall.Neutral, s.Overall.Negative, max(width-2, 10))

	trends := splitTable("Sentiment Trends", "Period")
	for _, t := range s.Trends {
		addSplit(trends, t.Period, t.Split)
	}

	keywords := components.NewTable("Advocacy Keywords", "Keyword", "Mentions", "Sentiment", "Growth")
	for _, k := range s.AdvocacyKeywords {
		keywords.AddStatusRow(sentimentStatus(k.Sentiment), k.Keyword, components.FormatNumber(k.Mentions), k.Sentiment, k.Growth)
	}

	kwPerf := components.NewBarChart("Keyword Performance", width)
	for _, k := range s.KeywordPerformance {
		kwPerf.Add(k.Topic, float64(k.Engagement))
	}

	mentions := components.NewTable("Top Mentions", "Mention", "Sentiment", "Engagement", "Platform")
	for _, m := range s.TopMentions {
		mentions.AddStatusRow(sentimentStatus(m.Sentiment), m.Text, m.Sentiment, components.FormatNumber(m.Engagement), m.Platform)
	}

	features := splitTable("Feature Sentiment", "Feature")
	for _, f := range s.FeatureSentiment {
		addSplit(features, f.Feature, f.Split)
	}

	categories := splitTable("Feedback Categories", "Category")
	for _, c := range s.FeedbackCategories {
		addSplit(categories, c.Category, c.Split)
	}

	signals := make([]string, len(s.Signals))
	for i, sig := range s.Signals {
		signals[i] = sig.Signal + ": " + sig.Insight
	}

	product := components.NewTable("Product Features", "Feature", "Positive", "Negative", "Praised", "Pain Point")
	for _, p := range s.ProductFeatures {
		product.AddRow(p.Feature, percent(p.Positive), percent(p.Negative), p.Praised, p.PainPoint)
	}

	return stack(
		overall,
		trends.Render(),
		keywords.Render(),
		kwPerf.Render(),
		mentions.Render(),
		features.Render(),
		categories.Render(),
		bulletList("Sentiment Signals", signals),
		product.Render(),
	)
}

func splitTable(title, label string) *components.Table {
	return components.NewTable(title, label, "Positive", "Neutral", "Negative")
}

func addSplit(t *components.Table, label string, s metrics.Split) {
	t.AddRow(label, percent(s.Positive), percent(s.Neutral), percent(s.Negative))
}

func sentimentStatus(s string) string {
	switch s {
	case "positive", "Positive":
		return "positive"
	case "negative", "Negative":
		return "negative"
	}
	return ""
}

// scoreStatus colors a 0-100 score
func scoreStatus(score int) string {
	switch {
	case score >= 80:
		return "success"
	case score >= 60:
		return "warning"
	}
	return "error"
}

func scoreLabel(score int) string {
	return fmt.Sprintf("%d/100", score)
}
