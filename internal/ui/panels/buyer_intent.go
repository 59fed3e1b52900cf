package panels

import (
	"fmt"
	"strings"

	"github.com/yildizm/scrollmark/internal/metrics"
	"github.com/yildizm/scrollmark/internal/ui/components"
)

// BuyerIntent renders purchase signals and predicted conversions
func BuyerIntent(b *metrics.BuyerIntent, width int) string {
	if b == nil {
		return noData()
	}

	kpis := components.NewStatsDashboard(4)
	kpis.AddCard(components.NewStatsCard("High-Intent Users", components.FormatNumber(b.HighIntentUsers), "score ≥ 70").SetStatus("success"))
	kpis.AddCard(components.NewStatsCard("Predicted Revenue", b.PredictedRevenue, "next 30 days"))
	kpis.AddCard(components.NewStatsCard("Conversion Rate", b.ConversionRate, "predicted"))
	kpis.AddCard(components.NewStatsCard("Active Prospects", components.FormatNumber(b.ActiveProspects), "last 7 days"))
	kpis.FitWidth(width)

	signals := components.NewTable("Intent Signals", "User", "Intent", "Score", "Signals", "Last Active", "Value")
	for _, s := range b.IntentSignals {
		signals.AddStatusRow(intentStatus(s.Intent),
			s.User, s.Intent, fmt.Sprintf("%d", s.Score), strings.Join(s.Signals, ", "),
			fmt.Sprintf("%dd ago", s.LastActivity), s.PredictedValue)
	}

	predictions := components.NewTable("Conversion Predictions", "Timeframe", "Probability", "Users")
	for _, p := range b.ConversionPredictions {
		predictions.AddRow(p.Timeframe, percent(p.Probability), components.FormatNumber(p.Users))
	}

	categories := components.NewTable("Intent Categories", "Category", "Count", "Value")
	for _, c := range b.IntentCategories {
		categories.AddRow(c.Category, components.FormatNumber(c.Count), c.Value)
	}

	actions := components.NewTable("Next Best Actions", "Action", "Users", "Priority", "Expected Lift")
	for _, a := range b.NextBestActions {
		actions.AddStatusRow(priorityStatus(a.Priority), a.Action, components.FormatNumber(a.Users), a.Priority, a.ExpectedLift)
	}

	return stack(
		kpis.Render(),
		signals.Render(),
		predictions.Render(),
		categories.Render(),
		sparkline("Intent Signal Trend", b.IntentSignalTrends, width),
		actions.Render(),
	)
}

func intentStatus(intent string) string {
	switch intent {
	case "High":
		return "success"
	case "Medium":
		return "warning"
	}
	return ""
}

func priorityStatus(priority string) string {
	switch priority {
	case "High":
		return "error"
	case "Medium":
		return "warning"
	}
	return "info"
}
