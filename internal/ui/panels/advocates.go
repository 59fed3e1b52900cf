package panels

import (
	"fmt"

	"github.com/yildizm/scrollmark/internal/metrics"
	"github.com/yildizm/scrollmark/internal/ui/components"
)

// Advocates renders community health and the advocate roster
func Advocates(a *metrics.Advocates, width int) string {
	if a == nil {
		return noData()
	}

	health := components.NewStatsDashboard(len(a.CommunityHealth))
	for _, h := range a.CommunityHealth {
		health.AddCard(components.NewStatsCard(h.Metric, cardValue(h.Value), h.Change))
	}
	health.FitWidth(width)

	roster := components.NewTable("Top Advocates", "User", "Name", "Tier", "Score", "UGC", "Influence", "Points")
	for _, adv := range a.TopAdvocates {
		roster.AddRow(adv.User, adv.Name, adv.Tier, fmt.Sprintf("%d", adv.Score),
			components.FormatNumber(adv.UGCCount), fmt.Sprintf("%d", adv.Influence), components.FormatNumber(adv.LoyaltyPoints))
	}

	tiers := components.NewBarChart("Advocacy Tiers", width)
	tiers.Suffix = "%"
	for _, t := range a.AdvocacyTiers {
		tiers.Add(fmt.Sprintf("%s (%d)", t.Tier, t.Count), t.Percentage)
	}

	radar := components.NewBarChart("Advocate Performance", width)
	for _, m := range a.PerformanceRadar {
		radar.Add(m.Metric, float64(m.Score))
	}

	return stack(
		health.Render(),
		roster.Render(),
		tiers.Render(),
		sparkline("UGC Performance", a.UGCPerformance, width),
		radar.Render(),
		loyalty(a.LoyaltyPerformance),
	)
}

func loyalty(l metrics.LoyaltyProgram) string {
	points := components.NewTable("Points Distribution", "Activity", "Points", "Count")
	for _, p := range l.PointsDistribution {
		points.AddRow(p.Activity, components.FormatNumber(p.Points), components.FormatNumber(p.Count))
	}

	rewards := components.NewTable("Reward Redemptions", "Reward", "Redeemed", "Points")
	for _, r := range l.RewardRedemptions {
		rewards.AddRow(r.Reward, components.FormatNumber(r.Redeemed), components.FormatNumber(r.Points))
	}

	impact := components.NewTable("Program Impact", "Metric", "Value", "Trend")
	for _, m := range l.ProgramImpact {
		impact.AddStatusRow(m.Trend, m.Metric, m.Value, m.Trend)
	}

	return stack(heading("Loyalty Program"), points.Render(), rewards.Render(), impact.Render())
}
