package panels

import (
	"os"
	"strings"
	"testing"

	"github.com/yildizm/scrollmark/internal/emoji"
	"github.com/yildizm/scrollmark/internal/metrics"
)

func loadFixture(t *testing.T) *metrics.Result {
	t.Helper()
	data, err := os.ReadFile("../../metrics/testdata/analysis.json")
	if err != nil {
		t.Fatal(err)
	}
	r, err := metrics.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestPanelsRenderDeliveredData(t *testing.T) {
	r := loadFixture(t)

	tests := []struct {
		domain metrics.Domain
		want   []string
	}{
		{metrics.DomainEngagement, []string{"Peak Engagement Hours", "14:00", "Summer launch is here", "(no caption)", "Video"}},
		{metrics.DomainBuyerIntent, []string{"Intent Signals", "Next 30 days", "Pricing Questions", "Drop limited-time coupon"}},
		{metrics.DomainAdvocates, []string{"Emma Johnson", "Champions (23)", "9.3%", "Early Access", "Retention Rate"}},
		{metrics.DomainPublishing, []string{"Post between 2-4 PM on weekdays", "Product feature highlight", "launch"}},
		{metrics.DomainDiagnostics, []string{"Engagement Rate", "Potential Time Savings", "Age 25-34"}},
		{metrics.DomainSentiment, []string{"Overall Sentiment: Positive", "62% positive", "#quality", "Loading times", "Spike in negative mentions of pricing"}},
		{metrics.DomainVirality, []string{"74/100", "Timing", "2.3M", "Ask questions to encourage comments"}},
	}

	for _, tt := range tests {
		t.Run(tt.domain.Title(), func(t *testing.T) {
			out := Render(tt.domain, r, 120)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Expected %q in %s panel", want, tt.domain.Title())
				}
			}
		})
	}
}

func TestPanelsTolerateEmptyCollections(t *testing.T) {
	r := &metrics.Result{
		Engagement:  &metrics.Engagement{},
		BuyerIntent: &metrics.BuyerIntent{},
		Advocates:   &metrics.Advocates{},
		Publishing:  &metrics.Publishing{},
		Diagnostics: &metrics.Diagnostics{},
		Sentiment:   &metrics.Sentiment{},
		Virality:    &metrics.Virality{},
	}
	for _, d := range metrics.Domains {
		out := Render(d, r, 80)
		if !strings.Contains(out, "No data available") {
			t.Errorf("%s: expected a no-data line for empty collections", d.Title())
		}
	}
}

func TestRenderNilResult(t *testing.T) {
	if out := Render(metrics.DomainEngagement, nil, 80); !strings.Contains(out, "No data available") {
		t.Errorf("Unexpected output for nil result: %q", out)
	}
}

func TestCardValue(t *testing.T) {
	tests := []struct {
		in   metrics.Value
		want string
	}{
		{metrics.NumberValue(1247), "1,247"},
		{metrics.NumberValue(8.4), "8.4"},
		{metrics.StringValue("23K"), "23K"},
	}
	for _, tt := range tests {
		if got := cardValue(tt.in); got != tt.want {
			t.Errorf("cardValue(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSummaryCardsShowTrend(t *testing.T) {
	defer emoji.SetEmojiDisabled(false)
	emoji.SetEmojiDisabled(true)

	out := summaryCards([]metrics.SummaryCard{
		{Title: "Reach", Value: metrics.StringValue("912K"), Change: "+17.0%", Trend: "up"},
		{Title: "Shares", Value: metrics.StringValue("23K"), Change: "-2.3%", Trend: "down"},
	}, 120)
	for _, want := range []string{"[+]", "[-]", "912K"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in summary cards", want)
		}
	}
}
