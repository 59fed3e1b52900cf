package formatter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/scrollmark/internal/metrics"
)

func loadFixture(t *testing.T) *metrics.Result {
	t.Helper()
	data, err := os.ReadFile("../metrics/testdata/analysis.json")
	if err != nil {
		t.Fatal(err)
	}
	r, err := metrics.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestNew(t *testing.T) {
	for _, format := range []string{"", "text", "json", "markdown", "md", "csv", "JSON"} {
		if _, err := New(format, Options{}); err != nil {
			t.Errorf("New(%q): %v", format, err)
		}
	}
	if _, err := New("yaml", Options{}); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestFormattersRejectNil(t *testing.T) {
	for _, f := range []Formatter{NewText(false, false), NewJSON(), NewMarkdown(), NewCSV()} {
		if _, err := f.Format(nil); err == nil {
			t.Errorf("%T: expected error for nil result", f)
		}
	}
}

func TestTextFormat(t *testing.T) {
	out, err := NewText(false, false).Format(loadFixture(t))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"Scrollmark Analysis Summary",
		"Engagement",
		"Total Comments",
		"348",
		"Summer launch is here (61 comments)",
		"Buyer Intent",
		"$3,412",
		"Engagement Rate",
		"5.7% (target 6.5%)",
		"Potential Time Savings",
		"74/100",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}

	// domain headings appear in tab order
	last := -1
	for _, d := range metrics.Domains {
		idx := strings.Index(text, d.Title()+"\n")
		if idx < 0 {
			t.Fatalf("missing heading %q", d.Title())
		}
		if idx < last {
			t.Errorf("%s heading out of order", d.Title())
		}
		last = idx
	}
}

func TestJSONPreservesResponse(t *testing.T) {
	out, err := NewJSON().Format(loadFixture(t))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(string(out), "17912345678901234") {
		t.Error("Expected numeric media id to survive unchanged")
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, d := range metrics.Domains {
		if _, ok := decoded[string(d)]; !ok {
			t.Errorf("missing domain %s", d)
		}
	}
}

func TestCSVFormat(t *testing.T) {
	out, err := NewCSV().Format(loadFixture(t))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if got := strings.Join(records[0], ","); got != "Domain,Metric,Value" {
		t.Errorf("Unexpected header: %s", got)
	}

	find := func(domain, metric string) string {
		for _, r := range records[1:] {
			if r[0] == domain && r[1] == metric {
				return r[2]
			}
		}
		return ""
	}
	if v := find("engagement_metrics", "Total Comments"); v != "348" {
		t.Errorf("Total Comments = %q", v)
	}
	if v := find("buyer_intent_discovery", "Predicted Revenue"); v != "$3,412" {
		t.Errorf("Predicted Revenue = %q", v)
	}
	if v := find("sentiment_analysis", "Overall"); v != "Positive" {
		t.Errorf("Overall sentiment = %q", v)
	}
}

func TestMarkdownFormat(t *testing.T) {
	f := &markdownFormatter{now: func() time.Time {
		return time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	}}
	out, err := f.Format(loadFixture(t))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	md := string(out)

	for _, want := range []string{
		"# Scrollmark Analysis Report",
		"Generated: 2025-06-03 12:00:00",
		"## Buyer Intent",
		"## Sentiment",
		"```mermaid",
		"Overall Sentiment",
		"Post between 2-4 PM on weekdays",
		"simulated",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int]string{0: "0", 999: "999", 1247: "1,247", 3412000: "3,412,000"}
	for n, want := range cases {
		if got := formatNumber(n); got != want {
			t.Errorf("formatNumber(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestPostLabelFallsBackToMediaID(t *testing.T) {
	p := metrics.TopPost{MediaID: metrics.StringValue("post_7")}
	if got := postLabel(p); got != "media post_7" {
		t.Errorf("postLabel = %q", got)
	}

	long := strings.Repeat("x", 80)
	p.Caption = &long
	if got := postLabel(p); len([]rune(got)) != 48 {
		t.Errorf("Expected caption truncated to 48 runes, got %d", len([]rune(got)))
	}
}
