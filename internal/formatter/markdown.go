package formatter

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/yildizm/scrollmark/internal/metrics"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	now func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{now: time.Now}
}

func (f *markdownFormatter) Format(result *metrics.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no analysis result to format")
	}

	var b bytes.Buffer
	md := markdown.NewMarkdown(&b)

	md.H1("Scrollmark Analysis Report")
	md.PlainText("")
	md.PlainTextf("Generated: %s", f.now().Format("2006-01-02 15:04:05"))
	md.PlainText("")

	for _, d := range metrics.Domains {
		f.writeDomain(md, result, d)

		switch d {
		case metrics.DomainEngagement:
			f.writeTopPosts(md, result.Engagement.TopPerformingPosts)
		case metrics.DomainSentiment:
			f.writeSentiment(md, result.Sentiment)
		case metrics.DomainPublishing:
			f.writeRecommendations(md, result.Publishing.AIRecommendations)
		case metrics.DomainDiagnostics:
			f.writeAlerts(md, result.Diagnostics.Alerts)
		case metrics.DomainVirality:
			f.writeTips(md, result.Virality.Tips)
		}
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by Scrollmark*")

	if err := md.Build(); err != nil {
		return nil, fmt.Errorf("failed to build markdown: %w", err)
	}
	return b.Bytes(), nil
}

// writeDomain writes a domain heading with its headline table
func (f *markdownFormatter) writeDomain(md *markdown.Markdown, result *metrics.Result, d metrics.Domain) {
	md.H2(d.Title())
	md.PlainText("")

	rows := headlines(result, d)
	table := make([][]string, len(rows))
	for i, row := range rows {
		table[i] = []string{row.Label, row.Value}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows:   table,
	})
	md.PlainText("")
}

func (f *markdownFormatter) writeTopPosts(md *markdown.Markdown, posts []metrics.TopPost) {
	if len(posts) == 0 {
		return
	}

	rows := make([][]string, len(posts))
	for i, p := range posts {
		rows[i] = []string{fmt.Sprintf("%d", i+1), postLabel(p), formatNumber(p.Comments)}
	}
	md.PlainText("Top performing posts:")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"#", "Post", "Comments"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSentiment writes a mermaid pie chart of the overall split
func (f *markdownFormatter) writeSentiment(md *markdown.Markdown, s *metrics.Sentiment) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Overall Sentiment"),
		piechart.WithShowData(true),
	)
	if s.Overall.Positive > 0 {
		chart.LabelAndIntValue("Positive", uint64(s.Overall.Positive))
	}
	if s.Overall.Neutral > 0 {
		chart.LabelAndIntValue("Neutral", uint64(s.Overall.Neutral))
	}
	if s.Overall.Negative > 0 {
		chart.LabelAndIntValue("Negative", uint64(s.Overall.Negative))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")

	if s.Overall.Negative > s.Overall.Positive {
		md.Warningf("Negative mentions (%d%%) outweigh positive ones (%d%%).", s.Overall.Negative, s.Overall.Positive)
		md.PlainText("")
	}
}

func (f *markdownFormatter) writeRecommendations(md *markdown.Markdown, recs []metrics.Recommendation) {
	if len(recs) == 0 {
		return
	}

	items := make([]string, len(recs))
	for i, rec := range recs {
		items[i] = fmt.Sprintf("**%s** (%s): %s", rec.Title, rec.Priority, rec.Description)
	}
	md.PlainText("Recommendations:")
	md.PlainText("")
	md.BulletList(items...)
	md.PlainText("")
}

// writeAlerts renders each diagnostic alert as a GitHub alert block
func (f *markdownFormatter) writeAlerts(md *markdown.Markdown, alerts []metrics.Alert) {
	for _, a := range alerts {
		text := a.Title + ": " + a.Description
		switch a.Type {
		case "warning":
			md.Warningf("%s", text)
		case "success":
			md.Tip(text)
		default:
			md.Note(text)
		}
		md.PlainText("")
	}
}

func (f *markdownFormatter) writeTips(md *markdown.Markdown, tips []string) {
	if len(tips) > 0 {
		md.BulletList(tips...)
		md.PlainText("")
	}
	md.Note("Draft scores in the dashboard are simulated and not derived from the uploaded data.")
	md.PlainText("")
}
