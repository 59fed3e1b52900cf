package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/yildizm/scrollmark/internal/metrics"
)

// csvFormatter flattens the headline figures into domain,metric,value rows
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(result *metrics.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no analysis result to format")
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := writer.Write([]string{"Domain", "Metric", "Value"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, d := range metrics.Domains {
		for _, row := range headlines(result, d) {
			if err := writer.Write([]string{string(d), row.Label, row.Value}); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	// summary cards carry trend data the headline rows leave out
	for _, card := range result.Engagement.MetricsSummary {
		record := []string{string(metrics.DomainEngagement), card.Title, card.Value.String() + " " + card.Change}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}
