package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yildizm/scrollmark/internal/metrics"
)

// jsonFormatter writes the analysis response as indented JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// Format keeps the response exactly as the service sent it so that fields
// the dashboard does not model survive a round trip through the CLI.
func (f *jsonFormatter) Format(result *metrics.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no analysis result to format")
	}

	raw := result.Raw()
	if len(raw) == 0 {
		return json.MarshalIndent(result, "", "  ")
	}

	var b bytes.Buffer
	if err := json.Indent(&b, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent JSON: %w", err)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
