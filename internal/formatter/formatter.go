package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/scrollmark/internal/metrics"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(result *metrics.Result) ([]byte, error)
}

// Options controls terminal decoration
type Options struct {
	Color bool
	Emoji bool
}

// New returns the formatter registered for a format name
func New(format string, opts Options) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewText(opts.Color, opts.Emoji), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	}
	return nil, fmt.Errorf("unsupported output format: %s", format)
}
