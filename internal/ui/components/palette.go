package components

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Components render with a fixed palette; the ui package owns themes and
// importing it here would create a cycle.
var (
	primaryColor  = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	mutedColor    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	successColor  = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	warningColor  = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	errorColor    = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
	progressColor = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
)

var printer = message.NewPrinter(language.English)

// FormatNumber formats large numbers with thousands separators
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// statusColor maps a status name to its color
func statusColor(status string) lipgloss.AdaptiveColor {
	switch status {
	case "success", "up", "positive":
		return successColor
	case "warning", "neutral":
		return warningColor
	case "error", "down", "negative":
		return errorColor
	case "info":
		return primaryColor
	}
	return mutedColor
}
