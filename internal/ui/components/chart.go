package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SparklineChart represents a compact sparkline chart
type SparklineChart struct {
	Values []float64
	Width  int
	Min    float64
	Max    float64
}

// NewSparklineChart creates a new sparkline chart
func NewSparklineChart(values []float64, width int) *SparklineChart {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)

	for _, v := range values {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}

	return &SparklineChart{
		Values: values,
		Width:  width,
		Min:    minVal,
		Max:    maxVal,
	}
}

// Render renders the sparkline chart
func (s *SparklineChart) Render() string {
	if len(s.Values) == 0 || s.Width <= 0 {
		return ""
	}

	// Sparkline characters (from lowest to highest)
	chars := []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

	var result strings.Builder

	step := len(s.Values) / s.Width
	if step == 0 {
		step = 1
	}

	for i := 0; i < s.Width && i*step < len(s.Values); i++ {
		value := s.Values[i*step]

		normalized := 0.0
		if s.Max > s.Min {
			normalized = (value - s.Min) / (s.Max - s.Min)
		}

		charIndex := min(int(normalized*float64(len(chars)-1)), len(chars)-1)
		result.WriteString(chars[charIndex])
	}

	return lipgloss.NewStyle().Foreground(primaryColor).Render(result.String())
}

// BarChart draws labelled horizontal bars scaled to the largest value
type BarChart struct {
	Title  string
	Width  int
	Suffix string
	labels []string
	values []float64
}

// NewBarChart creates an empty bar chart
func NewBarChart(title string, width int) *BarChart {
	return &BarChart{Title: title, Width: width}
}

// Add appends one bar
func (c *BarChart) Add(label string, value float64) *BarChart {
	c.labels = append(c.labels, label)
	c.values = append(c.values, value)
	return c
}

// Len returns the number of bars
func (c *BarChart) Len() int { return len(c.values) }

// Render renders the chart, or a placeholder line when it has no bars
func (c *BarChart) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	barStyle := lipgloss.NewStyle().Foreground(progressColor)
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)

	lines := make([]string, 0, len(c.values)+1)
	if c.Title != "" {
		lines = append(lines, titleStyle.Render(c.Title))
	}
	if len(c.values) == 0 {
		return strings.Join(append(lines, mutedStyle.Render("No data available")), "\n")
	}

	labelWidth, valueWidth := 0, 0
	peak := 0.0
	formatted := make([]string, len(c.values))
	for i, v := range c.values {
		labelWidth = max(labelWidth, lipgloss.Width(c.labels[i]))
		formatted[i] = formatValue(v) + c.Suffix
		valueWidth = max(valueWidth, len(formatted[i]))
		peak = math.Max(peak, v)
	}

	barWidth := max(c.Width-labelWidth-valueWidth-4, 5)
	for i, v := range c.values {
		filled := 0
		if peak > 0 {
			filled = int(math.Round(v / peak * float64(barWidth)))
		}
		filled = max(0, min(barWidth, filled))

		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(c.labels[i]))
		bar := barStyle.Render(strings.Repeat("█", filled)) + strings.Repeat(" ", barWidth-filled)
		lines = append(lines, fmt.Sprintf("%s%s │%s %*s", c.labels[i], pad, bar, valueWidth, formatted[i]))
	}
	return strings.Join(lines, "\n")
}

// SplitBar renders a positive/neutral/negative percentage split on one line
func SplitBar(positive, neutral, negative, width int) string {
	total := positive + neutral + negative
	if total <= 0 || width <= 0 {
		return lipgloss.NewStyle().Foreground(mutedColor).Render("No data available")
	}

	pos := width * positive / total
	neu := width * neutral / total
	neg := width - pos - neu

	bar := lipgloss.NewStyle().Foreground(successColor).Render(strings.Repeat("█", pos)) +
		lipgloss.NewStyle().Foreground(warningColor).Render(strings.Repeat("█", neu)) +
		lipgloss.NewStyle().Foreground(errorColor).Render(strings.Repeat("█", neg))

	legend := fmt.Sprintf("%d%% positive · %d%% neutral · %d%% negative", positive, neutral, negative)
	return bar + "\n" + lipgloss.NewStyle().Foreground(mutedColor).Render(legend)
}

func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return FormatNumber(int(v))
	}
	return printer.Sprintf("%.1f", v)
}
