package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar represents a progress bar component
type ProgressBar struct {
	Width     int
	Percent   int
	Label     string
	Simulated bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(width int) *ProgressBar {
	return &ProgressBar{Width: width}
}

// SetProgress updates the progress, clamped to [0,100]
func (p *ProgressBar) SetProgress(percent int) *ProgressBar {
	p.Percent = max(0, min(100, percent))
	return p
}

// SetLabel sets the progress label
func (p *ProgressBar) SetLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// SetSimulated marks the value as cosmetic rather than measured
func (p *ProgressBar) SetSimulated(simulated bool) *ProgressBar {
	p.Simulated = simulated
	return p
}

// Render renders the progress bar
func (p *ProgressBar) Render() string {
	// Define styles locally to avoid import cycle
	progressStyle := lipgloss.NewStyle().Foreground(progressColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)

	width := max(p.Width, 1)
	filledWidth := width * p.Percent / 100
	emptyWidth := width - filledWidth

	bar := progressStyle.Render(strings.Repeat("█", filledWidth)) +
		mutedStyle.Render(strings.Repeat("░", emptyWidth))

	status := fmt.Sprintf("%3d%%", p.Percent)
	if p.Simulated {
		status += mutedStyle.Render(" (simulated)")
	}

	result := fmt.Sprintf("[%s] %s", bar, status)
	if p.Label != "" {
		result = p.Label + "\n" + result
	}
	return result
}
