package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Section represents a titled block of lines inside a panel
type Section struct {
	Title   string
	Content []string
	Style   string // "info", "warning", "error", "success"
}

// NewSection creates a new section
func NewSection(title, style string) *Section {
	return &Section{Title: title, Style: style}
}

// AddLine adds a line to the section
func (s *Section) AddLine(line string) *Section {
	s.Content = append(s.Content, line)
	return s
}

// Render renders the section
func (s *Section) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(statusColor(s.Style)).Bold(true)
	if s.Style == "" {
		titleStyle = titleStyle.Foreground(primaryColor)
	}
	bodyStyle := lipgloss.NewStyle()

	lines := make([]string, 0, len(s.Content)+1)
	lines = append(lines, titleStyle.Render(s.Title))
	for _, line := range s.Content {
		lines = append(lines, bodyStyle.Render("  "+line))
	}
	return strings.Join(lines, "\n")
}
