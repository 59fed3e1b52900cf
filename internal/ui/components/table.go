package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders rows under a header with columns sized to their content
type Table struct {
	Title    string
	Headers  []string
	Rows     [][]string
	MaxCell  int
	Statuses []string // optional per-row status color
}

// NewTable creates a new table
func NewTable(title string, headers ...string) *Table {
	return &Table{
		Title:   title,
		Headers: headers,
		MaxCell: 40,
	}
}

// AddRow appends a row; missing cells render empty
func (t *Table) AddRow(cells ...string) *Table {
	t.Rows = append(t.Rows, cells)
	t.Statuses = append(t.Statuses, "")
	return t
}

// AddStatusRow appends a row colored by status
func (t *Table) AddStatusRow(status string, cells ...string) *Table {
	t.Rows = append(t.Rows, cells)
	t.Statuses = append(t.Statuses, status)
	return t
}

// Render renders the table
func (t *Table) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)
	bodyStyle := lipgloss.NewStyle()

	var lines []string
	if t.Title != "" {
		lines = append(lines, headerStyle.Render(t.Title))
	}
	if len(t.Rows) == 0 {
		return strings.Join(append(lines, mutedStyle.Render("No data available")), "\n")
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	cells := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells[r] = make([]string, len(t.Headers))
		for i := range t.Headers {
			if i < len(row) {
				cells[r][i] = Truncate(row[i], t.MaxCell)
			}
			widths[i] = max(widths[i], lipgloss.Width(cells[r][i]))
		}
	}

	lines = append(lines, mutedStyle.Render(joinCells(t.Headers, widths)))
	total := 0
	for _, w := range widths {
		total += w + 2
	}
	lines = append(lines, mutedStyle.Render(strings.Repeat("─", max(total-2, 1))))

	for r, row := range cells {
		style := bodyStyle
		if s := t.Statuses[r]; s != "" {
			style = style.Foreground(statusColor(s))
		}
		lines = append(lines, style.Render(joinCells(row, widths)))
	}
	return strings.Join(lines, "\n")
}

func joinCells(cells []string, widths []int) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(c)
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(c)))
		}
	}
	return b.String()
}

// Truncate shortens s to n runes, marking the cut with an ellipsis
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
