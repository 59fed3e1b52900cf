package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	// UI colors
	Border   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
	Progress lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given colors
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, info, border, muted, selected, progress [2]string) Theme {
	return Theme{
		Name:      name,
		Primary:   lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary: lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Accent:    lipgloss.AdaptiveColor{Light: accent[0], Dark: accent[1]},
		Success:   lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:   lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:     lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Info:      lipgloss.AdaptiveColor{Light: info[0], Dark: info[1]},
		Border:    lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Muted:     lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Selected:  lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
		Progress:  lipgloss.AdaptiveColor{Light: progress[0], Dark: progress[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#7C3AED", "#A855F7"},
		[2]string{"#059669", "#10B981"}, [2]string{"#D97706", "#F59E0B"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#0891B2", "#06B6D4"}, [2]string{"#D1D5DB", "#374151"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#DBEAFE", "#1E3A8A"}, [2]string{"#059669", "#10B981"})

	// DarkTheme pins the dark palette regardless of terminal background
	DarkTheme = buildTheme("dark",
		[2]string{"#60A5FA", "#60A5FA"}, [2]string{"#9CA3AF", "#9CA3AF"}, [2]string{"#C084FC", "#C084FC"},
		[2]string{"#34D399", "#34D399"}, [2]string{"#FBBF24", "#FBBF24"}, [2]string{"#F87171", "#F87171"},
		[2]string{"#22D3EE", "#22D3EE"}, [2]string{"#374151", "#374151"}, [2]string{"#9CA3AF", "#9CA3AF"},
		[2]string{"#1E3A8A", "#1E3A8A"}, [2]string{"#10B981", "#10B981"})

	// LightTheme pins the light palette regardless of terminal background
	LightTheme = buildTheme("light",
		[2]string{"#1E40AF", "#1E40AF"}, [2]string{"#4B5563", "#4B5563"}, [2]string{"#6D28D9", "#6D28D9"},
		[2]string{"#047857", "#047857"}, [2]string{"#B45309", "#B45309"}, [2]string{"#B91C1C", "#B91C1C"},
		[2]string{"#0E7490", "#0E7490"}, [2]string{"#D1D5DB", "#D1D5DB"}, [2]string{"#6B7280", "#6B7280"},
		[2]string{"#DBEAFE", "#DBEAFE"}, [2]string{"#047857", "#047857"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#0066CC", "#4499FF"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#CCCCCC", "#333333"}, [2]string{"#006600", "#00FF00"})
)

// Current active theme
var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default", "":
		SetTheme(&DefaultTheme)
	case "dark":
		SetTheme(&DarkTheme)
	case "light":
		SetTheme(&LightTheme)
	case "high-contrast":
		SetTheme(&HighContrastTheme)
	default:
		return false
	}
	return true
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "dark", "light", "high-contrast"}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title     lipgloss.Style
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Muted     lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Box       lipgloss.Style
	Modal     lipgloss.Style
	TabActive lipgloss.Style
	Tab       lipgloss.Style
	Disabled  lipgloss.Style
	Enabled   lipgloss.Style
}

// GetStyles builds the styles for the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subheader: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Error).
			Padding(1, 3),

		TabActive: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Padding(0, 1),

		Disabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Faint(true),

		Enabled: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),
	}
}
