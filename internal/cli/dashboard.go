package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/yildizm/scrollmark/internal/backend"
	"github.com/yildizm/scrollmark/internal/config"
	"github.com/yildizm/scrollmark/internal/ui"
	"github.com/yildizm/scrollmark/internal/virality"
)

func newDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard [file.csv]",
		Short: "Open the interactive dashboard",
		Long: `Open the terminal dashboard. Pick a CSV export, press a to analyze it and
browse the results tab by tab. A file given on the command line is
preselected.

Logs are written to the cache directory so they never disturb the screen;
pass --verbose to include debug lines.

Examples:
  scrollmark dashboard
  scrollmark dashboard exports/posts.csv
  scrollmark dashboard --endpoint http://10.0.0.5:5000/analyze`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	var file string
	if len(args) == 1 {
		path, err := validateCSVPath(args[0])
		if err != nil {
			return err
		}
		file = path
	}

	if !ui.SetThemeByName(cfg.UI.Theme) {
		return fmt.Errorf("unknown theme %q (available: %v)", cfg.UI.Theme, ui.GetAvailableThemes())
	}
	if !useColor() || ui.IsColorDisabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	log := newLogger()
	logFile, err := openTUILog()
	if err != nil {
		return err
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()
	log.SetOutput(logFile)

	client, err := backend.New(cfg.Backend, log)
	if err != nil {
		return err
	}

	return ui.Run(ui.Options{
		Analyzer:  client,
		Predictor: virality.New(cfg.Virality),
		Progress:  cfg.Progress,
		Endpoint:  client.Endpoint(),
		StartDir:  cfg.UI.StartDir,
		File:      file,
		Logger:    log,
	})
}

// openTUILog redirects bubbletea's own logging and returns the file our
// logger should share.
func openTUILog() (*os.File, error) {
	dir := config.CacheDir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	f, err := tea.LogToFile(filepath.Join(dir, "dashboard.log"), "scrollmark")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
