package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/yildizm/scrollmark/internal/backend"
	"github.com/yildizm/scrollmark/internal/config"
	"github.com/yildizm/scrollmark/internal/formatter"
	"github.com/yildizm/scrollmark/internal/logger"
	"github.com/yildizm/scrollmark/internal/metrics"
	"github.com/yildizm/scrollmark/internal/session"
	"github.com/yildizm/scrollmark/internal/ui/components"
)

var analyzeOutputFile string

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file.csv>",
		Short: "Analyze a CSV export without the dashboard",
		Long: `Send a CSV export to the analysis service and print the result.

Progress is written to stderr, the report to stdout (or --output-file).
The process exits non-zero if the analysis service cannot be reached or
answers with an error.

Examples:
  scrollmark analyze posts.csv
  scrollmark analyze -o json posts.csv
  scrollmark analyze -o markdown --output-file report.md posts.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	path, err := validateCSVPath(args[0])
	if err != nil {
		return err
	}

	// resolve the formatter first so a bad --output fails before the request
	f, err := formatter.New(cfg.Output.DefaultFormat, formatter.Options{
		Color: useColor() && analyzeOutputFile == "",
		Emoji: !noEmoji,
	})
	if err != nil {
		return err
	}

	var progress io.Writer
	if cfg.UI.ShowProgress {
		progress = cmd.ErrOrStderr()
	}

	result, err := runHeadless(cmd.Context(), cfg, path, progress, newLogger())
	if err != nil {
		return err
	}

	output, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return handleOutputDestination(cmd.OutOrStdout(), output, analyzeOutputFile)
}

// runHeadless runs one upload session for path to completion. Progress
// updates are drawn on progress when it is non-nil.
func runHeadless(ctx context.Context, cfg *config.Config, path string, progress io.Writer, log *logger.Logger) (*metrics.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := backend.New(cfg.Backend, log)
	if err != nil {
		return nil, err
	}
	ctrl := session.NewController(client, session.NewSimulator(cfg.Progress), session.WithLogger(log))
	if _, err := ctrl.Select(path); err != nil {
		return nil, err
	}

	stop := func() {}
	if progress != nil {
		stop = drawProgress(ctrl, progress)
	}
	final, err := ctrl.Analyze(ctx)
	stop()

	if err != nil {
		return nil, fmt.Errorf("failed to analyze data, ensure the analysis service is running at %s: %w", cfg.Backend.Endpoint, err)
	}
	return final.Result, nil
}

// drawProgress redraws a single progress line on w for every transition
// until the returned function is called.
func drawProgress(ctrl *session.Controller, w io.Writer) func() {
	updates, unsubscribe := ctrl.Subscribe()
	bar := components.NewProgressBar(30).SetLabel("Processing data...").SetSimulated(true)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case s := <-updates:
				if s.Analyzing() {
					fmt.Fprintf(w, "\r%s", bar.SetProgress(s.Progress).Render())
				}
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
		unsubscribe()
		// fast services can answer before the first tick was drawn
		if final := ctrl.Snapshot(); final.Loaded() {
			fmt.Fprintf(w, "\r%s", bar.SetProgress(final.Progress).Render())
		}
		fmt.Fprintln(w)
	}
}

// handleOutputDestination writes output to file or stdout
func handleOutputDestination(stdout io.Writer, output []byte, outputFile string) error {
	if outputFile == "" {
		_, err := stdout.Write(output)
		return err
	}

	if err := validateOutputFilePath(outputFile); err != nil {
		return fmt.Errorf("invalid output file path: %w", err)
	}
	if err := writeOutputBytesToFile(output, outputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", outputFile)
	}
	return nil
}

// validateCSVPath checks that path names an existing .csv file
func validateCSVPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	if !strings.EqualFold(filepath.Ext(cleanPath), ".csv") {
		return "", fmt.Errorf("only .csv files can be analyzed: %s", cleanPath)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return "", fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return cleanPath, nil
}

func validateOutputFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("path is a directory: %s", path)
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	// #nosec G304 - user-requested output path
	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// Sync to ensure data is written
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
