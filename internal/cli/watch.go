package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yildizm/scrollmark/internal/formatter"
	"github.com/yildizm/scrollmark/internal/logger"
	"github.com/yildizm/scrollmark/internal/metrics"
)

var watchDebounce time.Duration

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file.csv>",
		Short: "Re-analyze a CSV export whenever it changes",
		Long: `Watch a CSV export and run a fresh analysis each time it is written.

Bursts of writes are coalesced; once the file has been quiet for the
debounce interval a new session starts and its summary is printed.
Press Ctrl+C to stop watching.

Examples:
  scrollmark watch exports/posts.csv
  scrollmark watch --debounce 2s exports/posts.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "quiet period before re-analyzing")

	return cmd
}

// analyzeFunc runs one headless session; tests replace it
type analyzeFunc func(ctx context.Context, path string) (*metrics.Result, error)

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	path, err := validateCSVPath(args[0])
	if err != nil {
		return err
	}

	f, err := formatter.New(cfg.Output.DefaultFormat, formatter.Options{Color: useColor(), Emoji: !noEmoji})
	if err != nil {
		return err
	}

	watcher, err := createWatcher(path)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger()
	analyze := func(ctx context.Context, p string) (*metrics.Result, error) {
		return runHeadless(ctx, cfg, p, nil, log)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", path)
	return runWatchLoop(ctx, watcher.Events, watcher.Errors, watchLoop{
		path:     path,
		debounce: watchDebounce,
		analyze:  analyze,
		format:   f,
		out:      cmd.OutOrStdout(),
		log:      log.WithComponent("watch"),
	})
}

type watchLoop struct {
	path     string
	debounce time.Duration
	analyze  analyzeFunc
	format   formatter.Formatter
	out      io.Writer
	log      *logger.Logger
}

// runWatchLoop re-analyzes after each debounced burst of writes. Failures
// are reported and the loop keeps going; it ends when ctx is done.
func runWatchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, w watchLoop) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	runs := 0
	for {
		select {
		case <-ctx.Done():
			w.log.Info("stopping watch after %d runs", runs)
			return nil

		case event, ok := <-events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !isWriteEvent(event, w.path) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-errs:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)

		case <-timer.C:
			runs++
			w.runOnce(ctx, runs)
		}
	}
}

func (w watchLoop) runOnce(ctx context.Context, run int) {
	start := time.Now()
	result, err := w.analyze(ctx, w.path)
	if err != nil {
		fmt.Fprintf(w.out, "[%s] run %d: %v\n", start.Format("15:04:05"), run, err)
		return
	}

	output, err := w.format.Format(result)
	if err != nil {
		w.log.Error("failed to format result: %v", err)
		return
	}
	fmt.Fprintf(w.out, "[%s] run %d completed in %s\n", start.Format("15:04:05"), run, time.Since(start).Round(time.Millisecond))
	_, _ = w.out.Write(output)
}

// isWriteEvent reports whether event modified the watched file. Editors
// that save by rename show up as Create on the same name.
func isWriteEvent(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// createWatcher watches the file's directory so that atomic saves
// (write to temp, rename over) are still seen.
func createWatcher(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}
