package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/scrollmark/internal/metrics"
	"github.com/yildizm/scrollmark/internal/session"
	"github.com/yildizm/scrollmark/internal/virality"
)

// progressTickMsg advances the simulated bar for one attempt. Ticks whose
// attempt is no longer analyzing are dropped and not re-armed.
type progressTickMsg struct {
	attempt int
}

// analysisDoneMsg carries the outcome of one attempt
type analysisDoneMsg struct {
	attempt int
	result  *metrics.Result
	err     error
}

type predictionMsg struct {
	prediction virality.Prediction
	err        error
}

func progressTick(attempt int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return progressTickMsg{attempt: attempt}
	})
}

// analyzeCommand reads the file and makes the single backend call for attempt
func analyzeCommand(a session.Analyzer, readFile func(string) ([]byte, error), path string, attempt int) tea.Cmd {
	return func() tea.Msg {
		data, err := readFile(path)
		if err != nil {
			return analysisDoneMsg{attempt: attempt, err: fmt.Errorf("%w: %w", session.ErrReadFile, err)}
		}

		result, err := a.Analyze(context.Background(), string(data))
		return analysisDoneMsg{attempt: attempt, result: result, err: err}
	}
}

func predictCommand(p Predictor, content string) tea.Cmd {
	return func() tea.Msg {
		pred, err := p.Predict(context.Background(), content)
		return predictionMsg{prediction: pred, err: err}
	}
}
