package ui

import (
	"github.com/yildizm/scrollmark/internal/metrics"
)

// View represents the two top-level screens. Which one shows is derived
// from whether the session holds a result.
type View int

const (
	ViewUpload View = iota
	ViewDashboard
)

// Tab selects one of the seven dashboard panels
type Tab int

const (
	TabEngagement Tab = iota
	TabBuyerIntent
	TabAdvocates
	TabPublishing
	TabDiagnostics
	TabSentiment
	TabVirality

	tabCount
)

// Domain returns the metric domain shown on the tab
func (t Tab) Domain() metrics.Domain {
	return metrics.Domains[t]
}

// Title returns the tab label
func (t Tab) Title() string {
	return t.Domain().Title()
}

// Next cycles forward, wrapping after the last tab
func (t Tab) Next() Tab {
	return (t + 1) % tabCount
}

// Prev cycles backward, wrapping before the first tab
func (t Tab) Prev() Tab {
	return (t + tabCount - 1) % tabCount
}
