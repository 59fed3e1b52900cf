package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/scrollmark/internal/config"
	"github.com/yildizm/scrollmark/internal/emoji"
	"github.com/yildizm/scrollmark/internal/logger"
	"github.com/yildizm/scrollmark/internal/session"
	"github.com/yildizm/scrollmark/internal/ui/components"
	"github.com/yildizm/scrollmark/internal/ui/panels"
	"github.com/yildizm/scrollmark/internal/virality"
)

// Predictor scores a draft post. virality.Predictor satisfies it.
type Predictor interface {
	Predict(ctx context.Context, content string) (virality.Prediction, error)
}

// Options wires the dashboard to its collaborators
type Options struct {
	Analyzer  session.Analyzer
	Predictor Predictor
	Progress  config.ProgressConfig
	Endpoint  string
	StartDir  string
	File      string // preselected upload, may be empty
	ReadFile  func(string) ([]byte, error)
	Logger    *logger.Logger
}

// App is the dashboard model: an upload screen until a result is loaded,
// then seven tabbed panels.
type App struct {
	opts   Options
	log    *logger.Logger
	styles *Styles

	sess session.Session
	tab  Tab

	picker   filepicker.Model
	spinner  spinner.Model
	viewport viewport.Model
	draft    textarea.Model
	bar      *components.ProgressBar

	// modal blocks all other input until dismissed
	modal  string
	notice string

	editing    bool
	predicting bool
	prediction *virality.Prediction
	predictErr error

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewApp creates the dashboard model
func NewApp(opts Options) *App {
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}
	if opts.StartDir == "" {
		opts.StartDir = "."
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	picker := filepicker.New()
	picker.AllowedTypes = []string{".csv"}
	picker.CurrentDirectory = opts.StartDir

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot

	draft := textarea.New()
	draft.Placeholder = "Paste or type a draft post..."
	draft.ShowLineNumbers = false
	draft.CharLimit = 2200
	draft.SetHeight(4)
	draft.SetWidth(60)

	styles := GetStyles()
	spin.Style = lipgloss.NewStyle().Foreground(styles.Theme.Accent)

	m := &App{
		opts:     opts,
		log:      log.WithComponent("ui"),
		styles:   styles,
		picker:   picker,
		spinner:  spin,
		viewport: viewport.New(80, 20),
		draft:    draft,
		bar:      components.NewProgressBar(40).SetSimulated(true).SetLabel("Processing data..."),
	}

	if opts.File != "" {
		m.selectFile(opts.File)
	}
	return m
}

// Session returns the current upload session
func (m *App) Session() session.Session { return m.sess }

// Tab returns the selected dashboard tab
func (m *App) Tab() Tab { return m.tab }

// Modal returns the blocking notification text, empty when none is shown
func (m *App) Modal() string { return m.modal }

// CurrentView reports which screen is showing
func (m *App) CurrentView() View {
	if m.sess.Loaded() {
		return ViewDashboard
	}
	return ViewUpload
}

// Init initializes the model
func (m *App) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case progressTickMsg:
		return m.handleProgressTick(msg)
	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)
	case predictionMsg:
		return m.handlePrediction(msg)
	case spinner.TickMsg:
		if !m.sess.Analyzing() && !m.predicting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshDashboard()
		return m, cmd
	}

	// everything else belongs to the bubbles components (directory reads,
	// cursor blink)
	var cmds []tea.Cmd
	if m.CurrentView() == ViewUpload {
		cmds = append(cmds, m.updatePicker(msg))
	}
	if m.editing {
		var cmd tea.Cmd
		m.draft, cmd = m.draft.Update(msg)
		cmds = append(cmds, cmd)
		m.refreshDashboard()
	}
	return m, tea.Batch(cmds...)
}

func (m *App) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.viewport.Width = max(msg.Width-2, 20)
	m.viewport.Height = max(msg.Height-6, 5)
	m.draft.SetWidth(max(min(msg.Width-6, 80), 20))
	m.bar.Width = max(min(msg.Width-30, 50), 10)
	m.refreshDashboard()

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m.quit()
	}

	if m.modal != "" {
		if key == "enter" || key == "esc" {
			m.modal = ""
		}
		return m, nil
	}

	if m.editing {
		return m.handleDraftKey(msg)
	}

	if key == "q" {
		return m.quit()
	}

	if m.CurrentView() == ViewDashboard {
		return m.handleDashboardKey(msg)
	}
	return m.handleUploadKey(msg)
}

func (m *App) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *App) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "a" {
		return m, m.startAnalysis()
	}
	if m.sess.Analyzing() {
		return m, nil
	}
	return m, m.updatePicker(msg)
}

func (m *App) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "tab", "right", "l":
		m.setTab(m.tab.Next())
	case "shift+tab", "left", "h":
		m.setTab(m.tab.Prev())
	case "1", "2", "3", "4", "5", "6", "7":
		m.setTab(Tab(key[0] - '1'))
	case "ctrl+r":
		m.reset()
	case "e":
		if m.tab == TabVirality {
			m.editing = true
			m.refreshDashboard()
			return m, m.draft.Focus()
		}
	case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *App) handleDraftKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.draft.Blur()
		m.refreshDashboard()
		return m, nil
	case "ctrl+s":
		return m, m.startPrediction()
	}

	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	m.refreshDashboard()
	return m, cmd
}

// updatePicker forwards msg to the file picker and applies any selection
func (m *App) updatePicker(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.selectFile(path)
	} else if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.notice = fmt.Sprintf("%s is not a .csv file", path)
	}
	return cmd
}

func (m *App) selectFile(path string) {
	next, err := m.sess.Select(path)
	if err != nil {
		m.log.Debug("selection ignored: %v", err)
		return
	}
	m.sess = next
	m.notice = ""
	m.log.InfoWithFields("file selected", []logger.Field{logger.Session(next.ID), logger.F("file", next.File.Name)})
}

// startAnalysis begins one attempt. It does nothing while the analyze
// action is disabled.
func (m *App) startAnalysis() tea.Cmd {
	if !m.sess.CanAnalyze() {
		if m.sess.File == nil {
			m.notice = "Select a CSV file first"
		}
		return nil
	}

	next, err := m.sess.Start()
	if err != nil {
		return nil
	}
	m.sess = next
	m.notice = ""
	m.log.InfoWithFields("analysis started", []logger.Field{logger.Session(next.ID), logger.Attempt(next.Attempt)})

	return tea.Batch(
		progressTick(next.Attempt, m.opts.Progress.Interval),
		analyzeCommand(m.opts.Analyzer, m.opts.ReadFile, next.File.Path, next.Attempt),
		m.spinner.Tick,
	)
}

func (m *App) handleProgressTick(msg progressTickMsg) (tea.Model, tea.Cmd) {
	next, more := m.sess.Advance(msg.attempt, m.opts.Progress.Step, m.opts.Progress.Ceiling)
	m.sess = next
	if !more {
		return m, nil
	}
	return m, progressTick(msg.attempt, m.opts.Progress.Interval)
}

func (m *App) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	if msg.attempt != m.sess.Attempt || !m.sess.Analyzing() {
		return m, nil
	}

	fields := []logger.Field{logger.Session(m.sess.ID), logger.Attempt(msg.attempt)}
	if msg.err == nil && msg.result == nil {
		msg.err = session.ErrNoResult
	}
	if msg.err != nil {
		m.sess = m.sess.Fail(msg.attempt, msg.err)
		m.modal = fmt.Sprintf("Failed to analyze data. Ensure the analysis service is running at %s.", m.opts.Endpoint)
		m.log.ErrorWithFields("analysis failed", append(fields, logger.Error(msg.err)))
		return m, nil
	}

	m.sess = m.sess.Succeed(msg.attempt, msg.result)
	m.tab = TabEngagement
	m.refreshDashboard()
	m.viewport.GotoTop()
	m.log.InfoWithFields("analysis complete", fields)
	return m, nil
}

func (m *App) startPrediction() tea.Cmd {
	if m.predicting || m.opts.Predictor == nil {
		return nil
	}
	content := m.draft.Value()
	if strings.TrimSpace(content) == "" {
		m.predictErr = virality.ErrEmptyContent
		m.prediction = nil
		m.refreshDashboard()
		return nil
	}
	m.predicting = true
	m.predictErr = nil
	m.prediction = nil
	m.refreshDashboard()
	return tea.Batch(predictCommand(m.opts.Predictor, content), m.spinner.Tick)
}

func (m *App) handlePrediction(msg predictionMsg) (tea.Model, tea.Cmd) {
	m.predicting = false
	if msg.err != nil {
		m.predictErr = msg.err
	} else {
		pred := msg.prediction
		m.prediction = &pred
	}
	m.refreshDashboard()
	return m, nil
}

func (m *App) setTab(t Tab) {
	if t == m.tab {
		return
	}
	m.tab = t
	m.refreshDashboard()
	m.viewport.GotoTop()
}

// reset starts a new upload. The result and tab are discarded.
func (m *App) reset() {
	next, err := m.sess.Reset()
	if err != nil {
		return
	}
	m.sess = next
	m.tab = TabEngagement
	m.prediction = nil
	m.predictErr = nil
	m.draft.Reset()
	m.notice = ""
	m.log.Info("session reset")
}

// refreshDashboard re-renders the active panel into the viewport
func (m *App) refreshDashboard() {
	if !m.sess.Loaded() {
		return
	}
	content := panels.Render(m.tab.Domain(), m.sess.Result, m.viewport.Width)
	if m.tab == TabVirality {
		content += "\n\n" + m.renderPredictor()
	}
	m.viewport.SetContent(content)
}

// View renders the model
func (m *App) View() string {
	if !m.ready {
		return "Initializing Scrollmark..."
	}
	if m.quitting {
		if emoji.IsEmojiDisabled() {
			return "Thanks for using Scrollmark!\n"
		}
		return "Thanks for using Scrollmark! 👋\n"
	}
	if m.modal != "" {
		return m.renderModal()
	}
	if m.CurrentView() == ViewDashboard {
		return m.renderDashboard()
	}
	return m.renderUpload()
}

func (m *App) renderUpload() string {
	s := m.styles

	title := s.Title.Render(emoji.GetEmoji("statistics") + " Scrollmark")
	subtitle := s.Muted.Render("Upload a CSV export of your posts and comments to analyze it.")

	file := s.Muted.Render("No file selected")
	if m.sess.File != nil {
		file = emoji.GetEmoji("upload") + " " + s.Header.Render(m.sess.File.Name)
	}

	blocks := []string{title, subtitle, "", file}

	if m.sess.Analyzing() || m.sess.Status == session.StatusSucceeded {
		m.bar.SetProgress(m.sess.Progress)
		blocks = append(blocks, "", m.spinner.View()+" "+m.bar.Render())
	} else {
		blocks = append(blocks, "", m.picker.View())
	}

	action := s.Disabled.Render("[a] Analyze")
	if m.sess.CanAnalyze() {
		action = s.Enabled.Render("[a] Analyze")
	}
	if m.sess.Status == session.StatusFailed {
		action += s.Muted.Render("  (last attempt failed, press a to retry)")
	}
	blocks = append(blocks, "", action)

	if m.notice != "" {
		blocks = append(blocks, s.Warning.Render(m.notice))
	}

	blocks = append(blocks, "", s.Muted.Render("↑↓ navigate • enter select • a analyze • q quit"))
	return s.Box.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func (m *App) renderDashboard() string {
	s := m.styles

	header := s.Title.Render(emoji.GetEmoji("statistics") + " Scrollmark")
	if m.sess.File != nil {
		header += s.Muted.Render(" " + m.sess.File.Name)
	}

	help := "tab/←→ switch • 1-7 jump • ↑↓ scroll • ctrl+r new upload • q quit"
	if m.tab == TabVirality {
		help = "e edit draft • ctrl+s predict • esc stop editing • " + help
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.renderTabs(),
		m.viewport.View(),
		s.Muted.Render(help),
	)
}

func (m *App) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := TabEngagement; t < tabCount; t++ {
		label := fmt.Sprintf("%d %s %s", t+1, emoji.ForDomain(t.Domain()), t.Title())
		if t == m.tab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *App) renderPredictor() string {
	s := m.styles
	lines := []string{
		s.Header.Render(emoji.GetEmoji("rocket") + " New Post Virality Predictor") + s.Muted.Render(" (simulated)"),
		m.draft.View(),
	}

	switch {
	case m.predicting:
		lines = append(lines, m.spinner.View()+" Analyzing draft...")
	case m.predictErr != nil:
		lines = append(lines, s.Error.Render(m.predictErr.Error()))
	case m.prediction != nil:
		score := fmt.Sprintf("Predicted virality score: %d/100", m.prediction.Score)
		lines = append(lines, s.Success.Render(score)+s.Muted.Render(" (simulated, not derived from your data)"))
	case !m.editing:
		lines = append(lines, s.Muted.Render("Press e to write a draft"))
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderModal() string {
	s := m.styles
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Error.Render(emoji.GetEmoji("error")+" Analysis failed"),
		"",
		lipgloss.NewStyle().Width(min(max(m.width-12, 20), 60)).Render(m.modal),
		"",
		s.Muted.Render("Press enter to dismiss"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s.Modal.Render(content))
}

// Run starts the dashboard on the terminal
func Run(opts Options) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
