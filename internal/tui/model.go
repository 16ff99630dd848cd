// Package tui provides the Bubble Tea reading-practice interface.
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/stopwatch"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/readaloud/internal/generator"
	"github.com/verte-zerg/readaloud/internal/level"
	"github.com/verte-zerg/readaloud/internal/model"
	"github.com/verte-zerg/readaloud/internal/render"
	"github.com/verte-zerg/readaloud/internal/stats"
)

type phase int

const (
	phaseRead phase = iota
	phaseTranscript
	phaseResult
)

const tickInterval = 100 * time.Millisecond

var (
	passageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	metricStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea reading UI.
type Model struct {
	config model.Config
	table  level.Table
	gen    *generator.Generator

	width  int
	height int

	passage model.Passage
	phase   phase
	timing  bool

	viewport viewport.Model
	watch    stopwatch.Model
	input    textinput.Model

	report stats.Report
	errMsg string
}

// NewModel constructs a reading TUI model and generates the first passage.
func NewModel(cfg model.Config, table level.Table, gen *generator.Generator) (*Model, error) {
	input := textinput.New()
	input.Prompt = "Transcript: "
	input.Placeholder = "paste or type what the recognizer heard"
	input.CharLimit = 0

	m := &Model{
		config:   cfg,
		table:    table,
		gen:      gen,
		viewport: viewport.New(0, 0),
		watch:    stopwatch.NewWithInterval(tickInterval),
		input:    input,
	}
	passage, err := gen.Generate(table, cfg.Level, cfg.Minutes)
	if err != nil {
		return nil, err
	}
	m.passage = passage
	m.renderContent()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.phase {
		case phaseTranscript:
			return m.updateTranscript(msg)
		case phaseResult:
			return m.updateResult(msg)
		default:
			return m.updateRead(msg)
		}
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.watch, cmd = m.watch.Update(msg)
	cmds = append(cmds, cmd)
	if m.phase == phaseTranscript {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateRead(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if !m.timing {
			m.timing = true
			return m, m.watch.Start()
		}
		m.timing = false
		m.phase = phaseTranscript
		m.updateLayout()
		return m, tea.Batch(m.watch.Stop(), m.input.Focus())
	case "n":
		return m, m.newPassage()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, m.scroll(msg)
}

func (m *Model) updateTranscript(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.submit(m.input.Value(), m.watch.Elapsed())
		return m, nil
	case tea.KeyEsc:
		m.input.Blur()
		m.phase = phaseRead
		m.updateLayout()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m, m.retry()
	case "n":
		return m, m.newPassage()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, m.scroll(msg)
}

func (m *Model) scroll(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// submit compares the transcript with the passage and switches to the result view.
func (m *Model) submit(transcript string, elapsed time.Duration) {
	m.input.Blur()
	m.report = stats.BuildReport(m.passage.Text, transcript, elapsed.Seconds(), m.config.TroubleTop)
	m.phase = phaseResult
	m.updateLayout()
}

// retry returns to the read phase with a stopped, zeroed stopwatch.
func (m *Model) retry() tea.Cmd {
	cmd := m.watch.Reset()
	if m.timing {
		cmd = tea.Batch(m.watch.Stop(), cmd)
	}
	m.errMsg = ""
	m.phase = phaseRead
	m.timing = false
	m.report = stats.Report{}
	m.input.Reset()
	m.updateLayout()
	return cmd
}

func (m *Model) newPassage() tea.Cmd {
	passage, err := m.gen.Generate(m.table, m.config.Level, m.config.Minutes)
	if err != nil {
		m.errMsg = err.Error()
		logErrf("failed to generate passage: %v\n", err)
		return nil
	}
	m.passage = passage
	cmd := m.retry()
	m.viewport.GotoTop()
	return cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.viewport.View()
	}
	header := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderHeader())
	content := lipgloss.NewStyle().Width(m.contentWidth()).Render(m.viewport.View())
	body := lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, content)
	lines := []string{header, body}
	if m.phase == phaseTranscript {
		lines = append(lines, lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.input.View()))
	}
	lines = append(lines, lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter()))
	return strings.Join(lines, "\n")
}

func (m *Model) contentWidth() int {
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) bodyHeight() int {
	h := m.height - 2
	if m.phase == phaseTranscript {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) updateLayout() {
	if m.width > 0 && m.height > 0 {
		m.viewport.Width = m.contentWidth()
		m.viewport.Height = m.bodyHeight()
		m.input.Width = maxInt(10, m.contentWidth()-lipgloss.Width(m.input.Prompt))
	}
	m.renderContent()
}

func (m *Model) renderContent() {
	width := m.viewport.Width
	if m.phase == phaseResult {
		m.viewport.SetContent(m.renderResult(width))
		return
	}
	m.viewport.SetContent(passageStyle.Render(render.Passage(m.passage.Text, width)))
}

func (m *Model) renderResult(width int) string {
	r := m.report
	rounded := r.Metrics.Rounded()
	var b strings.Builder
	if r.Result.RecognitionFailed {
		b.WriteString(errorStyle.Render("Recognition failed: transcript counted as no speech."))
		b.WriteString("\n\n")
	}
	b.WriteString(render.Words(r.Result, width))
	b.WriteString("\n\n")
	b.WriteString(metricStyle.Render(fmt.Sprintf("%.2f WPM · %.2f%% accuracy", rounded.WPM, rounded.Accuracy)))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("%d/%d correct · %d spoken · %s", r.Result.Correct, r.Result.ExpectedTotal, r.Result.SpokenTotal, formatElapsed(time.Duration(r.ElapsedSeconds*float64(time.Second))))))
	if n := r.Result.SoundsAlikeCount(); n > 0 {
		b.WriteString("\n")
		b.WriteString(footerStyle.Render(fmt.Sprintf("Near misses: %d (underlined)", n)))
	}
	if len(r.Trouble) > 0 {
		words := make([]string, 0, len(r.Trouble))
		for _, miss := range r.Trouble {
			words = append(words, miss.Word)
		}
		b.WriteString("\n")
		b.WriteString(footerStyle.Render("Practice: " + strings.Join(words, ", ")))
	}
	return b.String()
}

func (m *Model) renderHeader() string {
	return headerStyle.Render(fmt.Sprintf("%s · %s min · %d words", m.passage.Level, formatMinutes(m.config.Minutes), m.passage.WordCount()))
}

func (m *Model) renderFooter() string {
	segments := []string{"Elapsed " + formatElapsed(m.watch.Elapsed())}
	switch m.phase {
	case phaseRead:
		if m.timing {
			segments = append(segments, "space: stop")
		} else {
			segments = append(segments, "space: start reading")
		}
		segments = append(segments, "n: new passage", "q: quit")
	case phaseTranscript:
		segments = append(segments, "enter: compare", "esc: back")
	case phaseResult:
		segments = append(segments, "r: retry", "n: new passage", "q: quit")
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if m.errMsg != "" {
		footer += "  " + errorStyle.Render(m.errMsg)
	}
	return footer
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := (d % time.Minute).Seconds()
	return fmt.Sprintf("%d:%04.1f", minutes, seconds)
}

func formatMinutes(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
