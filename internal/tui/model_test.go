package tui

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/readaloud/internal/generator"
	"github.com/verte-zerg/readaloud/internal/level"
	"github.com/verte-zerg/readaloud/internal/model"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := model.Config{Level: "UKG", Minutes: 1, TroubleTop: 5}
	m, err := NewModel(cfg, level.Default(), generator.New(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var cmdType = reflect.TypeOf(tea.Cmd(nil))

// deliver runs cmd and feeds the resulting messages back into m, expanding
// batches and sequences. Stopwatch ticks are dropped so the clock never
// advances on its own.
func deliver(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if msg == nil {
		return
	}
	if _, ok := msg.(stopwatch.TickMsg); ok {
		return
	}
	if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
		for i := 0; i < v.Len(); i++ {
			deliver(m, v.Index(i).Interface().(tea.Cmd))
		}
		return
	}
	_, next := m.Update(msg)
	deliver(m, next)
}

func TestNewModelUnknownLevel(t *testing.T) {
	cfg := model.Config{Level: "Grade 9", Minutes: 1}
	if _, err := NewModel(cfg, level.Default(), generator.New(rand.New(rand.NewSource(1)))); !errors.Is(err, level.ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestNewModelGeneratesPassage(t *testing.T) {
	m := newTestModel(t)
	if m.passage.WordCount() < 20 {
		t.Fatalf("expected at least 20 words, got %d", m.passage.WordCount())
	}
	if m.phase != phaseRead {
		t.Fatalf("expected read phase, got %v", m.phase)
	}
}

func TestReadTranscriptResultFlow(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(key(" "))
	if !m.timing || cmd == nil {
		t.Fatalf("expected space to start timing")
	}
	m.Update(key(" "))
	if m.phase != phaseTranscript || m.timing {
		t.Fatalf("expected second space to stop timing and open transcript, got phase %v", m.phase)
	}
	if !m.input.Focused() {
		t.Fatalf("expected transcript input to be focused")
	}

	first := strings.Fields(strings.ToLower(m.passage.Text))[0]
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(first + " zzz")})
	if m.input.Value() != first+" zzz" {
		t.Fatalf("unexpected input value %q", m.input.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phaseResult {
		t.Fatalf("expected result phase, got %v", m.phase)
	}
	res := m.report.Result
	if res.ExpectedTotal != m.passage.WordCount() {
		t.Fatalf("expected %d expected words, got %d", m.passage.WordCount(), res.ExpectedTotal)
	}
	if res.SpokenTotal != 2 || res.Correct != 1 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	if m.input.Focused() {
		t.Fatalf("expected input to blur after submit")
	}

	m.Update(key("r"))
	if m.phase != phaseRead || m.input.Value() != "" || m.report.Result.ExpectedTotal != 0 {
		t.Fatalf("expected retry to reset the session")
	}
}

func TestSubmitComputesMetrics(t *testing.T) {
	m := newTestModel(t)
	m.submit(m.passage.Text, time.Minute)
	metrics := m.report.Metrics
	if metrics.Accuracy != 100 {
		t.Fatalf("expected 100%% accuracy, got %v", metrics.Accuracy)
	}
	if metrics.WPM != float64(m.passage.WordCount()) {
		t.Fatalf("expected WPM %d, got %v", m.passage.WordCount(), metrics.WPM)
	}
	if len(m.report.Trouble) != 0 {
		t.Fatalf("expected no trouble words, got %v", m.report.Trouble)
	}
}

func TestSubmitSentinelTranscript(t *testing.T) {
	m := newTestModel(t)
	m.submit("Could not understand audio", 10*time.Second)
	if !m.report.Result.RecognitionFailed {
		t.Fatalf("expected recognition failure")
	}
	if !strings.Contains(m.renderResult(0), "Recognition failed") {
		t.Fatalf("expected failure notice in result view")
	}
}

func TestEscReturnsToRead(t *testing.T) {
	m := newTestModel(t)
	m.Update(key(" "))
	m.Update(key(" "))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.phase != phaseRead || m.input.Focused() {
		t.Fatalf("expected esc to return to read phase")
	}
}

func TestNewPassageResets(t *testing.T) {
	m := newTestModel(t)
	m.submit("elephant", time.Second)
	m.Update(key("n"))
	if m.phase != phaseRead {
		t.Fatalf("expected read phase after new passage, got %v", m.phase)
	}
	if m.passage.WordCount() < 20 {
		t.Fatalf("expected a full passage, got %d words", m.passage.WordCount())
	}
}

func TestNewPassageStopsRunningStopwatch(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key(" "))
	deliver(m, cmd)
	if !m.watch.Running() {
		t.Fatalf("expected stopwatch to run after space")
	}

	_, cmd = m.Update(key("n"))
	deliver(m, cmd)
	if m.timing || m.watch.Running() {
		t.Fatalf("expected new passage to stop timing: timing=%v running=%v", m.timing, m.watch.Running())
	}
	if m.watch.Elapsed() != 0 {
		t.Fatalf("expected elapsed reset, got %v", m.watch.Elapsed())
	}
	if !strings.Contains(m.renderFooter(), "space: start reading") {
		t.Fatalf("expected start hint, got %s", m.renderFooter())
	}

	_, cmd = m.Update(key(" "))
	deliver(m, cmd)
	if !m.timing || !m.watch.Running() {
		t.Fatalf("expected space to start a fresh timing run")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	for _, p := range []phase{phaseRead, phaseTranscript, phaseResult} {
		m.phase = p
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if cmd == nil {
			t.Fatalf("expected quit command in phase %v", p)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg in phase %v", p)
		}
	}
}

func TestViewWithSize(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	view := m.View()
	if !strings.Contains(view, "UKG") {
		t.Fatalf("expected header in view")
	}
	if got := len(strings.Split(view, "\n")); got != 20 {
		t.Fatalf("expected view to fill 20 lines, got %d", got)
	}
	m.Update(key(" "))
	m.Update(key(" "))
	if got := len(strings.Split(m.View(), "\n")); got != 20 {
		t.Fatalf("expected transcript view to fill 20 lines, got %d", got)
	}
}
