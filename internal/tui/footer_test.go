package tui

import (
	"strings"
	"testing"
	"time"
)

func TestRenderFooterFormats(t *testing.T) {
	m := newTestModel(t)
	out := m.renderFooter()
	if !containsAll(out, []string{"Elapsed 0:00.0", "space: start reading", "n: new passage"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
	m.timing = true
	if !strings.Contains(m.renderFooter(), "space: stop") {
		t.Fatalf("expected stop hint while timing: %s", m.renderFooter())
	}
	m.phase = phaseResult
	if !containsAll(m.renderFooter(), []string{"r: retry", "q: quit"}) {
		t.Fatalf("expected result hints: %s", m.renderFooter())
	}
}

func TestRenderHeader(t *testing.T) {
	m := newTestModel(t)
	out := m.renderHeader()
	if !containsAll(out, []string{"UKG", "1 min", "words"}) {
		t.Fatalf("header missing expected segments: %s", out)
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := map[time.Duration]string{
		0:                           "0:00.0",
		12300 * time.Millisecond:    "0:12.3",
		time.Minute + 5*time.Second: "1:05.0",
		-time.Second:                "0:00.0",
	}
	for d, want := range cases {
		if got := formatElapsed(d); got != want {
			t.Fatalf("formatElapsed(%v): expected %q, got %q", d, want, got)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := map[float64]string{1: "1", 2.5: "2.5", 10: "10", 0.25: "0.25"}
	for v, want := range cases {
		if got := formatMinutes(v); got != want {
			t.Fatalf("formatMinutes(%v): expected %q, got %q", v, want, got)
		}
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
