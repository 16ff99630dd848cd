package model

import "testing"

func TestJudgmentString(t *testing.T) {
	cases := map[Judgment]string{Match: "match", Mismatch: "mismatch", Missing: "missing", Judgment(9): "unknown"}
	for j, want := range cases {
		if got := j.String(); got != want {
			t.Fatalf("Judgment(%d).String(): expected %q, got %q", int(j), want, got)
		}
	}
}

func TestWordJudgmentDisplay(t *testing.T) {
	if got := (WordJudgment{Judgment: Mismatch, Expected: "cat", Spoken: "dog"}).Display(); got != "dog" {
		t.Fatalf("expected spoken token for mismatch, got %q", got)
	}
	if got := (WordJudgment{Judgment: Missing, Expected: "sat"}).Display(); got != "sat" {
		t.Fatalf("expected expected token for missing, got %q", got)
	}
}

func TestRounded(t *testing.T) {
	m := ReadingMetrics{WPM: 200.0 / 3, Accuracy: 0.125}.Rounded()
	if m.WPM != 66.67 || m.Accuracy != 0.13 {
		t.Fatalf("unexpected rounding: %+v", m)
	}
	if got := Round2(-1.234); got != -1.23 {
		t.Fatalf("expected -1.23, got %v", got)
	}
}
