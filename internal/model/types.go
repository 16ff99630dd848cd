// Package model defines shared data structures.
package model

import (
	"math"
	"strings"
)

// Config defines practice settings.
type Config struct {
	Level      string
	Minutes    float64
	LevelsFile string
	UseBank    bool
	TroubleTop int
}

// Passage is a generated reading text for one session.
type Passage struct {
	Level     string
	Text      string
	Sentences []string
}

// WordCount returns the number of whitespace-separated words in the passage.
func (p Passage) WordCount() int {
	return len(strings.Fields(p.Text))
}

// Judgment classifies one expected word position.
type Judgment int

const (
	// Match means the spoken token equals the expected token at this position.
	Match Judgment = iota
	// Mismatch means a different token was spoken at this position.
	Mismatch
	// Missing means the transcript ended before this position.
	Missing
)

// String returns the lower-case judgment name used in reports.
func (j Judgment) String() string {
	switch j {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	case Missing:
		return "missing"
	default:
		return "unknown"
	}
}

// WordJudgment is the outcome for a single expected word position.
type WordJudgment struct {
	Index    int
	Judgment Judgment
	Expected string
	Spoken   string

	// SoundsAlike marks a mismatch whose spoken token is a phonetic near-miss.
	SoundsAlike bool
}

// Display returns the token shown for this position.
func (w WordJudgment) Display() string {
	if w.Judgment == Missing {
		return w.Expected
	}
	return w.Spoken
}

// ComparisonResult holds positional judgments and aggregate counts.
type ComparisonResult struct {
	Words             []WordJudgment
	Correct           int
	SpokenTotal       int
	ExpectedTotal     int
	RecognitionFailed bool
}

// SoundsAlikeCount returns the number of mismatches flagged as near-misses.
func (r ComparisonResult) SoundsAlikeCount() int {
	n := 0
	for _, w := range r.Words {
		if w.Judgment == Mismatch && w.SoundsAlike {
			n++
		}
	}
	return n
}

// ReadingMetrics holds reading speed and accuracy at full precision.
type ReadingMetrics struct {
	WPM      float64
	Accuracy float64
}

// Rounded returns the metrics rounded to two decimals for display.
func (m ReadingMetrics) Rounded() ReadingMetrics {
	return ReadingMetrics{
		WPM:      Round2(m.WPM),
		Accuracy: Round2(m.Accuracy),
	}
}

// Round2 rounds v half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
