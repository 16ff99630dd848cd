// Package stats contains reading metrics and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/readaloud/internal/model"
)

// Metrics computes words per minute and accuracy for a comparison.
// WPM counts every spoken token; accuracy is the share of expected words
// matched in place. Both fall back to 0 instead of dividing by zero.
func Metrics(result model.ComparisonResult, elapsedSeconds float64) model.ReadingMetrics {
	var m model.ReadingMetrics
	if elapsedSeconds > 0 {
		minutes := elapsedSeconds / 60.0
		m.WPM = float64(result.SpokenTotal) / minutes
	}
	if result.ExpectedTotal > 0 {
		m.Accuracy = float64(result.Correct) / float64(result.ExpectedTotal) * 100
	}
	return m
}

// WordMiss counts how often an expected word was not read correctly.
type WordMiss struct {
	Word  string `yaml:"word"`
	Count int    `yaml:"count"`
}

// TroubleWords returns the expected words judged mismatch or missing, most
// frequently missed first. Ties sort alphabetically. n <= 0 returns all.
func TroubleWords(result model.ComparisonResult, n int) []WordMiss {
	counts := map[string]int{}
	for _, w := range result.Words {
		if w.Judgment == model.Match {
			continue
		}
		counts[w.Expected]++
	}
	if len(counts) == 0 {
		return nil
	}
	items := make([]WordMiss, 0, len(counts))
	for word, count := range counts {
		items = append(items, WordMiss{Word: word, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Word < items[j].Word
		}
		return items[i].Count > items[j].Count
	})
	if n > 0 && n < len(items) {
		items = items[:n]
	}
	return items
}
