// Package compare aligns an expected passage with a recognized transcript.
//
// Alignment is positional: the i-th spoken token is judged against the i-th
// expected token only. A single inserted or dropped word therefore shifts every
// later position into a mismatch; no edit-distance realignment is attempted.
package compare

import (
	"strings"

	"github.com/verte-zerg/readaloud/internal/model"
)

// Tokenize lower-cases s and splits it on whitespace. Punctuation stays
// attached to its word.
func Tokenize(s string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(s)))
}

// Compare judges every expected word position against the spoken transcript.
// Spoken tokens past the end of the expected text are ignored. A sentinel
// transcript counts as zero spoken words and marks the result as a
// recognition failure.
func Compare(expected, spoken string) model.ComparisonResult {
	failed := IsSentinel(spoken)
	if failed {
		spoken = ""
	}
	exp := Tokenize(expected)
	got := Tokenize(spoken)

	result := model.ComparisonResult{
		Words:             make([]model.WordJudgment, 0, len(exp)),
		SpokenTotal:       len(got),
		ExpectedTotal:     len(exp),
		RecognitionFailed: failed,
	}
	for i, word := range exp {
		wj := model.WordJudgment{Index: i, Expected: word}
		switch {
		case i < len(got) && got[i] == word:
			wj.Judgment = model.Match
			wj.Spoken = got[i]
			result.Correct++
		case i < len(got):
			wj.Judgment = model.Mismatch
			wj.Spoken = got[i]
			wj.SoundsAlike = SoundsAlike(word, got[i])
		default:
			wj.Judgment = model.Missing
		}
		result.Words = append(result.Words, wj)
	}
	return result
}
