package compare

import (
	"testing"

	"github.com/verte-zerg/readaloud/internal/model"
)

func TestTokenizeKeepsPunctuation(t *testing.T) {
	got := Tokenize("  Red, blue,\tGREEN.\n")
	want := []string{"red,", "blue,", "green."}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestCompareIdentical(t *testing.T) {
	text := "Elephant has a trunk. Fish swims in water."
	result := Compare(text, text)
	if result.Correct != result.ExpectedTotal || result.ExpectedTotal != 8 {
		t.Fatalf("expected all 8 words correct, got %d/%d", result.Correct, result.ExpectedTotal)
	}
	for _, w := range result.Words {
		if w.Judgment != model.Match {
			t.Fatalf("expected match at %d, got %s", w.Index, w.Judgment)
		}
	}
}

func TestCompareCaseInsensitive(t *testing.T) {
	result := Compare("Goat eats grass.", "goat EATS Grass.")
	if result.Correct != 3 {
		t.Fatalf("expected 3 correct, got %d", result.Correct)
	}
}

func TestCompareEmptyTranscript(t *testing.T) {
	result := Compare("the cat sat", "")
	if result.Correct != 0 || result.SpokenTotal != 0 || result.ExpectedTotal != 3 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.RecognitionFailed {
		t.Fatalf("empty transcript must not be a recognition failure")
	}
	for _, w := range result.Words {
		if w.Judgment != model.Missing {
			t.Fatalf("expected missing at %d, got %s", w.Index, w.Judgment)
		}
		if w.Display() != w.Expected {
			t.Fatalf("missing word should display expected token, got %q", w.Display())
		}
	}
}

func TestCompareMismatchShowsSpoken(t *testing.T) {
	result := Compare("the cat sat", "the dog sat")
	want := []model.Judgment{model.Match, model.Mismatch, model.Match}
	for i, j := range want {
		if result.Words[i].Judgment != j {
			t.Fatalf("word %d: expected %s, got %s", i, j, result.Words[i].Judgment)
		}
	}
	if got := result.Words[1].Display(); got != "dog" {
		t.Fatalf("expected mismatch to display spoken token, got %q", got)
	}
	if result.Words[1].Expected != "cat" {
		t.Fatalf("expected mismatch to keep expected token, got %q", result.Words[1].Expected)
	}
	if result.Correct != 2 || result.ExpectedTotal != 3 {
		t.Fatalf("expected 2/3 correct, got %d/%d", result.Correct, result.ExpectedTotal)
	}
}

func TestCompareShortTranscript(t *testing.T) {
	result := Compare("one two three", "one two")
	want := []model.Judgment{model.Match, model.Match, model.Missing}
	for i, j := range want {
		if result.Words[i].Judgment != j {
			t.Fatalf("word %d: expected %s, got %s", i, j, result.Words[i].Judgment)
		}
	}
	if result.Words[2].Display() != "three" {
		t.Fatalf("expected missing word to display %q, got %q", "three", result.Words[2].Display())
	}
	if result.SpokenTotal != 2 {
		t.Fatalf("expected 2 spoken words, got %d", result.SpokenTotal)
	}
}

func TestCompareIgnoresExtraSpokenWords(t *testing.T) {
	result := Compare("one two", "one two three four")
	if len(result.Words) != 2 {
		t.Fatalf("expected 2 judgments, got %d", len(result.Words))
	}
	if result.SpokenTotal != 4 {
		t.Fatalf("expected spoken total to count all tokens, got %d", result.SpokenTotal)
	}
	if result.Correct != 2 {
		t.Fatalf("expected 2 correct, got %d", result.Correct)
	}
}

func TestCompareInsertionCascades(t *testing.T) {
	result := Compare("fish swims in water", "fish fish swims in water")
	if result.Correct != 1 {
		t.Fatalf("expected positional alignment to keep only the first word, got %d correct", result.Correct)
	}
	for _, w := range result.Words[1:] {
		if w.Judgment != model.Mismatch {
			t.Fatalf("expected mismatch at %d, got %s", w.Index, w.Judgment)
		}
	}
}

func TestComparePunctuationMatters(t *testing.T) {
	result := Compare("house is big.", "house is big")
	if result.Words[2].Judgment != model.Mismatch {
		t.Fatalf("expected punctuation difference to mismatch, got %s", result.Words[2].Judgment)
	}
	if !result.Words[2].SoundsAlike {
		t.Fatalf("expected bare-word equality to be flagged as sounds alike")
	}
}

func TestCompareSentinelTranscript(t *testing.T) {
	result := Compare("the cat sat", "Could not understand audio")
	if !result.RecognitionFailed {
		t.Fatalf("expected recognition failure")
	}
	if result.SpokenTotal != 0 || result.Correct != 0 {
		t.Fatalf("expected sentinel to count as zero spoken words, got %+v", result)
	}
	for _, w := range result.Words {
		if w.Judgment != model.Missing {
			t.Fatalf("expected missing at %d, got %s", w.Index, w.Judgment)
		}
	}
}

func TestCompareEmptyExpected(t *testing.T) {
	result := Compare("   ", "hello there")
	if result.ExpectedTotal != 0 || len(result.Words) != 0 {
		t.Fatalf("expected no judgments, got %+v", result)
	}
	if result.SpokenTotal != 2 {
		t.Fatalf("expected 2 spoken words, got %d", result.SpokenTotal)
	}
}
