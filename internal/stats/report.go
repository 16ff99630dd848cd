package stats

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/readaloud/internal/compare"
	"github.com/verte-zerg/readaloud/internal/model"
)

// Report contains precomputed data for result rendering.
type Report struct {
	Expected       string
	Transcript     string
	ElapsedSeconds float64
	Result         model.ComparisonResult
	Metrics        model.ReadingMetrics
	Trouble        []WordMiss
}

// BuildReport compares the transcript against the passage text and computes metrics.
func BuildReport(expected, transcript string, elapsedSeconds float64, troubleTop int) Report {
	result := compare.Compare(expected, transcript)
	return Report{
		Expected:       expected,
		Transcript:     transcript,
		ElapsedSeconds: elapsedSeconds,
		Result:         result,
		Metrics:        Metrics(result, elapsedSeconds),
		Trouble:        TroubleWords(result, troubleTop),
	}
}

// RenderReport prints a summary and a per-word table.
func RenderReport(w io.Writer, r Report) error {
	rounded := r.Metrics.Rounded()
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if r.Result.RecognitionFailed {
		if _, err := fmt.Fprintln(w, "Recognition failed: transcript counted as no speech."); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Correct: %d/%d\n", r.Result.Correct, r.Result.ExpectedTotal); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Spoken words: %d\n", r.Result.SpokenTotal); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "WPM: %.2f\n", rounded.WPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy: %.2f%%\n", rounded.Accuracy); err != nil {
		return err
	}
	if n := r.Result.SoundsAlikeCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "Near misses: %d\n", n); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if len(r.Result.Words) == 0 {
		_, err := fmt.Fprintln(w, "No words to compare.")
		return err
	}

	if err := WordTable(r.Result).Write(w); err != nil {
		return err
	}

	if len(r.Trouble) > 0 {
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "Practice words"); err != nil {
			return err
		}
		for _, miss := range r.Trouble {
			if _, err := fmt.Fprintf(w, "%s x%d\n", miss.Word, miss.Count); err != nil {
				return err
			}
		}
	}
	return nil
}

type yamlWord struct {
	Index       int    `yaml:"index"`
	Judgment    string `yaml:"judgment"`
	Expected    string `yaml:"expected"`
	Spoken      string `yaml:"spoken,omitempty"`
	SoundsAlike bool   `yaml:"soundsalike,omitempty"`
}

type yamlReport struct {
	Expected          string     `yaml:"expected"`
	Transcript        string     `yaml:"transcript"`
	ElapsedSeconds    float64    `yaml:"elapsedseconds"`
	RecognitionFailed bool       `yaml:"recognitionfailed"`
	Correct           int        `yaml:"correct"`
	SpokenTotal       int        `yaml:"spokentotal"`
	ExpectedTotal     int        `yaml:"expectedtotal"`
	WPM               float64    `yaml:"wpm"`
	Accuracy          float64    `yaml:"accuracy"`
	Words             []yamlWord `yaml:"words"`
	Trouble           []WordMiss `yaml:"trouble,omitempty"`
}

// WriteYAML writes the report as YAML with metrics rounded for display.
func WriteYAML(w io.Writer, r Report) error {
	rounded := r.Metrics.Rounded()
	out := yamlReport{
		Expected:          r.Expected,
		Transcript:        r.Transcript,
		ElapsedSeconds:    r.ElapsedSeconds,
		RecognitionFailed: r.Result.RecognitionFailed,
		Correct:           r.Result.Correct,
		SpokenTotal:       r.Result.SpokenTotal,
		ExpectedTotal:     r.Result.ExpectedTotal,
		WPM:               rounded.WPM,
		Accuracy:          rounded.Accuracy,
		Words:             make([]yamlWord, 0, len(r.Result.Words)),
		Trouble:           r.Trouble,
	}
	for _, wj := range r.Result.Words {
		out.Words = append(out.Words, yamlWord{
			Index:       wj.Index,
			Judgment:    wj.Judgment.String(),
			Expected:    wj.Expected,
			Spoken:      wj.Spoken,
			SoundsAlike: wj.SoundsAlike,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
