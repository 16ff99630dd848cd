// Package generator builds reading passages from level sentence pools.
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/readaloud/internal/level"
	"github.com/verte-zerg/readaloud/internal/model"
)

// WordsPerMinuteOfText sizes passages: each target minute asks for this many words.
const WordsPerMinuteOfText = 20

// MaxMinutes caps the target duration of a single passage.
const MaxMinutes = 60

// ErrInvalidDuration is returned for a target duration that is not a finite
// value in (0, MaxMinutes].
var ErrInvalidDuration = errors.New("invalid target minutes")

// Source supplies uniform random indexes. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Generator produces randomized passages.
type Generator struct {
	rnd Source
}

// New returns a Generator drawing from src.
func New(src Source) *Generator {
	return &Generator{rnd: src}
}

// NewSeeded returns a Generator seeded with the current time.
func NewSeeded() *Generator {
	return New(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// ValidateMinutes reports ErrInvalidDuration unless minutes is finite and in
// (0, MaxMinutes].
func ValidateMinutes(minutes float64) error {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 || minutes > MaxMinutes {
		return fmt.Errorf("%w: got %v, want a value in (0, %d]", ErrInvalidDuration, minutes, MaxMinutes)
	}
	return nil
}

// TargetWords returns the minimum passage length for the given duration.
func TargetWords(minutes float64) int {
	return int(math.Ceil(minutes * WordsPerMinuteOfText))
}

// Generate draws sentences for level until the passage reaches the target word
// count. A sentence is never appended twice in a row unless the pool has no
// other distinct sentence.
func (g *Generator) Generate(table level.Table, lvl string, minutes float64) (model.Passage, error) {
	if err := ValidateMinutes(minutes); err != nil {
		return model.Passage{}, err
	}
	pool, err := table.Sentences(lvl)
	if err != nil {
		return model.Passage{}, err
	}
	allowRepeat := distinctCount(pool) < 2
	target := TargetWords(minutes)

	var chosen []string
	words := 0
	last := ""
	for words < target {
		choice := pool[g.rnd.Intn(len(pool))]
		if choice == last && !allowRepeat {
			continue
		}
		chosen = append(chosen, choice)
		words += len(strings.Fields(choice))
		last = choice
	}
	return model.Passage{
		Level:     lvl,
		Text:      strings.TrimSpace(strings.Join(chosen, " ")),
		Sentences: chosen,
	}, nil
}

func distinctCount(pool []string) int {
	seen := make(map[string]struct{}, len(pool))
	for _, s := range pool {
		seen[s] = struct{}{}
	}
	return len(seen)
}
