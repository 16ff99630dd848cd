package compare

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
)

// soundsAlikeThreshold is the Jaro-Winkler score above which two words are
// treated as a near-miss even without a shared phonetic code.
const soundsAlikeThreshold = 0.85

// SoundsAlike reports whether spoken is a likely mishearing of expected: the
// words share a Double Metaphone code or are close by Jaro-Winkler similarity.
// Punctuation around either word is ignored. Identical bare words (for example
// "sat." and "sat") also count.
func SoundsAlike(expected, spoken string) bool {
	a := bareWord(expected)
	b := bareWord(spoken)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if codesOverlap(a, b) {
		return true
	}
	return matchr.JaroWinkler(a, b, false) >= soundsAlikeThreshold
}

func codesOverlap(a, b string) bool {
	ap, as := matchr.DoubleMetaphone(a)
	bp, bs := matchr.DoubleMetaphone(b)
	for _, x := range []string{ap, as} {
		if x == "" {
			continue
		}
		if x == bp || x == bs {
			return true
		}
	}
	return false
}

func bareWord(s string) string {
	return strings.TrimFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
