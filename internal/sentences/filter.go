package sentences

import "unicode"

// Filter returns true when a line holds at least one letter or digit and is
// therefore readable aloud.
func Filter(line string) bool {
	for _, r := range line {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
