package compare

import "strings"

var sentinelPhrases = map[string]struct{}{
	"could not understand audio":                    {},
	"speech recognition could not understand audio": {},
	"speech not recognized":                         {},
	"[inaudible]":                                   {},
	"[no speech]":                                   {},
	"[error]":                                       {},
}

var sentinelPrefixes = []string{
	"error:",
	"could not request results",
}

// IsSentinel reports whether transcript is a recognizer failure marker rather
// than spoken content. An empty transcript is not a sentinel.
func IsSentinel(transcript string) bool {
	t := strings.ToLower(strings.TrimSpace(transcript))
	if t == "" {
		return false
	}
	t = strings.TrimRight(t, ".!")
	if _, ok := sentinelPhrases[t]; ok {
		return true
	}
	for _, prefix := range sentinelPrefixes {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}
