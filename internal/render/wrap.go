package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type token struct {
	s     string
	width int
}

func newToken(styled, raw string) token {
	return token{s: styled, width: runewidth.StringWidth(raw)}
}

// wrapTokens joins tokens with single spaces, breaking lines before a token
// that would overflow width. A token wider than width gets a line of its own.
func wrapTokens(tokens []token, width int) string {
	var out strings.Builder
	lineWidth := 0
	for i, tok := range tokens {
		if i > 0 {
			if width > 0 && lineWidth+1+tok.width > width {
				out.WriteRune('\n')
				lineWidth = 0
			} else {
				out.WriteRune(' ')
				lineWidth++
			}
		}
		out.WriteString(tok.s)
		lineWidth += tok.width
	}
	return out.String()
}
