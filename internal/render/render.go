// Package render turns comparison results into styled or plain text.
package render

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/readaloud/internal/model"
)

// Styles for each judgment. Near-miss mismatches are also underlined.
var (
	MatchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	MismatchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	MissingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	closeStyle    = MismatchStyle.Underline(true)
)

// StyleFor returns the style used for a word judgment.
func StyleFor(w model.WordJudgment) lipgloss.Style {
	switch w.Judgment {
	case model.Match:
		return MatchStyle
	case model.Mismatch:
		if w.SoundsAlike {
			return closeStyle
		}
		return MismatchStyle
	default:
		return MissingStyle
	}
}

// Words renders the comparison with one style per judgment, wrapped to width.
// A width <= 0 disables wrapping.
func Words(result model.ComparisonResult, width int) string {
	tokens := make([]token, 0, len(result.Words))
	for _, w := range result.Words {
		text := w.Display()
		tokens = append(tokens, newToken(StyleFor(w).Render(text), text))
	}
	return wrapTokens(tokens, width)
}

// Plain renders the comparison without color: mismatches in [brackets] and
// missing words in (parentheses).
func Plain(result model.ComparisonResult) string {
	parts := make([]string, 0, len(result.Words))
	for _, w := range result.Words {
		switch w.Judgment {
		case model.Match:
			parts = append(parts, w.Display())
		case model.Mismatch:
			parts = append(parts, "["+w.Display()+"]")
		default:
			parts = append(parts, "("+w.Display()+")")
		}
	}
	return strings.Join(parts, " ")
}

// Passage wraps plain passage text to width.
func Passage(text string, width int) string {
	fields := strings.Fields(text)
	tokens := make([]token, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, newToken(f, f))
	}
	return wrapTokens(tokens, width)
}

// UseColor reports whether w is a terminal that should receive ANSI styling.
func UseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// TerminalWidth returns the width of w, or fallback when it is not a terminal.
func TerminalWidth(w io.Writer, fallback int) int {
	file, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
