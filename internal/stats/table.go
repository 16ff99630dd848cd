package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/readaloud/internal/model"
)

// Column is a table column title and its alignment.
type Column struct {
	Title string
	Right bool
}

// Table collects rows for aligned plain-text output. Widths are measured in
// terminal cells, so wide runes stay aligned.
type Table struct {
	cols []Column
	rows [][]string
}

// NewTable returns an empty table with the given columns.
func NewTable(cols ...Column) *Table {
	return &Table{cols: cols}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.cols))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Lines renders the header and rows. Trailing padding is trimmed.
func (t *Table) Lines() []string {
	if len(t.cols) == 0 {
		return nil
	}
	widths := make([]int, len(t.cols))
	for i, col := range t.cols {
		widths[i] = runewidth.StringWidth(col.Title)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	header := make([]string, len(t.cols))
	for i, col := range t.cols {
		header[i] = col.Title
	}
	lines := make([]string, 0, len(t.rows)+1)
	lines = append(lines, t.line(header, widths))
	for _, row := range t.rows {
		lines = append(lines, t.line(row, widths))
	}
	return lines
}

func (t *Table) line(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		if t.cols[i].Right {
			padded[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(padded, " "), " ")
}

// Write prints the table to w, one line per row.
func (t *Table) Write(w io.Writer) error {
	for _, line := range t.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WordTable lays out one row per expected word: position, expected token,
// spoken token ("-" when missing) and the judgment, with near misses marked.
func WordTable(result model.ComparisonResult) *Table {
	t := NewTable(
		Column{Title: "#", Right: true},
		Column{Title: "Expected"},
		Column{Title: "Spoken"},
		Column{Title: "Result"},
	)
	for _, wj := range result.Words {
		status := wj.Judgment.String()
		if wj.Judgment == model.Mismatch && wj.SoundsAlike {
			status += " (close)"
		}
		spoken := wj.Spoken
		if wj.Judgment == model.Missing {
			spoken = "-"
		}
		t.AddRow(strconv.Itoa(wj.Index+1), wj.Expected, spoken, status)
	}
	return t
}
