// Package render prints command output as aligned columns. Widths are
// measured in display cells so CJK names and emoji line up.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MaxColumnWidth caps a column; longer cells are truncated with "...".
const MaxColumnWidth = 48

// Fit pads or truncates text to exactly width display cells. A
// non-positive width returns text unchanged.
func Fit(text string, width int) string {
	if width <= 0 {
		return text
	}
	w := runewidth.StringWidth(text)
	switch {
	case w > width:
		const ellipsis = "..."
		if width <= len(ellipsis) {
			return runewidth.Truncate(ellipsis, width, "")
		}
		// Truncate may stop short of width when a wide rune doesn't fit.
		return runewidth.FillRight(runewidth.Truncate(text, width, ellipsis), width)
	case w < width:
		return text + strings.Repeat(" ", width-w)
	}
	return text
}

// Table collects rows and writes them with aligned columns.
type Table struct {
	header []string
	rows   [][]string
}

// NewTable starts a table with the given column headers. A nil header
// prints rows only.
func NewTable(header ...string) *Table {
	return &Table{header: header}
}

// Row appends one row. Values are formatted with %v.
func (t *Table) Row(values ...interface{}) {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = fmt.Sprint(v)
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Write prints the table to w. The last column is never padded.
func (t *Table) Write(w io.Writer) error {
	all := t.rows
	if len(t.header) > 0 {
		all = append([][]string{t.header}, t.rows...)
	}

	var widths []int
	for _, row := range all {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], min(runewidth.StringWidth(cell), MaxColumnWidth))
		}
	}

	for _, row := range all {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(row)-1 {
				b.WriteString(Fit(cell, min(runewidth.StringWidth(cell), MaxColumnWidth)))
				continue
			}
			b.WriteString(Fit(cell, widths[i]))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
