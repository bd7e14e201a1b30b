package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Table formats tabular output with dynamic column widths. Cell
// widths are measured by visible width so ANSI-styled cells do not
// skew the layout.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers:   headers,
		rows:      [][]string{},
		padding:   2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth caps a column's width. Cells beyond the cap are
// word-wrapped onto continuation lines. A width of 0 removes the cap.
func (t *Table) SetColumnMaxWidth(col, width int) {
	if width <= 0 {
		delete(t.maxWidths, col)
		return
	}
	t.maxWidths[col] = width
}

// AddRow appends a row. Missing cells are filled with empty strings
// and extra cells are dropped so every row matches the header count.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(values) {
			row[i] = values[i]
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render formats the table as a string, including the header row and
// a dashed separator.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := t.columnWidths()
	pad := strings.Repeat(" ", t.padding)

	var sb strings.Builder
	t.writeLine(&sb, t.headers, widths, pad)

	sep := make([]string, len(t.headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	t.writeLine(&sb, sep, widths, pad)

	for _, row := range t.rows {
		wrapped := make([][]string, len(row))
		height := 1
		for i, cell := range row {
			wrapped[i] = wrapCell(cell, widths[i])
			if len(wrapped[i]) > height {
				height = len(wrapped[i])
			}
		}
		for line := 0; line < height; line++ {
			cells := make([]string, len(row))
			for i := range row {
				if line < len(wrapped[i]) {
					cells[i] = wrapped[i][line]
				}
			}
			t.writeLine(&sb, cells, widths, pad)
		}
	}

	return sb.String()
}

func (t *Table) writeLine(sb *strings.Builder, cells []string, widths []int, pad string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString(pad)
		}
		if i == len(cells)-1 {
			sb.WriteString(cell)
		} else {
			sb.WriteString(padRight(cell, widths[i]))
		}
	}
	sb.WriteString("\n")
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = visibleWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := visibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if max, ok := t.maxWidths[i]; ok && widths[i] > max {
			widths[i] = max
		}
	}
	return widths
}

// wrapCell word-wraps a cell to the given width. Words wider than the
// width are split at grapheme boundaries.
func wrapCell(text string, width int) []string {
	if width <= 0 || visibleWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		switch {
		case visibleWidth(word) > width:
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			var b strings.Builder
			w := 0
			g := uniseg.NewGraphemes(word)
			for g.Next() {
				gw := runewidth.StringWidth(g.Str())
				if w+gw > width && w > 0 {
					lines = append(lines, b.String())
					b.Reset()
					w = 0
				}
				b.WriteString(g.Str())
				w += gw
			}
			current = b.String()
		case current == "":
			current = word
		case visibleWidth(current)+1+visibleWidth(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
