package texttable

import "strings"

const separator = "|"

// Row is one line of a table split into trimmed cells. A row has either
// one cell (a banner) or exactly as many cells as the table has columns.
type Row []string

// IsBanner reports whether the row spans the whole table width.
func (r Row) IsBanner() bool {
	return len(r) == 1
}

// table is a parsed block ready to be measured and rendered.
type table struct {
	columns int
	rows    []Row
}

// parseTable splits lines into rows. The column count comes from the first
// line when it holds a separator, from the second line otherwise, so that
// a title line may precede the header.
func parseTable(lines []string) table {
	t := table{columns: columnCount(lines)}

	for _, line := range lines {
		t.rows = append(t.rows, splitRow(line, t.columns))
	}

	return t
}

func columnCount(lines []string) int {
	if len(lines) == 0 {
		return 0
	}
	if strings.Contains(lines[0], separator) || len(lines) == 1 {
		return len(strings.Split(lines[0], separator))
	}
	return len(strings.Split(lines[1], separator))
}

// splitRow splits line into at most columns cells. Short rows with more
// than one cell are padded with empty cells so every data row has the same
// length; they are rendered rather than rejecting the whole block.
func splitRow(line string, columns int) Row {
	cells := strings.SplitN(line, separator, max(columns, 1))

	row := make(Row, 0, columns)
	for _, cell := range cells {
		row = append(row, strings.TrimSpace(cell))
	}

	if len(row) > 1 {
		for len(row) < columns {
			row = append(row, "")
		}
	}

	return row
}

// widths returns the padded width of every column, measured over data rows
// only. It returns false when the table has no data row.
func (t table) widths(measure Measure) ([]int, bool) {
	if t.columns == 0 {
		return nil, false
	}

	widths := make([]int, t.columns)
	found := false

	for _, row := range t.rows {
		if row.IsBanner() {
			continue
		}
		found = true
		for i, cell := range row {
			widths[i] = max(widths[i], measure(cell))
		}
	}

	if !found {
		return nil, false
	}

	for i := range widths {
		widths[i] += 2
	}

	return widths, true
}
