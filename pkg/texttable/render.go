package texttable

import "strings"

const (
	horizontal = "─"
	vertical   = "│"
)

// rowState tracks what was emitted last. Dividers are written lazily when
// the next row starts, so a banner opening or closing the table is framed by
// the table border instead. Between two banners both the divider closing the
// first and the one opening the second are written.
type rowState int

const (
	beforeFirstRow rowState = iota
	afterDataRow
	afterBannerRow
)

type renderer struct {
	widths  []int
	measure Measure
	lines   []string
	state   rowState
}

// render draws t with the given column widths.
func render(t table, widths []int, measure Measure) string {
	r := &renderer{widths: widths, measure: measure}

	if t.columns == 1 || (len(t.rows) > 0 && t.rows[0].IsBanner()) {
		r.lines = append(r.lines, "┌"+strings.Repeat(horizontal, r.interior())+"┐")
	} else {
		r.lines = append(r.lines, r.border("┌", "┬", "┐"))
	}

	for _, row := range t.rows {
		if row.IsBanner() {
			r.banner(row[0])
		} else {
			r.data(row)
		}
	}

	r.lines = append(r.lines, r.border("└", "┴", "┘"))

	return strings.Join(r.lines, "\n")
}

func (r *renderer) banner(text string) {
	switch r.state {
	case afterDataRow:
		r.lines = append(r.lines, r.border("├", "┴", "┤"))
	case afterBannerRow:
		r.lines = append(r.lines, r.border("├", "┬", "┤"), r.border("├", "┴", "┤"))
	}
	r.lines = append(r.lines, vertical+center(text, r.interior(), r.measure)+vertical)
	r.state = afterBannerRow
}

func (r *renderer) data(row Row) {
	if r.state == afterBannerRow {
		r.lines = append(r.lines, r.border("├", "┬", "┤"))
	}
	cells := make([]string, len(r.widths))
	for i, width := range r.widths {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = center(cell, width, r.measure)
	}
	r.lines = append(r.lines, vertical+strings.Join(cells, vertical)+vertical)
	r.state = afterDataRow
}

// interior is the width between the outer frame characters.
func (r *renderer) interior() int {
	total := len(r.widths) - 1
	for _, w := range r.widths {
		total += w
	}
	return total
}

func (r *renderer) border(left, junction, right string) string {
	segments := make([]string, len(r.widths))
	for i, w := range r.widths {
		segments[i] = strings.Repeat(horizontal, w)
	}
	return left + strings.Join(segments, junction) + right
}

// Center pads s with spaces to width, putting the odd space on the right.
// Strings at least as wide as width are returned unchanged.
func Center(s string, width int) string {
	return center(s, width, RuneCount)
}

func center(s string, width int, measure Measure) string {
	gap := width - measure(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
