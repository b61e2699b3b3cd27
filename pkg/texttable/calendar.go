package texttable

import "strings"

// splitCalendars rewrites a block of concatenated calendar grids so that it
// can be rendered as a single table. Every grid keeps its weekday header and
// a month label trailing the last week of a grid becomes a banner line after
// that grid.
//
// A caption is only recognised on rows with more than seven fields; grids
// with fewer weekday columns are passed through as they are. A weekday header
// with no week below it is kept as a row of its own.
func splitCalendars(text string) string {
	var out []string

	for i, segment := range strings.Split(text, CalendarMarker) {
		if i == 0 && strings.TrimSpace(segment) == "" {
			continue
		}
		if i > 0 {
			segment = CalendarMarker + segment
		}

		lines := strings.Split(strings.Trim(segment, "\n"), "\n")
		rows := make([][]string, len(lines))
		for j, line := range lines {
			rows[j] = strings.Split(line, separator)
		}

		var caption string
		if last := rows[len(rows)-1]; len(last) > calendarColumns {
			caption = strings.TrimSpace(strings.Join(last[calendarColumns:], separator))
			rows[len(rows)-1] = last[:calendarColumns]
		}

		joined := make([]string, len(rows))
		for j, row := range rows {
			joined[j] = strings.Join(row, separator)
		}
		out = append(out, strings.Join(joined, "\n"))

		if caption != "" {
			out = append(out, caption)
		}
	}

	return strings.Join(out, "\n")
}
