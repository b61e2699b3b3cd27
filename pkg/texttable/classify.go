package texttable

import "strings"

// CalendarMarker is the weekday header that opens every calendar grid.
const CalendarMarker = "Su | Mo | Tu | We | Th | Fr | Sa"

// calendarColumns is the number of weekday columns a calendar grid must have.
const calendarColumns = 7

// Kind is the classification of a text block.
type Kind int

const (
	// PlainText blocks are returned unchanged.
	PlainText Kind = iota
	// DataTable blocks are rendered by the generic formatter.
	DataTable
	// MultiCalendar blocks hold one or more weekly calendar grids.
	MultiCalendar
)

func (k Kind) String() string {
	switch k {
	case PlainText:
		return "plain"
	case DataTable:
		return "table"
	case MultiCalendar:
		return "calendar"
	default:
		return "unknown"
	}
}

// Classify reports how text would be formatted.
//
// Single-line text and text without any column separator are plain. Text
// containing CalendarMarker is a calendar block. Anything else is a table.
func Classify(text string) Kind {
	switch {
	case !strings.Contains(text, "\n"):
		return PlainText
	case strings.Contains(text, CalendarMarker):
		return MultiCalendar
	case !strings.Contains(text, separator):
		return PlainText
	default:
		return DataTable
	}
}
