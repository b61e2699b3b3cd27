package texttable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want Kind
	}{
		{name: "single line", text: "A | B", want: PlainText},
		{name: "single line marker", text: CalendarMarker, want: PlainText},
		{name: "paragraph", text: "line one\nline two", want: PlainText},
		{name: "table", text: "A | B\n1 | 2", want: DataTable},
		{name: "titled table", text: "Title\nA | B", want: DataTable},
		{name: "calendar", text: "May\n" + CalendarMarker + "\n1 | 2 | 3 | 4 | 5 | 6 | 7", want: MultiCalendar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.text)
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, "unknown", got.String())
		})
	}
}

func TestSplitCalendars_KeepsHeaderOnlySegments(t *testing.T) {
	t.Parallel()

	text := "\n" + CalendarMarker + "\n1 | 2 | 3 | 4 | 5 | 6 | 7 | May\n" + CalendarMarker + "\n\n"

	assert.Equal(t, CalendarMarker+"\n1 | 2 | 3 | 4 | 5 | 6 | 7 \nMay\n"+CalendarMarker, splitCalendars(text))
}

func TestParseTable_ColumnsFromSecondLine(t *testing.T) {
	t.Parallel()

	tbl := parseTable([]string{"Title", "a | b | c", "1 | 2 | 3"})

	assert.Equal(t, 3, tbl.columns)
	assert.Equal(t, []Row{{"Title"}, {"a", "b", "c"}, {"1", "2", "3"}}, tbl.rows)
	assert.True(t, tbl.rows[0].IsBanner())

	widths, ok := tbl.widths(RuneCount)
	assert.True(t, ok)
	assert.Equal(t, []int{3, 3, 3}, widths)
}
